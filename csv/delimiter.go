package csv

import (
	"bufio"
	"io"

	"hermannm.dev/wrap"
)

// Space is left out, since categorical values such as weather descriptions contain spaces.
var DefaultDelimitersToCheck = []rune{',', ';', '\t', '|'}

func DeduceFieldDelimiter(
	csvFile io.ReadSeeker,
	maxRowsToCheck int,
	delimitersToCheck []rune,
) (delimiter rune, err error) {
	// Resets reader position in file before returning, so its data can be read subsequently
	defer func() {
		if _, seekErr := csvFile.Seek(0, io.SeekStart); seekErr != nil {
			err = wrap.Error(seekErr, "failed to reset CSV reader after deducing field delimiter")
		}
	}()

	if len(delimitersToCheck) == 0 {
		delimitersToCheck = DefaultDelimitersToCheck
	}

	candidates := newDelimiterCandidateList(delimitersToCheck)

	scanner := bufio.NewScanner(csvFile)
	for i := 0; i < maxRowsToCheck && scanner.Scan(); i++ {
		line := scanner.Text()
		if line == "" {
			continue
		}

		for j, candidate := range candidates {
			candidate.updateCounts(line)
			candidates[j] = candidate
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, wrap.Error(err, "failed to scan CSV file for field delimiter")
	}

	return candidates.getBestCandidate(delimitersToCheck[0]), nil
}

type delimiterCandidate struct {
	delimiter    rune
	highestCount int
	lowestCount  int
}

func (candidate *delimiterCandidate) updateCounts(line string) {
	count := 0
	inQuotes := false
	for _, char := range line {
		switch {
		case char == '"':
			inQuotes = !inQuotes
		case char == candidate.delimiter && !inQuotes:
			count++
		}
	}

	if candidate.highestCount == -1 || candidate.highestCount < count {
		candidate.highestCount = count
	}
	if candidate.lowestCount == -1 || candidate.lowestCount > count {
		candidate.lowestCount = count
	}
}

type delimiterCandidateList []delimiterCandidate

func newDelimiterCandidateList(delimitersToCheck []rune) delimiterCandidateList {
	list := make([]delimiterCandidate, 0, len(delimitersToCheck))

	for _, delimiter := range delimitersToCheck {
		list = append(
			list,
			delimiterCandidate{delimiter: delimiter, highestCount: -1, lowestCount: -1},
		)
	}

	return list
}

// Falls back to the given delimiter if no candidate appeared in the checked lines, which is the
// case for single-column files.
func (list delimiterCandidateList) getBestCandidate(fallback rune) rune {
	bestCandidate := delimiterCandidate{delimiter: fallback}

	for _, candidate := range list {
		equalHighLow := candidate.highestCount == candidate.lowestCount
		bestEqualHighLow := bestCandidate.highestCount == bestCandidate.lowestCount
		higherThanBest := candidate.highestCount > bestCandidate.highestCount

		equalAndHigher := equalHighLow && bestEqualHighLow && higherThanBest

		moreEqual := equalHighLow && !bestEqualHighLow && candidate.highestCount > 0

		unequalButHigher := !equalHighLow && !bestEqualHighLow &&
			candidate.highestCount > bestCandidate.highestCount &&
			(candidate.lowestCount != 0 || bestCandidate.lowestCount == 0)

		if equalAndHigher || moreEqual || unequalButHigher {
			bestCandidate = candidate
		}
	}

	return bestCandidate.delimiter
}
