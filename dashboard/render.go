package dashboard

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/message"
	"hermannm.dev/bikedash/analysis"
	"hermannm.dev/wrap"
)

// RenderText writes the dashboard as plain text, with numbers formatted for the configured
// locale.
func RenderText(output io.Writer, result analysis.Result, config Config) error {
	config = config.WithDefaults()
	labels := LabelsFor(config.Locale)
	printer := message.NewPrinter(config.Locale.Tag())

	writer := tabwriter.NewWriter(output, 0, 4, 2, ' ', 0)

	fmt.Fprintf(writer, "%s\n%s\n", labels.Header, strings.Repeat("=", len(labels.Header)))
	fmt.Fprintf(writer, "%s:\t%v\n\n", labels.DateRange, result.DateRange)

	fmt.Fprintf(writer, "%s\n", labels.DailySubheader)
	printer.Fprintf(writer, "  %s\t%d\n", labels.CasualMetric, result.Summary.Casual)
	printer.Fprintf(writer, "  %s\t%d\n", labels.RegisteredMetric, result.Summary.Registered)
	printer.Fprintf(writer, "  %s\t%d\n", labels.TotalMetric, result.Summary.Total)

	currentSection := labels.DailySubheader
	for _, panel := range Panels(result, config) {
		if panel.Section != currentSection {
			fmt.Fprintf(writer, "\n%s\n", panel.Section)
			currentSection = panel.Section
		}
		if panel.Title != panel.Section {
			fmt.Fprintf(writer, "  %s\n", panel.Title)
		}

		renderPanel(writer, printer, panel)
	}

	if err := writer.Flush(); err != nil {
		return wrap.Error(err, "failed to write dashboard text")
	}
	return nil
}

func renderPanel(writer io.Writer, printer *message.Printer, panel Panel) {
	column, ok := panel.View.Column(panel.Column)
	if !ok {
		return
	}

	total := panel.View.Total(panel.Column)

	for i, key := range panel.View.Keys {
		value := column.Values[i]

		if panel.Kind == PanelKindPie && total != 0 {
			share := float64(value) / float64(total) * 100
			printer.Fprintf(writer, "    %s\t%d\t%.1f%%\n", key, value, share)
		} else {
			printer.Fprintf(writer, "    %s\t%d\n", key, value)
		}
	}
}
