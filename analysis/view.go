package analysis

import (
	"slices"

	"hermannm.dev/bikedash/rentals"
	"hermannm.dev/wrap"
)

// View is the result of grouping a rental table by one dimension and summing one or more count
// columns per group. Keys and column values are index-aligned.
type View struct {
	Dimension Dimension     `json:"dimension"`
	Keys      []string      `json:"keys"`
	Columns   []ValueColumn `json:"columns"`
}

type ValueColumn struct {
	Name   string  `json:"name"`
	Values []int64 `json:"values"`
}

func (view View) Len() int {
	return len(view.Keys)
}

func (view View) Column(name string) (ValueColumn, bool) {
	for _, column := range view.Columns {
		if column.Name == name {
			return column, true
		}
	}
	return ValueColumn{}, false
}

// Total sums every value of the given column. It is 0 if the view has no such column.
func (view View) Total(column string) int64 {
	valueColumn, ok := view.Column(column)
	if !ok {
		return 0
	}

	var total int64
	for _, value := range valueColumn.Values {
		total += value
	}
	return total
}

// Value returns the summed value of the given column for one key.
func (view View) Value(key string, column string) (value int64, ok bool) {
	valueColumn, ok := view.Column(column)
	if !ok {
		return 0, false
	}

	index := slices.Index(view.Keys, key)
	if index == -1 {
		return 0, false
	}
	return valueColumn.Values[index], true
}

// Reindex returns a view with exactly the given keys in the given order. Keys missing from the
// view get 0 in every column, and keys not in the given list are dropped.
func (view View) Reindex(keys []string) View {
	reindexed := View{
		Dimension: view.Dimension,
		Keys:      slices.Clone(keys),
		Columns:   make([]ValueColumn, len(view.Columns)),
	}

	for i, column := range view.Columns {
		values := make([]int64, len(keys))
		for j, key := range keys {
			if index := slices.Index(view.Keys, key); index != -1 {
				values[j] = column.Values[index]
			}
		}
		reindexed.Columns[i] = ValueColumn{Name: column.Name, Values: values}
	}

	return reindexed
}

// sumBy groups the table on the dimension's column and sums the given count columns per group.
// Groups are sorted by key in ascending order, and only keys present in the table appear.
func sumBy(table rentals.Table, dimension Dimension, columns ...string) (View, error) {
	keys, err := table.StringColumn(dimension.Column())
	if err != nil {
		return View{}, wrap.Errorf(err, "failed to group rentals by %v", dimension)
	}

	columnValues := make([][]int64, len(columns))
	for i, column := range columns {
		columnValues[i], err = table.IntColumn(column)
		if err != nil {
			return View{}, wrap.Errorf(err, "failed to sum %s by %v", column, dimension)
		}
	}

	groupKeys := slices.Clone(keys)
	slices.Sort(groupKeys)
	groupKeys = slices.Compact(groupKeys)

	groupIndexes := make(map[string]int, len(groupKeys))
	for i, key := range groupKeys {
		groupIndexes[key] = i
	}

	view := View{
		Dimension: dimension,
		Keys:      groupKeys,
		Columns:   make([]ValueColumn, len(columns)),
	}
	for i, column := range columns {
		sums := make([]int64, len(groupKeys))
		for row, value := range columnValues[i] {
			sums[groupIndexes[keys[row]]] += value
		}
		view.Columns[i] = ValueColumn{Name: column, Values: sums}
	}

	return view, nil
}
