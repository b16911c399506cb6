package dashboard

import (
	"hermannm.dev/bikedash/analysis"
	"hermannm.dev/bikedash/rentals"
	"hermannm.dev/enumnames"
)

type PanelKind uint8

const (
	PanelKindLine PanelKind = iota + 1
	PanelKindBar
	PanelKindPie
)

var panelKindNames = enumnames.NewMap(map[PanelKind]string{
	PanelKindLine: "LINE",
	PanelKindBar:  "BAR",
	PanelKindPie:  "PIE",
})

func (kind PanelKind) IsValid() bool {
	return panelKindNames.ContainsEnumValue(kind)
}

func (kind PanelKind) String() string {
	return panelKindNames.GetNameOrFallback(kind, "INVALID_PANEL_KIND")
}

func (kind PanelKind) MarshalJSON() ([]byte, error) {
	return panelKindNames.MarshalToNameJSON(kind)
}

func (kind *PanelKind) UnmarshalJSON(bytes []byte) error {
	return panelKindNames.UnmarshalFromNameJSON(bytes, kind)
}

// Palette colors, as hex RGB.
const (
	ColorBlue   = "#1f77b4"
	ColorOrange = "#ff7f0e"
	ColorGreen  = "#2ca02c"
	ColorRed    = "#d62728"
)

// Panel is one chart of a dashboard.
type Panel struct {
	Kind PanelKind `json:"kind"`
	// Subheader of the dashboard section that the panel is shown under.
	Section string        `json:"section"`
	Title   string        `json:"title"`
	View    analysis.View `json:"view"`
	// Name of the view column to plot.
	Column string `json:"column"`
	// Colors for each key of the view, repeated if the view has more keys than colors. Line charts
	// only use the first. Exported pie charts take the workbook theme colors instead.
	Colors []string `json:"colors"`
}

func (panel Panel) ColorAt(index int) string {
	if len(panel.Colors) == 0 {
		return ColorBlue
	}
	return panel.Colors[index%len(panel.Colors)]
}

// Panels lays out the charts of a dashboard. The daily metrics are not charts, and are shown from
// the result summary instead.
func Panels(result analysis.Result, config Config) []Panel {
	config = config.WithDefaults()
	labels := LabelsFor(config.Locale)

	panels := []Panel{
		{
			Kind:    PanelKindLine,
			Section: labels.MonthlySubheader,
			Title:   labels.MonthlySubheader,
			View:    result.Monthly,
			Column:  rentals.ColumnCount,
			Colors:  []string{ColorOrange},
		},
	}

	switch config.ChartStyle {
	case ChartStylePies:
		panels = append(
			panels,
			Panel{
				Kind:    PanelKindBar,
				Section: labels.WeatherSubheader,
				Title:   labels.WeatherSubheader,
				View:    result.Weather,
				Column:  rentals.ColumnCount,
				Colors:  []string{ColorBlue, ColorOrange, ColorGreen},
			},
			Panel{
				Kind:    PanelKindPie,
				Section: labels.WorkingDayHolidaySubheader,
				Title:   labels.WorkingDayTitle,
				View:    result.WorkingDay,
				Column:  rentals.ColumnCount,
				Colors:  []string{ColorBlue, ColorOrange},
			},
			Panel{
				Kind:    PanelKindPie,
				Section: labels.WorkingDayHolidaySubheader,
				Title:   labels.HolidayTitle,
				View:    result.Holiday,
				Column:  rentals.ColumnCount,
				Colors:  []string{ColorBlue, ColorOrange},
			},
		)
	default:
		panels = append(
			panels,
			Panel{
				Kind:    PanelKindBar,
				Section: labels.WeatherSubheader,
				Title:   labels.WeatherSubheader,
				View:    result.Weather,
				Column:  rentals.ColumnCount,
				Colors:  []string{ColorRed, ColorBlue, ColorGreen},
			},
			Panel{
				Kind:    PanelKindBar,
				Section: labels.WorkingDayHolidaySubheader,
				Title:   labels.WorkingDayTitle,
				View:    result.WorkingDay,
				Column:  rentals.ColumnCount,
				Colors:  []string{ColorOrange, ColorGreen},
			},
			Panel{
				Kind:    PanelKindBar,
				Section: labels.WorkingDayHolidaySubheader,
				Title:   labels.HolidayTitle,
				View:    result.Holiday,
				Column:  rentals.ColumnCount,
				Colors:  []string{ColorOrange, ColorGreen},
			},
		)
	}

	return panels
}
