package dashboard

import (
	"strconv"

	"golang.org/x/text/language"
	"hermannm.dev/enumnames"
)

// Config selects how a dashboard is presented. It does not affect what is computed.
type Config struct {
	Locale     Locale     `json:"locale"`
	ChartStyle ChartStyle `json:"chartStyle"`
}

func DefaultConfig() Config {
	return Config{Locale: LocaleEnglish, ChartStyle: ChartStyleBars}
}

// WithDefaults fills in unset fields with the values from DefaultConfig.
func (config Config) WithDefaults() Config {
	defaults := DefaultConfig()
	if !config.Locale.IsValid() {
		config.Locale = defaults.Locale
	}
	if !config.ChartStyle.IsValid() {
		config.ChartStyle = defaults.ChartStyle
	}
	return config
}

type Locale uint8

const (
	LocaleIndonesian Locale = iota + 1
	LocaleEnglish
)

var localeNames = enumnames.NewMap(map[Locale]string{
	LocaleIndonesian: "id",
	LocaleEnglish:    "en",
})

func (locale Locale) IsValid() bool {
	return localeNames.ContainsEnumValue(locale)
}

func (locale Locale) String() string {
	return localeNames.GetNameOrFallback(locale, "INVALID_LOCALE")
}

func (locale Locale) MarshalJSON() ([]byte, error) {
	return localeNames.MarshalToNameJSON(locale)
}

func (locale *Locale) UnmarshalJSON(bytes []byte) error {
	return localeNames.UnmarshalFromNameJSON(bytes, locale)
}

// Lets the locale be parsed from environment variables.
func (locale *Locale) UnmarshalText(text []byte) error {
	return localeNames.UnmarshalFromNameJSON([]byte(strconv.Quote(string(text))), locale)
}

// Tag is the language used for number formatting.
func (locale Locale) Tag() language.Tag {
	switch locale {
	case LocaleIndonesian:
		return language.Indonesian
	default:
		return language.English
	}
}

type ChartStyle uint8

const (
	ChartStyleBars ChartStyle = iota + 1
	ChartStylePies
)

var chartStyleNames = enumnames.NewMap(map[ChartStyle]string{
	ChartStyleBars: "bars",
	ChartStylePies: "pies",
})

func (style ChartStyle) IsValid() bool {
	return chartStyleNames.ContainsEnumValue(style)
}

func (style ChartStyle) String() string {
	return chartStyleNames.GetNameOrFallback(style, "INVALID_CHART_STYLE")
}

func (style ChartStyle) MarshalJSON() ([]byte, error) {
	return chartStyleNames.MarshalToNameJSON(style)
}

func (style *ChartStyle) UnmarshalJSON(bytes []byte) error {
	return chartStyleNames.UnmarshalFromNameJSON(bytes, style)
}

func (style *ChartStyle) UnmarshalText(text []byte) error {
	return chartStyleNames.UnmarshalFromNameJSON([]byte(strconv.Quote(string(text))), style)
}
