package dashboard

// Labels are the display texts of a dashboard in one language.
type Labels struct {
	DateRange string
	Header    string

	DailySubheader   string
	CasualMetric     string
	RegisteredMetric string
	TotalMetric      string

	MonthlySubheader           string
	WeatherSubheader           string
	WorkingDayHolidaySubheader string
	WorkingDayTitle            string
	HolidayTitle               string
}

var englishLabels = Labels{
	DateRange:                  "Time Span",
	Header:                     "Bike Rental Dashboard",
	DailySubheader:             "Daily Rentals",
	CasualMetric:               "Casual User",
	RegisteredMetric:           "Registered User",
	TotalMetric:                "Total User",
	MonthlySubheader:           "Monthly",
	WeatherSubheader:           "Weatherly",
	WorkingDayHolidaySubheader: "Workingday and Holiday",
	WorkingDayTitle:            "Number of Rents based on Working Day",
	HolidayTitle:               "Number of Rents based on Holiday",
}

// The chart titles were never translated, so they are the same as in English.
var indonesianLabels = Labels{
	DateRange:                  "Rentang Waktu",
	Header:                     "Tampilan Data Penyewa Sepeda",
	DailySubheader:             "Penyewa Harian",
	CasualMetric:               "Penyewa Biasa",
	RegisteredMetric:           "Penyewa Teregistrasi",
	TotalMetric:                "Total Jumlah Penyewa",
	MonthlySubheader:           "Penyewa Bulanan",
	WeatherSubheader:           "Pengaruh Cuaca Terhadap Penyewaan",
	WorkingDayHolidaySubheader: "Penyewaan Mingguan, Pada Hari Kerja, dan Pada Hari Libur",
	WorkingDayTitle:            englishLabels.WorkingDayTitle,
	HolidayTitle:               englishLabels.HolidayTitle,
}

// LabelsFor falls back to English for an invalid locale.
func LabelsFor(locale Locale) Labels {
	if locale == LocaleIndonesian {
		return indonesianLabels
	}
	return englishLabels
}
