package weather

// WeatherCode describes a WMO weather interpretation code as reported
// by Open-Meteo, with the icons a dashboard renders for it.
type WeatherCode struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	DayIcon     string `json:"dayIcon"`
	NightIcon   string `json:"nightIcon"`
}

var weatherCodes = []WeatherCode{
	{Code: 0, Description: "Clear sky", Icon: "sun", DayIcon: "sun", NightIcon: "moon"},
	{Code: 1, Description: "Mainly clear", Icon: "cloud-sun", DayIcon: "cloud-sun", NightIcon: "cloud-moon"},
	{Code: 2, Description: "Partly cloudy", Icon: "cloud", DayIcon: "cloud-sun", NightIcon: "cloud-moon"},
	{Code: 3, Description: "Overcast", Icon: "cloud", DayIcon: "cloud", NightIcon: "cloud"},
	{Code: 45, Description: "Foggy", Icon: "cloud-fog", DayIcon: "cloud-fog", NightIcon: "cloud-fog"},
	{Code: 48, Description: "Depositing rime fog", Icon: "cloud-fog", DayIcon: "cloud-fog", NightIcon: "cloud-fog"},
	{Code: 51, Description: "Light drizzle", Icon: "cloud-drizzle", DayIcon: "cloud-drizzle", NightIcon: "cloud-drizzle"},
	{Code: 53, Description: "Moderate drizzle", Icon: "cloud-drizzle", DayIcon: "cloud-drizzle", NightIcon: "cloud-drizzle"},
	{Code: 55, Description: "Dense drizzle", Icon: "cloud-drizzle", DayIcon: "cloud-drizzle", NightIcon: "cloud-drizzle"},
	{Code: 56, Description: "Light freezing drizzle", Icon: "cloud-drizzle", DayIcon: "cloud-drizzle", NightIcon: "cloud-drizzle"},
	{Code: 57, Description: "Dense freezing drizzle", Icon: "cloud-drizzle", DayIcon: "cloud-drizzle", NightIcon: "cloud-drizzle"},
	{Code: 61, Description: "Slight rain", Icon: "cloud-rain", DayIcon: "cloud-rain", NightIcon: "cloud-rain"},
	{Code: 63, Description: "Moderate rain", Icon: "cloud-rain", DayIcon: "cloud-rain", NightIcon: "cloud-rain"},
	{Code: 65, Description: "Heavy rain", Icon: "cloud-rain", DayIcon: "cloud-rain", NightIcon: "cloud-rain"},
	{Code: 66, Description: "Light freezing rain", Icon: "cloud-rain", DayIcon: "cloud-rain", NightIcon: "cloud-rain"},
	{Code: 67, Description: "Heavy freezing rain", Icon: "cloud-rain", DayIcon: "cloud-rain", NightIcon: "cloud-rain"},
	{Code: 71, Description: "Slight snow", Icon: "cloud-snow", DayIcon: "cloud-snow", NightIcon: "cloud-snow"},
	{Code: 73, Description: "Moderate snow", Icon: "cloud-snow", DayIcon: "cloud-snow", NightIcon: "cloud-snow"},
	{Code: 75, Description: "Heavy snow", Icon: "cloud-snow", DayIcon: "cloud-snow", NightIcon: "cloud-snow"},
	{Code: 77, Description: "Snow grains", Icon: "cloud-snow", DayIcon: "cloud-snow", NightIcon: "cloud-snow"},
	{Code: 80, Description: "Slight rain showers", Icon: "cloud-rain", DayIcon: "cloud-rain", NightIcon: "cloud-rain"},
	{Code: 81, Description: "Moderate rain showers", Icon: "cloud-rain", DayIcon: "cloud-rain", NightIcon: "cloud-rain"},
	{Code: 82, Description: "Violent rain showers", Icon: "cloud-rain", DayIcon: "cloud-rain", NightIcon: "cloud-rain"},
	{Code: 85, Description: "Slight snow showers", Icon: "cloud-snow", DayIcon: "cloud-snow", NightIcon: "cloud-snow"},
	{Code: 86, Description: "Heavy snow showers", Icon: "cloud-snow", DayIcon: "cloud-snow", NightIcon: "cloud-snow"},
	{Code: 95, Description: "Thunderstorm", Icon: "cloud-lightning", DayIcon: "cloud-lightning", NightIcon: "cloud-lightning"},
	{Code: 96, Description: "Thunderstorm with slight hail", Icon: "cloud-lightning", DayIcon: "cloud-lightning", NightIcon: "cloud-lightning"},
	{Code: 99, Description: "Thunderstorm with heavy hail", Icon: "cloud-lightning", DayIcon: "cloud-lightning", NightIcon: "cloud-lightning"},
}

// WeatherCodes returns the full code table, for clients that render
// their own legend.
func WeatherCodes() []WeatherCode {
	out := make([]WeatherCode, len(weatherCodes))
	copy(out, weatherCodes)
	return out
}

// LookupWeatherCode resolves a WMO code to its description and icon,
// picking the day or night variant. Unknown codes map to a placeholder.
func LookupWeatherCode(code int, isDay bool) WeatherCode {
	for _, wc := range weatherCodes {
		if wc.Code == code {
			if isDay {
				wc.Icon = wc.DayIcon
			} else {
				wc.Icon = wc.NightIcon
			}
			return wc
		}
	}
	return WeatherCode{
		Code:        code,
		Description: "Unknown",
		Icon:        "help-circle",
		DayIcon:     "help-circle",
		NightIcon:   "help-circle",
	}
}
