package weather

import "math"

// ConvertTemperature maps a canonical Celsius value to a rounded display
// value in the requested unit. NaN and infinities propagate unchanged
// through math.Round.
func ConvertTemperature(celsius float64, unit TemperatureUnit) float64 {
	if unit == UnitFahrenheit {
		return math.Round(celsius*9/5 + 32)
	}
	return math.Round(celsius)
}

// ConvertWindSpeed maps a canonical km/h value to a rounded display
// value in the requested unit.
func ConvertWindSpeed(kmh float64, unit WindSpeedUnit) float64 {
	if unit == UnitMph {
		return math.Round(kmh * 0.621371)
	}
	return math.Round(kmh)
}
