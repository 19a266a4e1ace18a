package geo

type weatherCondition struct {
	description string
	icon        string
}

// WMO weather interpretation codes as reported by Open-Meteo.
var weatherConditions = map[int]weatherCondition{
	0:  {"Clear sky", "☀️"},
	1:  {"Mainly clear", "🌤️"},
	2:  {"Partly cloudy", "⛅"},
	3:  {"Overcast", "☁️"},
	45: {"Foggy", "🌫️"},
	48: {"Depositing rime fog", "🌫️"},
	51: {"Light drizzle", "🌦️"},
	53: {"Moderate drizzle", "🌦️"},
	55: {"Dense drizzle", "🌦️"},
	56: {"Light freezing drizzle", "🌨️"},
	57: {"Dense freezing drizzle", "🌨️"},
	61: {"Slight rain", "🌧️"},
	63: {"Moderate rain", "🌧️"},
	65: {"Heavy rain", "🌧️"},
	66: {"Light freezing rain", "🌨️"},
	67: {"Heavy freezing rain", "🌨️"},
	71: {"Slight snow", "❄️"},
	73: {"Moderate snow", "❄️"},
	75: {"Heavy snow", "❄️"},
	77: {"Snow grains", "❄️"},
	80: {"Slight rain showers", "🌦️"},
	81: {"Moderate rain showers", "🌦️"},
	82: {"Violent rain showers", "🌦️"},
	85: {"Slight snow showers", "🌨️"},
	86: {"Heavy snow showers", "🌨️"},
	95: {"Thunderstorm", "⛈️"},
	96: {"Thunderstorm with slight hail", "⛈️"},
	99: {"Thunderstorm with heavy hail", "⛈️"},
}

var unknownCondition = weatherCondition{"Unknown", "❓"}

func conditionFor(code int) weatherCondition {
	if condition, ok := weatherConditions[code]; ok {
		return condition
	}
	return unknownCondition
}
