// Package httpapi exposes the dashboard store over HTTP. It is a thin
// presentation layer: every state change goes through the store's
// operations and responses are read back from the store afterwards.
package httpapi

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, st *store.Store) {
	v1 := app.Group("/api/v1")

	v1.Post("/location/search", func(c *fiber.Ctx) error {
		var q searchQuery
		q.Query = c.Query("q")
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "query parameter 'q' is required")
		}

		st.SearchAndSetLocation(c.UserContext(), q.Query)
		if msg := st.Err(); msg != "" {
			return flowError(msg)
		}
		return c.JSON(currentWeatherPayload(st))
	})

	v1.Post("/location/device", func(c *fiber.Ctx) error {
		st.UseDeviceLocation(c.UserContext())
		if msg := st.Err(); msg != "" {
			return flowError(msg)
		}
		return c.JSON(currentWeatherPayload(st))
	})

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		snapshot, ok := st.CurrentWeather()
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "no weather data loaded yet")
		}
		return c.JSON(snapshotPayload(snapshot, st.Preferences()))
	})

	v1.Get("/weather/daily", func(c *fiber.Ctx) error {
		snapshot, ok := st.CurrentWeather()
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "no weather data loaded yet")
		}
		return c.JSON(fiber.Map{
			"location": snapshot.Location,
			"daily":    weather.DailySummaries(snapshot.Hourly),
		})
	})

	v1.Get("/weather/historical", func(c *fiber.Ctx) error {
		st.EnsureHistoricalWeather(c.UserContext())

		snapshot, ok := st.HistoricalWeather()
		if !ok {
			if msg := st.Err(); msg != "" {
				return flowError(msg)
			}
			return fiber.NewError(fiber.StatusNotFound, "no historical weather available")
		}
		return c.JSON(fiber.Map{
			"location": snapshot.Location,
			"daily":    weather.DailySummaries(snapshot.Hourly),
		})
	})

	v1.Get("/weather/codes", func(c *fiber.Ctx) error {
		return c.JSON(weather.WeatherCodes())
	})

	v1.Get("/locations/recent", func(c *fiber.Ctx) error {
		return c.JSON(st.RecentLocations())
	})

	v1.Delete("/locations/recent/:id", func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid location id")
		}
		st.RemoveRecentLocation(id)
		return c.JSON(st.RecentLocations())
	})

	v1.Get("/preferences", func(c *fiber.Ctx) error {
		return c.JSON(st.Preferences())
	})

	v1.Put("/preferences", func(c *fiber.Ctx) error {
		var body preferencesBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		st.SetTemperatureUnit(weather.TemperatureUnit(body.TemperatureUnit))
		st.SetWindSpeedUnit(weather.WindSpeedUnit(body.WindSpeedUnit))
		st.SetTheme(weather.Theme(body.Theme))
		return c.JSON(st.Preferences())
	})
}

type searchQuery struct {
	Query string `validate:"required,min=1"`
}

type preferencesBody struct {
	TemperatureUnit string `json:"temperatureUnit" validate:"required,oneof=celsius fahrenheit"`
	WindSpeedUnit   string `json:"windSpeedUnit" validate:"required,oneof=kmh mph"`
	Theme           string `json:"theme" validate:"required,oneof=light dark auto"`
}

// flowError maps a recorded flow failure to an HTTP status.
func flowError(msg string) error {
	if msg == store.ErrLocationNotFound.Error() {
		return fiber.NewError(fiber.StatusNotFound, msg)
	}
	return fiber.NewError(fiber.StatusBadGateway, msg)
}

func currentWeatherPayload(st *store.Store) fiber.Map {
	payload := fiber.Map{
		"recentLocations": st.RecentLocations(),
	}
	if loc, ok := st.CurrentLocation(); ok {
		payload["location"] = loc
	}
	if snapshot, ok := st.CurrentWeather(); ok {
		payload["weather"] = snapshotPayload(snapshot, st.Preferences())
	}
	return payload
}

// snapshotPayload decorates a snapshot with values converted to the
// user's display units and the observation time rendered in the
// location's timezone.
func snapshotPayload(snapshot weather.WeatherSnapshot, prefs weather.Preferences) fiber.Map {
	return fiber.Map{
		"current":  snapshot.Current,
		"hourly":   snapshot.Hourly,
		"location": snapshot.Location,
		"display": fiber.Map{
			"temperature":     weather.ConvertTemperature(snapshot.Current.Temperature, prefs.TemperatureUnit),
			"temperatureUnit": prefs.TemperatureUnit,
			"windSpeed":       weather.ConvertWindSpeed(snapshot.Current.WindSpeed, prefs.WindSpeedUnit),
			"windSpeedUnit":   prefs.WindSpeedUnit,
			"localTime":       weather.FormatLocalTime(snapshot.Current.Time, snapshot.Location.Timezone),
		},
	}
}
