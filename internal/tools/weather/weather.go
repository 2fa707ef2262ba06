// Package weather provides simulated, deterministic-per-day weather tools.
//
// Readings are pseudo-random but seeded from the normalised location and
// the calendar day, so repeated calls for one location on one day agree.
package weather

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	internalmcp "github.com/wagiedev/toolkit-mcp-go/internal/mcp"
	"github.com/wagiedev/toolkit-mcp-go/internal/models"
)

// Units.
const (
	Celsius    = "celsius"
	Fahrenheit = "fahrenheit"
)

// Forecast length bounds.
const (
	MinForecastDays     = 1
	MaxForecastDays     = 7
	DefaultForecastDays = 3
)

// baseTemperatures holds known city base temperatures in celsius.
var baseTemperatures = map[string]float64{
	"london":        12,
	"paris":         14,
	"berlin":        11,
	"new york":      13,
	"san francisco": 16,
	"tokyo":         17,
	"sydney":        22,
	"moscow":        6,
	"dubai":         32,
	"cairo":         27,
	"singapore":     30,
	"reykjavik":     4,
}

var conditions = []string{
	"Sunny", "Partly Cloudy", "Cloudy", "Overcast", "Light Rain", "Rain", "Thunderstorms", "Fog", "Windy", "Snow",
}

var errEmptyLocation = errors.New("location must not be empty")

// Service generates weather readings. The zero value is not usable; call New.
type Service struct {
	now func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a Service using the wall clock unless overridden.
func New(opts ...Option) *Service {
	s := &Service{now: time.Now}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Current returns today's reading for location.
func (s *Service) Current(location, unit string) (models.WeatherInfo, error) {
	unit, err := normalizeUnit(unit)
	if err != nil {
		return models.WeatherInfo{}, err
	}

	loc := strings.TrimSpace(location)
	if loc == "" {
		return models.WeatherInfo{}, errEmptyLocation
	}

	return reading(loc, startOfDay(s.now()), unit), nil
}

// Forecast returns one reading per day, starting tomorrow. days is clamped
// to [MinForecastDays, MaxForecastDays].
func (s *Service) Forecast(location string, days int, unit string) ([]models.WeatherInfo, error) {
	unit, err := normalizeUnit(unit)
	if err != nil {
		return nil, err
	}

	loc := strings.TrimSpace(location)
	if loc == "" {
		return nil, errEmptyLocation
	}

	days = min(max(days, MinForecastDays), MaxForecastDays)
	today := startOfDay(s.now())

	out := make([]models.WeatherInfo, 0, days)
	for i := 1; i <= days; i++ {
		out = append(out, reading(loc, today.AddDate(0, 0, i), unit))
	}

	return out, nil
}

// reading draws a deterministic reading for location on date.
func reading(location string, date time.Time, unit string) models.WeatherInfo {
	key := strings.ToLower(location)
	r := rand.New(rand.NewPCG(seed(key), uint64(date.YearDay())))

	base, known := baseTemperatures[key]
	if !known {
		base = 5 + r.Float64()*25
	}

	temp := base + r.Float64()*10 - 5
	if unit == Fahrenheit {
		temp = temp*9/5 + 32
	}

	return models.WeatherInfo{
		Location:    location,
		Temperature: round1(temp),
		Unit:        unit,
		Condition:   conditions[r.IntN(len(conditions))],
		Humidity:    30 + r.IntN(61),
		WindSpeed:   round1(r.Float64() * 40),
		Date:        date,
	}
}

func seed(location string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(location))

	return h.Sum64()
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func normalizeUnit(unit string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "", "c", Celsius:
		return Celsius, nil
	case "f", Fahrenheit:
		return Fahrenheit, nil
	default:
		return "", fmt.Errorf("unsupported unit %q: use %s or %s", unit, Celsius, Fahrenheit)
	}
}

// Register adds the weather tools to reg.
func Register(reg *internalmcp.Registry, svc *Service) error {
	annotations := &mcp.ToolAnnotations{ReadOnlyHint: true}

	if err := reg.Register(internalmcp.Descriptor{
		Name:        "get_current_weather",
		Description: "Get the current weather for a location",
		Parameters: []internalmcp.ParameterSpec{
			internalmcp.Required("location", internalmcp.KindString, "City or place name"),
			internalmcp.Optional("unit", internalmcp.KindString, Celsius, "Temperature unit: celsius or fahrenheit"),
		},
		Annotations: annotations,
	}, func(_ context.Context, args internalmcp.Args) (any, error) {
		return svc.Current(args.String("location"), args.String("unit"))
	}); err != nil {
		return err
	}

	return reg.Register(internalmcp.Descriptor{
		Name:        "get_weather_forecast",
		Description: fmt.Sprintf("Get a daily weather forecast for a location (%d to %d days)", MinForecastDays, MaxForecastDays),
		Parameters: []internalmcp.ParameterSpec{
			internalmcp.Required("location", internalmcp.KindString, "City or place name"),
			internalmcp.Optional("days", internalmcp.KindInteger, DefaultForecastDays, "Number of days to forecast"),
			internalmcp.Optional("unit", internalmcp.KindString, Celsius, "Temperature unit: celsius or fahrenheit"),
		},
		Annotations: annotations,
	}, func(_ context.Context, args internalmcp.Args) (any, error) {
		return svc.Forecast(args.String("location"), clampInt(args.Int("days")), args.String("unit"))
	})
}

func clampInt(v int64) int {
	return int(min(max(v, MinForecastDays), MaxForecastDays))
}
