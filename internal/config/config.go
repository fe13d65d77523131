package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// GeocodingConfig holds the geocoding provider settings.
type GeocodingConfig struct {
	BaseURL        string
	UserAgent      string
	TimeoutSeconds int
}

// RoutingConfig holds the routing provider settings.
type RoutingConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// RetryConfig holds the retry policy for outbound provider calls.
type RetryConfig struct {
	MaxAttempts int
	IntervalMs  int
}

// FareConfig holds the fare tunables.
type FareConfig struct {
	BaseFare       float64
	PerKm          float64
	LargeSurcharge float64
	PetFee         float64
}

// KafkaConfig holds the event broker settings.
type KafkaConfig struct {
	Enabled bool
	Brokers []string
}

// ServiceConfig holds all configuration for the trips service.
type ServiceConfig struct {
	Port         string
	AppEnv       string
	AllowOrigins []string
	Geocoding    GeocodingConfig
	Routing      RoutingConfig
	Retry        RetryConfig
	Fare         FareConfig
	Kafka        KafkaConfig
}

// Load reads configuration from TRIPS_-prefixed environment variables with
// documented defaults for every knob.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("TRIPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", ":8080")
	v.SetDefault("app_env", "development")
	v.SetDefault("cors_allow_origins", "")

	v.SetDefault("geocoding.base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("geocoding.user_agent", "GuberTrips/1.0")
	v.SetDefault("geocoding.timeout_seconds", 10)

	v.SetDefault("routing.base_url", "https://router.project-osrm.org")
	v.SetDefault("routing.timeout_seconds", 10)

	v.SetDefault("retry.max_attempts", 3)
	v.SetDefault("retry.interval_ms", 200)

	v.SetDefault("fare.base_fare", 4.25)
	v.SetDefault("fare.per_km", 1.70)
	v.SetDefault("fare.large_surcharge", 0.35)
	v.SetDefault("fare.pet_fee", 7.50)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", "localhost:9092")

	return &ServiceConfig{
		Port:         v.GetString("port"),
		AppEnv:       v.GetString("app_env"),
		AllowOrigins: splitList(v.GetString("cors_allow_origins")),
		Geocoding: GeocodingConfig{
			BaseURL:        strings.TrimRight(v.GetString("geocoding.base_url"), "/"),
			UserAgent:      v.GetString("geocoding.user_agent"),
			TimeoutSeconds: v.GetInt("geocoding.timeout_seconds"),
		},
		Routing: RoutingConfig{
			BaseURL:        strings.TrimRight(v.GetString("routing.base_url"), "/"),
			TimeoutSeconds: v.GetInt("routing.timeout_seconds"),
		},
		Retry: RetryConfig{
			MaxAttempts: v.GetInt("retry.max_attempts"),
			IntervalMs:  v.GetInt("retry.interval_ms"),
		},
		Fare: FareConfig{
			BaseFare:       v.GetFloat64("fare.base_fare"),
			PerKm:          v.GetFloat64("fare.per_km"),
			LargeSurcharge: v.GetFloat64("fare.large_surcharge"),
			PetFee:         v.GetFloat64("fare.pet_fee"),
		},
		Kafka: KafkaConfig{
			Enabled: v.GetBool("kafka.enabled"),
			Brokers: splitList(v.GetString("kafka.brokers")),
		},
	}, nil
}

// RetryInterval returns the retry interval as a duration.
func (c RetryConfig) RetryInterval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
