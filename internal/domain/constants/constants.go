// Package constants holds identifiers shared across layers.
package constants

const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

// Pub/Sub providers
const (
	PubSubProviderInline = "inline"
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Rate limiter stores
const (
	RateLimitStoreMemory = "memory"
	RateLimitStoreRedis  = "redis"
)

// Telemetry exporters
const (
	TelemetryExporterNone   = "none"
	TelemetryExporterStdout = "stdout"
	TelemetryExporterOTLP   = "otlp"
)

const (
	// CurrencyEUR is the only currency the shop sells in.
	CurrencyEUR = "EUR"

	// ShopName is used as mail sender name and in subjects.
	ShopName = "Morgenstar"
)
