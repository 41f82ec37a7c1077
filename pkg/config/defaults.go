package config

import "time"

const (
	StorageMemory = "memory"
	StorageMongo  = "mongo"
)

const (
	DefaultPort      = "8080"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultTimeZone        = "UTC"
	DefaultServiceDuration = 2 * time.Hour
	DefaultSlotStep        = 30 * time.Minute

	DefaultStorageBackend    = StorageMemory
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "mizdooni"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultEventsEnabled = false
	DefaultEventsTopic   = "mizdooni.reservations"
	DefaultEventsDLQ     = "mizdooni.reservations.dlq"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)
