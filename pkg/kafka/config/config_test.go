package kafka_config

import (
	"strings"
	"testing"
)

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv(EnvKafkaBrokers, "kafka-1:9092, kafka-2:9092")
	t.Setenv(EnvKafkaProducerCompression, "lz4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Brokers) != 2 || cfg.Brokers[1] != "kafka-2:9092" {
		t.Errorf("unexpected brokers %v", cfg.Brokers)
	}
	if cfg.ProducerCompression != "lz4" {
		t.Errorf("expected lz4 compression, got %s", cfg.ProducerCompression)
	}
	if cfg.ClientID != DefaultKafkaClientID {
		t.Errorf("expected default client id, got %s", cfg.ClientID)
	}
	if cfg.ProducerMaxAttempts != DefaultProducerMaxAttempts {
		t.Errorf("expected default max attempts, got %d", cfg.ProducerMaxAttempts)
	}
}

func TestValidate_AggregatesErrors(t *testing.T) {
	cfg := &Config{
		Brokers:              []string{""},
		ProducerMaxAttempts:  0,
		ProducerBatchTimeout: 0,
		ProducerRequireAcks:  2,
		ProducerCompression:  "brotli",
		ProducerAsync:        true,
		EnableMiddleware:     true,
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation to fail")
	}
	for _, want := range []string{"Broker 0", "ClientID", "ProducerMaxAttempts", "ProducerBatchTimeout", "ProducerWriteTimeout", "ProducerRequireAcks", "ProducerCompression", "ProducerAsync"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error to mention %s, got %s", want, err)
		}
	}
}
