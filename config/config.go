package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration, shared by both the
// order service and the notification service.
type Config struct {
	DatabasePath string `yaml:"database_path"`

	Orders    WebConfig       `yaml:"orders"`
	Notify    NotifyConfig    `yaml:"notify"`
	Messaging MessagingConfig `yaml:"messaging"`
}

// WebConfig defines an HTTP listener.
type WebConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// NotifyConfig defines the notification service settings.
type NotifyConfig struct {
	Web WebConfig `yaml:"web"`

	// AuditDatabasePath is the notification-side audit database. Empty
	// disables the audit log.
	AuditDatabasePath string `yaml:"audit_database_path"`

	// StreamIdleTimeout closes a push connection that received nothing
	// for this long.
	StreamIdleTimeout time.Duration `yaml:"stream_idle_timeout"`
}

// MessagingConfig defines the event broker backend.
type MessagingConfig struct {
	Backend     string      `yaml:"backend"` // "kafka" or "mqtt"
	Kafka       KafkaConfig `yaml:"kafka"`
	MQTT        MQTTConfig  `yaml:"mqtt"`
	EventsTopic string      `yaml:"events_topic"`
}

// KafkaConfig defines Kafka broker settings.
type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	GroupID string   `yaml:"group_id"`
}

// MQTTConfig defines MQTT broker settings.
type MQTTConfig struct {
	Broker   string `yaml:"broker"`
	Port     int    `yaml:"port"`
	ClientID string `yaml:"client_id"`
}

// Defaults returns a Config with sane defaults.
func Defaults() *Config {
	return &Config{
		DatabasePath: "ordertrack.db",
		Orders: WebConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Notify: NotifyConfig{
			Web: WebConfig{
				Host: "0.0.0.0",
				Port: 8081,
			},
			AuditDatabasePath: "notifications.db",
			StreamIdleTimeout: 600 * time.Second,
		},
		Messaging: MessagingConfig{
			Backend:     "kafka",
			EventsTopic: "orders.v1.order-events",
			Kafka: KafkaConfig{
				Brokers: []string{"localhost:9092"},
				GroupID: "notify-service",
			},
			MQTT: MQTTConfig{
				Broker: "localhost",
				Port:   1883,
			},
		},
	}
}

// Load reads a YAML config file. If the file doesn't exist, defaults are used.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
