package config

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v4"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Redis    RedisConfig    `yaml:"redis"`
	Worker   WorkerConfig   `yaml:"worker"`

	UPS      UPSConfig      `yaml:"ups"`
	FedEx    FedExConfig    `yaml:"fedex"`
	Priority PriorityConfig `yaml:"priority"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DBName   string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

type KafkaConfig struct {
	Host                           string `yaml:"host"`
	Port                           int    `yaml:"port"`
	ShipmentStatusUpdatedTopicName string `yaml:"shipment_status_updated_topic_name"`
}

type RedisConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type WorkerConfig struct {
	HTTPAddr string `yaml:"http_addr"`

	SweepIntervalSeconds int `yaml:"sweep_interval_seconds"`

	// Сколько дней перепроверяем записи Priority после "DN Not Found".
	IncidentFollowupDays int `yaml:"incident_followup_days"`

	CurrentStatusTTLSeconds int `yaml:"current_status_ttl_seconds"`

	// use_fake_carriers заменяет все интеграции на детерминированные
	// заглушки (локальная разработка без ключей).
	UseFakeCarriers bool `yaml:"use_fake_carriers"`
}

type UPSConfig struct {
	ServerURL       string `yaml:"server_url"`
	ByReferencePath string `yaml:"by_reference_path"`
	ByTrackingPath  string `yaml:"by_tracking_path"`
	TokenURL        string `yaml:"token_url"`

	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	MerchantID   string `yaml:"merchant_id"`

	AppName       string `yaml:"app_name"`
	Locale        string `yaml:"locale"`
	RefNumberType string `yaml:"ref_number_type"`

	LookbackDays      int `yaml:"lookback_days"`
	SweepLookbackDays int `yaml:"sweep_lookback_days"`
}

type FedExConfig struct {
	ServerURL       string `yaml:"server_url"`
	ByReferencePath string `yaml:"by_reference_path"`
	ByTrackingPath  string `yaml:"by_tracking_path"`
	TokenURL        string `yaml:"token_url"`

	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`

	ReferenceType string `yaml:"reference_type"`

	// account_numbers maps a shipment source to the FedEx account used for
	// by-reference lookups of that source's shipments.
	AccountNumbers map[string]string `yaml:"account_numbers"`

	Locale string `yaml:"locale"`

	LookbackDays      int `yaml:"lookback_days"`
	SweepLookbackDays int `yaml:"sweep_lookback_days"`
}

type PriorityConfig struct {
	BaseURL      string `yaml:"base_url"`
	TrackingPath string `yaml:"tracking_path"`

	APIKey string `yaml:"api_key"`

	IdentifierType string `yaml:"identifier_type"`

	SweepLookbackDays int `yaml:"sweep_lookback_days"`
}

func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	return &config, nil
}
