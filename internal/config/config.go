package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port           string        `envconfig:"PORT" default:"8080"`
	MySQLDSN       string        `envconfig:"MYSQL_DSN" default:"orders:orders@tcp(localhost:3306)/orders?parseTime=true"`
	RedisAddr      string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword  string        `envconfig:"REDIS_PASSWORD" default:""`
	CatalogURL     string        `envconfig:"CATALOG_URL" default:"http://localhost:8081"`
	CatalogTimeout time.Duration `envconfig:"CATALOG_TIMEOUT" default:"5s"`
	KafkaBrokers   string        `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	KafkaTopic     string        `envconfig:"KAFKA_TOPIC" default:"order-events"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// BrokerList splits the comma-separated KAFKA_BROKERS value.
func (c *Config) BrokerList() []string {
	parts := strings.Split(c.KafkaBrokers, ",")
	brokers := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			brokers = append(brokers, trimmed)
		}
	}
	return brokers
}
