package config

import (
	"log"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/pustakalaya/intake-service/internal/storage"
	"github.com/pustakalaya/intake-service/pkg/auth"
	"github.com/pustakalaya/intake-service/pkg/kafka"
	"github.com/pustakalaya/intake-service/pkg/logger"
	"github.com/pustakalaya/intake-service/pkg/postgres"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"INTAKE_HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"INTAKE_HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ"`
	WriteTimeout time.Duration
}

type Config struct {
	Server   HTTPServer     `yaml:"server"`
	Database postgres.DB    `yaml:"db"`
	Kafka    kafka.Config   `yaml:"kafka"`
	Auth     auth.Config    `yaml:"auth"`
	Storage  storage.Config `yaml:"storage"`
	Log      logger.Log     `yaml:"log"`
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = &config
	})

	return cfg
}
