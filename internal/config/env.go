package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type BaseEnv struct {
	Env      string `envconfig:"ENV" default:"local"`
	HTTPHost string `envconfig:"HTTP_HOST" default:""`
	HTTPPort string `envconfig:"PORT" default:"8000"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

const (
	StoreTypeMongo = "mongo"
	StoreTypeLocal = "local"
	StoreTypeS3    = "s3"
)

type DatabaseEnv struct {
	StoreType      string        `envconfig:"STORE_TYPE" default:"mongo"`
	URL            string        `envconfig:"DATABASE_URL"`
	Name           string        `envconfig:"DATABASE_NAME" default:"portfolio"`
	ConnectTimeout time.Duration `envconfig:"DATABASE_CONNECT_TIMEOUT" default:"5s"`
}

// StorageEnv configures the blob storage behind the local and s3 store types.
type StorageEnv struct {
	BaseDir  string `envconfig:"STORAGE_BASE_DIR" default:".portfolio/data"`
	S3Bucket string `envconfig:"S3_BUCKET"`
	S3Prefix string `envconfig:"S3_PREFIX" default:"portfolio/"`
	S3Region string `envconfig:"S3_REGION" default:"ap-northeast-1"`
}

type Env struct {
	BaseEnv
	DatabaseEnv
	StorageEnv

	// DatabaseNameSet records whether DATABASE_NAME came from the environment
	// rather than the default.
	DatabaseNameSet bool `ignored:"true"`
}

// namespace prefixes every variable; the bare names are accepted as well,
// e.g. PORTFOLIO_PORT or PORT.
const namespace = "PORTFOLIO"

// LoadEnv reads a .env file from the working directory when present and then
// the process environment.
func LoadEnv() (*Env, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	var env Env
	if err := envconfig.Process(namespace, &env); err != nil {
		return nil, fmt.Errorf("failed to load env: %w", err)
	}
	if err := env.validate(); err != nil {
		return nil, err
	}
	env.DatabaseNameSet = lookupEnv("DATABASE_NAME")
	return &env, nil
}

func (e *Env) validate() error {
	switch e.StoreType {
	case StoreTypeMongo, StoreTypeLocal:
	case StoreTypeS3:
		if e.S3Bucket == "" {
			return errors.New("S3_BUCKET is required when STORE_TYPE=s3")
		}
	default:
		return fmt.Errorf("unknown STORE_TYPE %q", e.StoreType)
	}
	return nil
}

func (e *BaseEnv) SlogLevel() slog.Level {
	if e == nil {
		return slog.LevelInfo
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(e.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// DatabaseURLSet reports whether a connection string is configured.
func (e *DatabaseEnv) DatabaseURLSet() bool {
	return e != nil && e.URL != ""
}

func DatabaseEnvFromEnv(env *Env) *DatabaseEnv {
	return &env.DatabaseEnv
}

func StorageEnvFromEnv(env *Env) *StorageEnv {
	return &env.StorageEnv
}
