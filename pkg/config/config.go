package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "casamar"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv   = "CASAMAR_APP_ENV"
	EnvPort     = "CASAMAR_APP_PORT"
	EnvDBDSN    = "CASAMAR_DB_DSN"
	EnvDBHost   = "CASAMAR_DB_HOST"
	EnvDBUser   = "CASAMAR_DB_USER"
	EnvDBName   = "CASAMAR_DB_NAME"
	EnvRedisURL = "CASAMAR_REDIS_URL"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Sheets       SheetsConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CASAMAR_APP_ENV" required:"true"`
	Port         string `envconfig:"CASAMAR_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CASAMAR_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CASAMAR_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"CASAMAR_DB_DSN"`

	Host     string `envconfig:"CASAMAR_DB_HOST"`
	Port     int    `envconfig:"CASAMAR_DB_PORT" default:"5432"`
	User     string `envconfig:"CASAMAR_DB_USER"`
	Password string `envconfig:"CASAMAR_DB_PASSWORD"`
	Name     string `envconfig:"CASAMAR_DB_NAME"`
	SSLMode  string `envconfig:"CASAMAR_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CASAMAR_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CASAMAR_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CASAMAR_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CASAMAR_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// RedisConfig is optional: when URL and Address are both empty the API runs
// without the idempotency replay cache.
type RedisConfig struct {
	URL          string        `envconfig:"CASAMAR_REDIS_URL"`
	Address      string        `envconfig:"CASAMAR_REDIS_ADDR"`
	Password     string        `envconfig:"CASAMAR_REDIS_PASSWORD"`
	DB           int           `envconfig:"CASAMAR_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CASAMAR_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CASAMAR_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CASAMAR_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CASAMAR_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CASAMAR_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

// SheetsConfig drives the best-effort booking export. Export is disabled when
// the sheet id is empty.
type SheetsConfig struct {
	CredentialsFile string        `envconfig:"CASAMAR_SHEETS_CREDENTIALS_FILE"`
	SpreadsheetID   string        `envconfig:"CASAMAR_SHEETS_SPREADSHEET_ID"`
	Range           string        `envconfig:"CASAMAR_SHEETS_RANGE" default:"Sheet1!A:H"`
	Timeout         time.Duration `envconfig:"CASAMAR_SHEETS_TIMEOUT" default:"10s"`
}

func (s SheetsConfig) Enabled() bool {
	return s.SpreadsheetID != ""
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CASAMAR_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
