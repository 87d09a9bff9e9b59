package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	Service   ServiceConfig
	DB        DBConfig
	Redis     RedisConfig
	Cart      CartConfig
	Retention RetentionConfig
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
	Env          string `envconfig:"TILEBILL_APP_ENV" required:"true"`
	Port         string `envconfig:"TILEBILL_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TILEBILL_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TILEBILL_LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"TILEBILL_AUTO_MIGRATE" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"TILEBILL_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"TILEBILL_DB_DSN"`
	Driver string `envconfig:"TILEBILL_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TILEBILL_DB_HOST"`
	LegacyPort     int    `envconfig:"TILEBILL_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TILEBILL_DB_USER"`
	LegacyPassword string `envconfig:"TILEBILL_DB_PASSWORD"`
	LegacyName     string `envconfig:"TILEBILL_DB_NAME"`
	LegacySSLMode  string `envconfig:"TILEBILL_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TILEBILL_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TILEBILL_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TILEBILL_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TILEBILL_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TILEBILL_REDIS_URL" required:"true"`
	Address      string        `envconfig:"TILEBILL_REDIS_ADDR"`
	Password     string        `envconfig:"TILEBILL_REDIS_PASSWORD"`
	DB           int           `envconfig:"TILEBILL_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TILEBILL_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TILEBILL_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TILEBILL_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TILEBILL_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TILEBILL_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CartConfig bounds the transient session cart.
type CartConfig struct {
	TTL      time.Duration `envconfig:"TILEBILL_CART_TTL" default:"24h"`
	MaxItems int           `envconfig:"TILEBILL_CART_MAX_ITEMS" default:"100"`
}

// RetentionConfig drives the bill retention sweep.
type RetentionConfig struct {
	BillDays      int           `envconfig:"TILEBILL_BILL_RETENTION_DAYS" default:"30"`
	SweepInterval time.Duration `envconfig:"TILEBILL_RETENTION_SWEEP_INTERVAL" default:"24h"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
