package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Cart         CartConfig
	Checkout     CheckoutConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(&cfg.FeatureFlags); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MINITHAI_APP_ENV" required:"true"`
	Port         string `envconfig:"MINITHAI_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MINITHAI_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MINITHAI_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"MINITHAI_DB_DSN"`
	Driver string `envconfig:"MINITHAI_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MINITHAI_DB_HOST"`
	LegacyPort     int    `envconfig:"MINITHAI_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MINITHAI_DB_USER"`
	LegacyPassword string `envconfig:"MINITHAI_DB_PASSWORD"`
	LegacyName     string `envconfig:"MINITHAI_DB_NAME"`
	LegacySSLMode  string `envconfig:"MINITHAI_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MINITHAI_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MINITHAI_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MINITHAI_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MINITHAI_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MINITHAI_REDIS_URL" required:"true"`
	Address      string        `envconfig:"MINITHAI_REDIS_ADDR"`
	Password     string        `envconfig:"MINITHAI_REDIS_PASSWORD"`
	DB           int           `envconfig:"MINITHAI_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MINITHAI_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MINITHAI_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MINITHAI_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MINITHAI_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MINITHAI_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CartConfig tunes the guest-cart store and the badge reconciler.
type CartConfig struct {
	BadgePollInterval  time.Duration `envconfig:"MINITHAI_CART_BADGE_POLL_INTERVAL" default:"2s"`
	BadgeMountDebounce time.Duration `envconfig:"MINITHAI_CART_BADGE_MOUNT_DEBOUNCE" default:"100ms"`
	BadgeHighlightFor  time.Duration `envconfig:"MINITHAI_CART_BADGE_HIGHLIGHT_FOR" default:"300ms"`
	SessionCookie      string        `envconfig:"MINITHAI_CART_SESSION_COOKIE" default:"mt_session"`
	SessionIdleAfter   time.Duration `envconfig:"MINITHAI_CART_SESSION_IDLE_AFTER" default:"30m"`
	SessionSweepEvery  time.Duration `envconfig:"MINITHAI_CART_SESSION_SWEEP_EVERY" default:"5m"`
}

type CheckoutConfig struct {
	DeliveryFee     string `envconfig:"MINITHAI_CHECKOUT_DELIVERY_FEE" default:"5.00"`
	FreeDeliveryMin string `envconfig:"MINITHAI_CHECKOUT_FREE_DELIVERY_MIN" default:"50.00"`
}

type CORSConfig struct {
	Origins []string `envconfig:"MINITHAI_CORS_ORIGINS" default:"http://localhost:3000"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool   `envconfig:"MINITHAI_USE_SQLITE" default:"false"`
	SQLitePath  string `envconfig:"MINITHAI_SQLITE_PATH" default:"minithai.db"`
	AutoMigrate bool   `envconfig:"MINITHAI_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN(flags *FeatureFlagsConfig) error {
	if flags != nil && flags.UseSQLite {
		db.Driver = DriverSQLite
		if db.DSN == "" {
			db.DSN = flags.SQLitePath
		}
		return nil
	}

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
