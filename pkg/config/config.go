package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "slicehaus"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "SLICEHAUS_DB_DSN"
	EnvDBHost = "SLICEHAUS_DB_HOST"
	EnvDBUser = "SLICEHAUS_DB_USER"
	EnvDBName = "SLICEHAUS_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Session      SessionConfig
	Pricing      PricingConfig
	Cart         CartConfig
	CORS         CORSConfig
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
	Env          string `envconfig:"SLICEHAUS_APP_ENV" required:"true"`
	Port         string `envconfig:"SLICEHAUS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SLICEHAUS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SLICEHAUS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SLICEHAUS_DB_DSN"`
	Driver string `envconfig:"SLICEHAUS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SLICEHAUS_DB_HOST"`
	LegacyPort     int    `envconfig:"SLICEHAUS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SLICEHAUS_DB_USER"`
	LegacyPassword string `envconfig:"SLICEHAUS_DB_PASSWORD"`
	LegacyName     string `envconfig:"SLICEHAUS_DB_NAME"`
	LegacySSLMode  string `envconfig:"SLICEHAUS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SLICEHAUS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SLICEHAUS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SLICEHAUS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SLICEHAUS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SLICEHAUS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SLICEHAUS_REDIS_ADDR"`
	Password     string        `envconfig:"SLICEHAUS_REDIS_PASSWORD"`
	DB           int           `envconfig:"SLICEHAUS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SLICEHAUS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SLICEHAUS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SLICEHAUS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SLICEHAUS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SLICEHAUS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SessionConfig drives the anonymous cart-session token.
type SessionConfig struct {
	Secret     string `envconfig:"SLICEHAUS_SESSION_SECRET" required:"true"`
	Issuer     string `envconfig:"SLICEHAUS_SESSION_ISSUER" default:"slicehaus"`
	TTLMinutes int    `envconfig:"SLICEHAUS_SESSION_TTL_MINUTES" default:"10080"`
}

// TTL returns the session token lifetime.
func (s SessionConfig) TTL() time.Duration {
	if s.TTLMinutes <= 0 {
		return 0
	}
	return time.Duration(s.TTLMinutes) * time.Minute
}

// PricingConfig carries the promotional ruleset knobs. Amounts are whole
// currency units; the wings rate is a decimal string.
type PricingConfig struct {
	DeliveryFee           int    `envconfig:"SLICEHAUS_PRICING_DELIVERY_FEE" default:"150"`
	FreeDeliveryThreshold int    `envconfig:"SLICEHAUS_PRICING_FREE_DELIVERY_THRESHOLD" default:"4500"`
	FreeDessertThreshold  int    `envconfig:"SLICEHAUS_PRICING_FREE_DESSERT_THRESHOLD" default:"6500"`
	BundleDiscount        int    `envconfig:"SLICEHAUS_PRICING_BUNDLE_DISCOUNT" default:"350"`
	WingsPairRate         string `envconfig:"SLICEHAUS_PRICING_WINGS_PAIR_RATE" default:"0.2"`
}

type CartConfig struct {
	TTL time.Duration `envconfig:"SLICEHAUS_CART_TTL" default:"720h"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"SLICEHAUS_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SLICEHAUS_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SLICEHAUS_AUTO_MIGRATE" default:"false"`
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
