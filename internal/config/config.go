package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// ErrConfigurationMissing is returned when a required key has no value.
var ErrConfigurationMissing = errors.New("configuration missing")

type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	// TrustedProxies lists proxy CIDRs whose forwarded headers are honoured
	// for the client IP. Empty means the socket address is used.
	TrustedProxies []string
}

type PostgresConfig struct {
	DSN             string
	MaxOpen         int
	MaxIdle         int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type StorageConfig struct {
	Endpoint       string
	PublicBaseURL  string
	AccessKey      string
	SecretKey      string
	BucketImages   string
	UseSSL         bool
	Region         string
	MaxUploadBytes int64
}

type SecurityConfig struct {
	JWTSecret         string
	JWTIssuer         string
	JWTAudience       string
	JWTTTL            time.Duration
	BcryptCost        int
	AllowRegistration bool
}

type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

type RateLimitConfig struct {
	AuthPerMinute    int
	AuthBurst        int
	ContactPerMinute int
	ContactBurst     int
	IdleTimeout      time.Duration
}

type JobsConfig struct {
	Enabled                bool
	ContactCleanupSchedule string
	ContactRetention       time.Duration
	Stream                 string
}

type WorkerConfig struct {
	Group         string
	Consumer      string
	ClaimInterval time.Duration
}

type SeedConfig struct {
	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

type AppConfig struct {
	Environment      string
	HTTP             HTTPConfig
	Postgres         PostgresConfig
	Redis            RedisConfig
	Storage          StorageConfig
	Security         SecurityConfig
	Cache            CacheConfig
	RateLimit        RateLimitConfig
	Jobs             JobsConfig
	Worker           WorkerConfig
	Seed             SeedConfig
	AllowCORSOrigins []string
}

func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")

	return load(v)
}

// LoadFile reads configuration from an explicit path instead of the search paths.
func LoadFile(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)

	return load(v)
}

func load(v *viper.Viper) (*AppConfig, error) {
	v.SetEnvPrefix("PORTFOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate reports the first required key that is empty.
func (c *AppConfig) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"security.jwtsecret", c.Security.JWTSecret},
		{"security.jwtissuer", c.Security.JWTIssuer},
		{"security.jwtaudience", c.Security.JWTAudience},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s", ErrConfigurationMissing, r.key)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "15s")
	v.SetDefault("http.idletimeout", "60s")
	v.SetDefault("http.trustedproxies", []string{})

	v.SetDefault("postgres.dsn", "")
	v.SetDefault("postgres.maxopen", 20)
	v.SetDefault("postgres.maxidle", 2)
	v.SetDefault("postgres.connmaxlifetime", "30m")
	v.SetDefault("postgres.automigrate", true)

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("storage.endpoint", "127.0.0.1:9000")
	v.SetDefault("storage.publicbaseurl", "")
	v.SetDefault("storage.accesskey", "")
	v.SetDefault("storage.secretkey", "")
	v.SetDefault("storage.bucketimages", "portfolio-images")
	v.SetDefault("storage.usessl", false)
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.maxuploadbytes", 5<<20)

	v.SetDefault("security.jwtsecret", "")
	v.SetDefault("security.jwtissuer", "")
	v.SetDefault("security.jwtaudience", "")
	v.SetDefault("security.jwtttl", "168h") // 7 days
	v.SetDefault("security.bcryptcost", 10)
	v.SetDefault("security.allowregistration", true)

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", "5m")

	v.SetDefault("ratelimit.authperminute", 10)
	v.SetDefault("ratelimit.authburst", 5)
	v.SetDefault("ratelimit.contactperminute", 3)
	v.SetDefault("ratelimit.contactburst", 3)
	v.SetDefault("ratelimit.idletimeout", "10m")

	v.SetDefault("jobs.enabled", true)
	v.SetDefault("jobs.contactcleanupschedule", "0 30 3 * * *")
	v.SetDefault("jobs.contactretention", "2160h") // 90 days
	v.SetDefault("jobs.stream", "portfolio:tasks")

	v.SetDefault("worker.group", "portfolio-workers")
	v.SetDefault("worker.consumer", "worker-1")
	v.SetDefault("worker.claiminterval", "30s")

	v.SetDefault("seed.adminusername", "")
	v.SetDefault("seed.adminemail", "")
	v.SetDefault("seed.adminpassword", "")

	v.SetDefault("allowcorsorigins", []string{})
}
