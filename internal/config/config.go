package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort          string `env:"HTTP_PORT" envDefault:"8080"`
	AppEnv            string `env:"APP_ENV" envDefault:"development"`
	DatabaseURL       string `env:"DATABASE_URL,required,notEmpty"`
	DBMaxConns        int32  `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns        int32  `env:"DB_MIN_CONNS" envDefault:"1"`
	MigrateOnStart    bool   `env:"MIGRATE_ON_START" envDefault:"true"`
	SessionSecret     string `env:"SESSION_SECRET,required,notEmpty"`
	ResendAPIKey      string `env:"RESEND_API_KEY"`
	EmailFrom         string `env:"EMAIL_FROM" envDefault:"PrivateLabelify <onboarding@resend.dev>"`
	SMTPHost          string `env:"SMTP_HOST"`
	SMTPPort          int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser          string `env:"SMTP_USER"`
	SMTPPass          string `env:"SMTP_PASS"`
	SMTPFrom          string `env:"SMTP_FROM"`
	SMTPFromName      string `env:"SMTP_FROM_NAME" envDefault:"PrivateLabelify"`
	SMTPUseTLS        bool   `env:"SMTP_USE_TLS" envDefault:"false"`
	RedisAddr         string `env:"REDIS_ADDR"`
	RedisPassword     string `env:"REDIS_PASSWORD"`
	RedisDB           int    `env:"REDIS_DB" envDefault:"0"`
	MetricsEnabled    bool   `env:"METRICS_ENABLED" envDefault:"true"`
	AuthRatePerMinute int    `env:"AUTH_RATE_PER_MINUTE" envDefault:"30"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction indica si el proceso corre en modo producción.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// IsDevelopment habilita comportamientos de prueba local (por ejemplo, devolver el OTP).
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}
