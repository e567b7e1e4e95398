package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	DB         DBConfig
	Redis      RedisConfig
	RabbitMQ   RabbitMQConfig
	JWT        JWTConfig
	Scheduling SchedulingConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host          string
	Port          string
	User          string
	Password      string
	Name          string
	MigrationsDir string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RabbitMQConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Exchange string
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// SchedulingConfig holds booking rules that are deployment knobs rather
// than hard invariants.
type SchedulingConfig struct {
	DefaultDurationMinutes int
	MinDurationMinutes     int
	ReferralExpiryDays     int
	SlotLockTTL            time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	slotLockTTL, err := time.ParseDuration(viper.GetString("SLOT_LOCK_TTL"))
	if err != nil {
		slotLockTTL = 10 * time.Second
	}

	defaultDuration := viper.GetInt("APPOINTMENT_DEFAULT_DURATION_MINUTES")
	if defaultDuration == 0 {
		defaultDuration = 30
	}

	minDuration := viper.GetInt("APPOINTMENT_MIN_DURATION_MINUTES")
	if minDuration == 0 {
		minDuration = 15
	}

	referralExpiryDays := viper.GetInt("REFERRAL_EXPIRY_DAYS")
	if referralExpiryDays == 0 {
		referralExpiryDays = 30
	}

	migrationsDir := viper.GetString("DB_MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = "migrations"
	}

	exchange := viper.GetString("RABBITMQ_EXCHANGE")
	if exchange == "" {
		exchange = "healthlink.events"
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:          viper.GetString("DB_HOST"),
			Port:          viper.GetString("DB_PORT"),
			User:          viper.GetString("DB_USER"),
			Password:      viper.GetString("DB_PASSWORD"),
			Name:          viper.GetString("DB_NAME"),
			MigrationsDir: migrationsDir,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		RabbitMQ: RabbitMQConfig{
			Host:     viper.GetString("RABBITMQ_HOST"),
			Port:     viper.GetString("RABBITMQ_PORT"),
			Username: viper.GetString("RABBITMQ_USERNAME"),
			Password: viper.GetString("RABBITMQ_PASSWORD"),
			Exchange: exchange,
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Scheduling: SchedulingConfig{
			DefaultDurationMinutes: defaultDuration,
			MinDurationMinutes:     minDuration,
			ReferralExpiryDays:     referralExpiryDays,
			SlotLockTTL:            slotLockTTL,
		},
	}

	return config, nil
}
