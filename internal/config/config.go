package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Session struct {
		TTLDays      int  `yaml:"ttl_days"`      // Срок жизни сессии (по умолчанию 30 дней)
		CookieSecure bool `yaml:"cookie_secure"` // Secure-флаг cookie (включать в проде)
	} `yaml:"session"`

	SMS struct {
		Provider string `yaml:"provider"` // mock, eskiz
		BaseURL  string `yaml:"base_url"`
		Email    string `yaml:"email"` // учетка Eskiz
		Password string `yaml:"password"`
		From     string `yaml:"from"`
	} `yaml:"sms"`

	Email struct {
		Provider     string `yaml:"provider"` // mock, smtp
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	OTP struct {
		TTLMinutes    int `yaml:"ttl_minutes"`    // Срок жизни кода
		ResendSeconds int `yaml:"resend_seconds"` // Окно до повторной отправки
		MaxAttempts   int `yaml:"max_attempts"`   // Попыток ввода на один код
	} `yaml:"otp"`
}

var AppConfig *Config

func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		log.Println("Загрузка из config.yaml")

		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		AppConfig = &cfg
		applyDefaults(AppConfig)
		return
	}

	log.Println("Загрузка конфигурации из переменных окружения (режим теста)")

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.SMS.Provider = "mock"
	cfg.Email.Provider = "mock"

	AppConfig = &cfg
	applyDefaults(AppConfig)
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.Session.TTLDays == 0 {
		cfg.Session.TTLDays = 30
	}
	if cfg.OTP.TTLMinutes == 0 {
		cfg.OTP.TTLMinutes = 5
	}
	if cfg.OTP.ResendSeconds == 0 {
		cfg.OTP.ResendSeconds = 60
	}
	if cfg.OTP.MaxAttempts == 0 {
		cfg.OTP.MaxAttempts = 5
	}
	if cfg.SMS.Provider == "" {
		cfg.SMS.Provider = "mock"
	}
	if cfg.Email.Provider == "" {
		cfg.Email.Provider = "mock"
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
