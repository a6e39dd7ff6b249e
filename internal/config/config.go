package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const defaultConfigPath = "./config/local.yaml"

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"prod"`
	HTTPServer `yaml:"http_server"`
	Remote     Remote     `yaml:"remote"`
	Local      Local      `yaml:"local"`
	Calculator Calculator `yaml:"calculator"`
	CORS       CORS       `yaml:"cors"`
	Company    Company    `yaml:"company"`

	AdminLogin string `yaml:"admin_login" env:"ADMIN_LOGIN"`
	AdminPass  string `yaml:"admin_pass" env:"ADMIN_PASS"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:4001"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// Remote: хранилище заявок: mysql или firestore.
type Remote struct {
	Driver              string `yaml:"driver" env:"REMOTE_DRIVER" env-default:"mysql"`
	MySQLDSN            string `yaml:"mysql_dsn" env:"MYSQL_DSN" env-default:"user:password@tcp(localhost:3306)/toiture?parseTime=true"`
	Migrate             bool   `yaml:"migrate" env:"REMOTE_MIGRATE" env-default:"true"`
	FirebaseProject     string `yaml:"firebase_project" env:"FIREBASE_PROJECT"`
	FirebaseCredentials string `yaml:"firebase_credentials" env:"FIREBASE_CREDENTIALS"`
}

// Local: цены и черновики: sqlite или redis.
type Local struct {
	Driver        string `yaml:"driver" env:"LOCAL_DRIVER" env-default:"sqlite"`
	SQLitePath    string `yaml:"sqlite_path" env:"SQLITE_PATH" env-default:"./data/local.db"`
	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"REDIS_DB" env-default:"0"`
}

type Calculator struct {
	AutosaveDelay time.Duration `yaml:"autosave_delay" env-default:"2s"`
	DraftMaxAge   time.Duration `yaml:"draft_max_age" env-default:"720h"`
	JanitorSpec   string        `yaml:"janitor_spec" env-default:"@daily"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ORIGINS" env-default:"http://localhost:5173"`
}

// Company: шапка документа.
type Company struct {
	Name    string `yaml:"name" env-default:"Toitures"`
	Address string `yaml:"address"`
	Phone   string `yaml:"phone"`
	Email   string `yaml:"email"`
	RBQ     string `yaml:"rbq"`
}

// Load reads the yaml file at path, then the environment.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &cfg, nil
}

func MustConfig() *Config {
	// .env не обязателен
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}
