package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	LogLevel         string        `yaml:"log_level"`
	LogJSON          bool          `yaml:"log_json"`
	Https            bool          `yaml:"https"`
	HttpPort         int           `yaml:"http_port" validate:"required"`
	JwtTTL           time.Duration `yaml:"jwt_ttl" validate:"required"`
	AllowedOrigins   []string      `yaml:"allowed_origins"`
	CommentMaxLength int           `yaml:"comment_max_length" validate:"required"`
	PostTitleMaxLen  int           `yaml:"post_title_max_length" validate:"required"`
	ListLimit        int           `yaml:"list_limit" validate:"required"`
	Fanout           Fanout        `yaml:"fanout"`
	Table            Table         `yaml:"table"`
	Redis            Redis         `yaml:"redis"`
}

// Fanout configures the background runner for statistics and notices.
type Fanout struct {
	Workers   int           `yaml:"workers" validate:"required"`
	QueueSize int           `yaml:"queue_size" validate:"required"`
	Timeout   time.Duration `yaml:"timeout" validate:"required"` // per job, in seconds
}

// Table configures the DynamoDB table store (notices, blocking and follow mappings).
type Table struct {
	Region        string `yaml:"region" validate:"required"`
	Endpoint      string `yaml:"endpoint"` // empty means the AWS default resolver
	NoticeTable   string `yaml:"notice_table" validate:"required"`
	BlockingTable string `yaml:"blocking_table" validate:"required"`
	FollowTable   string `yaml:"follow_table" validate:"required"`
	CreateTables  bool   `yaml:"create_tables"`
}

type Redis struct {
	Addr        string        `yaml:"addr"` // empty disables the blocking cache
	DB          int           `yaml:"db"`
	BlockingTTL time.Duration `yaml:"blocking_ttl"` // seconds
}

type Private struct {
	Pg            Pg     `yaml:"pg"`
	JwtKey        string `yaml:"jwt_key" validate:"required"`
	RedisPassword string `yaml:"redis_password"`
	AwsAccessKey  string `yaml:"aws_access_key"`
	AwsSecretKey  string `yaml:"aws_secret_key"`
}

type Pg struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"required"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname" validate:"required"`
}

func (s *Config) JwtKey() string {
	return s.Private.JwtKey
}

func (s *Config) JwtTTL() time.Duration {
	return s.Public.JwtTTL * time.Second
}

func (s *Config) FanoutTimeout() time.Duration {
	return s.Public.Fanout.Timeout * time.Second
}

func (s *Config) BlockingTTL() time.Duration {
	return s.Public.Redis.BlockingTTL * time.Second
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file: " + configPath)
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file: " + configPath)
	}
}

// applyEnv overrides secrets with PLAZA_* variables. A .env file in the
// config folder is loaded first if present; real environment wins over it.
func applyEnv(configFolder string, private *Private) {
	if err := godotenv.Load(path.Join(configFolder, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Sprintf("can't load .env: %v", err))
	}

	if v, ok := os.LookupEnv("PLAZA_JWT_KEY"); ok {
		private.JwtKey = v
	}
	if v, ok := os.LookupEnv("PLAZA_PG_HOST"); ok {
		private.Pg.Host = v
	}
	if v, ok := os.LookupEnv("PLAZA_PG_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			panic("PLAZA_PG_PORT must be an integer")
		}
		private.Pg.Port = port
	}
	if v, ok := os.LookupEnv("PLAZA_PG_PASSWORD"); ok {
		private.Pg.Password = v
	}
	if v, ok := os.LookupEnv("PLAZA_REDIS_PASSWORD"); ok {
		private.RedisPassword = v
	}
	if v, ok := os.LookupEnv("PLAZA_AWS_ACCESS_KEY"); ok {
		private.AwsAccessKey = v
	}
	if v, ok := os.LookupEnv("PLAZA_AWS_SECRET_KEY"); ok {
		private.AwsSecretKey = v
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)
	applyEnv(configFolder, &private)

	cfg := &Config{Public: public, Private: private}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		panic(fmt.Sprintf("invalid config: %v", err))
	}
	return cfg
}
