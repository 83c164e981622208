package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Seed     SeedConfig     `mapstructure:"seed"`
}

type ServerConfig struct {
	Port        string `mapstructure:"port"`
	FrontendURL string `mapstructure:"frontend_url"`
	AppName     string `mapstructure:"app_name"`
}

type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	TimeZone string `mapstructure:"timezone"`
	LogLevel string `mapstructure:"log_level"`
}

type RedisConfig struct {
	Addr       string `mapstructure:"addr"`
	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db"`
	TTLSeconds int    `mapstructure:"ttl_seconds"`
}

// StorageConfig selects the object store. Driver is one of cloudinary, disk, memory.
type StorageConfig struct {
	Driver           string `mapstructure:"driver"`
	CloudinaryURL    string `mapstructure:"cloudinary_url"`
	CloudinaryFolder string `mapstructure:"cloudinary_folder"`
	UploadDir        string `mapstructure:"upload_dir"`
	PublicBaseURL    string `mapstructure:"public_base_url"`
	MaxUploadMB      int    `mapstructure:"max_upload_mb"`
}

type AuthConfig struct {
	JWTSecret   string `mapstructure:"jwt_secret"`
	JWTTTLHours int    `mapstructure:"jwt_ttl_hours"`
}

type LoggerConfig struct {
	Mode string `mapstructure:"mode"`
	File string `mapstructure:"file"`
}

type SeedConfig struct {
	SuperAdminEmail    string `mapstructure:"superadmin_email"`
	SuperAdminPassword string `mapstructure:"superadmin_password"`
	SuperAdminName     string `mapstructure:"superadmin_name"`
}

// MaxUploadBytes returns the upload limit in bytes.
func (s StorageConfig) MaxUploadBytes() int64 {
	if s.MaxUploadMB <= 0 {
		return 5 << 20
	}
	return int64(s.MaxUploadMB) << 20
}

// env names for keys that don't follow the SECTION_KEY pattern
var envAliases = map[string]string{
	"server.port":               "PORT",
	"server.frontend_url":       "FRONTEND_URL",
	"database.url":              "DATABASE_URL",
	"database.host":             "DB_HOST",
	"database.port":             "DB_PORT",
	"database.user":             "DB_USER",
	"database.password":         "DB_PASSWORD",
	"database.name":             "DB_NAME",
	"redis.addr":                "REDIS_ADDR",
	"storage.cloudinary_url":    "CLOUDINARY_URL",
	"storage.cloudinary_folder": "CLOUDINARY_FOLDER",
	"storage.upload_dir":        "UPLOAD_DIR",
	"storage.public_base_url":   "PUBLIC_BASE_URL",
	"storage.max_upload_mb":     "MAX_UPLOAD_MB",
	"auth.jwt_secret":           "JWT_SECRET",
	"auth.jwt_ttl_hours":        "JWT_TTL_HOURS",
	"logger.mode":               "LOG_MODE",
	"logger.file":               "LOG_FILE",
	"seed.superadmin_email":     "SEED_SUPERADMIN_EMAIL",
	"seed.superadmin_password":  "SEED_SUPERADMIN_PASSWORD",
	"seed.superadmin_name":      "SEED_SUPERADMIN_NAME",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.frontend_url", "*")
	v.SetDefault("server.app_name", "Maitri Medico API v1.0")
	v.SetDefault("database.timezone", "Asia/Kolkata")
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "maitri_medico")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl_seconds", 300)
	v.SetDefault("storage.driver", "")
	v.SetDefault("storage.cloudinary_url", "")
	v.SetDefault("storage.cloudinary_folder", "maitri-medico")
	v.SetDefault("storage.upload_dir", "./uploads")
	v.SetDefault("storage.public_base_url", "http://localhost:3000/uploads")
	v.SetDefault("storage.max_upload_mb", 5)
	v.SetDefault("auth.jwt_secret", "change-me-in-production")
	v.SetDefault("auth.jwt_ttl_hours", 24)
	v.SetDefault("logger.mode", "development")
	v.SetDefault("logger.file", "")
	v.SetDefault("seed.superadmin_email", "superadmin@maitrimedico.in")
	v.SetDefault("seed.superadmin_password", "superadmin123")
	v.SetDefault("seed.superadmin_name", "Super Admin")
}

// Load reads .env (if present) and the process environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envAliases {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Storage.Driver == "" {
		if cfg.Storage.CloudinaryURL != "" {
			cfg.Storage.Driver = "cloudinary"
		} else {
			cfg.Storage.Driver = "disk"
		}
	}
	return &cfg, nil
}
