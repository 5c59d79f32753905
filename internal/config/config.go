package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		// dev | prod
		Env string `yaml:"env"`
	} `yaml:"app"`

	Server struct {
		Addr     string `yaml:"addr"`
		FilesDir string `yaml:"files_dir"`
	} `yaml:"server"`

	Storage struct {
		// postgres | memory
		Driver   string `yaml:"driver"`
		DSN      string `yaml:"dsn"`
		Postgres struct {
			MaxConns        int    `yaml:"max_conns"`
			ConnMaxLifetime string `yaml:"conn_max_lifetime"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	Cache struct {
		// memory | redis
		Kind  string `yaml:"kind"`
		Redis struct {
			Addr   string `yaml:"addr"`
			DB     int    `yaml:"db"`
			Prefix string `yaml:"prefix"`
		} `yaml:"redis"`
		Memory struct {
			DefaultTTL string `yaml:"default_ttl"`
		} `yaml:"memory"`
	} `yaml:"cache"`

	JWT struct {
		// Secret firma los tokens. Sin esto el proceso no arranca.
		// El TTL NO es configurable a propósito (ver internal/token).
		Secret string `yaml:"secret"`
	} `yaml:"jwt"`

	Security struct {
		PasswordPolicy struct {
			MinLength int `yaml:"min_length"`
		} `yaml:"password_policy"`
		Argon2 struct {
			MemoryKiB     uint32 `yaml:"memory_kib"`
			Time          uint32 `yaml:"time"`
			Parallelism   uint8  `yaml:"parallelism"`
			KeyLen        uint32 `yaml:"key_len"`
			SaltLen       uint32 `yaml:"salt_len"`
			MaxConcurrent int64  `yaml:"max_concurrent"`
		} `yaml:"argon2"`
	} `yaml:"security"`

	Authz struct {
		RestrictedUsernames  []string `yaml:"restricted_usernames"`
		RestrictedPseudonyms []string `yaml:"restricted_pseudonyms"`
		RestrictedNames      []string `yaml:"restricted_names"`
		Superusers           []string `yaml:"superusers"`
	} `yaml:"authz"`

	Rate struct {
		Enabled     bool   `yaml:"enabled"`
		Window      string `yaml:"window"`
		MaxRequests int    `yaml:"max_requests"`
		Login       struct {
			Limit  int    `yaml:"limit"`
			Window string `yaml:"window"`
		} `yaml:"login"`
	} `yaml:"rate"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Load lee el YAML (si existe), aplica defaults, pisa con env y valida.
// Path vacío arranca solo con defaults + env.
func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, err
		}
	}

	// sane defaults
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.FilesDir == "" {
		c.Server.FilesDir = "./data/files"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.Memory.DefaultTTL == "" {
		c.Cache.Memory.DefaultTTL = "2m"
	}
	if c.Security.PasswordPolicy.MinLength == 0 {
		c.Security.PasswordPolicy.MinLength = 8
	}
	if c.Security.Argon2.MemoryKiB == 0 {
		c.Security.Argon2.MemoryKiB = 64 * 1024
	}
	if c.Security.Argon2.Time == 0 {
		c.Security.Argon2.Time = 3
	}
	if c.Security.Argon2.Parallelism == 0 {
		c.Security.Argon2.Parallelism = 2
	}
	if c.Security.Argon2.KeyLen == 0 {
		c.Security.Argon2.KeyLen = 64
	}
	if c.Security.Argon2.SaltLen == 0 {
		c.Security.Argon2.SaltLen = 128
	}
	if c.Security.Argon2.MaxConcurrent == 0 {
		c.Security.Argon2.MaxConcurrent = 4
	}
	if c.Rate.Window == "" {
		c.Rate.Window = "1m"
	}
	if c.Rate.MaxRequests == 0 {
		c.Rate.MaxRequests = 120
	}
	if c.Rate.Login.Limit == 0 {
		c.Rate.Login.Limit = 10
	}
	if c.Rate.Login.Window == "" {
		c.Rate.Login.Window = "1m"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	c.applyEnvOverrides()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate chequea los faults de configuración que deben ser fatales al
// arranque, no errores por-request.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return fmt.Errorf("config: jwt secret is required (JWT_SECRET)")
	}
	a := c.Security.Argon2
	if a.MemoryKiB <= 0 || a.Time <= 0 || a.Parallelism <= 0 || a.MaxConcurrent <= 0 {
		return fmt.Errorf("config: invalid argon2 params (m=%d t=%d p=%d c=%d)",
			a.MemoryKiB, a.Time, a.Parallelism, a.MaxConcurrent)
	}
	switch c.Storage.Driver {
	case "postgres":
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return fmt.Errorf("config: storage.dsn is required for the postgres driver")
		}
	case "memory":
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}
	for _, d := range []string{c.Rate.Window, c.Rate.Login.Window, c.Cache.Memory.DefaultTTL} {
		if _, err := time.ParseDuration(d); err != nil {
			return fmt.Errorf("config: bad duration %q: %w", d, err)
		}
	}
	if c.Storage.Postgres.ConnMaxLifetime != "" {
		if _, err := time.ParseDuration(c.Storage.Postgres.ConnMaxLifetime); err != nil {
			return err
		}
	}
	return nil
}

// applyEnvOverrides: pisa el YAML con variables de entorno.
func (c *Config) applyEnvOverrides() {
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvStr("FILES_DIR"); ok {
		c.Server.FilesDir = v
	}
	if v, ok := getEnvStr("STORAGE_DRIVER"); ok {
		c.Storage.Driver = v
	}
	if v, ok := getEnvStr("STORAGE_DSN"); ok {
		c.Storage.DSN = v
	}
	if v, ok := getEnvStr("CACHE_KIND"); ok {
		c.Cache.Kind = v
	}
	if v, ok := getEnvStr("REDIS_ADDR"); ok {
		c.Cache.Redis.Addr = v
	}
	if v, ok := getEnvInt("REDIS_DB"); ok {
		c.Cache.Redis.DB = v
	}
	if v, ok := getEnvStr("JWT_SECRET"); ok {
		c.JWT.Secret = v
	}
	if v, ok := getEnvInt("PASSWORD_MIN_LENGTH"); ok {
		c.Security.PasswordPolicy.MinLength = v
	}
	if v, ok := getEnvInt("ARGON2_MEMORY_KIB"); ok {
		c.Security.Argon2.MemoryKiB = uint32(v)
	}
	if v, ok := getEnvInt("ARGON2_TIME"); ok {
		c.Security.Argon2.Time = uint32(v)
	}
	if v, ok := getEnvInt("ARGON2_PARALLELISM"); ok {
		c.Security.Argon2.Parallelism = uint8(v)
	}
	if v, ok := getEnvInt("ARGON2_MAX_CONCURRENT"); ok {
		c.Security.Argon2.MaxConcurrent = int64(v)
	}
	if v, ok := getEnvCSV("AUTHZ_RESTRICTED_USERNAMES"); ok {
		c.Authz.RestrictedUsernames = v
	}
	if v, ok := getEnvCSV("AUTHZ_RESTRICTED_PSEUDONYMS"); ok {
		c.Authz.RestrictedPseudonyms = v
	}
	if v, ok := getEnvCSV("AUTHZ_RESTRICTED_NAMES"); ok {
		c.Authz.RestrictedNames = v
	}
	if v, ok := getEnvCSV("AUTHZ_SUPERUSERS"); ok {
		c.Authz.Superusers = v
	}
	if v, ok := getEnvBool("RATE_ENABLED"); ok {
		c.Rate.Enabled = v
	}
	if v, ok := getEnvInt("RATE_LOGIN_LIMIT"); ok {
		c.Rate.Login.Limit = v
	}
	if v, ok := getEnvStr("RATE_LOGIN_WINDOW"); ok {
		c.Rate.Login.Window = v
	}
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}

func getEnvBool(key string) (bool, bool) {
	if s, ok := getEnvStr(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, true
		}
	}
	return false, false
}

func getEnvCSV(key string) ([]string, bool) {
	if s, ok := getEnvStr(key); ok {
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out, true
	}
	return nil, false
}
