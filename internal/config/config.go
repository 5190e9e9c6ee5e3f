package config

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Duration struct{ time.Duration }

// [Duration] implements [json.Marshaler]
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		var err error
		d.Duration, err = time.ParseDuration(value)
		if err != nil {
			return err
		}
		return nil
	default:
		return errors.New("invalid duration")
	}
}

type JwtConfig struct {
	TokenLifetime  Duration `json:"token_lifetime"`
	PrivateKeyPath string   `json:"private_key_path"`
	PublicKeyPath  string   `json:"public_key_path"`
}

type LogConfig struct {
	File       string `json:"file"`
	MaxSizeMb  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
}

// MazeConfig bounds what a single request may ask for.
type MazeConfig struct {
	MaxLength    int `json:"max_length"`
	MaxHeight    int `json:"max_height"`
	MaxAerations int `json:"max_aerations"`
}

type Config struct {
	Mode     string         `json:"mode"`
	Addr     string         `json:"addr"`
	Domain   string         `json:"domain"`
	Postgres PostgresConfig `json:"postgres"`
	Jwt      JwtConfig      `json:"jwt"`
	Log      LogConfig      `json:"log"`
	Maze     MazeConfig     `json:"maze"`
}

func Default() *Config {
	return &Config{
		Mode: "development",
		Addr: ":8080",
		Postgres: PostgresConfig{
			Host:    "localhost",
			Port:    5432,
			SSLMode: "disable",
		},
		Jwt: JwtConfig{
			TokenLifetime: Duration{24 * time.Hour},
		},
		Log: LogConfig{
			MaxSizeMb:  50,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Maze: MazeConfig{
			MaxLength:    100,
			MaxHeight:    100,
			MaxAerations: 1000,
		},
	}
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":                 c.Mode,
		"addr":                 c.Addr,
		"domain":               c.Domain,
		"pg_host":              c.Postgres.Host,
		"pg_port":              c.Postgres.Port,
		"pg_user":              c.Postgres.User,
		"pg_db_name":           c.Postgres.DbName,
		"pg_url_set":           c.Postgres.Url != "",
		"jwt_token_lifetime":   c.Jwt.TokenLifetime.Duration.String(),
		"jwt_private_key_path": c.Jwt.PrivateKeyPath,
		"jwt_public_key_path":  c.Jwt.PublicKeyPath,
		"log_file":             c.Log.File,
		"maze_max_length":      c.Maze.MaxLength,
		"maze_max_height":      c.Maze.MaxHeight,
		"maze_max_aerations":   c.Maze.MaxAerations,
	}
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production"
}

func (c Config) HttpCookieSameSite() http.SameSite {
	if c.Development() {
		return http.SameSiteNoneMode
	} else {
		return http.SameSiteStrictMode
	}
}

// LoadEnv reads .env files into the process environment. Missing files are
// reported but variables already set are never overwritten.
func LoadEnv(filenames ...string) error {
	return godotenv.Load(filenames...)
}

// Read fills config from the JSON file at path, then applies environment
// overrides.
func Read(path string, config *Config) error {
	if b, err := os.ReadFile(path); err != nil {
		return err
	} else if err := json.Unmarshal(b, config); err != nil {
		return err
	}
	return config.Postgres.applyEnv()
}
