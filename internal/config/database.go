package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

type PostgresConfig struct {
	Host     string `json:"host"`
	Port     uint   `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DbName   string `json:"db_name"`
	SSLMode  string `json:"sslmode"`
	// Url takes precedence over the other fields when set.
	Url string `json:"url"`
}

func loadPassword() (string, bool, error) {
	password, ok := os.LookupEnv("POSTGRES_PASSWORD")
	if ok {
		return password, true, nil
	}

	passwordFile, ok := os.LookupEnv("POSTGRES_PASSWORD_FILE")
	if !ok {
		return "", false, nil
	}

	data, err := os.ReadFile(passwordFile)
	if err != nil {
		return "", false, fmt.Errorf("unable to read from password file: %w", err)
	}

	return strings.TrimSpace(string(data)), true, nil
}

func (p *PostgresConfig) applyEnv() error {
	if dbURL, ok := os.LookupEnv("DATABASE_URL"); ok {
		p.Url = dbURL
	}
	password, ok, err := loadPassword()
	if err != nil {
		return err
	}
	if ok {
		p.Password = password
	}
	return nil
}

func (p PostgresConfig) sslMode() string {
	if p.SSLMode == "" {
		return "disable"
	}
	return p.SSLMode
}

// DbUrl is the connection string for pgxpool.
func (p PostgresConfig) DbUrl() string {
	if p.Url != "" {
		return p.Url
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DbName, p.sslMode(),
	)
}

// URL is the connection URL for the migrator, which does not accept DSNs.
func (p PostgresConfig) URL() string {
	if p.Url != "" {
		return p.Url
	}
	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(p.User),
		url.QueryEscape(p.Password),
		p.Host,
		p.Port,
		p.DbName,
		p.sslMode(),
	)
}
