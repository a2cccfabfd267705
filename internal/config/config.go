// Package config loads the process configuration from environment
// variables, once, at process start.
package config

import (
	"fmt"
	"os"
)

// Config holds the recognized environment-variable keys: the backend
// index URL and database credentials from spec.md §6, plus the
// listener port and log directory needed to actually start a process.
type Config struct {
	SolrURL  string
	DBHost   string
	DBUser   string
	DBPwd    string
	DBSchema string

	ListenPort string
	LogDir     string
}

// Load reads Config from the environment, applying defaults for
// LISTEN_PORT and LOG_DIR, and fails if any required key is unset.
func Load() (Config, error) {
	c := Config{
		SolrURL:    os.Getenv("solr_kr"),
		DBHost:     os.Getenv("db_host"),
		DBUser:     os.Getenv("db_user"),
		DBPwd:      os.Getenv("db_pwd"),
		DBSchema:   os.Getenv("db_schema"),
		ListenPort: envOrDefault("LISTEN_PORT", "3000"),
		LogDir:     envOrDefault("LOG_DIR", "log"),
	}

	var missing []string
	for key, val := range map[string]string{
		"solr_kr":   c.SolrURL,
		"db_host":   c.DBHost,
		"db_user":   c.DBUser,
		"db_schema": c.DBSchema,
	} {
		if val == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("config: missing required environment variables: %v", missing)
	}

	return c, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// DSN builds the go-sql-driver/mysql data source name for this config.
func (c Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true", c.DBUser, c.DBPwd, c.DBHost, c.DBSchema)
}
