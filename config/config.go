package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

type PathsConfig struct {
	DumpFile       string `yaml:"dump_file"`
	CatalogFile    string `yaml:"catalog_file"`
	RestoreSQLFile string `yaml:"restore_sql_file"`
}

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Paths    PathsConfig    `yaml:"paths"`
}

func (db *DatabaseConfig) ConnString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		db.Host,
		db.Port,
		db.User,
		db.Password,
		db.DBName,
		db.SSLMode,
	)
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// A .env file is optional; the standard PG* variables override the yaml
	// values so credentials don't have to be committed with the config.
	_ = godotenv.Load()
	cfg.Database.applyEnv()

	return &cfg, nil
}

func (db *DatabaseConfig) applyEnv() {
	if v := os.Getenv("PGHOST"); v != "" {
		db.Host = v
	}
	if v := os.Getenv("PGPORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			db.Port = p
		}
	}
	if v := os.Getenv("PGUSER"); v != "" {
		db.User = v
	}
	if v := os.Getenv("PGPASSWORD"); v != "" {
		db.Password = v
	}
	if v := os.Getenv("PGDATABASE"); v != "" {
		db.DBName = v
	}
	if v := os.Getenv("PGSSLMODE"); v != "" {
		db.SSLMode = v
	}
}
