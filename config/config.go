/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	tserrors "github.com/suparena/tablestore/errors"
	"github.com/suparena/tablestore/registry"
)

// Backends a table can be written to.
const (
	BackendAzure    = "azure"
	BackendDynamoDB = "ddb"
	BackendMock     = "mock"
)

// Config describes where entities are written.
type Config struct {
	Backend  string        `yaml:"backend"`
	LogLevel string        `yaml:"logLevel"`
	Azure    AzureConfig   `yaml:"azure"`
	AWS      AWSConfig     `yaml:"aws"`
	Tables   []TableConfig `yaml:"tables"`
}

// AzureConfig holds table storage account credentials.
type AzureConfig struct {
	Account  string `yaml:"account"`
	Key      string `yaml:"key"`
	Endpoint string `yaml:"endpoint"`
}

// AWSConfig holds DynamoDB credentials.
type AWSConfig struct {
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Region    string `yaml:"region"`
}

// TableConfig names a table and, optionally, its key attributes.
type TableConfig struct {
	Name      string              `yaml:"name"`
	KeySchema *registry.KeySchema `yaml:"keySchema,omitempty"`
}

// Load reads the YAML file at path, when given, after loading env files
// (".env" when none are named) into the process environment. Environment
// variables override file values.
func Load(path string, envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	cfg := &Config{Backend: BackendAzure, LogLevel: "info"}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	override := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	override(&c.Backend, "TABLESTORE_BACKEND")
	override(&c.LogLevel, "TABLESTORE_LOG_LEVEL")
	override(&c.Azure.Account, "AZURE_STORAGE_ACCOUNT")
	override(&c.Azure.Key, "AZURE_STORAGE_KEY")
	override(&c.Azure.Endpoint, "AZURE_TABLE_ENDPOINT")
	override(&c.AWS.AccessKey, "AWS_ACCESS_KEY")
	override(&c.AWS.SecretKey, "AWS_SECRET_KEY")
	override(&c.AWS.Region, "AWS_REGION")

	if v := os.Getenv("TABLESTORE_TABLES"); v != "" {
		c.Tables = c.Tables[:0]
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				c.Tables = append(c.Tables, TableConfig{Name: name})
			}
		}
	}
}

// Validate checks that the selected backend has what it needs.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendAzure:
		if c.Azure.Account == "" {
			return tserrors.NewValidationError("azure.account", "required for the azure backend")
		}
		if c.Azure.Key == "" {
			return tserrors.NewValidationError("azure.key", "required for the azure backend")
		}
	case BackendDynamoDB:
		if c.AWS.Region == "" {
			return tserrors.NewValidationError("aws.region", "required for the ddb backend")
		}
	case BackendMock:
	default:
		return tserrors.NewValidationError("backend", fmt.Sprintf("unknown backend %q", c.Backend))
	}

	seen := make(map[string]bool, len(c.Tables))
	for _, t := range c.Tables {
		if t.Name == "" {
			return tserrors.NewValidationError("tables", "table name must not be empty")
		}
		if ks := t.KeySchema; ks != nil && (ks.PartitionKey == "" || ks.RowKey == "") {
			return tserrors.NewValidationError("tables", fmt.Sprintf("table %q key schema needs both partitionKey and rowKey", t.Name))
		}
		if seen[t.Name] {
			return tserrors.NewValidationError("tables", fmt.Sprintf("table %q listed twice", t.Name))
		}
		seen[t.Name] = true
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return tserrors.NewValidationError("logLevel", err.Error())
	}
	return nil
}

// SlogLevel returns the configured log level, info when unset.
func (c *Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// Logger returns a text logger writing to stderr at the configured level.
func (c *Config) Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.SlogLevel()}))
}
