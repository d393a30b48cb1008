// Package config provides functionality for managing configuration options
// for the application using command-line flags, a JSON config file, a .env
// file and environment variables.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAddress    = "localhost:8080"
	defaultLogLevel   = "info"
	defaultUserID     = 1
	defaultSessionTTL = 24 * time.Hour
	defaultConfigPath = "config.json"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string `json:"server_address"`

	// DatabaseDSN holds the PostgreSQL connection string. When empty the
	// server keeps everything in memory.
	DatabaseDSN string `json:"database_dsn"`

	// LogLevel is the minimum zap level that is written.
	LogLevel string `json:"log_level"`

	// DefaultUserID owns trips and bookings created without a session.
	DefaultUserID int64 `json:"default_user_id"`

	// SessionTTL is how long a login session stays valid.
	SessionTTL time.Duration `json:"-"`

	// TLSCert and TLSKey switch the server to HTTPS when both are set.
	TLSCert string `json:"tls_cert"`
	TLSKey  string `json:"tls_key"`

	// Config is the path to the Config file.
	Config string `json:"-"`
}

// fileOptions mirrors Options for values whose file representation differs.
type fileOptions struct {
	*Options
	SessionTTL string `json:"session_ttl"`
}

// TLSEnabled reports whether both certificate and key are configured.
func (o *Options) TLSEnabled() bool {
	return o.TLSCert != "" && o.TLSKey != ""
}

// Parse loads an optional .env file and then resolves options from the
// command line, the config file and the environment, in that order. Invalid
// configuration terminates the process.
func Parse() *Options {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("error while loading .env file: %v", err)
	}

	options, err := Load(os.Args[1:], os.LookupEnv)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	return options
}

// Load resolves options from args, the config file and lookupEnv. Environment
// values override the config file, which overrides flags.
func Load(args []string, lookupEnv func(string) (string, bool)) (*Options, error) {
	options := &Options{}

	flags := flag.NewFlagSet("server", flag.ContinueOnError)
	flags.StringVar(&options.Port, "a", defaultAddress, "run on ip:port server")
	flags.StringVar(&options.DatabaseDSN, "d", "", "db address; empty keeps data in memory")
	flags.StringVar(&options.LogLevel, "l", defaultLogLevel, "log level")
	flags.Int64Var(&options.DefaultUserID, "u", defaultUserID, "owner of trips and bookings created without a session")
	flags.DurationVar(&options.SessionTTL, "session-ttl", defaultSessionTTL, "login session lifetime")
	flags.StringVar(&options.Config, "config", defaultConfigPath, "path to config file")
	flags.StringVar(&options.Config, "c", defaultConfigPath, "path to config file (shorthand)")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if configPath, ok := lookupEnv("CONFIG"); ok && configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if err := readConfigFile(options); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(options, lookupEnv); err != nil {
		return nil, err
	}

	if options.DefaultUserID < 1 {
		return nil, fmt.Errorf("default user id must be positive, got %d", options.DefaultUserID)
	}
	if options.SessionTTL <= 0 {
		return nil, fmt.Errorf("session ttl must be positive, got %s", options.SessionTTL)
	}
	if (options.TLSCert == "") != (options.TLSKey == "") {
		return nil, errors.New("TLS_CERT and TLS_KEY must be set together")
	}

	return options, nil
}

func readConfigFile(options *Options) error {
	data, err := os.ReadFile(options.Config)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error while reading config file: %w", err)
	}

	file := fileOptions{Options: options}
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("error while parsing config file: %w", err)
	}
	if file.SessionTTL != "" {
		ttl, err := time.ParseDuration(file.SessionTTL)
		if err != nil {
			return fmt.Errorf("error while parsing config file: session_ttl: %w", err)
		}
		options.SessionTTL = ttl
	}
	return nil
}

func applyEnv(options *Options, lookupEnv func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	str("SERVER_ADDRESS", &options.Port)
	str("DATABASE_DSN", &options.DatabaseDSN)
	str("LOG_LEVEL", &options.LogLevel)
	str("TLS_CERT", &options.TLSCert)
	str("TLS_KEY", &options.TLSKey)

	if v, ok := lookupEnv("DEFAULT_USER_ID"); ok && v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("DEFAULT_USER_ID: %w", err)
		}
		options.DefaultUserID = id
	}
	if v, ok := lookupEnv("SESSION_TTL"); ok && v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SESSION_TTL: %w", err)
		}
		options.SessionTTL = ttl
	}
	return nil
}
