package config

import (
	"fmt"
	"time"
)

// ClientConfig is the client view of [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Backup  Backup
}

// ClientApp holds client-side application settings.
type ClientApp struct {
	// HashKey signs request bodies when the server expects HashSHA256.
	HashKey  string
	LogLevel string
}

// ClientAdapter holds the server address and outbound timeout.
type ClientAdapter struct {
	HTTPAddress    string
	RequestTimeout time.Duration
}

// ClientStorage holds the device database settings.
type ClientStorage struct {
	// DSN is the SQLite file holding the session and remembered keys.
	DSN string
}

// GetClientConfig builds and validates the client configuration from env,
// the file at configPath (may be empty) and defaults.
func GetClientConfig(configPath string) (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withConfigFile(configPath).
		withFile().
		withDefaults().
		merge()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			HashKey:  cfg.App.HashKey,
			LogLevel: cfg.App.LogLevel,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DSN: cfg.Storage.Local.DSN,
		},
		Backup: cfg.Backup,
	}

	return clientCfg, clientCfg.validate()
}
