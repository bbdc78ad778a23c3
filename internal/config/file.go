package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk layout shared by JSON and YAML config files.
type fileConfig struct {
	App struct {
		TokenSignKey     string   `json:"token_sign_key" yaml:"token_sign_key"`
		TokenIssuer      string   `json:"token_issuer" yaml:"token_issuer"`
		TokenDuration    Duration `json:"token_duration" yaml:"token_duration"`
		DiaryTokenPepper string   `json:"diary_token_pepper" yaml:"diary_token_pepper"`
		HashKey          string   `json:"hash_key" yaml:"hash_key"`
		Version          string   `json:"version" yaml:"version"`
		LogLevel         string   `json:"log_level" yaml:"log_level"`
	} `json:"app" yaml:"app"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn" yaml:"dsn"`
		} `json:"db" yaml:"db"`
		Local struct {
			DSN string `json:"dsn" yaml:"dsn"`
		} `json:"local" yaml:"local"`
	} `json:"storage" yaml:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		GRPCAddress    string   `json:"grpc_address" yaml:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
	} `json:"server" yaml:"server"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
	} `json:"adapter" yaml:"adapter"`

	Events struct {
		NATSURL       string `json:"nats_url" yaml:"nats_url"`
		SubjectPrefix string `json:"subject_prefix" yaml:"subject_prefix"`
	} `json:"events" yaml:"events"`

	Backup struct {
		S3Endpoint  string `json:"s3_endpoint" yaml:"s3_endpoint"`
		S3Region    string `json:"s3_region" yaml:"s3_region"`
		S3Bucket    string `json:"s3_bucket" yaml:"s3_bucket"`
		S3Prefix    string `json:"s3_prefix" yaml:"s3_prefix"`
		S3AccessKey string `json:"s3_access_key" yaml:"s3_access_key"`
		S3SecretKey string `json:"s3_secret_key" yaml:"s3_secret_key"`
	} `json:"backup" yaml:"backup"`

	Workers struct {
		HealthCheckInterval Duration `json:"health_check_interval" yaml:"health_check_interval"`
	} `json:"workers" yaml:"workers"`
}

// parseFile reads a JSON or YAML config file depending on its extension.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}

	var fc fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err = json.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedConfigFile, ext)
	}

	return fc.toStructured(), nil
}

func (fc *fileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenSignKey:     fc.App.TokenSignKey,
			TokenIssuer:      fc.App.TokenIssuer,
			TokenDuration:    time.Duration(fc.App.TokenDuration),
			DiaryTokenPepper: fc.App.DiaryTokenPepper,
			HashKey:          fc.App.HashKey,
			Version:          fc.App.Version,
			LogLevel:         fc.App.LogLevel,
		},
		Storage: Storage{
			DB:    DB{DSN: fc.Storage.DB.DSN},
			Local: DB{DSN: fc.Storage.Local.DSN},
		},
		Server: Server{
			HTTPAddress:    fc.Server.HTTPAddress,
			GRPCAddress:    fc.Server.GRPCAddress,
			RequestTimeout: time.Duration(fc.Server.RequestTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    fc.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(fc.Adapter.RequestTimeout),
		},
		Events: Events{
			NATSURL:       fc.Events.NATSURL,
			SubjectPrefix: fc.Events.SubjectPrefix,
		},
		Backup: Backup{
			S3Endpoint:  fc.Backup.S3Endpoint,
			S3Region:    fc.Backup.S3Region,
			S3Bucket:    fc.Backup.S3Bucket,
			S3Prefix:    fc.Backup.S3Prefix,
			S3AccessKey: fc.Backup.S3AccessKey,
			S3SecretKey: fc.Backup.S3SecretKey,
		},
		Workers: Workers{
			HealthCheckInterval: time.Duration(fc.Workers.HealthCheckInterval),
		},
	}
}

// Duration is a time.Duration that decodes from "1h"-style strings or from
// integer nanoseconds, in both JSON and YAML.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("invalid duration at line %d", node.Line)
	}

	if tmp, err := time.ParseDuration(node.Value); err == nil {
		*d = Duration(tmp)
		return nil
	}

	n, err := strconv.ParseInt(node.Value, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid duration %q at line %d", node.Value, node.Line)
	}
	*d = Duration(time.Duration(n))
	return nil
}
