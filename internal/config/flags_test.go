package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetAddress_String(t *testing.T) {
	assert.Equal(t, "", (&NetAddress{}).String())
	assert.Equal(t, "localhost:8080", (&NetAddress{Host: "localhost", Port: 8080}).String())
	assert.Equal(t, "127.0.0.1:9090", (&NetAddress{Host: "127.0.0.1", Port: 9090}).String())
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    NetAddress
		wantErr bool
	}{
		{"localhost", "localhost:8080", NetAddress{Host: "localhost", Port: 8080}, false},
		{"ipv4", "0.0.0.0:9090", NetAddress{Host: "0.0.0.0", Port: 9090}, false},
		{"no port", "localhost", NetAddress{}, true},
		{"hostname", "example.com:80", NetAddress{}, true},
		{"port not a number", "localhost:http", NetAddress{}, true},
		{"port zero", "localhost:0", NetAddress{}, true},
		{"port too big", "localhost:70000", NetAddress{}, true},
		{"too many colons", "a:b:c", NetAddress{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a NetAddress
			err := a.Set(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a)
		})
	}
}

func TestParseFlags(t *testing.T) {
	cfg, err := parseFlags([]string{
		"-a", "localhost:8081",
		"-grpc-address", "127.0.0.1:9091",
		"-d", "postgres://x",
		"-config", "/etc/diary.json",
		"-token-sign-key", "sign",
		"-token-duration", "2h",
		"-diary-token-pepper", "pep",
		"-request-timeout", "5s",
		"-nats", "nats://n:4222",
		"-log-level", "debug",
	})
	require.NoError(t, err)

	assert.Equal(t, "localhost:8081", cfg.Server.HTTPAddress)
	assert.Equal(t, "127.0.0.1:9091", cfg.Server.GRPCAddress)
	assert.Equal(t, "postgres://x", cfg.Storage.DB.DSN)
	assert.Equal(t, "/etc/diary.json", cfg.ConfigFilePath)
	assert.Equal(t, "sign", cfg.App.TokenSignKey)
	assert.Equal(t, 2*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "pep", cfg.App.DiaryTokenPepper)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "nats://n:4222", cfg.Events.NATSURL)
	assert.Equal(t, "debug", cfg.App.LogLevel)
}

func TestParseFlags_Invalid(t *testing.T) {
	_, err := parseFlags([]string{"-a", "nowhere"})
	assert.Error(t, err)

	_, err = parseFlags([]string{"-unknown"})
	assert.Error(t, err)
}
