package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want func(conf *Config)
	}{
		{
			name: "defaults",
			env:  map[string]string{"ENV": ""},
			want: func(conf *Config) {
				assert.Equal(t, "DEV", conf.Env)
				assert.True(t, conf.Debug)
				assert.False(t, conf.TestMode)
				assert.Equal(t, "School Agenda", conf.AppName)
				assert.Equal(t, ":8000", conf.Server.Address)
				assert.Equal(t, ":4000", conf.Server.DebugHost)
				assert.Equal(t, 5*time.Second, conf.Server.ShutdownTimeout)
				assert.Equal(t, 7*24*time.Hour, conf.Server.JWTExpirationDelta)
				assert.Equal(t, 900*time.Millisecond, conf.Session.LoginLatency)
			},
		},
		{
			name: "test mode",
			env:  map[string]string{"ENV": "test"},
			want: func(conf *Config) {
				assert.Equal(t, "TEST", conf.Env)
				assert.True(t, conf.TestMode)
				assert.Equal(t, ":8000", conf.Server.Address)
			},
		},
		{
			name: "env overrides",
			env: map[string]string{
				"ENV":                       "prod",
				"PROD_DEBUG":                "false",
				"PROD_SERVER_ADDRESS":       ":9000",
				"PROD_SESSION_LOGINLATENCY": "0s",
			},
			want: func(conf *Config) {
				assert.Equal(t, "PROD", conf.Env)
				assert.False(t, conf.Debug)
				assert.Equal(t, ":9000", conf.Server.Address)
				assert.Zero(t, conf.Session.LoginLatency)
				assert.Equal(t, 7*24*time.Hour, conf.Server.JWTExpirationDelta)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			tt.want(NewConfig())
		})
	}
}
