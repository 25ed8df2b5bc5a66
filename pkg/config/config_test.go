package config

import (
	"testing"
	"time"
)

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_HOST", "cache.local")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("PROTOCOL_CACHE_TTL", "2h")
	t.Setenv("JWT_ACCESS_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Fatalf("expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Redis.ProtocolCacheTTL != 2*time.Hour {
		t.Fatalf("expected cache ttl 2h, got %s", cfg.Redis.ProtocolCacheTTL)
	}
	if got := cfg.GetRedisAddr(); got != "cache.local:6380" {
		t.Fatalf("unexpected redis addr %s", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "development defaults", mutate: func(c *Config) {}},
		{name: "missing secret", mutate: func(c *Config) { c.JWT.AccessSecret = "" }, wantErr: true},
		{name: "production default secret", mutate: func(c *Config) { c.Server.Environment = "production" }, wantErr: true},
		{name: "production auto migrate", mutate: func(c *Config) {
			c.Server.Environment = "production"
			c.JWT.AccessSecret = "s3cret"
			c.Database.AutoMigrate = true
		}, wantErr: true},
		{name: "production ok", mutate: func(c *Config) {
			c.Server.Environment = "production"
			c.JWT.AccessSecret = "s3cret"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Server:   ServerConfig{Environment: "development"},
				Database: DatabaseConfig{MaxConns: 5},
				JWT:      JWTConfig{AccessSecret: defaultAccessSecret},
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
