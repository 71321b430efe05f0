package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roomaudit.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"credentials_file": "/etc/roomaudit/key.json",
		"admin_subject": "admin@corp.example",
		"organization_suffix": "corp.example"
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "my_customer", cfg.CustomerID)
	assert.Equal(t, 0, cfg.MonthsBehind)
	assert.Equal(t, 6, cfg.MonthsAhead)
	assert.Equal(t, 6, cfg.MinimumCapacity)
	assert.Equal(t, 2, cfg.MaxParticipants)
	assert.Equal(t, 587, cfg.SMTP.Port)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"credentials_file": "/etc/roomaudit/key.json",
		"admin_subject": "admin@corp.example",
		"customer_id": "C0123",
		"months_behind": 3,
		"months_ahead": 12,
		"rooms": ["room-a@corp.example"],
		"minimum_capacity": 10,
		"max_participants": 4
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "C0123", cfg.CustomerID)
	assert.Equal(t, 3, cfg.MonthsBehind)
	assert.Equal(t, 12, cfg.MonthsAhead)
	assert.Equal(t, []string{"room-a@corp.example"}, cfg.Rooms)
	assert.Equal(t, 10, cfg.MinimumCapacity)
	assert.Equal(t, 4, cfg.MaxParticipants)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadMalformedJSON(t *testing.T) {
	path := writeConfig(t, `{"credentials_file": `)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		cfg := Defaults()
		cfg.CredentialsFile = "/etc/roomaudit/key.json"
		cfg.AdminSubject = "admin@corp.example"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing credentials file",
			mutate:  func(c *Config) { c.CredentialsFile = " " },
			wantErr: "credentials_file is required",
		},
		{
			name:    "missing admin subject",
			mutate:  func(c *Config) { c.AdminSubject = "" },
			wantErr: "admin_subject is required",
		},
		{
			name:    "negative months behind",
			mutate:  func(c *Config) { c.MonthsBehind = -1 },
			wantErr: "months_behind must not be negative",
		},
		{
			name: "empty window",
			mutate: func(c *Config) {
				c.MonthsBehind = 0
				c.MonthsAhead = 0
			},
			wantErr: "audit window is empty",
		},
		{
			name:    "suffix with at sign",
			mutate:  func(c *Config) { c.OrganizationSuffix = "@corp.example" },
			wantErr: "organization_suffix must be a bare domain",
		},
		{
			name: "notifications without sender",
			mutate: func(c *Config) {
				c.Notifications.Enabled = true
				c.SMTP.Host = "smtp.corp.example"
			},
			wantErr: "notifications.from is required",
		},
		{
			name: "notifications without smtp host",
			mutate: func(c *Config) {
				c.Notifications.Enabled = true
				c.Notifications.From = "audit@corp.example"
			},
			wantErr: "smtp.host is required",
		},
		{
			name: "invalid smtp port",
			mutate: func(c *Config) {
				c.Notifications.Enabled = true
				c.Notifications.From = "audit@corp.example"
				c.SMTP.Host = "smtp.corp.example"
				c.SMTP.Port = 70000
			},
			wantErr: "smtp.port must be a valid TCP port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := Config{MonthsBehind: -1}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credentials_file is required")
	assert.Contains(t, err.Error(), "admin_subject is required")
	assert.Contains(t, err.Error(), "months_behind must not be negative")
}
