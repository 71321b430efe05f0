package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Config is the full roomaudit configuration.
type Config struct {
	// CredentialsFile points at the service-account key with
	// domain-wide delegation.
	CredentialsFile string `json:"credentials_file"`
	// AdminSubject is the identity impersonated for directory reads.
	AdminSubject string `json:"admin_subject"`
	// CustomerID for the Admin SDK, defaults to "my_customer".
	CustomerID string `json:"customer_id"`

	// OrganizationSuffix is the internal mail domain, e.g.
	// "corp.example". Empty disables the external-to-internal match
	// heuristic: all foreign addresses classify as external.
	OrganizationSuffix string `json:"organization_suffix"`

	// Audit horizon in months around the current instant.
	MonthsBehind int `json:"months_behind"`
	MonthsAhead  int `json:"months_ahead"`

	// Rooms optionally pins the audit to specific room addresses. When
	// empty, rooms are enumerated from the directory.
	Rooms []string `json:"rooms"`

	// Utilization thresholds.
	MinimumCapacity int `json:"minimum_capacity"`
	MaxParticipants int `json:"max_participants"`

	Notifications Notifications `json:"notifications"`
	SMTP          SMTP          `json:"smtp"`
}

// Notifications configures ghost-meeting notification requests.
type Notifications struct {
	Enabled bool   `json:"enabled"`
	From    string `json:"from"`
	// Subject and Body are text/template sources rendered with
	// audit.NotificationData. Empty values use built-in wording.
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SMTP configures the outgoing mail server for notifications.
type SMTP struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Defaults returns a Config with sensible defaults applied.
func Defaults() Config {
	return Config{
		CustomerID:      "my_customer",
		MonthsBehind:    0,
		MonthsAhead:     6,
		MinimumCapacity: 6,
		MaxParticipants: 2,
		SMTP:            SMTP{Port: 587},
	}
}

// Load reads and validates the configuration file at path. Values not
// present in the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports configuration errors before any I/O is attempted.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.CredentialsFile) == "" {
		problems = append(problems, "credentials_file is required")
	}
	if strings.TrimSpace(c.AdminSubject) == "" {
		problems = append(problems, "admin_subject is required")
	}
	if c.MonthsBehind < 0 {
		problems = append(problems, "months_behind must not be negative")
	}
	if c.MonthsAhead < 0 {
		problems = append(problems, "months_ahead must not be negative")
	}
	if c.MonthsBehind == 0 && c.MonthsAhead == 0 {
		problems = append(problems, "audit window is empty: months_behind and months_ahead are both zero")
	}
	if c.MinimumCapacity < 0 {
		problems = append(problems, "minimum_capacity must not be negative")
	}
	if c.MaxParticipants < 0 {
		problems = append(problems, "max_participants must not be negative")
	}
	if strings.Contains(c.OrganizationSuffix, "@") {
		problems = append(problems, "organization_suffix must be a bare domain, without @")
	}
	if c.Notifications.Enabled {
		if strings.TrimSpace(c.Notifications.From) == "" {
			problems = append(problems, "notifications.from is required when notifications are enabled")
		}
		if strings.TrimSpace(c.SMTP.Host) == "" {
			problems = append(problems, "smtp.host is required when notifications are enabled")
		}
		if c.SMTP.Port <= 0 || c.SMTP.Port > 65535 {
			problems = append(problems, "smtp.port must be a valid TCP port")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
