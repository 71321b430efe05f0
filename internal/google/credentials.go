package google

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2/google"
)

// Credentials wraps a service-account key with domain-wide delegation
// and derives per-subject HTTP clients from it.
type Credentials struct {
	keyJSON []byte
	scopes  []string
}

// LoadCredentials reads a service-account key file and validates that
// it can produce JWT configs for the audit scopes.
func LoadCredentials(path string, scopes []string) (*Credentials, error) {
	if len(scopes) == 0 {
		scopes = AuditScopes
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read service account key %s: %w", path, err)
	}
	// Validate eagerly so a malformed key fails at startup, not on the
	// first resource.
	if _, err := google.JWTConfigFromJSON(data, scopes...); err != nil {
		return nil, fmt.Errorf("invalid service account key %s: %w", path, err)
	}
	return &Credentials{keyJSON: data, scopes: scopes}, nil
}

// ClientForSubject returns an HTTP client whose requests act as the
// given subject. A client is bound to exactly one subject for its
// whole lifetime.
func (c *Credentials) ClientForSubject(ctx context.Context, subject string) (*http.Client, error) {
	if subject == "" {
		return nil, fmt.Errorf("impersonation subject must not be empty")
	}
	conf, err := google.JWTConfigFromJSON(c.keyJSON, c.scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to build JWT config: %w", err)
	}
	conf.Subject = subject
	return conf.Client(ctx), nil
}
