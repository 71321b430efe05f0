package google

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCredentialsMissingFile(t *testing.T) {
	_, err := LoadCredentials(filepath.Join(t.TempDir(), "nope.json"), AuditScopes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read service account key")
}

func TestLoadCredentialsMalformedKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type": "nonsense"}`), 0o600))

	_, err := LoadCredentials(path, AuditScopes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid service account key")
}

func TestClientForSubjectRequiresSubject(t *testing.T) {
	creds := &Credentials{keyJSON: []byte(`{}`), scopes: AuditScopes}
	_, err := creds.ClientForSubject(context.Background(), "")
	assert.Error(t, err)
}
