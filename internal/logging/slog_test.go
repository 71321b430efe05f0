package logging

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnonymizeEmail(t *testing.T) {
	hash := AnonymizeEmail("Alice@Corp.Example")

	assert.True(t, len(hash) > 5)
	assert.Equal(t, "user:", hash[:5])
	assert.Equal(t, hash, AnonymizeEmail("alice@corp.example"),
		"hashing must be case-insensitive for correlation")
	assert.NotEqual(t, hash, AnonymizeEmail("bob@corp.example"))
	assert.Empty(t, AnonymizeEmail(""))
}

func TestExtractDomain(t *testing.T) {
	assert.Equal(t, "corp.example", ExtractDomain("alice@corp.example"))
	assert.Empty(t, ExtractDomain("not-an-email"))
	assert.Empty(t, ExtractDomain("a@b@c"))
	assert.Empty(t, ExtractDomain(""))
}

func TestErr(t *testing.T) {
	attr := Err(errors.New("boom"))
	assert.Equal(t, KeyError, attr.Key)
	assert.Equal(t, "boom", attr.Value.String())

	empty := Err(nil)
	assert.Empty(t, empty.Key)
	assert.Equal(t, slog.KindGroup, empty.Value.Kind())
}

func TestAttributeKeys(t *testing.T) {
	assert.Equal(t, KeyResource, Resource("room-a@corp.example").Key)
	assert.Equal(t, KeyMeeting, Meeting("item-1").Key)
	assert.Equal(t, KeyAnalysis, Analysis("ghosts").Key)
	assert.Equal(t, KeyStatus, Status(StatusSuccess).Key)
	assert.Equal(t, KeyUserHash, UserHash("alice@corp.example").Key)
}
