package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	mgr := TokenManager{Secret: []byte("test-secret")}

	raw, err := mgr.Issue("usr-1", []string{"admin"})
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := mgr.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "usr-1", claims.Subject)
	assert.Equal(t, []string{"admin"}, claims.Roles)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	raw, err := TokenManager{Secret: []byte("secret-a")}.Issue("usr-1", nil)
	require.NoError(t, err)

	_, err = TokenManager{Secret: []byte("secret-b")}.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	mgr := TokenManager{Secret: []byte("test-secret"), TTL: -time.Hour}
	raw, err := mgr.Issue("usr-1", nil)
	require.NoError(t, err)

	_, err = mgr.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	mgr := TokenManager{Secret: []byte("test-secret")}
	_, err := mgr.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRequiresSecret(t *testing.T) {
	var mgr TokenManager
	_, err := mgr.Issue("usr-1", nil)
	assert.ErrorIs(t, err, ErrNoSecret)
	_, err = mgr.Parse("whatever")
	assert.ErrorIs(t, err, ErrNoSecret)
}
