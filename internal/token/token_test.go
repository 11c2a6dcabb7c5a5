package token

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crewhub/internal/errs"
)

func TestIssueVerifyRoundtrip(t *testing.T) {
	t.Parallel()
	svc := New([]byte("test-secret"), time.Hour)

	tok, err := svc.Issue("alice@crewhub.local", 42, nil)
	require.NoError(t, err)
	require.Len(t, strings.Split(tok, "."), 3)

	claims, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice@crewhub.local", claims.Subject)
	assert.Equal(t, uint(42), claims.UserID)
}

func TestVerifyExpired(t *testing.T) {
	t.Parallel()
	svc := New([]byte("test-secret"), -time.Minute)

	tok, err := svc.Issue("alice@crewhub.local", 42, nil)
	require.NoError(t, err)

	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, errs.ErrTokenExpired)
}

func TestVerifyWrongSecret(t *testing.T) {
	t.Parallel()
	issuer := New([]byte("secret-one"), time.Hour)
	verifier := New([]byte("secret-two"), time.Hour)

	tok, err := issuer.Issue("alice@crewhub.local", 42, nil)
	require.NoError(t, err)

	_, err = verifier.Verify(tok)
	assert.ErrorIs(t, err, errs.ErrBadSignature)
}

func TestVerifyTamperedSignature(t *testing.T) {
	t.Parallel()
	svc := New([]byte("test-secret"), time.Hour)

	tok, err := svc.Issue("alice@crewhub.local", 42, nil)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	require.NoError(t, err)

	// Перевёрнутый бит в подписи обязан давать именно отказ подписи.
	sig[0] ^= 0x01
	parts[2] = base64.RawURLEncoding.EncodeToString(sig)

	_, err = svc.Verify(strings.Join(parts, "."))
	assert.ErrorIs(t, err, errs.ErrBadSignature)
}

func TestVerifyMalformed(t *testing.T) {
	t.Parallel()
	svc := New([]byte("test-secret"), time.Hour)

	for _, tok := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := svc.Verify(tok)
		assert.ErrorIs(t, err, errs.ErrTokenMalformed, "token %q", tok)
	}
}

func TestVerifyRejectsUnsignedAlg(t *testing.T) {
	t.Parallel()
	svc := New([]byte("test-secret"), time.Hour)

	// Собранный вручную токен с alg=none не должен проходить.
	enc := base64.RawURLEncoding.EncodeToString
	tok := enc([]byte(`{"alg":"none","typ":"JWT"}`)) + "." +
		enc([]byte(`{"sub":"alice@crewhub.local","uid":42}`)) + "."

	_, err := svc.Verify(tok)
	assert.ErrorIs(t, err, errs.ErrTokenUnsupported)
}

func TestMatchesIdentity(t *testing.T) {
	t.Parallel()
	svc := New([]byte("test-secret"), time.Hour)

	tok, err := svc.Issue("alice@crewhub.local", 42, nil)
	require.NoError(t, err)

	assert.True(t, svc.MatchesIdentity(tok, "alice@crewhub.local"))
	assert.False(t, svc.MatchesIdentity(tok, "bob@crewhub.local"))
	assert.False(t, svc.MatchesIdentity("garbage", "alice@crewhub.local"))
}
