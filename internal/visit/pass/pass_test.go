package pass

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "foyer/pkg/domain"
	dErrors "foyer/pkg/domain-errors"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewIssuer("test-signing-key", time.Hour)
	visitID := id.VisitID(uuid.New())
	visitorID := id.VisitorID(uuid.New())

	token, err := issuer.Issue(visitID, visitorID, time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	verified, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, visitID, verified)
}

func TestVerifyRejectsExpiredPass(t *testing.T) {
	issuer := NewIssuer("test-signing-key", time.Hour)

	token, err := issuer.Issue(id.VisitID(uuid.New()), id.VisitorID(uuid.New()), time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	assert.Contains(t, dErrors.MessageOf(err), "expired")
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	token, err := NewIssuer("key-one", time.Hour).
		Issue(id.VisitID(uuid.New()), id.VisitorID(uuid.New()), time.Now())
	require.NoError(t, err)

	_, err = NewIssuer("key-two", time.Hour).Verify(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer := NewIssuer("test-signing-key", time.Hour)

	_, err := issuer.Verify("not.a.token")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
