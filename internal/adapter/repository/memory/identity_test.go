package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "b2bmarket/pkg/errors"
)

func TestIdentityLifecycle(t *testing.T) {
	ctx := context.Background()
	p := NewFastIdentityProvider()

	uid, err := p.CreateUser(ctx, "Asha@Example.com", "secret1", "Asha")
	require.NoError(t, err)

	_, err = p.CreateUser(ctx, "asha@example.com", "other12", "Asha")
	assert.True(t, apperrors.Is(err, apperrors.CodeDuplicateAccount))

	registered, err := p.EmailRegistered(ctx, "ASHA@example.com")
	require.NoError(t, err)
	assert.True(t, registered)

	_, err = p.SignIn(ctx, "asha@example.com", "wrong")
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidCredentials))

	creds, err := p.SignIn(ctx, "asha@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, uid, creds.UID)

	got, err := p.VerifyToken(ctx, creds.IDToken)
	require.NoError(t, err)
	assert.Equal(t, uid, got)

	require.NoError(t, p.RevokeSessions(ctx, uid))
	_, err = p.VerifyToken(ctx, creds.IDToken)
	assert.True(t, apperrors.Is(err, apperrors.CodeUnauthorized))
}
