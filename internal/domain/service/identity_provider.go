package service

import (
	"context"
)

// Credentials are issued by a successful sign-in.
type Credentials struct {
	UID          string `json:"uid"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	ExpiresIn    int    `json:"expiresIn,omitempty"`
}

// IdentityProvider is the account side of the remote collaborator.
// Failures are returned as auth sub-kind errors where the provider reports
// one, and as remote operation errors otherwise.
type IdentityProvider interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	SignIn(ctx context.Context, email, password string) (*Credentials, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	RevokeSessions(ctx context.Context, uid string) error
	EmailRegistered(ctx context.Context, email string) (bool, error)
}
