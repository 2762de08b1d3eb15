package firebase

import (
	"context"

	"firebase.google.com/go/v4/auth"

	"b2bmarket/internal/domain/service"
	"b2bmarket/pkg/errors"
	"b2bmarket/pkg/logger"
)

// FirebaseAuthClient is the production identity provider: the Admin SDK for
// account management and token checks, the toolkit for password sign-in.
type FirebaseAuthClient struct {
	client  *auth.Client
	toolkit *IdentityToolkit
}

func NewFirebaseAuthClient(client *auth.Client, toolkit *IdentityToolkit) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client:  client,
		toolkit: toolkit,
	}
}

var _ service.IdentityProvider = (*FirebaseAuthClient)(nil)

func (f *FirebaseAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	user, err := f.client.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return "", errors.DuplicateAccount(err)
		}
		logger.RemoteFailure("create account", email, err)
		return "", errors.Remote("create account", err)
	}

	return user.UID, nil
}

func (f *FirebaseAuthClient) SignIn(ctx context.Context, email, password string) (*service.Credentials, error) {
	return f.toolkit.SignInWithEmailPassword(ctx, email, password)
}

// VerifyToken rejects tokens issued before the last RevokeSessions call.
func (f *FirebaseAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	result, err := f.client.VerifyIDTokenAndCheckRevoked(ctx, token)
	if err != nil {
		if !auth.IsIDTokenRevoked(err) && !auth.IsIDTokenExpired(err) && !auth.IsIDTokenInvalid(err) {
			logger.Warn("Token verification failed: %v", err)
		}
		return "", errors.Unauthorized("Invalid or expired token", err)
	}

	return result.UID, nil
}

func (f *FirebaseAuthClient) RevokeSessions(ctx context.Context, uid string) error {
	if err := f.client.RevokeRefreshTokens(ctx, uid); err != nil {
		logger.RemoteFailure("revoke sessions", uid, err)
		return errors.Remote("revoke sessions", err)
	}
	return nil
}

func (f *FirebaseAuthClient) EmailRegistered(ctx context.Context, email string) (bool, error) {
	if _, err := f.client.GetUserByEmail(ctx, email); err != nil {
		if auth.IsUserNotFound(err) {
			return false, nil
		}
		logger.RemoteFailure("lookup account", email, err)
		return false, errors.Remote("lookup account", err)
	}
	return true, nil
}
