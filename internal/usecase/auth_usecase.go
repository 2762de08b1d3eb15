package usecase

import (
	"context"

	"b2bmarket/internal/domain/entity"
	"b2bmarket/internal/domain/repository"
	"b2bmarket/internal/domain/rules"
	"b2bmarket/internal/domain/service"
	"b2bmarket/pkg/errors"
	"b2bmarket/pkg/logger"
)

type AuthUseCase struct {
	userRepo repository.UserRepository
	identity service.IdentityProvider
	sessions *SessionHub
	inflight *InFlight
}

func NewAuthUseCase(userRepo repository.UserRepository, identity service.IdentityProvider, sessions *SessionHub, inflight *InFlight) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		identity: identity,
		sessions: sessions,
		inflight: inflight,
	}
}

type AuthResult struct {
	User         *entity.UserProfile `json:"user"`
	Token        string              `json:"token"`
	RefreshToken string              `json:"refreshToken,omitempty"`
	ExpiresIn    int                 `json:"expiresIn,omitempty"`
}

func (uc *AuthUseCase) Register(ctx context.Context, input rules.RegistrationInput) (*AuthResult, error) {
	if err := rules.ValidateRegistration(input); err != nil {
		return nil, err
	}
	email := rules.NormalizeEmail(input.Email)

	done, err := uc.inflight.Begin(email, "register")
	if err != nil {
		return nil, err
	}
	defer done()

	registered, err := uc.identity.EmailRegistered(ctx, email)
	if err != nil {
		return nil, err
	}
	if registered {
		return nil, errors.DuplicateAccount(nil)
	}
	// A profile can outlive its identity account.
	if _, err := uc.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, errors.DuplicateAccount(nil)
	} else if !errors.IsNotFound(err) {
		return nil, err
	}

	uid, err := uc.identity.CreateUser(ctx, email, input.Password, input.Name)
	if err != nil {
		return nil, err
	}

	user := rules.NewProfile(uid, input)
	if err := uc.userRepo.Create(ctx, user); err != nil {
		logger.Error("Account %s created without a profile: %v", uid, err)
		return nil, err
	}

	creds, err := uc.identity.SignIn(ctx, email, input.Password)
	if err != nil {
		return nil, err
	}

	logger.Info("Registered %s account %s", user.Role, uid)
	uc.sessions.Publish(SessionEvent{Kind: SessionPresent, UID: uid, Profile: user})

	return &AuthResult{
		User:         user,
		Token:        creds.IDToken,
		RefreshToken: creds.RefreshToken,
		ExpiresIn:    creds.ExpiresIn,
	}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if err := rules.ValidateLogin(email, password); err != nil {
		return nil, err
	}

	creds, err := uc.identity.SignIn(ctx, rules.NormalizeEmail(email), password)
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByID(ctx, creds.UID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.Unauthorized("Account profile not found", err)
		}
		return nil, err
	}

	uc.sessions.Publish(SessionEvent{Kind: SessionPresent, UID: user.ID, Profile: user})

	return &AuthResult{
		User:         user,
		Token:        creds.IDToken,
		RefreshToken: creds.RefreshToken,
		ExpiresIn:    creds.ExpiresIn,
	}, nil
}

// Authenticate turns a bearer token into a Session.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*Session, error) {
	uid, err := uc.identity.VerifyToken(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.Unauthorized("Account profile not found", err)
		}
		return nil, err
	}

	return &Session{UID: uid, Token: token, Profile: user}, nil
}

// Logout revokes the account's tokens and tears down its live feeds.
func (uc *AuthUseCase) Logout(ctx context.Context, session *Session) error {
	if err := uc.identity.RevokeSessions(ctx, session.UID); err != nil {
		return err
	}
	uc.sessions.Publish(SessionEvent{Kind: SessionAbsent, UID: session.UID})
	return nil
}

func (uc *AuthUseCase) Me(session *Session) *entity.UserProfile {
	return session.Profile
}
