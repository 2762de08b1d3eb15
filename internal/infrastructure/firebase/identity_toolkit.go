package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"b2bmarket/internal/domain/service"
	"b2bmarket/pkg/errors"
	"b2bmarket/pkg/logger"
)

// IdentityToolkit signs users in with email and password through the
// Identity Toolkit REST API. The Admin SDK has no password sign-in.
type IdentityToolkit struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewIdentityToolkit(baseURL, apiKey string) *IdentityToolkit {
	return &IdentityToolkit{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	LocalID      string `json:"localId"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type toolkitError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (t *IdentityToolkit) SignInWithEmailPassword(ctx context.Context, email, password string) (*service.Credentials, error) {
	body, err := json.Marshal(signInRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return nil, errors.Internal("Failed to encode sign-in request", err)
	}

	url := fmt.Sprintf("%s/v1/accounts:signInWithPassword?key=%s", t.baseURL, t.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Internal("Failed to build sign-in request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		logger.RemoteFailure("sign in", email, err)
		return nil, errors.Remote("sign in", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var te toolkitError
		if err := json.NewDecoder(resp.Body).Decode(&te); err != nil {
			logger.RemoteFailure("sign in", email, err)
			return nil, errors.Remote("sign in", fmt.Errorf("status %d", resp.StatusCode))
		}
		return nil, mapToolkitError(email, te.Error.Message)
	}

	var out signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		logger.RemoteFailure("sign in", email, err)
		return nil, errors.Remote("sign in", err)
	}

	expires, _ := strconv.Atoi(out.ExpiresIn)
	return &service.Credentials{
		UID:          out.LocalID,
		IDToken:      out.IDToken,
		RefreshToken: out.RefreshToken,
		ExpiresIn:    expires,
	}, nil
}

// mapToolkitError turns provider codes such as "INVALID_PASSWORD" or
// "TOO_MANY_ATTEMPTS_TRY_LATER : ..." into auth sub-kinds.
func mapToolkitError(email, message string) error {
	code := strings.TrimSpace(strings.SplitN(message, ":", 2)[0])
	cause := fmt.Errorf("identity toolkit: %s", message)

	switch code {
	case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "USER_DISABLED":
		return errors.InvalidCredentials(cause)
	case "INVALID_EMAIL":
		return errors.InvalidEmail(cause)
	case "TOO_MANY_ATTEMPTS_TRY_LATER":
		return errors.AuthRateLimited(cause)
	case "EMAIL_EXISTS":
		return errors.DuplicateAccount(cause)
	case "WEAK_PASSWORD":
		return errors.WeakCredential(cause)
	}
	logger.RemoteFailure("sign in", email, cause)
	return errors.Remote("sign in", cause)
}
