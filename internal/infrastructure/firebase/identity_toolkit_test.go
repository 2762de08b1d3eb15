package firebase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "b2bmarket/pkg/errors"
)

func TestSignInSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/accounts:signInWithPassword", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req signInRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "a@b.co", req.Email)
		assert.True(t, req.ReturnSecureToken)

		json.NewEncoder(w).Encode(signInResponse{
			LocalID:      "uid-1",
			IDToken:      "id-token",
			RefreshToken: "refresh",
			ExpiresIn:    "3600",
		})
	}))
	defer srv.Close()

	creds, err := NewIdentityToolkit(srv.URL+"/", "test-key").SignInWithEmailPassword(context.Background(), "a@b.co", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", creds.UID)
	assert.Equal(t, "id-token", creds.IDToken)
	assert.Equal(t, 3600, creds.ExpiresIn)
}

func TestSignInErrorMapping(t *testing.T) {
	tests := []struct {
		message string
		code    string
	}{
		{"EMAIL_NOT_FOUND", apperrors.CodeInvalidCredentials},
		{"INVALID_PASSWORD", apperrors.CodeInvalidCredentials},
		{"INVALID_LOGIN_CREDENTIALS", apperrors.CodeInvalidCredentials},
		{"INVALID_EMAIL", apperrors.CodeInvalidEmail},
		{"TOO_MANY_ATTEMPTS_TRY_LATER : Access to this account has been temporarily disabled", apperrors.CodeAuthRateLimited},
		{"OPERATION_NOT_ALLOWED", apperrors.CodeRemoteOperation},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				var body toolkitError
				body.Error.Code = http.StatusBadRequest
				body.Error.Message = tt.message
				json.NewEncoder(w).Encode(body)
			}))
			defer srv.Close()

			_, err := NewIdentityToolkit(srv.URL, "k").SignInWithEmailPassword(context.Background(), "a@b.co", "x")
			assert.True(t, apperrors.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestSignInUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := NewIdentityToolkit(srv.URL, "k").SignInWithEmailPassword(context.Background(), "a@b.co", "x")
	assert.True(t, apperrors.IsRemote(err))
}
