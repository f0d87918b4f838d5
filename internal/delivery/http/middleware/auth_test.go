package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	h "eventdesk/internal/delivery/http/helpers"
	"eventdesk/internal/domain"
)

type fakeVerifier struct {
	participantID string
	role          string
	err           error
}

func (v fakeVerifier) Verify(token string) (string, string, error) {
	if v.err != nil {
		return "", "", v.err
	}
	return v.participantID, v.role, nil
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) h.APIError {
	t.Helper()
	var resp h.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.Error)
	return *resp.Error
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		verifier   fakeVerifier
		wantStatus int
	}{
		{
			name:       "missing header",
			header:     "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "not a bearer token",
			header:     "Basic abc123",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty token",
			header:     "Bearer   ",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "verifier rejects",
			header:     "Bearer bad-token",
			verifier:   fakeVerifier{err: errors.New("expired")},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid token",
			header:     "Bearer good-token",
			verifier:   fakeVerifier{participantID: "p-1", role: domain.RoleParticipant},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID, gotRole string
			next := func(w http.ResponseWriter, r *http.Request) {
				gotID, _ = ParticipantIDFromContext(r.Context())
				gotRole, _ = RoleFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}

			req := httptest.NewRequest(http.MethodGet, "/enrollments", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			RequireAuth(tt.verifier)(next)(rec, req)
			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				require.Equal(t, "p-1", gotID)
				require.Equal(t, domain.RoleParticipant, gotRole)
				return
			}
			require.Equal(t, h.ErrCodeUnauthorized, decodeError(t, rec).Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	next := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}

	t.Run("matching role passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/participants/p-1", nil)
		req = req.WithContext(SetIdentity(req.Context(), "p-1", domain.RoleAdmin))
		rec := httptest.NewRecorder()

		RequireRole(domain.RoleAdmin)(next)(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("other role is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/participants/p-1", nil)
		req = req.WithContext(SetIdentity(req.Context(), "p-1", domain.RoleParticipant))
		rec := httptest.NewRecorder()

		RequireRole(domain.RoleAdmin)(next)(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Equal(t, h.ErrCodeForbidden, decodeError(t, rec).Code)
	})

	t.Run("no identity is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/participants/p-1", nil)
		rec := httptest.NewRecorder()

		RequireRole(domain.RoleAdmin)(next)(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})
}
