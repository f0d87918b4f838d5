package controllers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"eventdesk/internal/delivery/http/helpers"
	"eventdesk/internal/domain"
)

type stubEnrollmentService struct {
	createFn     func(ctx context.Context, participantID, eventID string) (*domain.EnrollmentDetails, error)
	getByIDFn    func(ctx context.Context, id string) (*domain.EnrollmentDetails, error)
	confirmFn    func(ctx context.Context, id string) (*domain.EnrollmentDetails, error)
	cancelFn     func(ctx context.Context, id string) (*domain.EnrollmentDetails, error)
	setStatusFn  func(ctx context.Context, id string, status domain.EnrollmentStatus) (*domain.EnrollmentDetails, error)
	deleteFn     func(ctx context.Context, id string) error
	searchFn     func(ctx context.Context, f domain.EnrollmentFilter, p domain.PaginationParams) ([]*domain.EnrollmentDetails, int, error)
	mostActiveFn func(ctx context.Context, limit int) ([]*domain.ParticipantActivity, error)
}

func (s *stubEnrollmentService) Create(ctx context.Context, participantID, eventID string) (*domain.EnrollmentDetails, error) {
	return s.createFn(ctx, participantID, eventID)
}

func (s *stubEnrollmentService) GetByID(ctx context.Context, id string) (*domain.EnrollmentDetails, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubEnrollmentService) Confirm(ctx context.Context, id string) (*domain.EnrollmentDetails, error) {
	return s.confirmFn(ctx, id)
}

func (s *stubEnrollmentService) Cancel(ctx context.Context, id string) (*domain.EnrollmentDetails, error) {
	return s.cancelFn(ctx, id)
}

func (s *stubEnrollmentService) SetStatus(ctx context.Context, id string, status domain.EnrollmentStatus) (*domain.EnrollmentDetails, error) {
	return s.setStatusFn(ctx, id, status)
}

func (s *stubEnrollmentService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubEnrollmentService) Search(ctx context.Context, f domain.EnrollmentFilter, p domain.PaginationParams) ([]*domain.EnrollmentDetails, int, error) {
	return s.searchFn(ctx, f, p)
}

func (s *stubEnrollmentService) MostActiveParticipants(ctx context.Context, limit int) ([]*domain.ParticipantActivity, error) {
	return s.mostActiveFn(ctx, limit)
}

const (
	testParticipantID = "11111111-1111-1111-1111-111111111111"
	testEventID       = "22222222-2222-2222-2222-222222222222"
	testEnrollmentID  = "33333333-3333-3333-3333-333333333333"
)

func testDetails(status domain.EnrollmentStatus) *domain.EnrollmentDetails {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &domain.EnrollmentDetails{
		Enrollment: &domain.Enrollment{
			ID:            testEnrollmentID,
			ParticipantID: testParticipantID,
			EventID:       testEventID,
			Status:        status,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		ParticipantName: "Alice",
		EventName:       "GopherCon",
	}
}

func newEnrollmentController(svc domain.EnrollmentService) *EnrollmentController {
	return NewEnrollmentController(slog.New(slog.DiscardHandler), svc)
}

func decodeAPIResponse(t *testing.T, rec *httptest.ResponseRecorder) helpers.APIResponse {
	t.Helper()
	var resp helpers.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestEnrollmentController_Create(t *testing.T) {
	validBody := `{"participant_id": "` + testParticipantID + `", "event_id": "` + testEventID + `"}`

	tests := []struct {
		name        string
		body        string
		serviceErr  error
		wantStatus  int
		wantErrCode string
	}{
		{
			name:       "created",
			body:       validBody,
			wantStatus: http.StatusCreated,
		},
		{
			name:        "missing fields",
			body:        `{}`,
			wantStatus:  http.StatusBadRequest,
			wantErrCode: helpers.ErrCodeBadRequest,
		},
		{
			name:        "not a uuid",
			body:        `{"participant_id": "abc", "event_id": "def"}`,
			wantStatus:  http.StatusBadRequest,
			wantErrCode: helpers.ErrCodeBadRequest,
		},
		{
			name:        "participant or event missing",
			body:        validBody,
			serviceErr:  domain.ErrNotFound,
			wantStatus:  http.StatusNotFound,
			wantErrCode: helpers.ErrCodeNotFound,
		},
		{
			name:        "already enrolled",
			body:        validBody,
			serviceErr:  domain.ErrAlreadyEnrolled,
			wantStatus:  http.StatusConflict,
			wantErrCode: helpers.ErrCodeConflict,
		},
		{
			name:        "event not open",
			body:        validBody,
			serviceErr:  domain.ErrEventNotOpen,
			wantStatus:  http.StatusUnprocessableEntity,
			wantErrCode: helpers.ErrCodeInvalidOperation,
		},
		{
			name:        "event full",
			body:        validBody,
			serviceErr:  domain.ErrEventFull,
			wantStatus:  http.StatusConflict,
			wantErrCode: helpers.ErrCodeCapacityExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubEnrollmentService{
				createFn: func(ctx context.Context, participantID, eventID string) (*domain.EnrollmentDetails, error) {
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					return testDetails(domain.EnrollmentPending), nil
				},
			}
			ctrl := newEnrollmentController(svc)

			req := httptest.NewRequest(http.MethodPost, "/enrollments", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			ctrl.Create(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			resp := decodeAPIResponse(t, rec)
			if tt.wantErrCode != "" {
				require.NotNil(t, resp.Error)
				require.Equal(t, tt.wantErrCode, resp.Error.Code)
				return
			}
			require.Nil(t, resp.Error)
			require.NotNil(t, resp.Data)
		})
	}
}

func TestEnrollmentController_Confirm(t *testing.T) {
	t.Run("confirms", func(t *testing.T) {
		svc := &stubEnrollmentService{
			confirmFn: func(ctx context.Context, id string) (*domain.EnrollmentDetails, error) {
				require.Equal(t, testEnrollmentID, id)
				return testDetails(domain.EnrollmentConfirmed), nil
			},
		}
		ctrl := newEnrollmentController(svc)

		req := httptest.NewRequest(http.MethodPost, "/enrollments/"+testEnrollmentID+"/confirm", nil)
		req.SetPathValue("enrollmentID", testEnrollmentID)
		rec := httptest.NewRecorder()
		ctrl.Confirm(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid transition", func(t *testing.T) {
		svc := &stubEnrollmentService{
			confirmFn: func(ctx context.Context, id string) (*domain.EnrollmentDetails, error) {
				return nil, domain.ErrInvalidTransition
			},
		}
		ctrl := newEnrollmentController(svc)

		req := httptest.NewRequest(http.MethodPost, "/enrollments/"+testEnrollmentID+"/confirm", nil)
		req.SetPathValue("enrollmentID", testEnrollmentID)
		rec := httptest.NewRecorder()
		ctrl.Confirm(rec, req)

		require.Equal(t, http.StatusConflict, rec.Code)
		require.Equal(t, helpers.ErrCodeInvalidTransition, decodeAPIResponse(t, rec).Error.Code)
	})

	t.Run("bad uuid", func(t *testing.T) {
		ctrl := newEnrollmentController(&stubEnrollmentService{})

		req := httptest.NewRequest(http.MethodPost, "/enrollments/nope/confirm", nil)
		req.SetPathValue("enrollmentID", "nope")
		rec := httptest.NewRecorder()
		ctrl.Confirm(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestEnrollmentController_SetStatus(t *testing.T) {
	t.Run("normalizes status", func(t *testing.T) {
		var gotStatus domain.EnrollmentStatus
		svc := &stubEnrollmentService{
			setStatusFn: func(ctx context.Context, id string, status domain.EnrollmentStatus) (*domain.EnrollmentDetails, error) {
				gotStatus = status
				return testDetails(status), nil
			},
		}
		ctrl := newEnrollmentController(svc)

		req := httptest.NewRequest(http.MethodPatch, "/enrollments/"+testEnrollmentID+"/status",
			strings.NewReader(`{"status": " confirmed "}`))
		req.SetPathValue("enrollmentID", testEnrollmentID)
		rec := httptest.NewRecorder()
		ctrl.SetStatus(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, domain.EnrollmentConfirmed, gotStatus)
	})

	t.Run("unknown status", func(t *testing.T) {
		svc := &stubEnrollmentService{
			setStatusFn: func(ctx context.Context, id string, status domain.EnrollmentStatus) (*domain.EnrollmentDetails, error) {
				return nil, domain.ErrInvalidInput
			},
		}
		ctrl := newEnrollmentController(svc)

		req := httptest.NewRequest(http.MethodPatch, "/enrollments/"+testEnrollmentID+"/status",
			strings.NewReader(`{"status": "LOST"}`))
		req.SetPathValue("enrollmentID", testEnrollmentID)
		rec := httptest.NewRecorder()
		ctrl.SetStatus(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestEnrollmentController_Search(t *testing.T) {
	t.Run("passes filter through", func(t *testing.T) {
		var gotFilter domain.EnrollmentFilter
		svc := &stubEnrollmentService{
			searchFn: func(ctx context.Context, f domain.EnrollmentFilter, p domain.PaginationParams) ([]*domain.EnrollmentDetails, int, error) {
				gotFilter = f
				return []*domain.EnrollmentDetails{testDetails(domain.EnrollmentConfirmed)}, 1, nil
			},
		}
		ctrl := newEnrollmentController(svc)

		req := httptest.NewRequest(http.MethodGet,
			"/enrollments?participant_id="+testParticipantID+"&status=confirmed&created_from=2025-01-01T00:00:00Z", nil)
		rec := httptest.NewRecorder()
		ctrl.Search(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, testParticipantID, gotFilter.ParticipantID)
		require.Equal(t, domain.EnrollmentConfirmed, gotFilter.Status)
		require.NotNil(t, gotFilter.CreatedFrom)

		resp := decodeAPIResponse(t, rec)
		require.NotNil(t, resp.Pagination)
		require.Equal(t, 1, resp.Pagination.Total)
	})

	t.Run("rejects bad participant_id", func(t *testing.T) {
		ctrl := newEnrollmentController(&stubEnrollmentService{})

		req := httptest.NewRequest(http.MethodGet, "/enrollments?participant_id=nope", nil)
		rec := httptest.NewRecorder()
		ctrl.Search(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects bad timestamp", func(t *testing.T) {
		ctrl := newEnrollmentController(&stubEnrollmentService{})

		req := httptest.NewRequest(http.MethodGet, "/enrollments?created_from=yesterday", nil)
		rec := httptest.NewRecorder()
		ctrl.Search(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestEnrollmentController_Delete(t *testing.T) {
	svc := &stubEnrollmentService{
		deleteFn: func(ctx context.Context, id string) error {
			return domain.ErrNotFound
		},
	}
	ctrl := newEnrollmentController(svc)

	req := httptest.NewRequest(http.MethodDelete, "/enrollments/"+testEnrollmentID, nil)
	req.SetPathValue("enrollmentID", testEnrollmentID)
	rec := httptest.NewRecorder()
	ctrl.Delete(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEnrollmentController_MostActive(t *testing.T) {
	var gotLimit int
	svc := &stubEnrollmentService{
		mostActiveFn: func(ctx context.Context, limit int) ([]*domain.ParticipantActivity, error) {
			gotLimit = limit
			return nil, nil
		},
	}
	ctrl := newEnrollmentController(svc)

	req := httptest.NewRequest(http.MethodGet, "/reports/most-active-participants?limit=5", nil)
	rec := httptest.NewRecorder()
	ctrl.MostActive(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 5, gotLimit)

	// A nil slice from the service still renders as an empty JSON array.
	resp := decodeAPIResponse(t, rec)
	require.NotNil(t, resp.Data)
}
