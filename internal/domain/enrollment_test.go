package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewEnrollment(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e := NewEnrollment("p-1", "ev-1", now, now)

	require.Equal(t, "p-1", e.ParticipantID)
	require.Equal(t, "ev-1", e.EventID)
	require.Equal(t, EnrollmentPending, e.Status)
	require.Equal(t, now, e.CreatedAt)
}

func TestEnrollment_Confirm(t *testing.T) {
	tests := []struct {
		name    string
		status  EnrollmentStatus
		wantErr bool
	}{
		{name: "pending confirms", status: EnrollmentPending, wantErr: false},
		{name: "already confirmed", status: EnrollmentConfirmed, wantErr: true},
		{name: "cancelled stays cancelled", status: EnrollmentCancelled, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Enrollment{Status: tt.status}
			err := e.Confirm()
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, errors.Is(err, ErrInvalidTransition))
				require.Equal(t, tt.status, e.Status)
				return
			}
			require.NoError(t, err)
			require.Equal(t, EnrollmentConfirmed, e.Status)
		})
	}
}

func TestEnrollment_Cancel(t *testing.T) {
	tests := []struct {
		name    string
		status  EnrollmentStatus
		wantErr bool
	}{
		{name: "pending cancels", status: EnrollmentPending, wantErr: false},
		{name: "confirmed cancels", status: EnrollmentConfirmed, wantErr: false},
		{name: "already cancelled", status: EnrollmentCancelled, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Enrollment{Status: tt.status}
			err := e.Cancel()
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, errors.Is(err, ErrInvalidTransition))
				return
			}
			require.NoError(t, err)
			require.Equal(t, EnrollmentCancelled, e.Status)
		})
	}
}

func TestValidEnrollmentStatus(t *testing.T) {
	require.True(t, ValidEnrollmentStatus(EnrollmentPending))
	require.True(t, ValidEnrollmentStatus(EnrollmentConfirmed))
	require.True(t, ValidEnrollmentStatus(EnrollmentCancelled))
	require.False(t, ValidEnrollmentStatus("APPROVED"))
	require.False(t, ValidEnrollmentStatus(""))
}
