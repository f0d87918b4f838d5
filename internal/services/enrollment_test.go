package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"eventdesk/internal/domain"
)

func intPtr(v int) *int { return &v }

type enrollmentFixture struct {
	participants *fakeParticipantRepo
	events       *fakeEventRepo
	enrollments  *fakeEnrollmentRepo
	service      domain.EnrollmentService
}

func newEnrollmentFixture() *enrollmentFixture {
	participants := newFakeParticipantRepo()
	events := newFakeEventRepo()
	enrollments := newFakeEnrollmentRepo(events)
	return &enrollmentFixture{
		participants: participants,
		events:       events,
		enrollments:  enrollments,
		service:      NewEnrollmentService(enrollments, participants, events),
	}
}

func TestEnrollmentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("paid event starts pending", func(t *testing.T) {
		fx := newEnrollmentFixture()
		p := fx.participants.add("Alice", "alice@example.com")
		ev := fx.events.add(&domain.Event{Name: "GopherCon", Status: domain.EventUpcoming, Price: 50, MaxCapacity: intPtr(100)})

		details, err := fx.service.Create(ctx, p.ID, ev.ID)
		require.NoError(t, err)
		require.Equal(t, domain.EnrollmentPending, details.Status)
		require.Equal(t, "Alice", details.ParticipantName)
		require.Equal(t, "GopherCon", details.EventName)
	})

	t.Run("free event confirms immediately", func(t *testing.T) {
		fx := newEnrollmentFixture()
		p := fx.participants.add("Alice", "alice@example.com")
		ev := fx.events.add(&domain.Event{Name: "Meetup", Status: domain.EventActive, Price: 0})

		details, err := fx.service.Create(ctx, p.ID, ev.ID)
		require.NoError(t, err)
		require.Equal(t, domain.EnrollmentConfirmed, details.Status)
	})

	t.Run("unknown participant", func(t *testing.T) {
		fx := newEnrollmentFixture()
		ev := fx.events.add(&domain.Event{Name: "Meetup", Status: domain.EventUpcoming})

		_, err := fx.service.Create(ctx, "p-missing", ev.ID)
		require.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("unknown event", func(t *testing.T) {
		fx := newEnrollmentFixture()
		p := fx.participants.add("Alice", "alice@example.com")

		_, err := fx.service.Create(ctx, p.ID, "ev-missing")
		require.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("duplicate enrollment blocked in any status", func(t *testing.T) {
		fx := newEnrollmentFixture()
		p := fx.participants.add("Alice", "alice@example.com")
		ev := fx.events.add(&domain.Event{Name: "Meetup", Status: domain.EventUpcoming, Price: 10})

		first, err := fx.service.Create(ctx, p.ID, ev.ID)
		require.NoError(t, err)

		_, err = fx.service.Create(ctx, p.ID, ev.ID)
		require.True(t, errors.Is(err, domain.ErrAlreadyEnrolled))

		// Cancelling does not free the slot for re-enrollment.
		_, err = fx.service.Cancel(ctx, first.ID)
		require.NoError(t, err)
		_, err = fx.service.Create(ctx, p.ID, ev.ID)
		require.True(t, errors.Is(err, domain.ErrAlreadyEnrolled))
	})

	t.Run("duplicate check precedes status gate", func(t *testing.T) {
		fx := newEnrollmentFixture()
		p := fx.participants.add("Alice", "alice@example.com")
		ev := fx.events.add(&domain.Event{Name: "Meetup", Status: domain.EventUpcoming, Price: 10})

		_, err := fx.service.Create(ctx, p.ID, ev.ID)
		require.NoError(t, err)

		ev.Status = domain.EventCancelled
		_, err = fx.service.Create(ctx, p.ID, ev.ID)
		require.True(t, errors.Is(err, domain.ErrAlreadyEnrolled))
	})

	t.Run("cancelled event rejects enrollment", func(t *testing.T) {
		fx := newEnrollmentFixture()
		p := fx.participants.add("Alice", "alice@example.com")
		ev := fx.events.add(&domain.Event{Name: "Meetup", Status: domain.EventCancelled})

		_, err := fx.service.Create(ctx, p.ID, ev.ID)
		require.True(t, errors.Is(err, domain.ErrEventNotOpen))
	})

	t.Run("completed event rejects enrollment", func(t *testing.T) {
		fx := newEnrollmentFixture()
		p := fx.participants.add("Alice", "alice@example.com")
		ev := fx.events.add(&domain.Event{Name: "Meetup", Status: domain.EventCompleted})

		_, err := fx.service.Create(ctx, p.ID, ev.ID)
		require.True(t, errors.Is(err, domain.ErrEventNotOpen))
	})

	t.Run("full event rejects enrollment", func(t *testing.T) {
		fx := newEnrollmentFixture()
		// Free event with capacity 1: the first enrollment confirms and
		// consumes the only seat.
		ev := fx.events.add(&domain.Event{Name: "Meetup", Status: domain.EventUpcoming, Price: 0, MaxCapacity: intPtr(1)})
		first := fx.participants.add("Alice", "alice@example.com")
		second := fx.participants.add("Bob", "bob@example.com")

		_, err := fx.service.Create(ctx, first.ID, ev.ID)
		require.NoError(t, err)

		_, err = fx.service.Create(ctx, second.ID, ev.ID)
		require.True(t, errors.Is(err, domain.ErrEventFull))
	})

	t.Run("pending enrollments do not consume capacity", func(t *testing.T) {
		fx := newEnrollmentFixture()
		ev := fx.events.add(&domain.Event{Name: "Meetup", Status: domain.EventUpcoming, Price: 10, MaxCapacity: intPtr(1)})
		first := fx.participants.add("Alice", "alice@example.com")
		second := fx.participants.add("Bob", "bob@example.com")

		details, err := fx.service.Create(ctx, first.ID, ev.ID)
		require.NoError(t, err)
		require.Equal(t, domain.EnrollmentPending, details.Status)

		_, err = fx.service.Create(ctx, second.ID, ev.ID)
		require.NoError(t, err)
	})
}

func TestEnrollmentService_CreateConcurrent(t *testing.T) {
	ctx := context.Background()
	fx := newEnrollmentFixture()
	ev := fx.events.add(&domain.Event{Name: "Meetup", Status: domain.EventUpcoming, Price: 0, MaxCapacity: intPtr(1)})

	const racers = 16
	participants := make([]*domain.Participant, racers)
	for i := range participants {
		participants[i] = fx.participants.add("Racer", "racer@example.com")
	}

	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = fx.service.Create(ctx, participants[i].ID, ev.ID)
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		if err == nil {
			won++
		} else {
			require.True(t, errors.Is(err, domain.ErrEventFull))
		}
	}
	require.Equal(t, 1, won)
}

func TestEnrollmentService_Confirm(t *testing.T) {
	ctx := context.Background()
	fx := newEnrollmentFixture()
	p := fx.participants.add("Alice", "alice@example.com")
	ev := fx.events.add(&domain.Event{Name: "Meetup", Status: domain.EventUpcoming, Price: 10})

	created, err := fx.service.Create(ctx, p.ID, ev.ID)
	require.NoError(t, err)
	require.Equal(t, domain.EnrollmentPending, created.Status)

	confirmed, err := fx.service.Confirm(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, domain.EnrollmentConfirmed, confirmed.Status)

	_, err = fx.service.Confirm(ctx, created.ID)
	require.True(t, errors.Is(err, domain.ErrInvalidTransition))

	_, err = fx.service.Confirm(ctx, "en-missing")
	require.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestEnrollmentService_Cancel(t *testing.T) {
	ctx := context.Background()
	fx := newEnrollmentFixture()
	p := fx.participants.add("Alice", "alice@example.com")
	ev := fx.events.add(&domain.Event{Name: "Meetup", Status: domain.EventUpcoming, Price: 10})

	created, err := fx.service.Create(ctx, p.ID, ev.ID)
	require.NoError(t, err)

	cancelled, err := fx.service.Cancel(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, domain.EnrollmentCancelled, cancelled.Status)

	_, err = fx.service.Cancel(ctx, created.ID)
	require.True(t, errors.Is(err, domain.ErrInvalidTransition))

	// A cancelled enrollment cannot be confirmed either.
	_, err = fx.service.Confirm(ctx, created.ID)
	require.True(t, errors.Is(err, domain.ErrInvalidTransition))
}

func TestEnrollmentService_CancelConfirmed(t *testing.T) {
	ctx := context.Background()
	fx := newEnrollmentFixture()
	p := fx.participants.add("Alice", "alice@example.com")
	ev := fx.events.add(&domain.Event{Name: "Meetup", Status: domain.EventActive, Price: 0})

	created, err := fx.service.Create(ctx, p.ID, ev.ID)
	require.NoError(t, err)
	require.Equal(t, domain.EnrollmentConfirmed, created.Status)

	cancelled, err := fx.service.Cancel(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, domain.EnrollmentCancelled, cancelled.Status)
}

func TestEnrollmentService_SetStatus(t *testing.T) {
	ctx := context.Background()
	fx := newEnrollmentFixture()
	p := fx.participants.add("Alice", "alice@example.com")
	ev := fx.events.add(&domain.Event{Name: "Meetup", Status: domain.EventUpcoming, Price: 10})

	created, err := fx.service.Create(ctx, p.ID, ev.ID)
	require.NoError(t, err)

	// The administrative overwrite skips transition checks: it can resurrect
	// a cancelled enrollment.
	_, err = fx.service.Cancel(ctx, created.ID)
	require.NoError(t, err)
	updated, err := fx.service.SetStatus(ctx, created.ID, domain.EnrollmentConfirmed)
	require.NoError(t, err)
	require.Equal(t, domain.EnrollmentConfirmed, updated.Status)

	_, err = fx.service.SetStatus(ctx, created.ID, "APPROVED")
	require.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = fx.service.SetStatus(ctx, "en-missing", domain.EnrollmentPending)
	require.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestEnrollmentService_Delete(t *testing.T) {
	ctx := context.Background()
	fx := newEnrollmentFixture()
	p := fx.participants.add("Alice", "alice@example.com")
	ev := fx.events.add(&domain.Event{Name: "Meetup", Status: domain.EventActive, Price: 0})

	created, err := fx.service.Create(ctx, p.ID, ev.ID)
	require.NoError(t, err)

	// Delete removes even a confirmed enrollment.
	require.NoError(t, fx.service.Delete(ctx, created.ID))
	_, err = fx.service.GetByID(ctx, created.ID)
	require.True(t, errors.Is(err, domain.ErrNotFound))

	err = fx.service.Delete(ctx, created.ID)
	require.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestEnrollmentService_Search(t *testing.T) {
	ctx := context.Background()
	fx := newEnrollmentFixture()
	p1 := fx.participants.add("Alice", "alice@example.com")
	p2 := fx.participants.add("Bob", "bob@example.com")
	ev := fx.events.add(&domain.Event{Name: "Meetup", Status: domain.EventUpcoming, Price: 10})

	_, err := fx.service.Create(ctx, p1.ID, ev.ID)
	require.NoError(t, err)
	_, err = fx.service.Create(ctx, p2.ID, ev.ID)
	require.NoError(t, err)

	list, total, err := fx.service.Search(ctx, domain.EnrollmentFilter{ParticipantID: p1.ID}, domain.PaginationParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, list, 1)
	require.Equal(t, p1.ID, list[0].ParticipantID)

	_, _, err = fx.service.Search(ctx, domain.EnrollmentFilter{Status: "APPROVED"}, domain.PaginationParams{Page: 1, PageSize: 20})
	require.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestClampReportLimit(t *testing.T) {
	require.Equal(t, defaultReportLimit, clampReportLimit(0))
	require.Equal(t, defaultReportLimit, clampReportLimit(-5))
	require.Equal(t, 25, clampReportLimit(25))
	require.Equal(t, maxReportLimit, clampReportLimit(5000))
}
