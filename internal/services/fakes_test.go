package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"eventdesk/internal/domain"
)

// fakeParticipantRepo is an in-memory ParticipantRepository for tests.
type fakeParticipantRepo struct {
	byID   map[string]*domain.Participant
	nextID int
}

func newFakeParticipantRepo() *fakeParticipantRepo {
	return &fakeParticipantRepo{byID: make(map[string]*domain.Participant), nextID: 1}
}

func (f *fakeParticipantRepo) add(name, email string) *domain.Participant {
	p := &domain.Participant{
		ID:    fmt.Sprintf("p-%d", f.nextID),
		Name:  name,
		Email: email,
		Role:  domain.RoleParticipant,
	}
	f.nextID++
	f.byID[p.ID] = p
	return p
}

func (f *fakeParticipantRepo) Create(ctx context.Context, p *domain.Participant) error {
	for _, existing := range f.byID {
		if existing.Email == p.Email {
			return domain.ErrDuplicateEmail
		}
	}
	p.ID = fmt.Sprintf("p-%d", f.nextID)
	f.nextID++
	f.byID[p.ID] = p
	return nil
}

func (f *fakeParticipantRepo) GetByID(ctx context.Context, id string) (*domain.Participant, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeParticipantRepo) GetByEmail(ctx context.Context, email string) (*domain.Participant, error) {
	for _, p := range f.byID {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeParticipantRepo) Update(ctx context.Context, p *domain.Participant) error {
	if _, ok := f.byID[p.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[p.ID] = p
	return nil
}

func (f *fakeParticipantRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeParticipantRepo) List(ctx context.Context, p domain.PaginationParams) ([]*domain.Participant, int, error) {
	var out []*domain.Participant
	for _, v := range f.byID {
		out = append(out, v)
	}
	return out, len(out), nil
}

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID   map[string]*domain.Event
	nextID int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[string]*domain.Event), nextID: 1}
}

func (f *fakeEventRepo) add(e *domain.Event) *domain.Event {
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	return e
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	f.add(e)
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) Update(ctx context.Context, e *domain.Event) error {
	if _, ok := f.byID[e.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeEventRepo) List(ctx context.Context, p domain.PaginationParams) ([]*domain.Event, int, error) {
	return f.Search(ctx, domain.EventFilter{}, p)
}

func (f *fakeEventRepo) Search(ctx context.Context, filter domain.EventFilter, p domain.PaginationParams) ([]*domain.Event, int, error) {
	var out []*domain.Event
	for _, e := range f.byID {
		if filter.CategoryID != "" && e.CategoryID != filter.CategoryID {
			continue
		}
		if filter.VenueID != "" && e.VenueID != filter.VenueID {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		if filter.MaxPrice != nil && e.Price > *filter.MaxPrice {
			continue
		}
		out = append(out, e)
	}
	return out, len(out), nil
}

func (f *fakeEventRepo) CountByVenueID(ctx context.Context, venueID string) (int, error) {
	n := 0
	for _, e := range f.byID {
		if e.VenueID == venueID {
			n++
		}
	}
	return n, nil
}

func (f *fakeEventRepo) CountByCategoryID(ctx context.Context, categoryID string) (int, error) {
	n := 0
	for _, e := range f.byID {
		if e.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (f *fakeEventRepo) MostPopular(ctx context.Context, limit int) ([]*domain.EventPopularity, error) {
	return nil, nil
}

// fakeEnrollmentRepo is an in-memory EnrollmentRepository. Admit reproduces the
// transactional admission semantics against the linked fakeEventRepo, guarded
// by a mutex so concurrent admissions serialize the way the row lock does.
type fakeEnrollmentRepo struct {
	mu     sync.Mutex
	byID   map[string]*domain.Enrollment
	events *fakeEventRepo
	nextID int
}

func newFakeEnrollmentRepo(events *fakeEventRepo) *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{byID: make(map[string]*domain.Enrollment), events: events, nextID: 1}
}

func (f *fakeEnrollmentRepo) Admit(ctx context.Context, participantID, eventID string) (*domain.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	event, ok := f.events.byID[eventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !event.IsOpenForEnrollment() {
		return nil, domain.ErrEventNotOpen
	}
	for _, e := range f.byID {
		if e.ParticipantID == participantID && e.EventID == eventID {
			return nil, domain.ErrAlreadyEnrolled
		}
	}
	if !event.HasUnlimitedCapacity() {
		confirmed := 0
		for _, e := range f.byID {
			if e.EventID == eventID && e.Status == domain.EnrollmentConfirmed {
				confirmed++
			}
		}
		if confirmed >= *event.MaxCapacity {
			return nil, domain.ErrEventFull
		}
	}

	now := time.Now().UTC()
	enrollment := domain.NewEnrollment(participantID, eventID, now, now)
	if event.IsFree() {
		enrollment.Status = domain.EnrollmentConfirmed
	}
	enrollment.ID = fmt.Sprintf("en-%d", f.nextID)
	f.nextID++
	f.byID[enrollment.ID] = enrollment
	return enrollment, nil
}

func (f *fakeEnrollmentRepo) GetByID(ctx context.Context, id string) (*domain.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.byID[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEnrollmentRepo) GetDetails(ctx context.Context, id string) (*domain.EnrollmentDetails, error) {
	e, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.EnrollmentDetails{Enrollment: e}, nil
}

func (f *fakeEnrollmentRepo) Exists(ctx context.Context, participantID, eventID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.byID {
		if e.ParticipantID == participantID && e.EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEnrollmentRepo) TransitionStatus(ctx context.Context, id string, from, to domain.EnrollmentStatus, updatedAt time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.byID[id]
	if !ok || e.Status != from {
		return false, nil
	}
	e.Status = to
	e.UpdatedAt = updatedAt
	return true, nil
}

func (f *fakeEnrollmentRepo) SetStatus(ctx context.Context, id string, status domain.EnrollmentStatus, updatedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.Status = status
	e.UpdatedAt = updatedAt
	return nil
}

func (f *fakeEnrollmentRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeEnrollmentRepo) Search(ctx context.Context, filter domain.EnrollmentFilter, p domain.PaginationParams) ([]*domain.EnrollmentDetails, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.EnrollmentDetails
	for _, e := range f.byID {
		if filter.ParticipantID != "" && e.ParticipantID != filter.ParticipantID {
			continue
		}
		if filter.EventID != "" && e.EventID != filter.EventID {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		copied := *e
		out = append(out, &domain.EnrollmentDetails{Enrollment: &copied})
	}
	return out, len(out), nil
}

func (f *fakeEnrollmentRepo) CountByEventAndStatus(ctx context.Context, eventID string, status domain.EnrollmentStatus) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.byID {
		if e.EventID == eventID && e.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeEnrollmentRepo) CountByParticipant(ctx context.Context, participantID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.byID {
		if e.ParticipantID == participantID {
			n++
		}
	}
	return n, nil
}

func (f *fakeEnrollmentRepo) CountByParticipantAndStatus(ctx context.Context, participantID string, status domain.EnrollmentStatus) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.byID {
		if e.ParticipantID == participantID && e.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeEnrollmentRepo) MostActiveParticipants(ctx context.Context, limit int) ([]*domain.ParticipantActivity, error) {
	return nil, nil
}

// fakeVenueRepo is an in-memory VenueRepository for tests.
type fakeVenueRepo struct {
	byID   map[string]*domain.Venue
	nextID int
}

func newFakeVenueRepo() *fakeVenueRepo {
	return &fakeVenueRepo{byID: make(map[string]*domain.Venue), nextID: 1}
}

func (f *fakeVenueRepo) add(name string) *domain.Venue {
	v := &domain.Venue{ID: fmt.Sprintf("v-%d", f.nextID), Name: name}
	f.nextID++
	f.byID[v.ID] = v
	return v
}

func (f *fakeVenueRepo) Create(ctx context.Context, v *domain.Venue) error {
	v.ID = fmt.Sprintf("v-%d", f.nextID)
	f.nextID++
	f.byID[v.ID] = v
	return nil
}

func (f *fakeVenueRepo) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	if v, ok := f.byID[id]; ok {
		return v, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeVenueRepo) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	for _, v := range f.byID {
		if v.ID != excludeID && strings.EqualFold(v.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeVenueRepo) Update(ctx context.Context, v *domain.Venue) error {
	if _, ok := f.byID[v.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[v.ID] = v
	return nil
}

func (f *fakeVenueRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeVenueRepo) List(ctx context.Context, p domain.PaginationParams) ([]*domain.Venue, int, error) {
	var out []*domain.Venue
	for _, v := range f.byID {
		out = append(out, v)
	}
	return out, len(out), nil
}

// fakeCategoryRepo is an in-memory CategoryRepository for tests.
type fakeCategoryRepo struct {
	byID   map[string]*domain.Category
	nextID int
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{byID: make(map[string]*domain.Category), nextID: 1}
}

func (f *fakeCategoryRepo) add(name string) *domain.Category {
	c := &domain.Category{ID: fmt.Sprintf("c-%d", f.nextID), Name: name}
	f.nextID++
	f.byID[c.ID] = c
	return c
}

func (f *fakeCategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	c.ID = fmt.Sprintf("c-%d", f.nextID)
	f.nextID++
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCategoryRepo) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	for _, c := range f.byID {
		if c.ID != excludeID && strings.EqualFold(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCategoryRepo) Update(ctx context.Context, c *domain.Category) error {
	if _, ok := f.byID[c.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeCategoryRepo) List(ctx context.Context, p domain.PaginationParams) ([]*domain.Category, int, error) {
	var out []*domain.Category
	for _, c := range f.byID {
		out = append(out, c)
	}
	return out, len(out), nil
}

// fakeHasher is a trivially reversible PasswordHasher for tests.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return fmt.Errorf("hash mismatch")
	}
	return nil
}

// fakeTokenIssuer records the last issued claims.
type fakeTokenIssuer struct {
	lastParticipantID string
	lastRole          string
	err               error
}

func (f *fakeTokenIssuer) Issue(participantID, email, role string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.lastParticipantID = participantID
	f.lastRole = role
	return "token-" + participantID, nil
}
