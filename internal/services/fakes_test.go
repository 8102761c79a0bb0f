package services

import (
	"time"

	"donation-tracker-backend/internal/config"
	"donation-tracker-backend/internal/models"
	"donation-tracker-backend/internal/realtime"
	"donation-tracker-backend/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory fakes for the repository interfaces. Embedding the interface
// satisfies methods a test never calls; touching one of those panics, which
// is exactly what we want.

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:     "test-secret",
		PublicBaseURL: "http://localhost:4000",
	}
}

type fakeEventRepo struct {
	repositories.EventRepository
	events    map[string]*models.Event
	summaries map[string]*models.EventSummary
	updated   []*models.Event
}

func newFakeEventRepo(events ...*models.Event) *fakeEventRepo {
	f := &fakeEventRepo{
		events:    make(map[string]*models.Event),
		summaries: make(map[string]*models.EventSummary),
	}
	for _, e := range events {
		f.events[e.ID.String()] = e
	}
	return f
}

func (f *fakeEventRepo) CreateEvent(e *models.Event) error {
	f.events[e.ID.String()] = e
	return nil
}

func (f *fakeEventRepo) GetEventByID(id string) (*models.Event, error) {
	if e, ok := f.events[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEventRepo) UpdateEvent(e *models.Event) error {
	f.events[e.ID.String()] = e
	f.updated = append(f.updated, e)
	return nil
}

func (f *fakeEventRepo) GetEventSummary(id string) (*models.EventSummary, error) {
	if s, ok := f.summaries[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeEnvelopeRepo struct {
	repositories.EnvelopeRepository
	byID    map[string]*models.Envelope
	created []*models.Envelope
	updated []*models.Envelope
}

func newFakeEnvelopeRepo(envelopes ...*models.Envelope) *fakeEnvelopeRepo {
	f := &fakeEnvelopeRepo{byID: make(map[string]*models.Envelope)}
	for _, e := range envelopes {
		f.byID[e.ID.String()] = e
	}
	return f
}

func (f *fakeEnvelopeRepo) CreateEnvelope(e *models.Envelope) error {
	f.created = append(f.created, e)
	f.byID[e.ID.String()] = e
	return nil
}

func (f *fakeEnvelopeRepo) CreateEnvelopes(envelopes []*models.Envelope) error {
	for _, e := range envelopes {
		f.created = append(f.created, e)
		f.byID[e.ID.String()] = e
	}
	return nil
}

func (f *fakeEnvelopeRepo) GetEnvelopeByID(id string) (*models.Envelope, error) {
	if e, ok := f.byID[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEnvelopeRepo) UpdateEnvelope(e *models.Envelope) error {
	f.updated = append(f.updated, e)
	f.byID[e.ID.String()] = e
	return nil
}

type fakeDonationRepo struct {
	repositories.DonationRepository
	byID       map[string]*models.Donation
	created    []*models.Donation
	deleted    []string
	statsCount int64
	statsTotal float64
}

func (f *fakeDonationRepo) DonationStatsSince(string, time.Time) (int64, float64, error) {
	return f.statsCount, f.statsTotal, nil
}

func newFakeDonationRepo(donations ...*models.Donation) *fakeDonationRepo {
	f := &fakeDonationRepo{byID: make(map[string]*models.Donation)}
	for _, d := range donations {
		f.byID[d.ID.String()] = d
	}
	return f
}

func (f *fakeDonationRepo) CreateDonation(d *models.Donation) error {
	f.created = append(f.created, d)
	f.byID[d.ID.String()] = d
	return nil
}

func (f *fakeDonationRepo) GetDonationByID(id string) (*models.Donation, error) {
	if d, ok := f.byID[id]; ok {
		copied := *d
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDonationRepo) DeleteDonation(id string) error {
	if _, ok := f.byID[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeUserRepo struct {
	repositories.UserRepository
	usersByEmail    map[string]*models.User
	usersByID       map[string]*models.User
	profilesByID    map[string]*models.UserProfile
	upsertProfile   func(profile *models.UserProfile) error
	deletedUserIDs  []string
	deletedProfiles []string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		usersByEmail: make(map[string]*models.User),
		usersByID:    make(map[string]*models.User),
		profilesByID: make(map[string]*models.UserProfile),
	}
}

func (f *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	if u, ok := f.usersByEmail[email]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUserByID(id string) (*models.User, error) {
	if u, ok := f.usersByID[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) CreateUser(u *models.User) error {
	f.usersByEmail[u.Email] = u
	f.usersByID[u.ID.String()] = u
	return nil
}

func (f *fakeUserRepo) DeleteUser(id string) error {
	if u, ok := f.usersByID[id]; ok {
		delete(f.usersByEmail, u.Email)
		delete(f.usersByID, id)
	}
	f.deletedUserIDs = append(f.deletedUserIDs, id)
	return nil
}

func (f *fakeUserRepo) ListUsersByIDs(ids []uuid.UUID) ([]models.User, error) {
	out := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := f.usersByID[id.String()]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) GetProfileByID(id string) (*models.UserProfile, error) {
	if p, ok := f.profilesByID[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) UpsertProfile(p *models.UserProfile) error {
	if f.upsertProfile != nil {
		if err := f.upsertProfile(p); err != nil {
			return err
		}
	}
	f.profilesByID[p.ID.String()] = p
	return nil
}

func (f *fakeUserRepo) ListProfiles(eventID string) ([]models.UserProfile, error) {
	out := make([]models.UserProfile, 0, len(f.profilesByID))
	for _, p := range f.profilesByID {
		if eventID == "" || (p.EventID != nil && p.EventID.String() == eventID) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) DeleteProfile(id string) error {
	delete(f.profilesByID, id)
	f.deletedProfiles = append(f.deletedProfiles, id)
	return nil
}

func testRepo() *repositories.Repository {
	return &repositories.Repository{
		EventRepo:    newFakeEventRepo(),
		DonationRepo: newFakeDonationRepo(),
		EnvelopeRepo: newFakeEnvelopeRepo(),
		UserRepo:     newFakeUserRepo(),
	}
}

func testFeed() *realtime.Feed {
	return realtime.NewFeed()
}
