package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"classbook-svc/src/internal/config"
	"classbook-svc/src/internal/models"
	"classbook-svc/src/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionRepo struct {
	sessions map[int64]*Session
	nextID   int64
	updates  int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[int64]*Session{}, nextID: 1}
}

func (r *fakeSessionRepo) FindAll(_ context.Context) ([]*Session, error) {
	all := []*Session{}
	for _, s := range r.sessions {
		all = append(all, s)
	}
	return all, nil
}

func (r *fakeSessionRepo) FindByID(_ context.Context, id int64) (*Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, models.ErrSessionNotFound
	}
	copied := *s
	copied.Users = append([]int64{}, s.Users...)
	return &copied, nil
}

func (r *fakeSessionRepo) Create(_ context.Context, s *Session) (*Session, error) {
	s.ID = r.nextID
	r.nextID++
	r.sessions[s.ID] = s
	return s, nil
}

func (r *fakeSessionRepo) Update(_ context.Context, s *Session) (*Session, error) {
	r.updates++
	r.sessions[s.ID] = s
	return s, nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.sessions[id]; !ok {
		return models.ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

type fakeUserRepo struct {
	users map[int64]*user.User
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) (*user.User, error) {
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return models.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeCache struct {
	values    map[string][]byte
	deletions []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string][]byte{}}
}

func (c *fakeCache) Get(_ context.Context, key string, dest any) (bool, error) {
	data, ok := c.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (c *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.values[key] = data
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.deletions = append(c.deletions, key)
	delete(c.values, key)
	return nil
}

type fakePublisher struct {
	messages []models.ActivityMessage
}

func (p *fakePublisher) Publish(message models.ActivityMessage) error {
	p.messages = append(p.messages, message)
	return nil
}

func testConfig() *config.Configuration {
	return &config.Configuration{
		Cache: config.CacheConfig{
			SessionExpirationMinutes: 5,
			TeacherExpirationMinutes: 60,
			TeacherRosterKey:         "teachers:roster",
		},
	}
}

type serviceFixture struct {
	service     Service
	sessionRepo *fakeSessionRepo
	userRepo    *fakeUserRepo
	cache       *fakeCache
	publisher   *fakePublisher
}

func newServiceFixture() *serviceFixture {
	sessionRepo := newFakeSessionRepo()
	userRepo := &fakeUserRepo{users: map[int64]*user.User{
		1: {ID: 1, Email: "one@test.com"},
		2: {ID: 2, Email: "two@test.com"},
	}}
	cache := newFakeCache()
	publisher := &fakePublisher{}

	return &serviceFixture{
		service:     NewSessionService(sessionRepo, userRepo, cache, publisher, testConfig()),
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		cache:       cache,
		publisher:   publisher,
	}
}

func (f *serviceFixture) addSession(users ...int64) *Session {
	if users == nil {
		users = []int64{}
	}
	s := &Session{Name: "Morning Yoga", Date: time.Now(), Users: users}
	f.sessionRepo.sessions[1] = s
	s.ID = 1
	return s
}

func TestParticipate(t *testing.T) {
	f := newServiceFixture()
	f.addSession()

	err := f.service.Participate(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, f.sessionRepo.sessions[1].Users)

	require.Len(t, f.publisher.messages, 1)
	assert.Equal(t, models.ActionParticipate, f.publisher.messages[0].Action)
}

func TestParticipateTwiceFails(t *testing.T) {
	f := newServiceFixture()
	f.addSession()

	require.NoError(t, f.service.Participate(context.Background(), 1, 1))

	err := f.service.Participate(context.Background(), 1, 1)
	assert.ErrorIs(t, err, models.ErrAlreadyParticipating)
	assert.Equal(t, []int64{1}, f.sessionRepo.sessions[1].Users, "participant set must be unchanged")
}

func TestParticipateKeepsJoinOrder(t *testing.T) {
	f := newServiceFixture()
	f.addSession()

	require.NoError(t, f.service.Participate(context.Background(), 1, 2))
	require.NoError(t, f.service.Participate(context.Background(), 1, 1))

	assert.Equal(t, []int64{2, 1}, f.sessionRepo.sessions[1].Users)
}

func TestParticipateMissingSession(t *testing.T) {
	f := newServiceFixture()

	err := f.service.Participate(context.Background(), 99, 1)
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
	assert.Zero(t, f.sessionRepo.updates, "no store mutation on failure")
	assert.Empty(t, f.publisher.messages)
}

func TestParticipateMissingUser(t *testing.T) {
	f := newServiceFixture()
	f.addSession()

	err := f.service.Participate(context.Background(), 1, 99)
	assert.ErrorIs(t, err, models.ErrUserNotFound)
	assert.Zero(t, f.sessionRepo.updates)
}

func TestUnparticipate(t *testing.T) {
	f := newServiceFixture()
	f.addSession(1)

	err := f.service.Unparticipate(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Empty(t, f.sessionRepo.sessions[1].Users)

	require.Len(t, f.publisher.messages, 1)
	assert.Equal(t, models.ActionUnparticipate, f.publisher.messages[0].Action)
}

func TestUnparticipateTwiceFails(t *testing.T) {
	f := newServiceFixture()
	f.addSession(1)

	require.NoError(t, f.service.Unparticipate(context.Background(), 1, 1))

	err := f.service.Unparticipate(context.Background(), 1, 1)
	assert.ErrorIs(t, err, models.ErrNotParticipating)
}

func TestUnparticipateMissingSession(t *testing.T) {
	f := newServiceFixture()

	err := f.service.Unparticipate(context.Background(), 99, 1)
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestUnparticipateDoesNotCheckUserRow(t *testing.T) {
	// Unlike Participate, leaving only checks list membership; a user id
	// with no backing user row can still be removed.
	f := newServiceFixture()
	f.addSession(42)

	err := f.service.Unparticipate(context.Background(), 1, 42)
	require.NoError(t, err)
	assert.Empty(t, f.sessionRepo.sessions[1].Users)
}

func TestUnparticipateRemovesAllOccurrences(t *testing.T) {
	// A corrupted list with duplicates is cleaned up entirely.
	f := newServiceFixture()
	f.addSession(1, 2, 1)

	require.NoError(t, f.service.Unparticipate(context.Background(), 1, 1))
	assert.Equal(t, []int64{2}, f.sessionRepo.sessions[1].Users)
}

func TestGetByIDReadsThroughCache(t *testing.T) {
	f := newServiceFixture()
	f.addSession(1)

	first, err := f.service.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Contains(t, f.cache.values, "session:1")

	// Mutate the repository behind the cache; the cached copy is served.
	f.sessionRepo.sessions[1].Name = "Renamed"
	second, err := f.service.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, first.Name, second.Name)
}

func TestParticipateInvalidatesCache(t *testing.T) {
	f := newServiceFixture()
	f.addSession()

	_, err := f.service.GetByID(context.Background(), 1)
	require.NoError(t, err)

	require.NoError(t, f.service.Participate(context.Background(), 1, 1))
	assert.Contains(t, f.cache.deletions, "session:1")

	reloaded, err := f.service.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, reloaded.Users)
}

func TestGetByIDMissingSession(t *testing.T) {
	f := newServiceFixture()

	_, err := f.service.GetByID(context.Background(), 7)
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}
