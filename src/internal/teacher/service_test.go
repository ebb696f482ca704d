package teacher

import (
	"context"
	"testing"

	"classbook-svc/src/internal/cache"
	"classbook-svc/src/internal/config"
	"classbook-svc/src/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	teachers map[int64]*Teacher
	findAlls int
}

func (r *fakeRepo) FindAll(_ context.Context) ([]*Teacher, error) {
	r.findAlls++
	all := []*Teacher{}
	for _, t := range r.teachers {
		all = append(all, t)
	}
	return all, nil
}

func (r *fakeRepo) FindByID(_ context.Context, id int64) (*Teacher, error) {
	t, ok := r.teachers[id]
	if !ok {
		return nil, models.ErrTeacherNotFound
	}
	return t, nil
}

func (r *fakeRepo) Create(_ context.Context, t *Teacher) (*Teacher, error) {
	r.teachers[t.ID] = t
	return t, nil
}

func fixture(t *testing.T) (Service, *fakeRepo) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	repo := &fakeRepo{teachers: map[int64]*Teacher{
		1: {ID: 1, FirstName: "Margot", LastName: "DELAHAYE"},
	}}
	cfg := &config.Configuration{Cache: config.CacheConfig{
		TeacherExpirationMinutes: 60,
		TeacherRosterKey:         "teachers:roster",
	}}

	return NewTeacherService(repo, cache.NewCacheService(client), cfg), repo
}

func TestFindAllCachesRoster(t *testing.T) {
	service, repo := fixture(t)
	ctx := context.Background()

	first, err := service.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := service.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, second, 1)

	assert.Equal(t, 1, repo.findAlls, "second read must come from the cache")
}

func TestGetByID(t *testing.T) {
	service, _ := fixture(t)

	found, err := service.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "DELAHAYE", found.LastName)

	_, err = service.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, models.ErrTeacherNotFound)
}
