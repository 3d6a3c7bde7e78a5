package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"databreach-registry/internal/domain/entity"
	"databreach-registry/internal/infra/adapter/persistence/sqlite"
	"databreach-registry/internal/infra/db"
	"databreach-registry/internal/repository"
)

// ─────────────────────────────────────────────
// helpers
// ─────────────────────────────────────────────
func newRepos(t *testing.T) repository.Repositories {
	t.Helper()
	conn, err := db.Open(context.Background(), db.Config{Driver: db.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.MigrateUp(conn, db.DriverSQLite))
	return sqlite.NewRepositories(conn)
}

func seedBreach(t *testing.T, repos repository.Repositories, name string) (*entity.Entity, *entity.DataBreach) {
	t.Helper()
	ctx := context.Background()
	e := &entity.Entity{Name: name}
	require.NoError(t, repos.Entities.Create(ctx, e))
	b := &entity.DataBreach{EntityID: e.ID, Year: 2020, Records: 100, Method: "hacked"}
	require.NoError(t, repos.Breaches.Create(ctx, b))
	return e, b
}

// ─────────────────────────────────────────────
// 1. Entities
// ─────────────────────────────────────────────
func TestEntityRepo_CreateAndLookup(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()

	e := &entity.Entity{Name: "Acme"}
	require.NoError(t, repos.Entities.Create(ctx, e))
	assert.NotZero(t, e.ID)

	byName, err := repos.Entities.GetByName(ctx, "Acme")
	require.NoError(t, err)
	assert.Equal(t, e, byName)

	byID, err := repos.Entities.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e, byID)

	missing, err := repos.Entities.GetByName(ctx, "acme")
	require.NoError(t, err)
	assert.Nil(t, missing, "names match exactly")
}

func TestEntityRepo_Create_Duplicate(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.Entities.Create(ctx, &entity.Entity{Name: "Acme"}))
	err := repos.Entities.Create(ctx, &entity.Entity{Name: "Acme"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestEntityRepo_Tags(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()

	e := &entity.Entity{Name: "Acme"}
	require.NoError(t, repos.Entities.Create(ctx, e))

	for _, tag := range []string{"retail", "finance", "retail"} {
		_, err := repos.Entities.AddTag(ctx, e.ID, tag)
		require.NoError(t, err)
	}
	tags, err := repos.Entities.ListTags(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"retail", "finance"}, tags)

	require.NoError(t, repos.Entities.DeleteTags(ctx, e.ID))
	tags, err = repos.Entities.ListTags(ctx, e.ID)
	require.NoError(t, err)
	assert.Empty(t, tags)
	assert.NotNil(t, tags)
}

func TestEntityRepo_Delete_Restrict(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()

	e, b := seedBreach(t, repos, "Acme")

	err := repos.Entities.Delete(ctx, e.ID)
	assert.ErrorIs(t, err, repository.ErrReferenced)

	still, err := repos.Entities.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.NotNil(t, still)

	require.NoError(t, repos.Breaches.Delete(ctx, b.ID))
	require.NoError(t, repos.Entities.Delete(ctx, e.ID))

	err = repos.Entities.Delete(ctx, e.ID)
	assert.ErrorIs(t, err, repository.ErrNoRows)
}

// ─────────────────────────────────────────────
// 2. Sources
// ─────────────────────────────────────────────
func TestSourceRepo_Lifecycle(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()
	_, b := seedBreach(t, repos, "Acme")

	urls := []string{"https://b.example/2", "https://a.example/1", "https://b.example/2"}
	created, err := repos.Sources.CreateAll(ctx, b.ID, urls)
	require.NoError(t, err)
	require.Len(t, created, 3)

	listed, err := repos.Sources.ListByBreach(ctx, b.ID)
	require.NoError(t, err)
	got := make([]string, 0, len(listed))
	for _, s := range listed {
		got = append(got, s.URL)
	}
	assert.Equal(t, urls, got, "insertion order and duplicates preserved")

	n, err := repos.Sources.DeleteAll(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

// ─────────────────────────────────────────────
// 3. Breaches
// ─────────────────────────────────────────────
func TestBreachRepo_Delete_RestrictedBySources(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()
	_, b := seedBreach(t, repos, "Acme")

	_, err := repos.Sources.CreateAll(ctx, b.ID, []string{"https://a.example/1"})
	require.NoError(t, err)

	err = repos.Breaches.Delete(ctx, b.ID)
	assert.ErrorIs(t, err, repository.ErrReferenced)

	_, err = repos.Sources.DeleteAll(ctx, b.ID)
	require.NoError(t, err)
	assert.NoError(t, repos.Breaches.Delete(ctx, b.ID))

	gone, err := repos.Breaches.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestBreachRepo_Create_UnknownEntity(t *testing.T) {
	repos := newRepos(t)

	err := repos.Breaches.Create(context.Background(), &entity.DataBreach{EntityID: 42, Year: 2020, Records: 1, Method: "m"})
	assert.ErrorIs(t, err, repository.ErrReferenced)
}

func TestBreachRepo_Create_CheckViolation(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()
	e := &entity.Entity{Name: "Acme"}
	require.NoError(t, repos.Entities.Create(ctx, e))

	err := repos.Breaches.Create(ctx, &entity.DataBreach{EntityID: e.ID, Year: entity.MaxBreachYear + 1, Records: 1, Method: "m"})
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestBreachRepo_UpdateAndList(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()
	_, first := seedBreach(t, repos, "Acme")
	_, second := seedBreach(t, repos, "Globex")

	first.Records = 1
	first.Year = 1970
	require.NoError(t, repos.Breaches.Update(ctx, first))

	first.Year = 1969
	err := repos.Breaches.Update(ctx, first)
	assert.True(t, errors.Is(err, entity.ErrValidationFailed))

	all, err := repos.Breaches.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, []int64{first.ID, second.ID}, []int64{all[0].ID, all[1].ID})
	assert.Equal(t, 1970, all[0].Year)
	assert.Equal(t, int64(1), all[0].Records)
}
