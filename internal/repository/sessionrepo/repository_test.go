package sessionrepo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotour/internal/domain"
	apperror "gotour/internal/errors"
	"gotour/internal/pkg/logger"
	"gotour/internal/pkg/storage"
	"gotour/internal/repository/sessionrepo"
)

func newRepo(store storage.Store) *sessionrepo.Repository {
	return sessionrepo.NewRepository(store, "", logger.NewNopLogger())
}

var guide = domain.User{UserID: "u2", Role: domain.RoleGuide, Email: "g@x.com"}

func TestLoad_NoRecord(t *testing.T) {
	_, _, err := newRepo(storage.NewMemoryStore()).Load(context.Background())
	assert.ErrorIs(t, err, sessionrepo.ErrNoRecord)
}

func TestSaveThenLoad_RoundTrip(t *testing.T) {
	store := storage.NewMemoryStore()
	repo := newRepo(store)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "tok1", guide))

	raw, err := store.Get(ctx, sessionrepo.UserSlot)
	require.NoError(t, err)
	assert.JSONEq(t, `{"userId":"u2","role":"guide","email":"g@x.com"}`, raw)

	token, user, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok1", token)
	assert.Equal(t, guide, user)
}

func TestLoad_CorruptRecords(t *testing.T) {
	cases := map[string]map[string]string{
		"user undefined":  {sessionrepo.TokenSlot: "t1", sessionrepo.UserSlot: "undefined"},
		"user null":       {sessionrepo.TokenSlot: "t1", sessionrepo.UserSlot: "null"},
		"token undefined": {sessionrepo.TokenSlot: "undefined", sessionrepo.UserSlot: `{"userId":"u1","role":"tourist","email":"a@b.com"}`},
		"token empty":     {sessionrepo.TokenSlot: "", sessionrepo.UserSlot: `{"userId":"u1","role":"tourist","email":"a@b.com"}`},
		"bad json":        {sessionrepo.TokenSlot: "t1", sessionrepo.UserSlot: `{"userId":`},
		"unknown role":    {sessionrepo.TokenSlot: "t1", sessionrepo.UserSlot: `{"userId":"u1","role":"root","email":"a@b.com"}`},
		"missing id":      {sessionrepo.TokenSlot: "t1", sessionrepo.UserSlot: `{"role":"tourist","email":"a@b.com"}`},
		"only token":      {sessionrepo.TokenSlot: "t1"},
		"only user":       {sessionrepo.UserSlot: `{"userId":"u1","role":"tourist","email":"a@b.com"}`},
	}

	for name, slots := range cases {
		t.Run(name, func(t *testing.T) {
			store := storage.NewMemoryStore()
			ctx := context.Background()
			for k, v := range slots {
				require.NoError(t, store.Set(ctx, k, v))
			}

			_, _, err := newRepo(store).Load(ctx)
			assert.ErrorIs(t, err, sessionrepo.ErrCorruptRecord)
		})
	}
}

func TestLoad_UnreadableSealedValueIsCorrupt(t *testing.T) {
	inner := storage.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, inner.Set(ctx, sessionrepo.TokenSlot, "not-sealed"))
	require.NoError(t, inner.Set(ctx, sessionrepo.UserSlot, "not-sealed"))

	sealed, err := storage.NewSealedStore(inner, "s3cret", "gotour-salt")
	require.NoError(t, err)

	_, _, err = newRepo(sealed).Load(ctx)
	assert.ErrorIs(t, err, sessionrepo.ErrCorruptRecord)
}

func TestLoad_StorageFailureIsNotCorrupt(t *testing.T) {
	store := storage.NewMemoryStore()
	store.GetErr = errors.New("connection refused")

	_, _, err := newRepo(store).Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, sessionrepo.ErrCorruptRecord)
	assert.IsType(t, &apperror.InternalError{}, err)
}

func TestPurge_RemovesBothSlots(t *testing.T) {
	store := storage.NewMemoryStore()
	repo := newRepo(store)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, "tok1", guide))

	require.NoError(t, repo.Purge(ctx))

	assert.Equal(t, 0, store.Len())
	_, _, err := repo.Load(ctx)
	assert.ErrorIs(t, err, sessionrepo.ErrNoRecord)
}

func TestPrefix_IsolatesProfiles(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	staging := sessionrepo.NewRepository(store, "staging", logger.NewNopLogger())
	prod := sessionrepo.NewRepository(store, "prod", logger.NewNopLogger())

	require.NoError(t, staging.Save(ctx, "tok-staging", guide))

	_, _, err := prod.Load(ctx)
	assert.ErrorIs(t, err, sessionrepo.ErrNoRecord)

	_, err = store.Get(ctx, "staging:accessToken")
	assert.NoError(t, err)
}

func TestSave_StorageFailure(t *testing.T) {
	store := storage.NewMemoryStore()
	store.SetErr = errors.New("quota exceeded")

	err := newRepo(store).Save(context.Background(), "tok1", guide)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}
