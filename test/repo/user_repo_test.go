package repo_test

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ansh808s/cause-drop/internal/model"
	appErr "github.com/ansh808s/cause-drop/internal/pkg/errors"
	"github.com/ansh808s/cause-drop/internal/pkg/timeutil"
	"github.com/ansh808s/cause-drop/internal/repo"
	"github.com/ansh808s/cause-drop/test/testutil"
)

func newTestID() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

func TestUserRepoCreateAndGet(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	users := repo.NewUserRepo(db)
	user := &model.User{
		ID:      newTestID(),
		Address: newTestID(),
		Ctime:   timeutil.NowUnix(),
	}
	require.NoError(t, users.Create(context.Background(), user))

	fetched, err := users.GetByAddress(context.Background(), user.Address)
	require.NoError(t, err)
	require.Equal(t, user.ID, fetched.ID)

	fetched, err = users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Address, fetched.Address)

	_, err = users.GetByAddress(context.Background(), "missing-"+newTestID())
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestUserRepoAddressUnique(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	users := repo.NewUserRepo(db)
	address := newTestID()
	now := timeutil.NowUnix()

	require.NoError(t, users.Create(context.Background(), &model.User{ID: newTestID(), Address: address, Ctime: now}))
	err := users.Create(context.Background(), &model.User{ID: newTestID(), Address: address, Ctime: now})
	require.ErrorIs(t, err, appErr.ErrConflict)
}

// Two sign-ins racing on a fresh address must end up sharing one row.
func TestUserRepoConcurrentCreate(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	users := repo.NewUserRepo(db)
	address := newTestID()
	now := timeutil.NowUnix()

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			errs[idx] = users.Create(context.Background(), &model.User{
				ID:      newTestID(),
				Address: address,
				Ctime:   now,
			})
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		require.ErrorIs(t, err, appErr.ErrConflict)
	}
	require.Equal(t, 1, created)

	fetched, err := users.GetByAddress(context.Background(), address)
	require.NoError(t, err)
	require.Equal(t, address, fetched.Address)
}
