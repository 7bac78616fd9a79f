package seed

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophcal/internal/config"
	"github.com/dmitrijs2005/gophcal/internal/dbx"
	"github.com/dmitrijs2005/gophcal/internal/dbx/dbtest"
	"github.com/dmitrijs2005/gophcal/internal/repositories/repomanager"
	"github.com/dmitrijs2005/gophcal/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newStore(t *testing.T) *services.Store {
	t.Helper()
	cfg := &config.Config{SecretKey: "k", TokenValidityDuration: time.Hour, BcryptCost: bcrypt.MinCost}
	return services.NewStore(dbtest.OpenSQLite(t), repomanager.NewSQLRepositoryManager(dbx.DialectSQLite), cfg)
}

func TestApply_OnlyOnce(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	wrote, err := Apply(ctx, s)
	require.NoError(t, err)
	assert.True(t, wrote)

	wrote, err = Apply(ctx, s)
	require.NoError(t, err)
	assert.False(t, wrote)

	users, err := s.Users.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Larry Davis", users[0].FullName())

	cals, err := s.Calendars.ListByOwner(ctx, users[0].ID)
	require.NoError(t, err)
	require.Len(t, cals, 1)

	events, err := s.Events.ListByCalendar(ctx, cals[0].ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Oil Change", events[0].Title, "listing is ordered by start")

	_, ok, err := s.Users.Authenticate(ctx, "user1@email.com", "password1")
	require.NoError(t, err)
	assert.True(t, ok)
}
