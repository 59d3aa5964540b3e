package access_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotour/internal/access"
	"gotour/internal/domain"
	apperror "gotour/internal/errors"
	"gotour/internal/navigation"
	"gotour/internal/pkg/logger"
	"gotour/internal/pkg/storage"
	"gotour/internal/repository/sessionrepo"
	"gotour/internal/session"
)

var (
	initializing = domain.Access{State: domain.StateInitializing}
	anonymous    = domain.Access{State: domain.StateAnonymous}
	asGuide      = domain.Access{State: domain.StateAuthenticated, Authenticated: true, Role: domain.RoleGuide}
	asAdmin      = domain.Access{State: domain.StateAuthenticated, Authenticated: true, Role: domain.RoleAdmin}
)

func TestDecide(t *testing.T) {
	guard := access.Require(domain.RoleGuide, domain.RoleAdmin)

	assert.Equal(t, access.Decision{Outcome: access.Wait}, guard.Decide(initializing))
	assert.Equal(t, access.Decision{Outcome: access.Redirect, Path: navigation.LoginPath}, guard.Decide(anonymous))
	assert.Equal(t, access.Render, guard.Decide(asGuide).Outcome)
	assert.Equal(t, access.Render, guard.Decide(asAdmin).Outcome)

	tourist := domain.Access{State: domain.StateAuthenticated, Authenticated: true, Role: domain.RoleTourist}
	assert.Equal(t, access.Forbidden, guard.Decide(tourist).Outcome)
}

func TestAuthenticated_AcceptsAnyRole(t *testing.T) {
	assert.Equal(t, access.Render, access.Authenticated().Decide(asGuide).Outcome)
	assert.Equal(t, access.Redirect, access.Authenticated().Decide(anonymous).Outcome)
}

func TestCheck(t *testing.T) {
	guard := access.Require(domain.RoleAdmin)

	assert.NoError(t, guard.Check(asAdmin))
	assert.IsType(t, &apperror.UnauthorizedError{}, guard.Check(anonymous))
	assert.IsType(t, &apperror.UnauthorizedError{}, guard.Check(initializing))

	err := guard.Check(asGuide)
	assert.IsType(t, &apperror.ForbiddenError{}, err)
	assert.Contains(t, err.Error(), "admin")
}

func TestAwait_WaitsForRestoreBeforeRedirecting(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, sessionrepo.TokenSlot, "t1"))
	require.NoError(t, store.Set(ctx, sessionrepo.UserSlot, `{"userId":"u2","role":"guide","email":"g@x.com"}`))

	repo := sessionrepo.NewRepository(store, "", logger.NewNopLogger())
	m := session.NewManager(repo, navigation.NewHistory(), logger.NewNopLogger())

	// Antes da restauração, a decisão é esperar e não redirecionar.
	assert.Equal(t, access.Wait, access.Require(domain.RoleGuide).Decide(m.CurrentAccess()).Outcome)

	go func() {
		time.Sleep(5 * time.Millisecond)
		m.Initialize(ctx)
	}()

	decision, err := access.Require(domain.RoleGuide).Await(ctx, m)
	require.NoError(t, err)
	assert.Equal(t, access.Render, decision.Outcome)
}

func TestAwait_ContextCancelled(t *testing.T) {
	repo := sessionrepo.NewRepository(storage.NewMemoryStore(), "", logger.NewNopLogger())
	m := session.NewManager(repo, navigation.NewHistory(), logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	decision, err := access.Authenticated().Await(ctx, m)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, access.Wait, decision.Outcome)
}

func TestLinksFor(t *testing.T) {
	assert.Equal(t, "Tours", access.LinksFor(anonymous)[0].Name)
	assert.Equal(t, "Tours", access.LinksFor(initializing)[0].Name)

	guideLinks := access.LinksFor(asGuide)
	assert.Len(t, guideLinks, 4)
	assert.Equal(t, "/dashboard/create-tour", guideLinks[2].Href)

	adminLinks := access.LinksFor(asAdmin)
	assert.Equal(t, "/dashboard/admin/users", adminLinks[1].Href)

	tourist := domain.Access{State: domain.StateAuthenticated, Authenticated: true, Role: domain.RoleTourist}
	assert.Equal(t, "My Trips", access.LinksFor(tourist)[1].Name)

	// A cópia devolvida não altera o menu global.
	adminLinks[0].Name = "changed"
	assert.Equal(t, "Overview", access.LinksFor(asAdmin)[0].Name)
}

func TestDashboardFor(t *testing.T) {
	assert.Equal(t, access.DashboardNone, access.DashboardFor(anonymous))
	assert.Equal(t, access.DashboardGuide, access.DashboardFor(asGuide))
	assert.Equal(t, access.DashboardAdmin, access.DashboardFor(asAdmin))
}
