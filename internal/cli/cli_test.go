package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotour/config"
	apperror "gotour/internal/errors"
	"gotour/internal/pkg/logger"
)

var accounts = map[string]string{
	"t@x.io": "tourist",
	"g@x.io": "guide",
	"a@x.io": "admin",
}

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&creds)
		role, ok := accounts[creds.Email]
		if !ok || creds.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"success":false,"message":"Credenciais inválidas"}`)
			return
		}
		fmt.Fprintf(w, `{"data":{"accessToken":"tok-%s","user":{"userId":"id-%s","role":"%s","email":"%s"}}}`, role, role, role, creds.Email)
	})

	mux.HandleFunc("/tours", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[
			{"_id":"t1","title":"Lisbon Food Walk","category":"Food","meetingPoint":"Rossio","price":45,"duration":3,"guide":"id-guide"},
			{"_id":"t2","title":"Sintra Hike","category":"Adventure","meetingPoint":"Sintra","price":60,"duration":5,"guide":{"_id":"id-guide","name":"Gui","role":"guide"}},
			{"_id":"t3","title":"Street Art","category":"Art","meetingPoint":"Lisbon LX","price":30,"duration":2,"guide":"id-admin"}]}`)
	})

	mux.HandleFunc("/bookings", func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer tok-") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"data":[{"_id":"b1","status":"pending","slots":2,"totalPrice":90,"tour":{"_id":"t1","title":"Lisbon Food Walk"},"date":"2026-07-01T00:00:00Z"}]}`)
	})

	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"_id":"id-tourist","name":"Ana","email":"t@x.io","role":"tourist"},{"_id":"id-admin","name":"Root","email":"a@x.io","role":"admin"}]}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// testEnv simula execuções separadas da CLI sobre o mesmo arquivo de sessão.
type testEnv struct {
	cfg config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	srv := fakeAPI(t)
	return &testEnv{cfg: config.Config{
		LogLevel:             "off",
		APIBaseURL:           srv.URL,
		APITimeout:           2 * time.Second,
		SessionBackend:       config.BackendSQLite,
		SessionDBPath:        filepath.Join(t.TempDir(), "session.db"),
		SessionKeyPrefix:     "test",
		LandingPath:          "/",
		LoginPath:            "/login",
		DBTimeout:            2 * time.Second,
		RateLimitMaxRequests: 100,
		RateLimitPeriod:      time.Minute,
	}}
}

func (e *testEnv) loader() Loader {
	return func(ctx context.Context, out io.Writer) (*App, error) {
		cfg := e.cfg
		return NewApp(ctx, &cfg, logger.NewNopLogger(), out)
	}
}

func (e *testEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(e.loader())
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLogin_PersistsAcrossRuns(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "secret\n", "login", "--email", "g@x.io")
	require.NoError(t, err)
	assert.Contains(t, out, "→ /")
	assert.Contains(t, out, "Bem-vindo, g@x.io (guide)")

	out, err = env.run(t, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Role:    guide")
	assert.Contains(t, out, "Estado:  authenticated")
}

func TestLogin_PromptsForEmail(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "t@x.io\nsecret\n", "login")

	require.NoError(t, err)
	assert.Contains(t, out, "Email: ")
	assert.Contains(t, out, "(tourist)")
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "nope\n", "login", "--email", "g@x.io")

	var uErr *apperror.UnauthorizedError
	require.ErrorAs(t, err, &uErr)

	out, err := env.run(t, "", "whoami")
	assert.Error(t, err)
	assert.Contains(t, out, "anonymous")
}

func TestLogout_ClearsDurableRecord(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "secret\n", "login", "--email", "t@x.io")
	require.NoError(t, err)

	out, err := env.run(t, "", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "→ /login")

	_, err = env.run(t, "", "whoami")
	var uErr *apperror.UnauthorizedError
	assert.ErrorAs(t, err, &uErr)
}

func TestGate_AnonymousIsRedirected(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "", "bookings", "list")

	var uErr *apperror.UnauthorizedError
	require.ErrorAs(t, err, &uErr)
	assert.Contains(t, out, "→ /login")
}

func TestGate_WrongRoleIsForbidden(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "secret\n", "login", "--email", "t@x.io")
	require.NoError(t, err)

	out, err := env.run(t, "", "users", "list")

	var fErr *apperror.ForbiddenError
	require.ErrorAs(t, err, &fErr)
	assert.NotContains(t, out, "→ /login")
}

func TestBookingsList_SendsBearer(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "secret\n", "login", "--email", "t@x.io")
	require.NoError(t, err)

	out, err := env.run(t, "", "bookings", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "Lisbon Food Walk")
	assert.Contains(t, out, "pending")
}

func TestToursList_SearchAndSort(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "", "tours", "list", "-q", "lisbon", "--sort", "asc")

	require.NoError(t, err)
	assert.NotContains(t, out, "Sintra Hike")
	assert.Less(t, strings.Index(out, "Street Art"), strings.Index(out, "Lisbon Food Walk"))
}

func TestToursMine_ListsOnlyOwnTours(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "secret\n", "login", "--email", "g@x.io")
	require.NoError(t, err)

	out, err := env.run(t, "", "tours", "mine")

	require.NoError(t, err)
	assert.Contains(t, out, "Lisbon Food Walk")
	assert.Contains(t, out, "Sintra Hike")
	assert.NotContains(t, out, "Street Art")
	assert.NotContains(t, out, "tours delete")
}

func TestToursMine_AdminGetsDeleteHint(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "secret\n", "login", "--email", "a@x.io")
	require.NoError(t, err)

	out, err := env.run(t, "", "tours", "mine")

	require.NoError(t, err)
	assert.Contains(t, out, "Street Art")
	assert.NotContains(t, out, "Sintra Hike")
	assert.Contains(t, out, "tours delete <id>")
}

func TestToursMine_TouristIsForbidden(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "secret\n", "login", "--email", "t@x.io")
	require.NoError(t, err)

	_, err = env.run(t, "", "tours", "mine")

	var fErr *apperror.ForbiddenError
	assert.ErrorAs(t, err, &fErr)
}

func TestToursList_InvalidSort(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "", "tours", "list", "--sort", "sideways")

	var vErr *apperror.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestDashboard_AdminSummary(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "secret\n", "login", "--email", "a@x.io")
	require.NoError(t, err)

	out, err := env.run(t, "", "dashboard")

	require.NoError(t, err)
	assert.Contains(t, out, "Painel: admin")
	assert.Contains(t, out, "/dashboard/admin/users")
	assert.Contains(t, out, "Contas: 2")
}

func TestSealedRecord_WrongSecretDropsSession(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.SessionSecret = "first-secret-value"
	_, err := env.run(t, "secret\n", "login", "--email", "t@x.io")
	require.NoError(t, err)

	out, err := env.run(t, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "tourist")

	env.cfg.SessionSecret = "another-secret-value"
	out, err = env.run(t, "", "whoami")
	assert.Error(t, err)
	assert.Contains(t, out, "anonymous")
}

func TestNewApp_InvalidConfig(t *testing.T) {
	cfg := config.Config{SessionBackend: "etcd", LandingPath: "/", LoginPath: "/login"}

	_, err := NewApp(context.Background(), &cfg, logger.NewNopLogger(), &bytes.Buffer{})

	var vErr *apperror.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer

	printError(&buf, apperror.NewForbiddenError("só admin"))

	assert.Equal(t, "❌ [FORBIDDEN] Acesso negado: só admin\n", buf.String())
}
