package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pressly/goose/v3"

	"gotour/config"
	"gotour/internal/access"
	"gotour/internal/api"
	apperror "gotour/internal/errors"
	"gotour/internal/navigation"
	"gotour/internal/pkg/cache"
	"gotour/internal/pkg/database"
	"gotour/internal/pkg/logger"
	"gotour/internal/pkg/storage"
	"gotour/internal/pkg/token"
	"gotour/internal/repository/sessionrepo"
	"gotour/internal/service/adminservice"
	"gotour/internal/service/authservice"
	"gotour/internal/service/bookingservice"
	"gotour/internal/service/tourservice"
	"gotour/internal/session"
)

// tokenLeeway tolera relógios levemente dessincronizados ao checar exp.
const tokenLeeway = 30 * time.Second

// App é o grafo de dependências da CLI, montado uma vez por execução.
type App struct {
	cfg     *config.Config
	log     logger.Logger
	out     io.Writer
	history *navigation.History
	nav     navigation.Navigator

	Session  *session.Manager
	Auth     *authservice.Service
	Tours    *tourservice.Service
	Bookings *bookingservice.Service
	Admin    *adminservice.Service

	closers []func() error
}

// NewApp conecta storage, sessão, cliente da API e serviços, e restaura a sessão.
// Ordem: Storage -> Repository -> Session -> API -> Services
func NewApp(ctx context.Context, cfg *config.Config, log logger.Logger, out io.Writer) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, apperror.NewValidationError(err.Error())
	}

	app := &App{cfg: cfg, log: log, out: out, history: navigation.NewHistory()}
	app.nav = navigation.Tee{app.history, navigation.Printer{W: out}}

	// 1. Storage durável da sessão
	store, rdb, err := app.openStore(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}
	if cfg.SessionSecret != "" {
		sealed, err := storage.NewSealedStore(store, cfg.SessionSecret, "gotour-session:"+cfg.SessionKeyPrefix)
		if err != nil {
			app.Close()
			return nil, apperror.NewValidationError(err.Error())
		}
		store = sealed
		log.Debug("Registro de sessão cifrado.", nil)
	}

	// 2. Sessão
	repo := sessionrepo.NewRepository(store, cfg.SessionKeyPrefix, log)
	opts := []session.Option{
		session.WithLandingPath(cfg.LandingPath),
		session.WithLoginPath(cfg.LoginPath),
	}
	if cfg.RejectExpiredTokens {
		opts = append(opts, session.WithTokenInspector(token.NewInspector(tokenLeeway)))
	}
	app.Session = session.NewManager(repo, app.nav, log, opts...)

	// 3. Cliente REST
	client, err := api.NewClient(cfg.APIBaseURL, cfg.APITimeout, log,
		api.WithTokenSource(app.Session),
		api.WithRateLimit(cfg.RateLimitMaxRequests, cfg.RateLimitPeriod),
	)
	if err != nil {
		app.Close()
		return nil, err
	}

	// 4. Cache opcional da lista de passeios
	var cacheClient cache.Client
	if rdb == nil && cfg.RedisAddr != "" {
		rdb, err = cache.Connect(ctx, cfg.RedisAddr, cfg.CacheTimeout)
		if err != nil {
			log.Warn("Redis indisponível; seguindo sem cache.", map[string]interface{}{"error": err.Error()})
		} else {
			app.closers = append(app.closers, rdb.Close)
		}
	}
	if rdb != nil {
		cacheClient = cache.NewRedisClient(rdb)
	}

	// 5. Serviços
	app.Auth = authservice.NewService(client, app.Session, log)
	app.Tours = tourservice.NewService(client, app.Session, cacheClient, cfg.TourCacheTTL, log)
	app.Bookings = bookingservice.NewService(client, app.Session, log)
	app.Admin = adminservice.NewService(client, app.Session, log)

	app.Session.Initialize(ctx)
	return app, nil
}

// openStore devolve o Store do backend configurado e, para redis, o cliente
// compartilhado com o cache.
func (a *App) openStore(ctx context.Context) (storage.Store, *redis.Client, error) {
	switch a.cfg.SessionBackend {
	case config.BackendMemory:
		return storage.NewMemoryStore(), nil, nil

	case config.BackendRedis:
		rdb, err := cache.Connect(ctx, a.cfg.RedisAddr, a.cfg.CacheTimeout)
		if err != nil {
			return nil, nil, apperror.NewInternalError("Falha ao conectar ao Redis.", err)
		}
		a.closers = append(a.closers, rdb.Close)
		return storage.NewRedisStore(rdb, a.cfg.CacheTimeout, 0), rdb, nil

	case config.BackendPostgres:
		db, err := database.NewPostgresDB(a.cfg.DatabaseURL)
		if err != nil {
			return nil, nil, apperror.NewInternalError("Falha ao conectar ao PostgreSQL.", err)
		}
		return a.sqlStore(ctx, db, goose.DialectPostgres)

	default:
		db, err := database.NewSQLiteDB(a.cfg.SessionDBPath)
		if err != nil {
			return nil, nil, apperror.NewInternalError("Falha ao abrir o SQLite da sessão.", err)
		}
		return a.sqlStore(ctx, db, goose.DialectSQLite3)
	}
}

func (a *App) sqlStore(ctx context.Context, db *sql.DB, dialect goose.Dialect) (storage.Store, *redis.Client, error) {
	a.closers = append(a.closers, db.Close)
	if err := storage.Migrate(ctx, db, dialect); err != nil {
		return nil, nil, apperror.NewInternalError("Falha ao migrar o storage da sessão.", err)
	}
	return storage.NewSQLStore(db, a.cfg.DBTimeout), nil, nil
}

// Gate espera a restauração da sessão e aplica o guard. Sem sessão, navega
// para o login e devolve 401; com role errada, devolve 403.
func (a *App) Gate(ctx context.Context, g access.Guard) error {
	if g.LoginPath == "" {
		g.LoginPath = a.cfg.LoginPath
	}

	decision, err := g.Await(ctx, a.Session)
	if err != nil {
		return apperror.NewInternalError("sessão não ficou pronta", err)
	}

	switch decision.Outcome {
	case access.Redirect:
		a.nav.Navigate(decision.Path)
		return apperror.NewUnauthorizedError("faça login com 'tourctl login'.")
	case access.Forbidden:
		return g.Check(a.Session.CurrentAccess())
	}
	return nil
}

// History expõe as navegações feitas nesta execução.
func (a *App) History() *navigation.History { return a.history }

// Close libera conexões na ordem inversa de abertura.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	if len(errs) > 0 {
		return fmt.Errorf("falha ao encerrar recursos: %w", errors.Join(errs...))
	}
	return nil
}
