package app

import (
	"fmt"
	"os"

	"github.com/dori/folio/internal/config"
	"github.com/dori/folio/internal/db"
	"github.com/dori/folio/internal/logging"
	"github.com/dori/folio/internal/model"
	"github.com/dori/folio/internal/notify"
	"github.com/dori/folio/internal/router"
	"github.com/dori/folio/internal/seed"
	"github.com/dori/folio/internal/store"
	"github.com/gofrs/flock"
	"go.uber.org/zap"
)

// App holds the application state and dependencies
type App struct {
	Config   *config.Config
	Store    store.Store
	Router   *router.Router
	Notifier *notify.Notifier
	Logger   *zap.Logger
	db       *db.DB
	lockFile *flock.Flock
}

// New creates a new application instance
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		var err error
		if cfg, err = config.Load(""); err != nil {
			return nil, err
		}
	}

	// Ensure data directory exists
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	app := &App{Config: cfg}

	// Acquire lock to ensure single instance
	if err := app.acquireLock(); err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log.Enabled, cfg.Log.Level, cfg.Log.File)
	if err != nil {
		app.releaseLock()
		return nil, err
	}
	app.Logger = logger
	app.Notifier = notify.NewNotifier(cfg.Notify.Enabled, logger)

	clock := &seed.Clock{}
	if err := app.openStore(clock); err != nil {
		app.Close()
		return nil, err
	}

	if err := app.seed(clock); err != nil {
		app.Close()
		return nil, err
	}

	start, err := router.ParseView(cfg.StartView)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Router = router.New(app.Store, logger, start)
	app.Router.OnCompleted(func(p model.Project) {
		// notify-send can block; keep it off the update loop
		go app.Notifier.SendProjectCompleted(p.Title)
	})

	logger.Info("started",
		zap.String("backend", cfg.Store.Backend),
		zap.String("view", start.String()),
		zap.String("data_dir", cfg.DataDir))

	return app, nil
}

func (a *App) openStore(clock *seed.Clock) error {
	switch a.Config.Store.Backend {
	case config.BackendSQLite:
		database, err := db.Open("folio", a.Logger, store.WithClock(clock.Now))
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		a.db = database
		a.Store = database
	default:
		a.Store = store.NewMemStore(store.WithClock(clock.Now))
	}
	return nil
}

func (a *App) seed(clock *seed.Clock) error {
	if !a.Config.Seed.Enabled {
		return nil
	}

	var (
		n   int
		err error
	)
	if a.Config.Seed.File != "" {
		n, err = seed.LoadFile(a.Config.Seed.File, a.Store, clock)
	} else {
		n, err = seed.Load(a.Store, clock)
	}
	if err != nil {
		return fmt.Errorf("failed to load example projects: %w", err)
	}
	a.Logger.Debug("seeded projects", zap.Int("count", n))
	return nil
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	a.lockFile = flock.New(a.Config.LockPath())

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return fmt.Errorf("another instance of folio is already running")
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Close cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	a.releaseLock()
	_ = a.Logger.Sync()

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
