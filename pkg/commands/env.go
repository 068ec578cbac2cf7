package commands

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/config"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/local"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/printers"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/remote"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/runner/journal"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/state"
)

// env is what a client command needs: the config, a logger, the server
// client when an identity is configured and the thought store over the
// matching backend.
type env struct {
	cfg     *config.Config
	logger  *zap.Logger
	client  *remote.Client
	backend state.Backend
	store   *state.Store
}

func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger, err := cfg.Logger()
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func loadEnv(ctx context.Context) (*env, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, logger: logger}

	if cfg.Authenticated() {
		if e.client, err = newClient(cfg, logger); err != nil {
			return nil, err
		}
		e.backend = state.NewRemoteBackend(e.client)
	} else {
		e.backend = state.NewGuestBackend(local.New(cfg.Path, logger))
	}

	e.store = state.New(e.backend, state.WithLogger(logger))
	e.store.Init(ctx)
	return e, nil
}

func newClient(cfg *config.Config, logger *zap.Logger) (*remote.Client, error) {
	return remote.New(cfg.Server.URL, cfg.Token,
		remote.WithTimeout(cfg.HTTP.Timeout),
		remote.WithLogger(logger))
}

// serverClient is the client for commands that only make sense against a
// server.
func serverClient() (*remote.Client, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Authenticated() {
		return nil, journal.ErrGuest
	}
	return newClient(cfg, logger)
}

func (e *env) close() {
	e.store.Wait()
	_ = e.logger.Sync()
}

func printer(showID bool) *printers.PrettyPrint {
	return &printers.PrettyPrint{ShowID: showID, Loc: time.Local}
}
