// Package serve runs the reference REST server.
package serve

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/auth"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/datastore"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/server"
)

type Serve struct {
	Addr         string
	DB           string
	Secret       string
	Issuer       string
	CleanupKey   string
	CleanupEvery time.Duration
	Logger       *zap.Logger
}

func (s *Serve) Do(ctx context.Context) error {
	if s.Secret == "" {
		return fmt.Errorf("serve: serve.secret is required to verify identity tokens")
	}
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	issuer, err := auth.NewIssuer(s.Secret, s.Issuer, auth.DefaultTTL)
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.DB), 0o755); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	store, err := datastore.Open(ctx, s.DB)
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("close datastore", zap.Error(err))
		}
	}()

	logger.Info("serving", zap.String("addr", s.Addr), zap.String("db", s.DB))
	srv := server.New(store, issuer,
		server.WithLogger(logger),
		server.WithCleanupKey(s.CleanupKey),
	)
	return srv.ListenAndServe(ctx, s.Addr, s.CleanupEvery)
}
