package main

import (
	"fmt"
	"log/slog"

	"github.com/jha-shubham/PRDs/internal/config"
	"github.com/jha-shubham/PRDs/internal/domain/activity"
	"github.com/jha-shubham/PRDs/internal/domain/prd"
	"github.com/jha-shubham/PRDs/internal/memory"
	"github.com/jha-shubham/PRDs/internal/sqlite"
)

// store bundles the services built on the configured backend.
type store struct {
	prds     *prd.Service
	activity *activity.Service
	close    func() error
}

func openStore(cfg config.Config, logger *slog.Logger) (*store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ids, err := prd.NewIDGenerator(cfg.IDs.Strategy)
	if err != nil {
		return nil, err
	}

	var (
		prdRepo      prd.Repository
		activityRepo activity.Repository
		closeFn      = func() error { return nil }
	)
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		if cfg.Store.Capacity > 0 {
			logger.Warn("store capacity is only enforced by the memory backend", "capacity", cfg.Store.Capacity)
		}
		db, err := sqlite.NewInMemory()
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		prdRepo = sqlite.NewPRDRepository(db)
		activityRepo = sqlite.NewActivityRepository(db)
		closeFn = db.Close
	case config.BackendMemory:
		prdRepo = memory.NewPRDRepository(cfg.Store.Capacity)
		activityRepo = memory.NewActivityRepository()
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	activities := activity.NewService(activityRepo, logger)
	return &store{
		prds:     prd.NewService(prdRepo, activities, ids, logger),
		activity: activities,
		close:    closeFn,
	}, nil
}

func (s *store) Close() error {
	return s.close()
}
