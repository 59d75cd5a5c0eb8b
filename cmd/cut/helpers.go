package main

import (
	"fmt"

	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/config"
	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/logger"
	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/profile"
	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/store"
	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/tier"
)

// appContext bundles the pieces every subcommand needs. Stores are
// constructed once per process and passed down explicitly.
type appContext struct {
	cfg      *config.Config
	store    *store.Store
	profiles *profile.Store
	kv       *tier.KVTier
}

// openApp loads configuration and opens both tiers. The caller must
// invoke close when done.
func openApp() (*appContext, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.SetDebug(cfg.Debug)

	fileTier, err := tier.NewFileTier(cfg.SharedDir)
	if err != nil {
		return nil, nil, err
	}
	kvTier, err := tier.NewKVTier(cfg.RegisterPath)
	if err != nil {
		return nil, nil, err
	}

	st := store.New(fileTier, kvTier)
	profiles, err := profile.NewStore(st)
	if err != nil {
		_ = kvTier.Close()
		return nil, nil, err
	}

	app := &appContext{cfg: cfg, store: st, profiles: profiles, kv: kvTier}
	cleanup := func() {
		if err := kvTier.Close(); err != nil {
			logger.Warn("failed to close register", "error", err)
		}
	}
	return app, cleanup, nil
}

// resolveProfileID picks the explicit profile flag when set, the active
// profile otherwise. An empty result selects the legacy single-profile
// namespace.
func (a *appContext) resolveProfileID(flag string) string {
	if flag != "" {
		return flag
	}
	return a.profiles.ActiveID()
}
