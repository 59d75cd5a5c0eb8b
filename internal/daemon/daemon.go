// Package daemon runs the long-lived background process: it polls the
// remote usage API on a timer, publishes each successful snapshot
// through the store for the display processes to read, records history
// and raises desktop notifications on critical usage.
package daemon

import (
	"context"
	"errors"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/fetch"
	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/history"
	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/logger"
	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/metrics"
	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/models"
	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/profile"
	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/store"
)

// NotifyFunc delivers a desktop notification.
type NotifyFunc func(title, body string) error

// Daemon is the background poller. It is the sole writer of usage
// snapshots; display processes only ever read.
type Daemon struct {
	store    *store.Store
	profiles *profile.Store
	fetcher  fetch.UsageFetcher
	history  *history.Store
	interval time.Duration
	notify   NotifyFunc

	// previous session status level per profile, for crossing detection
	previous map[string]metrics.StatusLevel
}

// New creates a daemon. history may be nil to disable recording; notify
// defaults to desktop notifications.
func New(st *store.Store, profiles *profile.Store, fetcher fetch.UsageFetcher, hist *history.Store, interval time.Duration) *Daemon {
	return &Daemon{
		store:    st,
		profiles: profiles,
		fetcher:  fetcher,
		history:  hist,
		interval: interval,
		notify: func(title, body string) error {
			return beeep.Notify(title, body, "")
		},
		previous: make(map[string]metrics.StatusLevel),
	}
}

// Run polls immediately, then on every tick until the context is
// cancelled. Fetch failures are logged and retried naturally on the
// next tick; nothing in the loop is fatal.
func (d *Daemon) Run(ctx context.Context) error {
	logger.Info("daemon started", "interval", d.interval)
	d.pollAll(ctx)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	pruneTicker := time.NewTicker(24 * time.Hour)
	defer pruneTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("daemon stopping")
			return nil
		case <-ticker.C:
			d.pollAll(ctx)
		case <-pruneTicker.C:
			if d.history != nil {
				if err := d.history.Prune(); err != nil {
					logger.Warn("history prune failed", "error", err)
				}
			}
		}
	}
}

// pollAll refreshes every profile that carries credentials.
func (d *Daemon) pollAll(ctx context.Context) {
	for _, p := range d.profiles.List() {
		if !p.HasCredentials() {
			continue
		}
		if err := d.pollProfile(ctx, p); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			logger.Error("usage poll failed", "profile", p.ID, "error", err)
		}
	}
}

func (d *Daemon) pollProfile(ctx context.Context, p models.Profile) error {
	snap, err := d.fetcher.FetchUsage(ctx, fetch.Credentials{
		SessionToken: p.SessionToken,
		OrgID:        p.OrgID,
		APIToken:     p.APIToken,
		APIOrgID:     p.APIOrgID,
	})
	if err != nil {
		return err
	}

	if err := d.store.SaveSnapshot(p.ID, snap); err != nil {
		logger.Warn("snapshot save failed", "profile", p.ID, "error", err)
	}

	p.CachedSnapshot = snap
	if err := d.profiles.Update(p); err != nil {
		logger.Debug("profile snapshot cache update failed", "profile", p.ID, "error", err)
	}

	if d.history != nil {
		if err := d.history.Record(p.ID, snap); err != nil {
			logger.Warn("history record failed", "profile", p.ID, "error", err)
		}
	}

	d.checkNotifications(p, snap)

	logger.Debug("usage polled",
		"profile", p.ID,
		"session", snap.SessionPercentage,
		"weekly", snap.WeeklyPercentage)
	return nil
}

// checkNotifications raises a notification when the session percentage
// crosses upward into critical, once per crossing.
func (d *Daemon) checkNotifications(p models.Profile, snap *models.UsageSnapshot) {
	level := metrics.StatusLevelFor(metrics.Clamp(snap.SessionPercentage))
	previous, seen := d.previous[p.ID]
	d.previous[p.ID] = level

	settings := d.store.LoadSettings(p.ID)
	if !settings.NotificationsEnabled {
		return
	}
	if !seen || previous == metrics.StatusCritical || level != metrics.StatusCritical {
		return
	}

	name := p.DisplayName
	if name == "" {
		name = p.ID
	}
	title := "Claude usage critical"
	body := name + " session usage is above 80%"
	if err := d.notify(title, body); err != nil {
		logger.Debug("notification failed", "error", err)
	}
}
