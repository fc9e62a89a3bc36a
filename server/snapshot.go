package server

import (
	"sync/atomic"
	"time"

	"github.com/eringen/siteconf"
)

// Snapshot holds the configuration currently served. Each Store publishes a
// new immutable value; readers never observe a partially updated config.
type Snapshot struct {
	cur atomic.Pointer[snapshotState]
}

type snapshotState struct {
	cfg      siteconf.SiteConfig
	loadedAt time.Time
}

// NewSnapshot returns a Snapshot initialised with cfg.
func NewSnapshot(cfg siteconf.SiteConfig) *Snapshot {
	s := &Snapshot{}
	s.Store(cfg)
	return s
}

// Config returns the current configuration.
func (s *Snapshot) Config() siteconf.SiteConfig {
	return s.cur.Load().cfg
}

// Current returns the configuration together with the time it was stored,
// both from the same snapshot.
func (s *Snapshot) Current() (siteconf.SiteConfig, time.Time) {
	st := s.cur.Load()
	return st.cfg, st.loadedAt
}

// LoadedAt returns when the current configuration was stored.
func (s *Snapshot) LoadedAt() time.Time {
	return s.cur.Load().loadedAt
}

// Store replaces the current configuration.
func (s *Snapshot) Store(cfg siteconf.SiteConfig) {
	s.cur.Store(&snapshotState{cfg: cfg, loadedAt: time.Now()})
}
