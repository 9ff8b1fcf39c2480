package scheduler

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"gpevim-backend/internal/infrastructure/metrics"
)

const probeTimeout = 10 * time.Second

// PingFunc probes the durable backend.
type PingFunc func(ctx context.Context) error

// Counter reports how many records a fallback store holds.
type Counter interface {
	Len() int
}

type Scheduler struct {
	cron   *cron.Cron
	ping   PingFunc
	locals map[string]Counter
}

// New registers the health job on spec (standard cron syntax or
// descriptors such as "@every 1m"). ping may be nil in memory-only mode.
func New(spec string, ping PingFunc, locals map[string]Counter) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		ping:   ping,
		locals: locals,
	}

	if _, err := s.cron.AddFunc(spec, s.runHealthCheck); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	log.Info().Int("jobs", len(s.cron.Entries())).Msg("[Scheduler] Starting")
	s.cron.Start()
}

// Stop waits for a running job to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop().Done()
	select {
	case <-done:
		log.Info().Msg("[Scheduler] Stopped")
	case <-ctx.Done():
		log.Warn().Msg("[Scheduler] Stop timed out")
	}
}

func (s *Scheduler) runHealthCheck() {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	s.CheckHealth(ctx)
}

// CheckHealth probes the durable backend and reports fallback record counts.
// It returns whether the backend answered.
func (s *Scheduler) CheckHealth(ctx context.Context) bool {
	up := false
	if s.ping != nil {
		if err := s.ping(ctx); err != nil {
			log.Warn().Err(err).Msg("[Scheduler] Durable backend unreachable")
		} else {
			up = true
		}
	}
	metrics.SetDurableBackendUp(up)

	kinds := make([]string, 0, len(s.locals))
	for kind := range s.locals {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	for _, kind := range kinds {
		n := s.locals[kind].Len()
		metrics.SetLocalRecords(kind, n)
		if n > 0 {
			log.Warn().
				Str("kind", kind).
				Int("records", n).
				Msg("[Scheduler] Records held only in process memory")
		}
	}
	return up
}
