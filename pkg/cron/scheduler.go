package cron

import (
	"sync"

	"github.com/pkg/errors"
	robfig "github.com/robfig/cron"

	"github.com/go-quizhub/quizhub/pkg/log"
)

// ErrNotInitialized is returned when using the global scheduler before Init.
var ErrNotInitialized = errors.New("global cron instance is not initialized")

// Scheduler wraps a robfig cron runner with named jobs.
type Scheduler struct {
	mu    sync.Mutex
	inner *robfig.Cron
	names map[string]string // name -> spec, for introspection
}

// New creates a stopped scheduler.
func New() *Scheduler {
	return &Scheduler{
		inner: robfig.New(),
		names: make(map[string]string),
	}
}

// AddFunc registers cmd to run on the given cron spec under a unique name.
func (s *Scheduler) AddFunc(spec, name string, cmd func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.names[name]; ok {
		return errors.Errorf("cron job %q already registered", name)
	}
	wrapped := func() {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("cron job panicked", "job", name, "panic", r)
			}
		}()
		cmd()
	}
	if err := s.inner.AddFunc(spec, wrapped); err != nil {
		return err
	}
	s.names[name] = spec
	return nil
}

// Start launches the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.inner.Start()
}

// Stop halts the scheduler; running jobs finish on their own.
func (s *Scheduler) Stop() {
	s.inner.Stop()
}

// Jobs returns the registered job names and specs.
func (s *Scheduler) Jobs() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.names))
	for n, spec := range s.names {
		out[n] = spec
	}
	return out
}

var (
	globalCron *Scheduler
	globalMu   sync.RWMutex
	once       sync.Once
)

// Init initializes the global scheduler instance.
func Init() {
	once.Do(func() {
		globalMu.Lock()
		defer globalMu.Unlock()
		globalCron = New()
	})
}

// Get returns the global scheduler, nil if not initialized.
func Get() *Scheduler {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalCron
}

// AddFunc adds a func to the global scheduler.
func AddFunc(spec, name string, cmd func()) error {
	s := Get()
	if s == nil {
		return ErrNotInitialized
	}
	return s.AddFunc(spec, name, cmd)
}

// Start starts the global scheduler.
func Start() {
	if s := Get(); s != nil {
		s.Start()
	}
}

// Stop stops the global scheduler.
func Stop() {
	if s := Get(); s != nil {
		s.Stop()
	}
}
