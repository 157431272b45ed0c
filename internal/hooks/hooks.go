// Package hooks implements the three host pipeline interceptions:
// blueprint placement, the per-cell placement readout, and the
// resource-delivery job note. Every hook runs behind an error boundary
// and answers the pass-through response on any internal failure, so the
// host always falls back to its own unmodified behavior.
package hooks

import (
	"fmt"
	"time"

	"github.com/refit/extension/internal/cache"
	"github.com/refit/extension/internal/finder"
	"github.com/refit/extension/internal/journal"
	"github.com/refit/extension/internal/logging"
	"github.com/refit/extension/internal/parser"
)

// logPrefix marks every log line produced by a hook boundary.
const logPrefix = "[refit]"

// Recorder persists hook decisions. A nil Recorder disables journaling.
type Recorder interface {
	Record(r journal.DecisionRecord) error
}

// Metrics counts hook outcomes. A nil Metrics disables counting.
type Metrics interface {
	CountHook(hook, outcome string)
	ObserveScan(hook string, d time.Duration)
}

// Dependencies holds all dependencies needed by the hook service.
type Dependencies struct {
	World      *cache.WorldCache
	Finder     *finder.Finder
	Parser     *parser.Parser
	LogManager *logging.Manager
	Journal    Recorder
	Metrics    Metrics

	// TutorialKey is the host notification key echoed on install
	// decisions, replicating the host's own placement hint.
	TutorialKey string

	// RequireMaterialMatch binds a pinned material: a stored copy must
	// carry the same material to substitute. Enabled by default; an
	// empty host material is always unconstrained.
	RequireMaterialMatch bool
}

// Service provides the hook entry points.
type Service struct {
	deps         Dependencies
	writeLogFunc func(functionName, data, level string)
}

// NewService creates a new hook service.
func NewService(deps Dependencies) *Service {
	s := &Service{
		deps: deps,
	}
	// Default writeLog function uses the logging manager
	s.writeLogFunc = func(functionName, data, level string) {
		if deps.LogManager != nil {
			deps.LogManager.WriteLog(functionName, fmt.Sprintf("%s %s", logPrefix, data), level)
		}
	}
	return s
}

func (s *Service) writeLog(functionName, data, level string) {
	s.writeLogFunc(functionName, data, level)
}

// guard runs fn behind the hook error boundary. Panics and errors are
// logged and the fallback response is returned, deferring to unmodified
// host behavior.
func (s *Service) guard(functionName, fallback string, fn func() (string, error)) (response string) {
	defer func() {
		if r := recover(); r != nil {
			s.writeLog(functionName, fmt.Sprintf("hook panicked, deferring to host: %v", r), "ERROR")
			response = fallback
		}
	}()

	response, err := fn()
	if err != nil {
		s.writeLog(functionName, fmt.Sprintf("hook failed, deferring to host: %v", err), "ERROR")
		return fallback
	}
	return response
}

func (s *Service) record(r journal.DecisionRecord) {
	if s.deps.Journal == nil {
		return
	}
	if err := s.deps.Journal.Record(r); err != nil {
		s.writeLog(":JOURNAL:", fmt.Sprintf("error recording decision: %v", err), "WARN")
	}
}

func (s *Service) count(hook, outcome string) {
	if s.deps.Metrics != nil {
		s.deps.Metrics.CountHook(hook, outcome)
	}
}

func (s *Service) observeScan(hook string, d time.Duration) {
	if s.deps.Metrics != nil {
		s.deps.Metrics.ObserveScan(hook, d)
	}
}
