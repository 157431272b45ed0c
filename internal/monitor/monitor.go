// Package monitor aggregates extension health: hook outcome counters,
// scan timings, world mirror sizes and journal backlog. It feeds the
// status file, the performance journal row and InfluxDB.
package monitor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"

	"github.com/refit/extension/internal/cache"
	"github.com/refit/extension/internal/influx"
	"github.com/refit/extension/internal/journal"
	"github.com/refit/extension/internal/logging"
	"github.com/refit/extension/internal/session"
)

// Dependencies holds all dependencies for the monitor service.
type Dependencies struct {
	World      *cache.WorldCache
	Journal    *journal.Manager
	Influx     *influx.Manager
	LogManager *logging.Manager
	Session    *session.Context
	StatusDir  string
}

// Status is the snapshot written to the status file.
type Status struct {
	Time           time.Time      `json:"time"`
	MapName        string         `json:"mapName"`
	Items          int            `json:"items"`
	Containers     int            `json:"containers"`
	Zones          int            `json:"zones"`
	JournalPending int            `json:"journalPending"`
	HookOutcomes   map[string]int `json:"hookOutcomes"`
}

// Service tracks hook outcomes and runs the status monitor.
type Service struct {
	deps Dependencies

	mu        sync.Mutex
	outcomes  map[string]int
	isRunning bool
	stopChan  chan struct{}
}

// NewService creates a new monitor service.
func NewService(deps Dependencies) *Service {
	return &Service{
		deps:     deps,
		outcomes: make(map[string]int),
		stopChan: make(chan struct{}),
	}
}

// CountHook records a hook outcome.
func (s *Service) CountHook(hook, outcome string) {
	s.mu.Lock()
	s.outcomes[hook+"/"+outcome]++
	s.mu.Unlock()

	if s.deps.Influx == nil {
		return
	}
	point := influxdb2.NewPointWithMeasurement("hook_outcomes").
		AddTag("hook", hook).
		AddTag("outcome", outcome).
		AddField("count", 1).
		SetTime(time.Now())
	if err := s.deps.Influx.WritePoint("refit_decisions", point); err != nil {
		s.logError("error writing hook outcome point", err)
	}
}

// ObserveScan records the duration of a storage scan.
func (s *Service) ObserveScan(hook string, d time.Duration) {
	if s.deps.Influx == nil {
		return
	}
	point := influxdb2.NewPointWithMeasurement("scan_duration").
		AddTag("hook", hook).
		AddField("micros", d.Microseconds()).
		SetTime(time.Now())
	if err := s.deps.Influx.WritePoint("refit_performance", point); err != nil {
		s.logError("error writing scan duration point", err)
	}
}

// Outcomes returns a copy of the hook outcome counters.
func (s *Service) Outcomes() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(s.outcomes))
	for k, v := range s.outcomes {
		out[k] = v
	}
	return out
}

// GetStatus returns the current extension status snapshot.
func (s *Service) GetStatus() Status {
	items, containers, zones := 0, 0, 0
	if s.deps.World != nil {
		items, containers, zones = s.deps.World.Counts()
	}

	pending := 0
	if s.deps.Journal != nil {
		pending = s.deps.Journal.PendingCount()
	}

	mapName := ""
	if s.deps.Session != nil {
		mapName = s.deps.Session.Get().MapName
	}

	return Status{
		Time:           time.Now(),
		MapName:        mapName,
		Items:          items,
		Containers:     containers,
		Zones:          zones,
		JournalPending: pending,
		HookOutcomes:   s.Outcomes(),
	}
}

// IsRunning returns whether the status monitor is running.
func (s *Service) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

// Start starts the status monitor goroutine. It rewrites the status file
// once a second and ships a performance point alongside.
func (s *Service) Start() error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.stopChan = make(chan struct{})
	s.mu.Unlock()

	statusFile, err := os.Create(filepath.Join(s.deps.StatusDir, "status.txt"))
	if err != nil {
		return fmt.Errorf("error creating status file: %w", err)
	}

	go func() {
		defer statusFile.Close()
		defer func() {
			s.mu.Lock()
			s.isRunning = false
			s.mu.Unlock()
		}()

		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-s.stopChan:
				return
			case <-ticker.C:
				status := s.GetStatus()

				statusStr, err := json.MarshalIndent(status, "", "  ")
				if err != nil {
					statusStr = []byte(fmt.Sprintf(`{"error": %q}`, err.Error()))
				}
				statusFile.Truncate(0)
				statusFile.Seek(0, 0)
				statusFile.Write(append(statusStr, '\n'))

				if s.deps.Influx != nil {
					point := influxdb2.NewPointWithMeasurement("extension_status").
						AddTag("map", status.MapName).
						AddField("items", status.Items).
						AddField("containers", status.Containers).
						AddField("zones", status.Zones).
						AddField("journal_pending", status.JournalPending).
						SetTime(status.Time)
					if err := s.deps.Influx.WritePoint("refit_performance", point); err != nil {
						s.logError("error writing status point", err)
					}
				}
			}
		}
	}()

	return nil
}

// Stop stops the status monitor.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		close(s.stopChan)
	}
}

func (s *Service) logError(msg string, err error) {
	if s.deps.LogManager != nil {
		s.deps.LogManager.Logger().Error(msg, "error", err)
	}
}
