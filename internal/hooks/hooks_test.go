package hooks

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refit/extension/internal/cache"
	"github.com/refit/extension/internal/finder"
	"github.com/refit/extension/internal/journal"
	"github.com/refit/extension/internal/parser"
	"github.com/refit/extension/pkg/core"
)

type mockRecorder struct {
	records []journal.DecisionRecord
}

func (m *mockRecorder) Record(r journal.DecisionRecord) error {
	m.records = append(m.records, r)
	return nil
}

type mockMetrics struct {
	counts map[string]int
	scans  int
}

func newMockMetrics() *mockMetrics {
	return &mockMetrics{counts: make(map[string]int)}
}

func (m *mockMetrics) CountHook(hook, outcome string) {
	m.counts[hook+"/"+outcome]++
}

func (m *mockMetrics) ObserveScan(hook string, d time.Duration) {
	m.scans++
}

type fixture struct {
	service *Service
	world   *cache.WorldCache
	journal *mockRecorder
	metrics *mockMetrics
	logs    []string
}

func newFixture(t *testing.T, requireMaterial bool) *fixture {
	t.Helper()

	world := cache.NewWorldCache()
	f := &fixture{
		world:   world,
		journal: &mockRecorder{},
		metrics: newMockMetrics(),
	}

	f.service = NewService(Dependencies{
		World:                world,
		Finder:               finder.New(world),
		Parser:               parser.NewParser(slog.New(slog.NewTextHandler(io.Discard, nil))),
		Journal:              f.journal,
		Metrics:              f.metrics,
		TutorialKey:          "refit_reinstall_hint",
		RequireMaterialMatch: requireMaterial,
	})
	f.service.writeLogFunc = func(functionName, data, level string) {
		f.logs = append(f.logs, functionName+" "+level+" "+data)
	}

	return f
}

func storedBed(id uint32) core.MinifiedItem {
	return core.MinifiedItem{
		ID:       id,
		Type:     "BED",
		Material: "OAK",
		Cell:     core.GridPos{X: 10, Y: 10, Z: 0},
		Faction:  "PLAYER",
	}
}

func placementArgs(typ, material, minifiable, verdict, reason, callback string) []string {
	return []string{typ, material, "\"42,17,0\"", "PLAYER", minifiable, verdict, reason, callback}
}

func TestHandlePlacementInstall(t *testing.T) {
	f := newFixture(t, true)
	f.world.PutItem(storedBed(7))

	resp := f.service.HandlePlacement(placementArgs("BED", "OAK", "true", "true", "", "cb-1"))

	var decoded []any
	require.NoError(t, json.Unmarshal([]byte(resp), &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, "install", decoded[0])
	assert.Equal(t, "7", decoded[1])

	effects, ok := decoded[2].([]any)
	require.True(t, ok)
	require.Len(t, effects, 3)
	puff := effects[0].([]any)
	assert.Equal(t, []any{"puff", "42,17,0"}, puff)
	tutorial := effects[1].([]any)
	assert.Equal(t, []any{"tutorial", "refit_reinstall_hint"}, tutorial)
	callback := effects[2].([]any)
	assert.Equal(t, []any{"callback", "cb-1"}, callback)

	assert.Equal(t, 1, f.metrics.counts["placement/install"])
	require.Len(t, f.journal.records, 1)
	assert.Equal(t, "install", f.journal.records[0].Kind)
	assert.Equal(t, uint32(7), f.journal.records[0].ItemID)
}

func TestHandlePlacementNoCallbackEffect(t *testing.T) {
	f := newFixture(t, true)
	f.world.PutItem(storedBed(7))

	resp := f.service.HandlePlacement(placementArgs("BED", "", "true", "true", "", ""))

	var decoded []any
	require.NoError(t, json.Unmarshal([]byte(resp), &decoded))
	effects := decoded[2].([]any)
	assert.Len(t, effects, 2)
}

func TestHandlePlacementHostVerdictRejects(t *testing.T) {
	f := newFixture(t, true)
	f.world.PutItem(storedBed(7))

	resp := f.service.HandlePlacement(placementArgs("BED", "", "true", "false", "blocked by roof", ""))

	var decoded []string
	require.NoError(t, json.Unmarshal([]byte(resp), &decoded))
	assert.Equal(t, []string{"reject", "blocked by roof"}, decoded)
	assert.Equal(t, 1, f.metrics.counts["placement/reject"])
}

func TestHandlePlacementPassCases(t *testing.T) {
	cases := []struct {
		name  string
		setup func(f *fixture)
		args  []string
	}{
		{
			name:  "no stored copy",
			setup: func(f *fixture) {},
			args:  placementArgs("BED", "", "true", "true", "", ""),
		},
		{
			name: "target not minifiable",
			setup: func(f *fixture) {
				f.world.PutItem(storedBed(7))
			},
			args: placementArgs("BED", "", "false", "true", "", ""),
		},
		{
			name: "stored copy held by a pawn",
			setup: func(f *fixture) {
				item := storedBed(7)
				item.Held = true
				f.world.PutItem(item)
			},
			args: placementArgs("BED", "", "true", "true", "", ""),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, true)
			tc.setup(f)

			resp := f.service.HandlePlacement(tc.args)

			assert.Equal(t, PassResponse, resp)
			assert.Equal(t, 1, f.metrics.counts["placement/pass"])
			assert.Empty(t, f.journal.records)
		})
	}
}

func TestHandlePlacementMaterialBinding(t *testing.T) {
	f := newFixture(t, true)
	f.world.PutItem(storedBed(7)) // OAK

	resp := f.service.HandlePlacement(placementArgs("BED", "GRANITE", "true", "true", "", ""))
	assert.Equal(t, PassResponse, resp)

	resp = f.service.HandlePlacement(placementArgs("BED", "OAK", "true", "true", "", ""))
	assert.Contains(t, resp, "install")

	// An empty host material is unconstrained.
	resp = f.service.HandlePlacement(placementArgs("BED", "", "true", "true", "", ""))
	assert.Contains(t, resp, "install")
}

// A host that opts out of material binding accepts any stored copy of
// the target type.
func TestHandlePlacementMaterialOptOut(t *testing.T) {
	f := newFixture(t, false)
	f.world.PutItem(storedBed(7)) // OAK

	resp := f.service.HandlePlacement(placementArgs("BED", "GRANITE", "true", "true", "", ""))
	assert.Contains(t, resp, "install")
}

func TestHandlePlacementParseErrorDefersToHost(t *testing.T) {
	f := newFixture(t, true)

	resp := f.service.HandlePlacement([]string{"BED"})

	assert.Equal(t, PassResponse, resp)
	require.Len(t, f.logs, 1)
	assert.Contains(t, f.logs[0], "deferring to host")
}

func TestHandleReadoutLine(t *testing.T) {
	f := newFixture(t, true)
	f.world.PutItem(storedBed(3))
	second := storedBed(9)
	second.Cell = core.GridPos{X: 11, Y: 10, Z: 0}
	f.world.PutItem(second)

	resp := f.service.HandleReadout([]string{"BED", "OAK", "PLAYER"})

	var decoded []string
	require.NoError(t, json.Unmarshal([]byte(resp), &decoded))
	require.Len(t, decoded, 4)
	assert.Equal(t, "readout", decoded[0])
	assert.Equal(t, "2", decoded[1])
	assert.Equal(t, "2 stored copies ready to install", decoded[2])
	assert.NotEmpty(t, decoded[3])

	require.Len(t, f.journal.records, 1)
	assert.Equal(t, 2, f.journal.records[0].Matches)
}

func TestHandleReadoutSingularCopy(t *testing.T) {
	f := newFixture(t, true)
	f.world.PutItem(storedBed(3))

	resp := f.service.HandleReadout([]string{"BED", "", "PLAYER"})

	assert.Contains(t, resp, "1 stored copy ready to install")
}

func TestHandleReadoutNoMatchesPasses(t *testing.T) {
	f := newFixture(t, true)

	resp := f.service.HandleReadout([]string{"BED", "", "PLAYER"})

	assert.Equal(t, PassResponse, resp)
	assert.Empty(t, f.journal.records)
}

func TestHandleJobAlwaysPasses(t *testing.T) {
	f := newFixture(t, true)
	f.world.PutItem(storedBed(5))

	resp := f.service.HandleJob([]string{"BED", "", "PLAYER"})

	assert.Equal(t, PassResponse, resp)
	assert.Equal(t, 1, f.metrics.counts["job/noted"])
	require.Len(t, f.logs, 1)
	assert.Contains(t, f.logs[0], "stored item 5 sits unused")
	require.Len(t, f.journal.records, 1)
	assert.Equal(t, "pass", f.journal.records[0].Kind)
}

func TestHandleJobNoMatchStaysQuiet(t *testing.T) {
	f := newFixture(t, true)

	resp := f.service.HandleJob([]string{"BED", "", "PLAYER"})

	assert.Equal(t, PassResponse, resp)
	assert.Equal(t, 1, f.metrics.counts["job/pass"])
	assert.Empty(t, f.logs)
	assert.Empty(t, f.journal.records)
}

// A panic anywhere inside a hook must still answer the pass-through
// response so the host keeps its unmodified behavior.
func TestHookPanicDefersToHost(t *testing.T) {
	f := newFixture(t, true)
	f.world.PutItem(storedBed(7))
	f.service.deps.Finder = nil // forces a nil dereference during the scan

	resp := f.service.HandlePlacement(placementArgs("BED", "", "true", "true", "", ""))

	assert.Equal(t, PassResponse, resp)
	require.Len(t, f.logs, 1)
	assert.Contains(t, f.logs[0], "panicked")
}

func TestHookScanDurationObserved(t *testing.T) {
	f := newFixture(t, true)
	f.world.PutItem(storedBed(7))

	f.service.HandlePlacement(placementArgs("BED", "", "true", "true", "", ""))
	f.service.HandleReadout([]string{"BED", "", "PLAYER"})
	f.service.HandleJob([]string{"BED", "", "PLAYER"})

	assert.Equal(t, 3, f.metrics.scans)
}
