package constraints

import (
	"fmt"
	"sort"

	"github.com/maktab-edu/timetable-solver/internal/cpmodel"
	"github.com/maktab-edu/timetable-solver/internal/model"
)

type hardEntry struct {
	stage    Stage
	order    int
	priority int
	plugin   HardPlugin
}

type softEntry struct {
	stage    Stage
	order    int
	priority int
	plugin   SoftPlugin
}

// Registry is an explicitly-constructed catalogue of constraint
// plugins (§4.2), replacing the source's process-wide singleton per
// the §9 re-architecture note: callers build one Registry per solve
// attempt (or per sub-problem, under decomposition) and never share it
// across concurrent solves.
type Registry struct {
	names   map[string]bool
	hard    []hardEntry
	soft    []softEntry
	counter int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]bool)}
}

// RegisterHard adds a hard constraint plugin at the given stage and
// priority. It panics on a duplicate name: registry construction
// happens once at process wiring time and a name collision is a wiring
// bug, not a runtime condition to recover from.
func (r *Registry) RegisterHard(stage Stage, priority int, p HardPlugin) {
	if r.names[p.Name()] {
		panic(fmt.Sprintf("constraints: duplicate plugin name %q", p.Name()))
	}
	r.names[p.Name()] = true
	r.hard = append(r.hard, hardEntry{stage: stage, order: r.counter, priority: priority, plugin: p})
	r.counter++
}

// RegisterSoft adds a soft constraint plugin at the given stage and
// priority.
func (r *Registry) RegisterSoft(stage Stage, priority int, p SoftPlugin) {
	if r.names[p.Name()] {
		panic(fmt.Sprintf("constraints: duplicate plugin name %q", p.Name()))
	}
	r.names[p.Name()] = true
	r.soft = append(r.soft, softEntry{stage: stage, order: r.counter, priority: priority, plugin: p})
	r.counter++
}

// Unregister removes a plugin by name, idempotently (§4.2 "idempotent
// unregister").
func (r *Registry) Unregister(name string) {
	if !r.names[name] {
		return
	}
	delete(r.names, name)
	for i, e := range r.hard {
		if e.plugin.Name() == name {
			r.hard = append(r.hard[:i], r.hard[i+1:]...)
			return
		}
	}
	for i, e := range r.soft {
		if e.plugin.Name() == name {
			r.soft = append(r.soft[:i], r.soft[i+1:]...)
			return
		}
	}
}

// HardPlugins returns every enabled, applicable hard plugin, ordered
// deterministically by (stage, priority, registration order) per §4.2.
// All ESSENTIAL-stage plugins are expected to be applicable to every
// instance (§4.3), but ShouldApply still gates per-instance
// applicability (e.g. a workload-cap plugin with no capped teachers).
func (r *Registry) HardPlugins(ctx *cpmodel.Context) []HardPlugin {
	entries := make([]hardEntry, len(r.hard))
	copy(entries, r.hard)
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].stage != entries[j].stage {
			return entries[i].stage < entries[j].stage
		}
		if entries[i].priority != entries[j].priority {
			return entries[i].priority < entries[j].priority
		}
		return entries[i].order < entries[j].order
	})
	out := make([]HardPlugin, 0, len(entries))
	for _, e := range entries {
		if e.plugin.Enabled(ctx) && e.plugin.ShouldApply(ctx) {
			out = append(out, e.plugin)
		}
	}
	return out
}

// SoftPlugins returns every soft plugin whose stage is <= maxStage,
// whose name is in enabledNames (the Strategy Selector's chosen soft
// set; a nil map means "no name filter"), and whose effective weight
// under prefs is non-zero, ordered deterministically.
func (r *Registry) SoftPlugins(ctx *cpmodel.Context, maxStage Stage, enabledNames map[string]bool, prefs model.Preferences) []SoftPlugin {
	entries := make([]softEntry, 0, len(r.soft))
	for _, e := range r.soft {
		if e.stage > maxStage {
			continue
		}
		if enabledNames != nil && !enabledNames[e.plugin.Name()] {
			continue
		}
		if !e.plugin.Enabled(ctx) || !e.plugin.ShouldApply(ctx) {
			continue
		}
		if e.plugin.Weight(prefs) == 0 {
			continue
		}
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].stage != entries[j].stage {
			return entries[i].stage < entries[j].stage
		}
		if entries[i].priority != entries[j].priority {
			return entries[i].priority < entries[j].priority
		}
		return entries[i].order < entries[j].order
	})
	out := make([]SoftPlugin, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.plugin)
	}
	return out
}

// Reset clears every plugin's internal state (e.g. cached per-solve
// counters) without removing it from the registry, so the same
// Registry value can be reused across sub-problems within one
// decomposed solve if the caller chooses to (most call sites build a
// fresh Registry per sub-problem instead; see §5).
func (r *Registry) Reset() {
	for _, e := range r.hard {
		e.plugin.Reset()
	}
	for _, e := range r.soft {
		e.plugin.Reset()
	}
}
