package lightlab

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"
)

// Profiler keeps the last duration of named CPU scopes and a set of counters.
type Profiler struct {
	Scopes     map[string]time.Duration
	StartTimes map[string]time.Time
	Counts     map[string]int
	Order      []string

	frames   int
	frameSum time.Duration
}

func NewProfiler() *Profiler {
	return &Profiler{
		Scopes:     make(map[string]time.Duration),
		StartTimes: make(map[string]time.Time),
		Counts:     make(map[string]int),
	}
}

func (p *Profiler) BeginScope(name string) {
	p.StartTimes[name] = time.Now()
	if !slices.Contains(p.Order, name) {
		p.Order = append(p.Order, name)
	}
}

func (p *Profiler) EndScope(name string) {
	if start, ok := p.StartTimes[name]; ok {
		p.Scopes[name] = time.Since(start)
	}
}

func (p *Profiler) SetCount(name string, count int) {
	p.Counts[name] = count
}

func (p *Profiler) Reset() {
	// Keep Order, reset times
	for k := range p.Scopes {
		p.Scopes[k] = 0
	}
}

func (p *Profiler) GetStatsString() string {
	var sb strings.Builder

	if p.frames > 0 {
		avg := p.frameSum / time.Duration(p.frames)
		fmt.Fprintf(&sb, "Frame: %.2f ms avg over %d frames\n", float64(avg.Microseconds())/1000, p.frames)
	}

	sb.WriteString("Timings (CPU):\n")
	for _, name := range p.Order {
		ms := float64(p.Scopes[name].Microseconds()) / 1000.0
		fmt.Fprintf(&sb, "  %-15s: %.2f ms\n", name, ms)
	}

	keys := make([]string, 0, len(p.Counts))
	for k := range p.Counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > 0 {
		sb.WriteString("Stats:\n")
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "  %-15s: %d\n", k, p.Counts[k])
	}

	return sb.String()
}

// ProfilerModule logs the profiler summary at debug level every Every frames.
type ProfilerModule struct {
	Every int
}

type profilerSettings struct {
	every int
}

func (m ProfilerModule) Install(app *App, cmd *Commands) {
	every := m.Every
	if every <= 0 {
		every = 300
	}
	cmd.AddResources(NewProfiler(), &profilerSettings{every: every})
	app.UseSystem(System(profilerResetSystem).InStage(Prelude))
	app.UseSystem(System(profilerReportSystem).InStage(Finale))
}

func profilerResetSystem(p *Profiler) {
	p.Reset()
}

func profilerReportSystem(p *Profiler, t *Time, settings *profilerSettings, cmd *Commands) {
	p.frames++
	p.frameSum += t.Dt
	if p.frames < settings.every {
		return
	}
	logger := cmd.Logger()
	if logger.DebugEnabled() {
		logger.Debugf("profile after %s\n%s", t.Elapsed().Round(time.Millisecond), p.GetStatsString())
	}
	p.frames = 0
	p.frameSum = 0
}
