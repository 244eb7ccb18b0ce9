package cli

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/campfire/ecs"
)

type Report struct {
	// Configuration
	Duration   time.Duration
	Entities   int
	Components int
	Systems    int

	// Results
	TotalUpdates   int64
	TotalTime      time.Duration
	UpdateTime     Stats
	SystemStats    []ecs.SystemStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// ReportSummary is the JSON form of a Report.
type ReportSummary struct {
	Duration     string          `json:"duration"`
	Entities     int             `json:"entities"`
	Systems      int             `json:"systems"`
	TotalUpdates int64           `json:"total_updates"`
	TotalTime    string          `json:"total_time"`
	UpdateAvg    string          `json:"update_avg"`
	UpdateMin    string          `json:"update_min"`
	UpdateMax    string          `json:"update_max"`
	HeapDelta    int64           `json:"heap_delta_bytes"`
	NumGC        uint32          `json:"num_gc"`
	PerSystem    []SystemSummary `json:"per_system"`
}

// SystemSummary is the JSON form of one system's timings.
type SystemSummary struct {
	Name       string `json:"name"`
	Executions int64  `json:"executions"`
	Avg        string `json:"avg"`
	Max        string `json:"max"`
}

func (r *Report) Summary() ReportSummary {
	summary := ReportSummary{
		Duration:     r.Duration.String(),
		Entities:     r.Entities,
		Systems:      r.Systems,
		TotalUpdates: r.TotalUpdates,
		TotalTime:    r.TotalTime.String(),
		UpdateAvg:    r.UpdateTime.Avg.String(),
		UpdateMin:    r.UpdateTime.Min.String(),
		UpdateMax:    r.UpdateTime.Max.String(),
		HeapDelta:    int64(r.MemStatsEnd.HeapAlloc) - int64(r.MemStatsStart.HeapAlloc),
		NumGC:        r.MemStatsEnd.NumGC - r.MemStatsStart.NumGC,
		PerSystem:    make([]SystemSummary, 0, len(r.SystemStats)),
	}
	for _, s := range r.SystemStats {
		summary.PerSystem = append(summary.PerSystem, SystemSummary{
			Name:       s.Name,
			Executions: s.ExecutionCount,
			Avg:        s.AvgDuration.String(),
			Max:        s.MaxDuration.String(),
		})
	}
	return summary
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# ECS Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Initial Entities:** {{.Entities}}
- **Component Types:** {{.Components}}
- **Systems:** {{.Systems}}

## Performance Results
- **Total Updates:** {{.TotalUpdates}}
- **Total Test Time:** {{.TotalTime}}
- **Update Time (Tick):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

## Systems
{{range .SystemStats}}- **{{.Name}}:** {{.ExecutionCount}} runs, avg {{.AvgDuration}}, min {{.MinDuration}}, max {{.MaxDuration}}
{{end}}
## Memory Usage
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} MB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MB (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}} bytes
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} MB (start) -> {{mb .MemStatsEnd.TotalAlloc}} MB (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}} bytes
- Sys Memory:     {{mb .MemStatsStart.Sys}} MB (start) -> {{mb .MemStatsEnd.Sys}} MB (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}} bytes
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{nsub .MemStatsEnd.PauseTotalNs .MemStatsStart.PauseTotalNs}}
- **Num GC Cycles:** {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{end}}`

	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"nsub": func(a, b uint64) string {
			return time.Duration(a - b).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
