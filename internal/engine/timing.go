package engine

import (
	"encoding/json"
	"os"
	"strings"
	"sync"
	"time"
)

// timingEvent is one line of the timing JSONL output.
type timingEvent struct {
	Phase      string  `json:"phase"`
	Kind       string  `json:"kind"`
	File       string  `json:"file,omitempty"`
	Status     string  `json:"status,omitempty"`
	StartMS    float64 `json:"start_ms"`
	DurationMS float64 `json:"duration_ms"`
	EndMS      float64 `json:"end_ms"`
}

type timingRecorder struct {
	enabled bool
	start   time.Time
	mu      sync.Mutex
	file    *os.File
	enc     *json.Encoder
	err     error
}

func newTimingRecorder(start time.Time, path string) *timingRecorder {
	tr := &timingRecorder{start: start}
	if path == "" {
		return tr
	}
	f, err := os.Create(path)
	if err != nil {
		tr.err = err
		return tr
	}
	tr.enabled = true
	tr.file = f
	tr.enc = json.NewEncoder(f)
	return tr
}

func (tr *timingRecorder) Enabled() bool {
	return tr != nil && tr.enabled
}

func (tr *timingRecorder) Err() error {
	if tr == nil {
		return nil
	}
	return tr.err
}

func (tr *timingRecorder) Close() {
	if tr == nil || tr.file == nil {
		return
	}
	_ = tr.file.Close()
}

func (tr *timingRecorder) record(phase, kind, file, status string, start time.Time, duration time.Duration) {
	if !tr.Enabled() {
		return
	}
	startMS := durationToMS(start.Sub(tr.start))
	durationMS := durationToMS(duration)
	event := timingEvent{
		Phase:      phase,
		Kind:       kind,
		File:       file,
		Status:     status,
		StartMS:    startMS,
		DurationMS: durationMS,
		EndMS:      startMS + durationMS,
	}
	tr.mu.Lock()
	_ = tr.enc.Encode(event)
	tr.mu.Unlock()
}

// RecordPhase records the duration of a whole phase.
func (tr *timingRecorder) RecordPhase(phase string, start time.Time, status string) {
	tr.record(phase, "phase", "", status, start, time.Since(start))
}

// RecordFile records the time one phase spent on one input.
func (tr *timingRecorder) RecordFile(phase, file string, start time.Time) {
	tr.record(phase, "file", file, "", start, time.Since(start))
}

func durationToMS(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1_000_000.0
}

// timingPath returns where timing events go: the explicit path, then
// VHDL_TIMING_JSONL, then timing.jsonl when VHDL_TIMING is set.
func timingPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if envPath := os.Getenv("VHDL_TIMING_JSONL"); envPath != "" {
		return envPath
	}
	if envBool("VHDL_TIMING") {
		return "timing.jsonl"
	}
	return ""
}

func envBool(key string) bool {
	val := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return val == "1" || val == "true" || val == "yes" || val == "on"
}
