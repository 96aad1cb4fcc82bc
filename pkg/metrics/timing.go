// Package metrics times the hot paths of ft: tree filtering, flattening,
// moves, paste clones, snapshot loads and rendering.
//
// Samples are kept in memory with atomic counters and printed by
// `ft --metrics`. Set FT_METRICS=0 to switch collection off.
//
//	defer metrics.Timer(metrics.Filter)()
package metrics

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"text/tabwriter"
	"time"
)

var enabled atomic.Bool

func init() {
	enabled.Store(os.Getenv("FT_METRICS") != "0")
}

// Enabled reports whether samples are being recorded.
func Enabled() bool { return enabled.Load() }

// SetEnabled switches collection on or off.
func SetEnabled(e bool) { enabled.Store(e) }

// TimingMetric accumulates durations for one named operation. It is safe
// for concurrent use.
type TimingMetric struct {
	name  string
	count atomic.Int64
	total atomic.Int64
	max   atomic.Int64
}

// The operations ft times, in report order.
var (
	Filter       = newTimingMetric("filter_tree")
	Flatten      = newTimingMetric("flatten")
	Move         = newTimingMetric("move_node")
	Clone        = newTimingMetric("clone_for_paste")
	SnapshotLoad = newTimingMetric("snapshot_load")
	UIRender     = newTimingMetric("ui_render")
)

var registry = []*TimingMetric{Filter, Flatten, Move, Clone, SnapshotLoad, UIRender}

func newTimingMetric(name string) *TimingMetric {
	return &TimingMetric{name: name}
}

// Record adds one sample.
func (m *TimingMetric) Record(d time.Duration) {
	if !Enabled() {
		return
	}
	ns := int64(d)
	m.count.Add(1)
	m.total.Add(ns)
	for {
		old := m.max.Load()
		if ns <= old || m.max.CompareAndSwap(old, ns) {
			return
		}
	}
}

func (m *TimingMetric) Name() string { return m.name }

// Count returns the number of samples.
func (m *TimingMetric) Count() int64 { return m.count.Load() }

// Total returns the summed duration of all samples.
func (m *TimingMetric) Total() time.Duration { return time.Duration(m.total.Load()) }

// Max returns the longest sample.
func (m *TimingMetric) Max() time.Duration { return time.Duration(m.max.Load()) }

// Avg returns the mean sample, or zero before the first one.
func (m *TimingMetric) Avg() time.Duration {
	n := m.count.Load()
	if n == 0 {
		return 0
	}
	return time.Duration(m.total.Load() / n)
}

func (m *TimingMetric) Reset() {
	m.count.Store(0)
	m.total.Store(0)
	m.max.Store(0)
}

// Timer starts timing m and returns the func that records the sample.
func Timer(m *TimingMetric) func() {
	return TimerWithCallback(m, nil)
}

// TimerWithCallback is Timer that also hands the elapsed time to cb.
func TimerWithCallback(m *TimingMetric, cb func(time.Duration)) func() {
	if !Enabled() || m == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		d := time.Since(start)
		m.Record(d)
		if cb != nil {
			cb(d)
		}
	}
}

// ResetAll clears every registered metric.
func ResetAll() {
	for _, m := range registry {
		m.Reset()
	}
}

// WriteReport prints a table of every metric with samples, for --metrics.
func WriteReport(w io.Writer) error {
	ms := func(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "metric\tcount\tavg ms\tmax ms\ttotal ms")
	for _, m := range registry {
		if m.Count() == 0 {
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%.3f\t%.3f\t%.3f\n", m.name, m.Count(), ms(m.Avg()), ms(m.Max()), ms(m.Total()))
	}
	return tw.Flush()
}
