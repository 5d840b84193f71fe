package perf

import (
	"math"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultRingSize is the default capacity of the ring buffer.
const DefaultRingSize = 4096

// Kind distinguishes what was timed.
type Kind uint8

const (
	KindRequest Kind = iota // HTTP request, Name is "METHOD /path"
	KindQuery               // database call, Name is the SQLDB method
	KindMedia               // media host call, Name is "upload" or "destroy"
)

// Sample is a single timing stored in the ring.
type Sample struct {
	Kind       Kind
	Name       string
	Status     int // HTTP status, or 1 for a failed media call
	DurationMs float64
	At         time.Time
}

// Collector keeps the most recent samples in a fixed ring.
// Record never blocks on aggregation; Summarize does the work on read.
type Collector struct {
	mu      sync.Mutex
	samples []Sample
	next    int
	total   atomic.Int64
}

// NewCollector creates a collector holding up to size samples.
// PRE: size > 0, otherwise DefaultRingSize is used
func NewCollector(size int) *Collector {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Collector{samples: make([]Sample, size)}
}

// Record stores a sample, overwriting the oldest when full.
// A nil collector ignores the call.
func (c *Collector) Record(s Sample) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.samples[c.next] = s
	c.next = (c.next + 1) % len(c.samples)
	c.mu.Unlock()
	c.total.Add(1)
}

// TotalRecorded returns how many samples were ever recorded.
func (c *Collector) TotalRecorded() int64 {
	if c == nil {
		return 0
	}
	return c.total.Load()
}

// Stat aggregates samples sharing a name.
type Stat struct {
	Name     string
	Count    int
	Failures int
	AvgMs    float64
	MaxMs    float64
	totalMs  float64
}

// KindSummary holds percentiles and the slowest names for one kind.
type KindSummary struct {
	Count   int
	P50Ms   float64
	P95Ms   float64
	Slowest []Stat
}

// Summary is the admin-facing view of recent timings.
type Summary struct {
	Since    time.Time
	Recorded int64
	Requests KindSummary
	Queries  KindSummary
	Media    KindSummary
}

// Summarize aggregates samples taken at or after since.
// POST: each Slowest list holds at most topN entries, ordered by average descending
func (c *Collector) Summarize(since time.Time, topN int) Summary {
	sum := Summary{Since: since}
	if c == nil {
		return sum
	}
	c.mu.Lock()
	buf := slices.Clone(c.samples)
	c.mu.Unlock()
	sum.Recorded = c.TotalRecorded()

	byKind := map[Kind][]Sample{}
	for _, s := range buf {
		if s.At.IsZero() || s.At.Before(since) {
			continue
		}
		byKind[s.Kind] = append(byKind[s.Kind], s)
	}
	sum.Requests = summarizeKind(byKind[KindRequest], topN, func(s Sample) bool { return s.Status >= 500 })
	sum.Queries = summarizeKind(byKind[KindQuery], topN, func(Sample) bool { return false })
	sum.Media = summarizeKind(byKind[KindMedia], topN, func(s Sample) bool { return s.Status != 0 })
	return sum
}

func summarizeKind(samples []Sample, topN int, failed func(Sample) bool) KindSummary {
	ks := KindSummary{Count: len(samples)}
	if len(samples) == 0 {
		return ks
	}

	durations := make([]float64, 0, len(samples))
	stats := map[string]*Stat{}
	for _, s := range samples {
		durations = append(durations, s.DurationMs)
		st, ok := stats[s.Name]
		if !ok {
			st = &Stat{Name: s.Name}
			stats[s.Name] = st
		}
		st.Count++
		st.totalMs += s.DurationMs
		st.MaxMs = max(st.MaxMs, s.DurationMs)
		if failed(s) {
			st.Failures++
		}
	}
	slices.Sort(durations)
	ks.P50Ms = percentile(durations, 50)
	ks.P95Ms = percentile(durations, 95)

	list := make([]Stat, 0, len(stats))
	for _, st := range stats {
		st.AvgMs = st.totalMs / float64(st.Count)
		list = append(list, *st)
	}
	slices.SortFunc(list, func(a, b Stat) int {
		switch {
		case a.AvgMs > b.AvgMs:
			return -1
		case a.AvgMs < b.AvgMs:
			return 1
		}
		return 0
	})
	if topN > 0 && len(list) > topN {
		list = list[:topN]
	}
	ks.Slowest = list
	return ks
}

// percentile interpolates the p-th percentile of a sorted slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (p / 100) * float64(len(sorted)-1)
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	if lo == hi {
		return sorted[lo]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
