// Package term implements the process-wide hash-consing term store: the
// interning table for symbols, types, variables, and term nodes that
// every other package in this module builds on. Two structurally equal
// values share one heap record and one tag; physical equality and
// structural equality coincide by construction.
package term

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// Tag is the process-wide unique identity of an interned record. Tags
// are stable for the lifetime of a Store and never reused.
type Tag uint64

// Store is a single process-wide (or, for tests, per-test) interning
// table. Construction of every symbol, type, variable, and term node
// must go through a Store; there is no direct allocation path.
//
// The store is single-threaded-cooperative per spec.md §5: no internal
// locking is required for correctness, but the mutex guards against
// accidental concurrent use rather than enabling it.
type Store struct {
	mu sync.Mutex

	nextTag Tag

	symbols   map[string]*Symbol
	types     map[string]*Type
	variables map[string]*Variable
	nodes     map[string]*Node

	collisions uint64
	peak       int

	metrics *storeMetrics
}

// NewStore allocates a fresh, empty hash-cons store.
func NewStore() *Store {
	s := &Store{
		symbols:   make(map[string]*Symbol),
		types:     make(map[string]*Type),
		variables: make(map[string]*Variable),
		nodes:     make(map[string]*Node),
	}
	s.metrics = newStoreMetrics(s)
	return s
}

func (s *Store) allocTag() Tag {
	s.nextTag++
	return s.nextTag
}

func (s *Store) size() int {
	return len(s.symbols) + len(s.types) + len(s.variables) + len(s.nodes)
}

func (s *Store) bumpPeak() {
	if n := s.size(); n > s.peak {
		s.peak = n
	}
}

// Stats is a snapshot of the store's interning-table health, exposed for
// observability per spec.md §4.1.
type Stats struct {
	Size       int
	Collisions uint64
	Peak       int
}

// Stats returns a snapshot of the current table size, the number of
// repeat lookups that hit an existing key in the term-node table (the
// symbol, type and variable tables are not counted), and the peak
// table size seen so far.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{Size: s.size(), Collisions: s.collisions, Peak: s.peak}
}

// storeMetrics wires Store.Stats into Prometheus gauges, grounded on
// spec.md §4.1's "expose counters (table size, collisions, peak) for
// observability" requirement. Registration is lazy and best-effort: a
// caller that never scrapes metrics pays only the cost of three gauge
// allocations.
type storeMetrics struct {
	size       prometheus.GaugeFunc
	collisions prometheus.GaugeFunc
	peak       prometheus.GaugeFunc
}

func newStoreMetrics(s *Store) *storeMetrics {
	m := &storeMetrics{
		size: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "lustrecore",
			Subsystem: "hashcons",
			Name:      "table_size",
			Help:      "Number of interned records (symbols+types+variables+nodes).",
		}, func() float64 { return float64(s.Stats().Size) }),
		collisions: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "lustrecore",
			Subsystem: "hashcons",
			Name:      "collisions_total",
			Help:      "Hash-key collisions observed while interning.",
		}, func() float64 { return float64(s.Stats().Collisions) }),
		peak: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "lustrecore",
			Subsystem: "hashcons",
			Name:      "table_peak",
			Help:      "Peak interned record count observed so far.",
		}, func() float64 { return float64(s.Stats().Peak) }),
	}
	return m
}

// Register attaches this store's gauges to the given registerer. Safe to
// call at most once per store; callers that don't care about metrics
// never need to call it.
func (s *Store) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{s.metrics.size, s.metrics.collisions, s.metrics.peak} {
		if err := reg.Register(c); err != nil {
			log.WithError(err).Warn("term: failed to register hashcons metrics")
			return err
		}
	}
	return nil
}
