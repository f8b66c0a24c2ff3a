// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

package odbc

import "time"

// execTimeBuckets are the upper bounds (seconds) of the cumulative
// latency histogram kept per distinct SQL text, matching the handful of
// coarse buckets a driver-level latency histogram needs rather than a
// fine-grained percentile estimator.
var execTimeBuckets = []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

// StatsHistogram is a cumulative latency histogram in the shape
// github.com/prometheus/client_golang's prometheus.MustNewConstHistogram
// consumes directly, generalized from the teacher's driver.StatsHistogram
// (driver/stats.go) which serves the identical role for HANA wire-level
// timings.
type StatsHistogram struct {
	Count   uint64
	Sum     float64
	Buckets map[float64]uint64
}

func newStatsHistogram() *StatsHistogram {
	buckets := make(map[float64]uint64, len(execTimeBuckets))
	for _, b := range execTimeBuckets {
		buckets[b] = 0
	}
	return &StatsHistogram{Buckets: buckets}
}

func (h *StatsHistogram) observe(d time.Duration) {
	seconds := d.Seconds()
	h.Count++
	h.Sum += seconds
	for bound := range h.Buckets {
		if seconds <= bound {
			h.Buckets[bound]++
		}
	}
}

// Stats reports the live counters and per-statement latency histograms of
// spec.md's environment/connection/statement handle graph, in the shape
// driver/stats.go's Stats reports for the teacher's own connection pool,
// generalized here from wire-protocol byte/time counters (which belong to
// whatever concrete Client a loader constructs, not to this layer) to the
// handle-graph-level counts and per-SQL-text execute latency this layer
// actually owns.
type Stats struct {
	OpenConnections  int
	OpenTransactions int
	OpenStatements   int
	ExecTimes        map[string]StatsHistogram
}

// Stats snapshots e's live connection/statement/transaction counts and
// per-SQL-text execute-time histograms.
func (e *Environment) Stats() Stats {
	e.mu.Lock()
	conns := make([]*Connection, 0, len(e.conns))
	for c := range e.conns {
		conns = append(conns, c)
	}
	e.mu.Unlock()

	s := Stats{OpenConnections: len(conns)}
	for _, c := range conns {
		c.mu.Lock()
		s.OpenStatements += len(c.stmts)
		if c.inTx {
			s.OpenTransactions++
		}
		c.mu.Unlock()
	}

	e.statsMu.Lock()
	s.ExecTimes = make(map[string]StatsHistogram, len(e.execTimes))
	for sql, h := range e.execTimes {
		buckets := make(map[float64]uint64, len(h.Buckets))
		for bound, count := range h.Buckets {
			buckets[bound] = count
		}
		s.ExecTimes[sql] = StatsHistogram{Count: h.Count, Sum: h.Sum, Buckets: buckets}
	}
	e.statsMu.Unlock()
	return s
}

func (e *Environment) recordExecTime(sql string, d time.Duration) {
	e.statsMu.Lock()
	defer e.statsMu.Unlock()
	if e.execTimes == nil {
		e.execTimes = map[string]*StatsHistogram{}
	}
	h, ok := e.execTimes[sql]
	if !ok {
		h = newStatsHistogram()
		e.execTimes[sql] = h
	}
	h.observe(d)
}
