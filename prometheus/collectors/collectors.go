// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package collectors exports an Environment's [[odbc.Stats]] as Prometheus
// metrics.
package collectors

import (
	"github.com/fbclient/godbc/odbc"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "godbc"

type collector struct {
	env *odbc.Environment

	openConnections  *prometheus.Desc
	openTransactions *prometheus.Desc
	openStatements   *prometheus.Desc
	execTime         *prometheus.Desc
}

// NewEnvironmentStatsCollector returns a collector exporting env's live
// connection/statement/transaction counts and per-statement execute-time
// histogram as Prometheus metrics, labeled by envName (there is one
// Environment per loaded driver instance, so envName disambiguates
// multiple instances sharing a process). Grounded on
// driver/prometheus/collectors/collectors.go's NewDriverStatsCollector,
// generalized from the teacher's wire-level byte/time counters to this
// layer's handle-graph counts and per-SQL-text latency.
func NewEnvironmentStatsCollector(env *odbc.Environment, envName string) prometheus.Collector {
	labels := prometheus.Labels{"env": envName}
	fqName := func(name string) string { return namespace + "_" + name }
	return &collector{
		env: env,
		openConnections: prometheus.NewDesc(
			fqName("open_connections"),
			"The number of established connections.",
			nil, labels,
		),
		openTransactions: prometheus.NewDesc(
			fqName("open_transactions"),
			"The number of open transactions.",
			nil, labels,
		),
		openStatements: prometheus.NewDesc(
			fqName("open_statements"),
			"The number of open statements.",
			nil, labels,
		),
		execTime: prometheus.NewDesc(
			fqName("exec_seconds"),
			"Time spent executing a statement, by SQL text.",
			[]string{"sql"}, labels,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.openConnections
	ch <- c.openTransactions
	ch <- c.openStatements
	ch <- c.execTime
}

// Collect implements prometheus.Collector.
func (c *collector) Collect(ch chan<- prometheus.Metric) {
	stats := c.env.Stats()
	ch <- prometheus.MustNewConstMetric(c.openConnections, prometheus.GaugeValue, float64(stats.OpenConnections))
	ch <- prometheus.MustNewConstMetric(c.openTransactions, prometheus.GaugeValue, float64(stats.OpenTransactions))
	ch <- prometheus.MustNewConstMetric(c.openStatements, prometheus.GaugeValue, float64(stats.OpenStatements))
	for sql, h := range stats.ExecTimes {
		ch <- prometheus.MustNewConstHistogram(c.execTime, h.Count, h.Sum, h.Buckets, sql)
	}
}
