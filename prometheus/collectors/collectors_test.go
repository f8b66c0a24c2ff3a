// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

package collectors_test

import (
	"testing"

	"github.com/fbclient/godbc/odbc"
	"github.com/fbclient/godbc/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus"
)

func TestCollectorDescribeAndCollect(t *testing.T) {
	env := odbc.NewEnvironment(odbc.VersionV3)
	c := collectors.NewEnvironmentStatsCollector(env, "test")

	descs := make(chan *prometheus.Desc, 16)
	c.Describe(descs)
	close(descs)
	var n int
	for range descs {
		n++
	}
	if n != 4 {
		t.Fatalf("Describe emitted %d descs, want 4", n)
	}

	metrics := make(chan prometheus.Metric, 16)
	go func() {
		c.Collect(metrics)
		close(metrics)
	}()
	var got int
	for range metrics {
		got++
	}
	if got != 3 {
		t.Fatalf("Collect emitted %d metrics for an empty environment, want 3 (no exec-time samples yet)", got)
	}

	if err := prometheus.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	prometheus.Unregister(c)
}
