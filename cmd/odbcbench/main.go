// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

// Command odbcbench measures the throughput of the core allocate/bind/
// execute pipeline (L4/L5/L6/L10) under varying batch-count x batch-size
// parameter-array shapes, sequential or concurrent across statements.
// Grounded on cmd/bulkbench's BatchCount/BatchSize matrix (prm.go) and
// sequential/concurrent loadtest split (loadtest.go), generalized from a
// live HANA bulk insert to this package's own Client abstraction driven
// by odbc/refclient, so the benchmark measures the driver's own overhead
// rather than network or server cost. Config is read with viper instead
// of bulkbench's hand-rolled flag.Value, mirroring other_examples'
// gateway module.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/fbclient/godbc/odbc"
	"github.com/fbclient/godbc/odbc/internal/types"
	"github.com/fbclient/godbc/odbc/refclient"
)

type batch struct {
	Count int `mapstructure:"count"`
	Size  int `mapstructure:"size"`
}

type config struct {
	Sequential bool          `mapstructure:"sequential"`
	LatencyMS  int           `mapstructure:"latencyMS"`
	Batches    []batch       `mapstructure:"batches"`
}

func loadConfig() (*config, error) {
	v := viper.New()
	v.SetConfigName("odbcbench")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("ODBCBENCH")
	v.AutomaticEnv()

	v.SetDefault("sequential", true)
	v.SetDefault("latencyMS", 0)
	v.SetDefault("batches", []map[string]int{
		{"count": 1, "size": 100000},
		{"count": 10, "size": 10000},
		{"count": 100, "size": 1000},
	})

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, err
		}
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("odbcbench: loading config: %v", err)
	}

	for _, b := range cfg.Batches {
		runtime.GC() // comparable starting point between runs, as bulkbench did
		d, rows, err := run(cfg.Sequential, b.Count, b.Size, time.Duration(cfg.LatencyMS)*time.Millisecond)
		if err != nil {
			fmt.Fprintf(os.Stderr, "batchCount=%d batchSize=%d: %v\n", b.Count, b.Size, err)
			continue
		}
		fmt.Printf("sequential=%-5t batchCount=%-4d batchSize=%-7d rows=%-8d duration=%-12s rows/sec=%.0f\n",
			cfg.Sequential, b.Count, b.Size, rows, d, float64(rows)/d.Seconds())
	}
}

// run executes one batchCount x batchSize point of the matrix and reports
// the wall-clock duration and total rows executed.
func run(sequential bool, batchCount, batchSize int, latency time.Duration) (time.Duration, int64, error) {
	env := odbc.NewEnvironment(odbc.VersionV3)
	client, err := env.LoadWireClient("ref", func() (odbc.Client, error) {
		return refclient.New(latency), nil
	})
	if err != nil {
		return 0, 0, err
	}
	defer env.UnloadWireClient("ref")

	if sequential {
		return runSequential(env, client, batchCount, batchSize)
	}
	return runConcurrent(env, client, batchCount, batchSize)
}

func newInsertStatement(env *odbc.Environment, client odbc.Client) (*odbc.Connection, *odbc.Statement, error) {
	conn, rc := odbc.SQLAllocConnect(env)
	if rc != odbc.RCSuccess {
		return nil, nil, fmt.Errorf("SQLAllocConnect: rc=%v", rc)
	}
	if rc := odbc.SQLConnect(context.Background(), conn, client, odbc.AttachParams{}); rc != odbc.RCSuccess {
		return nil, nil, fmt.Errorf("SQLConnect: rc=%v", rc)
	}
	stmt, rc := odbc.SQLAllocStmt(conn)
	if rc != odbc.RCSuccess {
		return nil, nil, fmt.Errorf("SQLAllocStmt: rc=%v", rc)
	}
	if rc := odbc.SQLPrepare(context.Background(), stmt, "INSERT INTO BENCH (ID, VAL) VALUES (?, ?)"); rc != odbc.RCSuccess {
		return nil, nil, fmt.Errorf("SQLPrepare: rc=%v", rc)
	}
	id := make([]byte, 4)
	val := make([]byte, 8)
	idLen := []int64{4}
	valLen := []int64{8}
	if rc := odbc.SQLBindParameter(stmt, 1, odbc.ParamInput, types.CSLong, types.SQLInteger, 0, 0, id, idLen, nil); rc != odbc.RCSuccess {
		return nil, nil, fmt.Errorf("SQLBindParameter(1): rc=%v", rc)
	}
	if rc := odbc.SQLBindParameter(stmt, 2, odbc.ParamInput, types.CDouble, types.SQLDouble, 0, 0, val, valLen, nil); rc != odbc.RCSuccess {
		return nil, nil, fmt.Errorf("SQLBindParameter(2): rc=%v", rc)
	}
	return conn, stmt, nil
}

func runSequential(env *odbc.Environment, client odbc.Client, batchCount, batchSize int) (time.Duration, int64, error) {
	conn, stmt, err := newInsertStatement(env, client)
	if err != nil {
		return 0, 0, err
	}
	defer conn.Disconnect()

	numRows := int64(batchCount) * int64(batchSize)
	start := time.Now()
	for i := int64(0); i < numRows; i++ {
		if out := odbc.SQLExecute(context.Background(), stmt); out.RC != odbc.RCSuccess {
			return time.Since(start), i, fmt.Errorf("SQLExecute: rc=%v", out.RC)
		}
	}
	return time.Since(start), numRows, nil
}

func runConcurrent(env *odbc.Environment, client odbc.Client, batchCount, batchSize int) (time.Duration, int64, error) {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error
	var totalRows int64

	start := time.Now()
	for i := 0; i < batchCount; i++ {
		conn, stmt, err := newInsertStatement(env, client)
		if err != nil {
			return 0, 0, err
		}
		wg.Add(1)
		go func(conn *odbc.Connection, stmt *odbc.Statement) {
			defer wg.Done()
			defer conn.Disconnect()
			for j := 0; j < batchSize; j++ {
				if out := odbc.SQLExecute(context.Background(), stmt); out.RC != odbc.RCSuccess {
					mu.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("SQLExecute: rc=%v", out.RC)
					}
					mu.Unlock()
					return
				}
			}
			mu.Lock()
			totalRows += int64(batchSize)
			mu.Unlock()
		}(conn, stmt)
	}
	wg.Wait()
	return time.Since(start), totalRows, firstErr
}
