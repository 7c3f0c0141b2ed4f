// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package v1

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zintix-labs/duckdice-bot/store"
)

// storeCollector is a prometheus.Collector that scrapes store.Index.Totals
// on demand rather than keeping in-process counters: the index is already
// the single shared source of truth across concurrent sessions, so there
// is nothing for a second bookkeeping layer to add.
type storeCollector struct {
	st *store.Store

	sessions     *prometheus.Desc
	openSessions *prometheus.Desc
	bets         *prometheus.Desc
	wins         *prometheus.Desc
}

func newStoreCollector(st *store.Store) *storeCollector {
	return &storeCollector{
		st:           st,
		sessions:     prometheus.NewDesc("duckdice_sessions_total", "Total sessions ever started.", nil, nil),
		openSessions: prometheus.NewDesc("duckdice_sessions_open", "Sessions without an end_ts (still running or crashed mid-session).", nil, nil),
		bets:         prometheus.NewDesc("duckdice_bets_total", "Total bets recorded across all sessions.", nil, nil),
		wins:         prometheus.NewDesc("duckdice_bets_won_total", "Total winning bets recorded across all sessions.", nil, nil),
	}
}

func (c *storeCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.sessions
	ch <- c.openSessions
	ch <- c.bets
	ch <- c.wins
}

func (c *storeCollector) Collect(ch chan<- prometheus.Metric) {
	totals, err := c.st.Index.Totals(context.Background())
	if err != nil {
		// A scrape-time store error shouldn't crash the exporter; this
		// scrape emits no store metrics rather than panicking the handler.
		return
	}
	ch <- prometheus.MustNewConstMetric(c.sessions, prometheus.CounterValue, float64(totals.Sessions))
	ch <- prometheus.MustNewConstMetric(c.openSessions, prometheus.GaugeValue, float64(totals.OpenSessions))
	ch <- prometheus.MustNewConstMetric(c.bets, prometheus.CounterValue, float64(totals.Bets))
	ch <- prometheus.MustNewConstMetric(c.wins, prometheus.CounterValue, float64(totals.Wins))
}

// NewMetricsHandler builds the /metrics exposition handler: its own
// prometheus.Registry (not the global DefaultRegisterer) so a process
// embedding this server alongside other Prometheus-instrumented code
// never collides on metric names.
func NewMetricsHandler(st *store.Store) http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(newStoreCollector(st))
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
