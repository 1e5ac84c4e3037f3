// Copyright © 2025 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
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

package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

type InsuranceMetrics interface {
	IncTransaction(operation string, status string, source string)
	IncListing(kind string, result string)
	IncAuthorization(status string)
}

var METRICS_SUBSYSTEM = "insurance_client"

type insuranceMetrics struct {
	transactions   *prometheus.CounterVec
	listings       *prometheus.CounterVec
	authorizations *prometheus.CounterVec
}

func InitMetrics(ctx context.Context, registry *prometheus.Registry) *insuranceMetrics {
	metrics := &insuranceMetrics{}

	metrics.transactions = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "transactions_total",
		Help: "State changing operations by result and reconciliation source", Subsystem: METRICS_SUBSYSTEM},
		[]string{"operation", "status", "source"})
	metrics.listings = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "listings_total",
		Help: "Record aggregation passes", Subsystem: METRICS_SUBSYSTEM},
		[]string{"kind", "result"})
	metrics.authorizations = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "authorizations_total",
		Help: "Administrator authorization checks", Subsystem: METRICS_SUBSYSTEM},
		[]string{"status"})

	registry.MustRegister(metrics.transactions, metrics.listings, metrics.authorizations)
	return metrics
}

func (im *insuranceMetrics) IncTransaction(operation string, status string, source string) {
	im.transactions.With(prometheus.Labels{"operation": operation, "status": status, "source": source}).Inc()
}

func (im *insuranceMetrics) IncListing(kind string, result string) {
	im.listings.With(prometheus.Labels{"kind": kind, "result": result}).Inc()
}

func (im *insuranceMetrics) IncAuthorization(status string) {
	im.authorizations.With(prometheus.Labels{"status": status}).Inc()
}
