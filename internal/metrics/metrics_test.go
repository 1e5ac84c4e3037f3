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
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"

	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/confutil"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insconf"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := InitMetrics(context.Background(), registry)
	assert.NotNil(t, metrics)

	metrics.IncAuthorization("authorized")
	metrics.IncListing("policies", "ok")
	metrics.IncListing("policies", "ok")
	metrics.IncTransaction("issuePolicy", "succeeded", "event")
	metrics.IncTransaction("issuePolicy", "succeeded", "event")
	metrics.IncTransaction("issuePolicy", "succeeded", "event")

	metricFamilies, err := registry.Gather()
	assert.NoError(t, err, "Unexpected error gathering metrics")
	require.Len(t, metricFamilies, 3)

	// gathered in name order
	assert.Equal(t, "insurance_client_authorizations_total", metricFamilies[0].GetName())
	assert.Equal(t, float64(1), metricFamilies[0].GetMetric()[0].GetCounter().GetValue())
	assert.Equal(t, "insurance_client_listings_total", metricFamilies[1].GetName())
	assert.Equal(t, float64(2), metricFamilies[1].GetMetric()[0].GetCounter().GetValue())
	assert.Equal(t, "insurance_client_transactions_total", metricFamilies[2].GetName())
	assert.Equal(t, float64(3), metricFamilies[2].GetMetric()[0].GetCounter().GetValue())
}

func TestMetricsServerDisabled(t *testing.T) {
	s, err := NewServer(context.Background(), prometheus.NewRegistry(), &insconf.MetricsServerConfig{})
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestMetricsServer(t *testing.T) {
	ctx := context.Background()
	registry := prometheus.NewRegistry()
	InitMetrics(ctx, registry).IncAuthorization("access_denied")

	s, err := NewServer(ctx, registry, &insconf.MetricsServerConfig{
		Enabled: confutil.P(true),
		Port:    confutil.P(0),
	})
	require.NoError(t, err)
	require.NoError(t, s.Start())
	defer s.Stop()

	res, err := http.Get(fmt.Sprintf("http://%s/metrics", s.Addr()))
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `insurance_client_authorizations_total{status="access_denied"} 1`)
}

func TestMetricsServerPortInUse(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	_, err = NewServer(context.Background(), prometheus.NewRegistry(), &insconf.MetricsServerConfig{
		Enabled: confutil.P(true),
		Port:    confutil.P(l.Addr().(*net.TCPAddr).Port),
	})
	assert.Regexp(t, "IN010800", err)
}
