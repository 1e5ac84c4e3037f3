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
	"net"
	"net/http"
	"time"

	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/msgs"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/confutil"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insconf"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/log"
	"github.com/gorilla/mux"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server interface {
	Start() error
	Stop()
	Addr() net.Addr
}

type metricsServer struct {
	ctx            context.Context
	listener       net.Listener
	httpServer     *http.Server
	httpServerDone chan error
}

// NewServer returns nil when the endpoint is disabled
func NewServer(ctx context.Context, registry *prometheus.Registry, conf *insconf.MetricsServerConfig) (Server, error) {
	if !confutil.Value(conf.Enabled, *insconf.MetricsServerDefaults.Enabled) {
		return nil, nil
	}
	listenAddr := fmt.Sprintf("%s:%d",
		confutil.StringNotEmpty(conf.Address, *insconf.MetricsServerDefaults.Address),
		confutil.AtLeast(conf.Port, 0, *insconf.MetricsServerDefaults.Port))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgMetricsServerStartFailed, listenAddr)
	}
	log.L(ctx).Infof("Metrics server listening on %s", listener.Addr())

	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	return &metricsServer{
		ctx:            ctx,
		listener:       listener,
		httpServerDone: make(chan error, 1),
		httpServer: &http.Server{
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

func (s *metricsServer) Start() error {
	go func() {
		s.httpServerDone <- s.httpServer.Serve(s.listener)
	}()
	return nil
}

func (s *metricsServer) Stop() {
	ctx, cancel := context.WithTimeout(s.ctx, 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.L(ctx).Warnf("Metrics server shutdown: %s", err)
	}
	select {
	case err := <-s.httpServerDone:
		log.L(ctx).Debugf("Metrics server stopped: %v", err)
	case <-ctx.Done():
	}
}

func (s *metricsServer) Addr() net.Addr {
	return s.listener.Addr()
}
