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

// Package app assembles the client from configuration: the node connection, the
// contract binding, the session and every component the dispatcher drives.
package app

import (
	"context"
	"io"

	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/activitylog"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/aggregator"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/dispatcher"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/identity"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/metrics"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/session"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/txorchestrator"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/wallet"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/ethclient"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insconf"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insurance"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/log"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/rpcclient"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/units"
	"github.com/prometheus/client_golang/prometheus"
)

type App struct {
	conf          *insconf.ClientConfig
	registry      *prometheus.Registry
	metricsServer metrics.Server
	units         *units.Converter
	activity      *activitylog.ActivityLog
	dispatcher    *dispatcher.Dispatcher
}

// LoadConfig reads the YAML configuration file. An empty path gives the defaults.
func LoadConfig(ctx context.Context, path string) (*insconf.ClientConfig, error) {
	conf := &insconf.ClientConfig{}
	if path == "" {
		return conf, nil
	}
	if err := insconf.ReadAndParseYAMLFile(ctx, path, conf); err != nil {
		return nil, err
	}
	return conf, nil
}

// New connects to the node and binds the contract. The activity feed is rendered
// to the supplied writer, when there is one.
func New(ctx context.Context, conf *insconf.ClientConfig, feed io.Writer) (*App, error) {
	log.InitConfig(&conf.Log)

	a := &App{
		conf:     conf,
		registry: prometheus.NewRegistry(),
		activity: activitylog.New(),
	}
	if feed != nil {
		a.activity.AddRenderer(activitylog.NewWriterRenderer(feed))
	}

	var err error
	if a.units, err = units.NewConverter(ctx, &conf.Units); err != nil {
		return nil, err
	}
	abi, err := insurance.LoadABI(ctx, conf.Contract.ABIFile)
	if err != nil {
		return nil, err
	}
	rpc, err := rpcclient.NewHTTPClient(ctx, &conf.RPC)
	if err != nil {
		return nil, err
	}
	ec, err := ethclient.WrapRPCClient(ctx, rpc)
	if err != nil {
		return nil, err
	}
	contract, err := insurance.NewContract(ctx, ec, conf.Contract.Address, abi)
	if err != nil {
		return nil, err
	}
	log.L(ctx).Infof("Insurance contract %s on chain %d", contract.Address(), ec.ChainID())

	s := session.New(contract)
	w, err := wallet.NewProvider(ctx, &conf.Wallet, ec)
	if err != nil {
		return nil, err
	}
	m := metrics.InitMetrics(ctx, a.registry)
	agg, err := aggregator.New(ctx, &conf.Listing, s, a.units, m)
	if err != nil {
		return nil, err
	}
	a.dispatcher = dispatcher.New(s,
		identity.NewResolver(&conf.Contract, s, w, m),
		txorchestrator.New(&conf.Receipts, s, w, ec, a.units, m),
		agg,
		a.activity,
	)

	if a.metricsServer, err = metrics.NewServer(ctx, a.registry, &conf.Metrics); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *App) Start() error {
	if a.metricsServer != nil {
		return a.metricsServer.Start()
	}
	return nil
}

func (a *App) Stop() {
	if a.metricsServer != nil {
		a.metricsServer.Stop()
	}
}

func (a *App) Dispatcher() *dispatcher.Dispatcher {
	return a.dispatcher
}

func (a *App) Activity() *activitylog.ActivityLog {
	return a.activity
}

func (a *App) Units() *units.Converter {
	return a.units
}

func (a *App) Registry() *prometheus.Registry {
	return a.registry
}

// MetricsAddr is empty when the endpoint is disabled
func (a *App) MetricsAddr() string {
	if a.metricsServer == nil {
		return ""
	}
	return a.metricsServer.Addr().String()
}
