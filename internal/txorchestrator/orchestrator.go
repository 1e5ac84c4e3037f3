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

package txorchestrator

import (
	"context"

	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/metrics"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/msgs"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/session"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/wallet"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/ethclient"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insapi"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insconf"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/log"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/retry"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/units"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// Orchestrator submits state changing operations and reconciles their outcome
type Orchestrator struct {
	session      *session.Session
	wallet       wallet.Provider
	ec           ethclient.EthClient
	units        *units.Converter
	receiptRetry *retry.Retry
	metrics      metrics.InsuranceMetrics
}

func New(conf *insconf.RetryConfigWithMax, s *session.Session, w wallet.Provider, ec ethclient.EthClient, conv *units.Converter, m metrics.InsuranceMetrics) *Orchestrator {
	return &Orchestrator{
		session:      s,
		wallet:       w,
		ec:           ec,
		units:        conv,
		receiptRetry: retry.New(conf, insconf.ReceiptPollingDefaults),
		metrics:      m,
	}
}

// Submit runs snapshot, submission, settlement and reconciliation. Every failure
// is reported in the outcome, nothing is returned as an error and the transaction
// is never retried.
func (o *Orchestrator) Submit(ctx context.Context, op Operation) (out *insapi.TxOutcome) {
	ctx = log.WithLogField(ctx, "op", op.Name())
	out = &insapi.TxOutcome{Operation: op.Name()}
	defer func() {
		source := string(out.Source)
		if source == "" {
			source = "none"
		}
		o.metrics.IncTransaction(op.Name(), string(out.Status), source)
	}()

	from := o.session.Address()
	if from == nil {
		return o.failed(ctx, op, out, insapi.NewError(insapi.ErrNotConnected, i18n.NewError(ctx, msgs.MsgIdentityNotConnected)))
	}
	plan, err := op.plan(ctx, o.units)
	if err != nil {
		out.FailureClass = string(ethclient.ErrorReasonInvalidInputs)
		if insapi.KindOf(err) == insapi.ErrUnknown {
			err = insapi.NewError(insapi.ErrInvalidInput, err)
		}
		return o.failed(ctx, op, out, err)
	}

	contract := o.session.Contract()
	if plan.snapshot != nil {
		if err := plan.snapshot(ctx, contract); err != nil {
			return o.failed(ctx, op, out, err)
		}
	}

	method := plan.method
	if !contract.HasFunction(method) && plan.altMethod != "" && contract.HasFunction(plan.altMethod) {
		log.L(ctx).Infof("Contract has no %s function, using %s", method, plan.altMethod)
		method = plan.altMethod
	}
	tx, err := contract.BuildTransaction(ctx, from, method, plan.input, plan.value)
	if err != nil {
		out.FailureClass = string(ethclient.ErrorReasonInvalidInputs)
		return o.failed(ctx, op, out, insapi.NewError(insapi.ErrInvalidInput, err))
	}
	txHash, err := o.wallet.SendTransaction(ctx, from, tx)
	if err != nil {
		return o.failed(ctx, op, out, i18n.WrapError(ctx, err, msgs.MsgTxSubmitFailed))
	}
	out.TxHash = &txHash
	ctx = log.WithLogField(ctx, "tx", txHash.String())
	log.L(ctx).Infof("Submitted %s from %s", method, from)

	receipt, err := o.awaitReceipt(ctx, txHash)
	if err != nil {
		return o.failed(ctx, op, out, err)
	}
	if !receipt.Succeeded() {
		return o.failed(ctx, op, out, i18n.NewError(ctx, msgs.MsgTxReverted, txHash))
	}

	ev, err := contract.FindEvent(ctx, receipt, plan.event)
	if err == nil && ev != nil {
		out.Source = insapi.SourceEvent
		err = plan.reconcile(ctx, ev, out)
	}
	if err != nil || ev == nil {
		if err != nil {
			log.L(ctx).Warnf("Event %s unusable, reconciling from pre-call reads: %s", plan.event, err)
		}
		out.Source = insapi.SourceFallback
		if err := plan.reconcile(ctx, nil, out); err != nil {
			return o.failed(ctx, op, out, err)
		}
	}
	out.Status = insapi.TxSucceeded
	log.L(ctx).Infof("%s settled in block %d (gasUsed=%s source=%s)", method, receipt.BlockNumber, receipt.GasUsed, out.Source)
	return out
}

// awaitReceipt polls until the receipt is available or the attempts are exhausted
func (o *Orchestrator) awaitReceipt(ctx context.Context, txHash ethtypes.HexBytes0xPrefix) (*ethclient.TransactionReceipt, error) {
	var receipt *ethclient.TransactionReceipt
	err := o.receiptRetry.Do(ctx, func(attempt int) (retryable bool, err error) {
		receipt, err = o.ec.GetTransactionReceipt(ctx, txHash)
		if err == nil && receipt == nil {
			err = i18n.NewError(ctx, msgs.MsgTxReceiptNotAvailable, txHash)
		}
		return true, err
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, i18n.WrapError(ctx, err, msgs.MsgTxSettlementTimedOut, txHash, o.receiptRetry.MaxAttempts())
	}
	return receipt, nil
}

func (o *Orchestrator) failed(ctx context.Context, op Operation, out *insapi.TxOutcome, err error) *insapi.TxOutcome {
	out.Status = insapi.TxFailed
	out.Source = ""
	out.Reason = err.Error()
	if kind := insapi.KindOf(err); kind != insapi.ErrUnknown {
		out.ErrorKind = kind
	}
	if out.FailureClass == "" {
		out.FailureClass = string(ethclient.MapError(err))
	}
	out.Summary = op.FailurePrefix() + out.Reason
	log.L(ctx).Errorf("%s failed (class=%s): %s", op.Name(), out.FailureClass, err)
	return out
}
