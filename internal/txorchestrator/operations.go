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
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/msgs"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insapi"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insurance"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/units"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// Operation is one state changing call on the contract, with its inputs as the user entered them
type Operation interface {
	Name() string
	// prefix of the message logged when the operation fails
	FailurePrefix() string
	plan(ctx context.Context, conv *units.Converter) (*txPlan, error)
}

type txPlan struct {
	method string
	// used when the ABI does not have method
	altMethod string
	input     map[string]any
	value     *big.Int
	event     string
	// reads taken before the write, so the outcome can be built without the event
	snapshot func(ctx context.Context, c *insurance.Contract) error
	// fills the outcome from the event, or from the snapshot and inputs when ev is nil
	reconcile func(ctx context.Context, ev *insurance.Fields, out *insapi.TxOutcome) error
}

type IssuePolicy struct {
	Holder   string
	Premium  string
	Coverage string
	Duration string
}

type PayPremium struct {
	PolicyID string
	Amount   string
}

type SubmitClaim struct {
	PolicyID string
	Amount   string
}

type ApproveClaim struct {
	ClaimID string
}

type PayClaim struct {
	ClaimID string
}

type FundContract struct {
	Amount string
}

func (op *IssuePolicy) Name() string  { return insurance.MethodIssuePolicy }
func (op *PayPremium) Name() string   { return insurance.MethodPayPremium }
func (op *SubmitClaim) Name() string  { return insurance.MethodSubmitClaim }
func (op *ApproveClaim) Name() string { return insurance.MethodApproveClaim }
func (op *PayClaim) Name() string     { return insurance.MethodPayClaim }
func (op *FundContract) Name() string { return insurance.MethodFundContract }

func (op *IssuePolicy) FailurePrefix() string  { return "❌ Error issuing policy: " }
func (op *PayPremium) FailurePrefix() string   { return "❌ Error paying premium: " }
func (op *SubmitClaim) FailurePrefix() string  { return "❌ Error submitting claim: " }
func (op *ApproveClaim) FailurePrefix() string { return "❌ Approval failed: " }
func (op *PayClaim) FailurePrefix() string     { return "❌ Payment failed: " }
func (op *FundContract) FailurePrefix() string { return "❌ Funding failed: " }

type field struct {
	name  string
	value string
}

func requireFields(ctx context.Context, fields ...field) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return i18n.NewError(ctx, msgs.MsgInputMissingFields, strings.Join(missing, ", "))
	}
	return nil
}

func parseAmount(ctx context.Context, conv *units.Converter, s string) (*big.Int, error) {
	v, err := conv.ToBaseUnits(ctx, s)
	if err != nil {
		return nil, insapi.NewError(insapi.ErrInvalidAmount, err)
	}
	return v, nil
}

func u64(v uint64) string {
	return strconv.FormatUint(v, 10)
}

func (op *IssuePolicy) plan(ctx context.Context, conv *units.Converter) (*txPlan, error) {
	err := requireFields(ctx,
		field{"holder", op.Holder}, field{"premium", op.Premium}, field{"coverage", op.Coverage}, field{"duration", op.Duration})
	if err != nil {
		return nil, err
	}
	holder, err := ethtypes.NewAddress(strings.TrimSpace(op.Holder))
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgInputInvalidAddress, op.Holder)
	}
	premium, err := parseAmount(ctx, conv, op.Premium)
	if err != nil {
		return nil, err
	}
	coverage, err := parseAmount(ctx, conv, op.Coverage)
	if err != nil {
		return nil, err
	}
	duration, err := units.ParseID(ctx, op.Duration)
	if err != nil {
		return nil, err
	}

	var nextPolicyID uint64
	return &txPlan{
		method: insurance.MethodIssuePolicy,
		input: map[string]any{
			"holder":   holder.String(),
			"premium":  premium.String(),
			"coverage": coverage.String(),
			"duration": u64(duration),
		},
		event: insurance.EventPolicyIssued,
		snapshot: func(ctx context.Context, c *insurance.Contract) (err error) {
			nextPolicyID, err = c.NextPolicyID(ctx)
			return err
		},
		reconcile: func(ctx context.Context, ev *insurance.Fields, out *insapi.TxOutcome) (err error) {
			policyID, h, p, cv := nextPolicyID, holder, premium, coverage
			if ev != nil {
				if policyID, err = ev.Uint64(ctx, "policyId"); err != nil {
					return err
				}
				if h, err = ev.Address(ctx, "holder"); err != nil {
					return err
				}
				if p, err = ev.BigInt(ctx, "premium"); err != nil {
					return err
				}
				if cv, err = ev.BigInt(ctx, "coverage"); err != nil {
					return err
				}
			}
			out.PolicyID = &policyID
			out.Holder = h.String()
			out.Premium = conv.FromBaseUnits(p)
			out.Coverage = conv.FromBaseUnits(cv)
			out.Summary = fmt.Sprintf("✅ Policy #%d issued for %s | Premium: %s | Coverage: %s", policyID, h, conv.Format(p), conv.Format(cv))
			return nil
		},
	}, nil
}

func (op *PayPremium) plan(ctx context.Context, conv *units.Converter) (*txPlan, error) {
	if err := requireFields(ctx, field{"policyId", op.PolicyID}, field{"amount", op.Amount}); err != nil {
		return nil, err
	}
	policyID, err := units.ParseID(ctx, op.PolicyID)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(ctx, conv, op.Amount)
	if err != nil {
		return nil, err
	}
	return &txPlan{
		method: insurance.MethodPayPremium,
		input:  map[string]any{"policyId": u64(policyID)},
		value:  amount,
		event:  insurance.EventPremiumPaid,
		reconcile: func(ctx context.Context, ev *insurance.Fields, out *insapi.TxOutcome) (err error) {
			id, paid := policyID, amount
			if ev != nil {
				if id, err = ev.Uint64(ctx, "policyId"); err != nil {
					return err
				}
				if paid, err = ev.BigInt(ctx, "amount"); err != nil {
					return err
				}
				out.Summary = fmt.Sprintf("💸 Premium paid for Policy #%d | Amount: %s", id, conv.Format(paid))
			} else {
				out.Summary = fmt.Sprintf("💸 Premium paid for Policy #%d (%s)", id, conv.Format(paid))
			}
			out.PolicyID = &id
			out.Amount = conv.FromBaseUnits(paid)
			return nil
		},
	}, nil
}

func (op *SubmitClaim) plan(ctx context.Context, conv *units.Converter) (*txPlan, error) {
	if err := requireFields(ctx, field{"policyId", op.PolicyID}, field{"amount", op.Amount}); err != nil {
		return nil, err
	}
	policyID, err := units.ParseID(ctx, op.PolicyID)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(ctx, conv, op.Amount)
	if err != nil {
		return nil, err
	}
	var nextClaimID uint64
	return &txPlan{
		method: insurance.MethodSubmitClaim,
		input:  map[string]any{"policyId": u64(policyID), "amount": amount.String()},
		event:  insurance.EventClaimSubmitted,
		snapshot: func(ctx context.Context, c *insurance.Contract) (err error) {
			nextClaimID, err = c.NextClaimID(ctx)
			return err
		},
		reconcile: func(ctx context.Context, ev *insurance.Fields, out *insapi.TxOutcome) (err error) {
			claimID, pID, claimed := nextClaimID, policyID, amount
			if ev != nil {
				if claimID, err = ev.Uint64(ctx, "claimId"); err != nil {
					return err
				}
				if pID, err = ev.Uint64(ctx, "policyId"); err != nil {
					return err
				}
				if claimed, err = ev.BigInt(ctx, "amount"); err != nil {
					return err
				}
			}
			out.ClaimID = &claimID
			out.PolicyID = &pID
			out.Amount = conv.FromBaseUnits(claimed)
			out.Summary = fmt.Sprintf("🧾 Claim #%d submitted for Policy #%d (%s)", claimID, pID, conv.Format(claimed))
			return nil
		},
	}, nil
}

// claimPlan covers approve and pay, which both read the claim first to learn its policy
func claimPlan(ctx context.Context, method, event, rawClaimID string, summary func(claimID, policyID uint64, amount *big.Int) string) (*txPlan, error) {
	if err := requireFields(ctx, field{"claimId", rawClaimID}); err != nil {
		return nil, err
	}
	claimID, err := units.ParseID(ctx, rawClaimID)
	if err != nil {
		return nil, err
	}
	var claim *insurance.ClaimRecord
	return &txPlan{
		method: method,
		input:  map[string]any{"claimId": u64(claimID)},
		event:  event,
		snapshot: func(ctx context.Context, c *insurance.Contract) (err error) {
			claim, err = c.Claim(ctx, claimID)
			return err
		},
		reconcile: func(ctx context.Context, ev *insurance.Fields, out *insapi.TxOutcome) (err error) {
			id, policyID, amount := claimID, claim.PolicyID, claim.Amount
			if ev != nil {
				if id, err = ev.Uint64(ctx, "claimId"); err != nil {
					return err
				}
				if policyID, err = ev.Uint64(ctx, "policyId"); err != nil {
					return err
				}
				if ev.Has("amount") {
					if amount, err = ev.BigInt(ctx, "amount"); err != nil {
						return err
					}
				}
			}
			out.ClaimID = &id
			out.PolicyID = &policyID
			out.Summary = summary(id, policyID, amount)
			return nil
		},
	}, nil
}

func (op *ApproveClaim) plan(ctx context.Context, conv *units.Converter) (*txPlan, error) {
	return claimPlan(ctx, insurance.MethodApproveClaim, insurance.EventClaimApproved, op.ClaimID,
		func(claimID, policyID uint64, _ *big.Int) string {
			return fmt.Sprintf("✅ Claim #%d approved for Policy #%d", claimID, policyID)
		})
}

func (op *PayClaim) plan(ctx context.Context, conv *units.Converter) (*txPlan, error) {
	return claimPlan(ctx, insurance.MethodPayClaim, insurance.EventClaimPaid, op.ClaimID,
		func(claimID, policyID uint64, _ *big.Int) string {
			return fmt.Sprintf("💸 Claim #%d paid successfully for Policy #%d", claimID, policyID)
		})
}

func (op *FundContract) plan(ctx context.Context, conv *units.Converter) (*txPlan, error) {
	if err := requireFields(ctx, field{"amount", op.Amount}); err != nil {
		return nil, err
	}
	amount, err := parseAmount(ctx, conv, op.Amount)
	if err != nil {
		return nil, err
	}
	return &txPlan{
		method:    insurance.MethodFundContract,
		altMethod: insurance.MethodFund,
		value:     amount,
		event:     insurance.EventContractFunded,
		reconcile: func(ctx context.Context, ev *insurance.Fields, out *insapi.TxOutcome) (err error) {
			funded := amount
			if ev != nil {
				if funded, err = ev.BigInt(ctx, "amount"); err != nil {
					return err
				}
			}
			out.Amount = conv.FromBaseUnits(funded)
			out.Summary = fmt.Sprintf("💰 Contract funded with %s", conv.Format(funded))
			return nil
		},
	}, nil
}
