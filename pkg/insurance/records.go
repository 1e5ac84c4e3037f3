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

package insurance

import (
	"context"
	"math/big"

	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// ZeroAddress marks a record slot that was never written
var ZeroAddress = ethtypes.Address0xHex{}

type PolicyRecord struct {
	ID       uint64
	Holder   ethtypes.Address0xHex
	Premium  *big.Int
	Coverage *big.Int
	Active   bool
	// only set when the contract exposes them
	StartTime *big.Int
	EndTime   *big.Int
}

func (p *PolicyRecord) IsAbsent() bool {
	return p.Holder == ZeroAddress
}

type ClaimRecord struct {
	ID       uint64
	PolicyID uint64
	Claimant ethtypes.Address0xHex
	Amount   *big.Int
	Approved bool
	Paid     bool
}

func (c *ClaimRecord) IsAbsent() bool {
	return c.Claimant == ZeroAddress
}

// DecodePolicyRecord converts the decoded return of policies(id). Every required
// field must be present with the right type.
func DecodePolicyRecord(ctx context.Context, slot uint64, values map[string]any) (p *PolicyRecord, err error) {
	f := NewFields("policy", slot, values)
	p = &PolicyRecord{}
	if p.ID, err = f.Uint64(ctx, "id"); err != nil {
		return nil, err
	}
	holder, err := f.Address(ctx, "holder")
	if err != nil {
		return nil, err
	}
	p.Holder = *holder
	if p.Premium, err = f.BigInt(ctx, "premium"); err != nil {
		return nil, err
	}
	if p.Coverage, err = f.BigInt(ctx, "coverage"); err != nil {
		return nil, err
	}
	if p.Active, err = f.Bool(ctx, "active"); err != nil {
		return nil, err
	}
	if f.Has("startTime") {
		if p.StartTime, err = f.BigInt(ctx, "startTime"); err != nil {
			return nil, err
		}
	}
	if f.Has("endTime") {
		if p.EndTime, err = f.BigInt(ctx, "endTime"); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// DecodeClaimRecord converts the decoded return of claims(id). Contracts that name
// the reference "policyID" are accepted.
func DecodeClaimRecord(ctx context.Context, slot uint64, values map[string]any) (c *ClaimRecord, err error) {
	f := NewFields("claim", slot, values)
	c = &ClaimRecord{}
	if c.ID, err = f.Uint64(ctx, "id"); err != nil {
		return nil, err
	}
	if c.PolicyID, err = f.Uint64(ctx, "policyId", "policyID"); err != nil {
		return nil, err
	}
	claimant, err := f.Address(ctx, "claimant")
	if err != nil {
		return nil, err
	}
	c.Claimant = *claimant
	if c.Amount, err = f.BigInt(ctx, "amount"); err != nil {
		return nil, err
	}
	if c.Approved, err = f.Bool(ctx, "approved"); err != nil {
		return nil, err
	}
	if c.Paid, err = f.Bool(ctx, "paid"); err != nil {
		return nil, err
	}
	return c, nil
}
