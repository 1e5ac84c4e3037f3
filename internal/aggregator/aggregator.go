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

package aggregator

import (
	"context"

	"github.com/Code-Hex/go-generics-cache/policy/lru"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/metrics"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/msgs"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/session"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/confutil"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insapi"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insconf"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insurance"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/log"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/units"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

// Aggregator builds the policy and claim listings by walking the contract's
// id space. Every call reads everything again.
type Aggregator struct {
	session   *session.Session
	units     *units.Converter
	metrics   metrics.InsuranceMetrics
	inclusive bool
	cacheSize int
}

func New(ctx context.Context, conf *insconf.ListingConfig, s *session.Session, conv *units.Converter, m metrics.InsuranceMetrics) (*Aggregator, error) {
	bound := confutil.StringNotEmpty(conf.UpperBound, *insconf.ListingDefaults.UpperBound)
	a := &Aggregator{
		session:   s,
		units:     conv,
		metrics:   m,
		cacheSize: confutil.AtLeast(conf.PolicyCacheSize, 1, *insconf.ListingDefaults.PolicyCacheSize),
	}
	switch insconf.ListingUpperBound(bound) {
	case insconf.ListingUpperBoundInclusive:
		a.inclusive = true
	case insconf.ListingUpperBoundExclusive:
	default:
		return nil, i18n.NewError(ctx, msgs.MsgConfigListingBound, bound)
	}
	return a, nil
}

// ids returns the number of slots to read for a next-id counter value
func (a *Aggregator) ids(next uint64) uint64 {
	if a.inclusive {
		return next + 1
	}
	return next
}

func (a *Aggregator) finish(ctx context.Context, kind insapi.ListingKind, err error) error {
	if err != nil {
		a.metrics.IncListing(string(kind), "failed")
		log.L(ctx).Errorf("Listing %s failed: %s", kind, err)
		return &insapi.AggregationFailed{
			Listing:                 kind,
			PartialResultsDiscarded: true,
			Cause:                   i18n.WrapError(ctx, err, msgs.MsgAggregationFailed, kind),
		}
	}
	a.metrics.IncListing(string(kind), "succeeded")
	return nil
}

func (a *Aggregator) policyView(p *insurance.PolicyRecord) *insapi.PolicyView {
	return &insapi.PolicyView{
		ID:       p.ID,
		Holder:   p.Holder.String(),
		Premium:  a.units.FromBaseUnits(p.Premium),
		Coverage: a.units.FromBaseUnits(p.Coverage),
		Active:   p.Active,
	}
}

// ListPolicies returns the policies held by the owner, in id order
func (a *Aggregator) ListPolicies(ctx context.Context, owner insapi.Identity) ([]*insapi.PolicyView, error) {
	views, err := a.listPolicies(ctx, owner)
	if err = a.finish(ctx, insapi.ListingPolicies, err); err != nil {
		return nil, err
	}
	return views, nil
}

func (a *Aggregator) listPolicies(ctx context.Context, owner insapi.Identity) ([]*insapi.PolicyView, error) {
	contract := a.session.Contract()
	next, err := contract.NextPolicyID(ctx)
	if err != nil {
		return nil, err
	}
	views := []*insapi.PolicyView{}
	for id := uint64(0); id < a.ids(next); id++ {
		p, err := contract.Policy(ctx, id)
		if err != nil {
			return nil, err
		}
		if p.IsAbsent() || !owner.Equals(p.Holder.String()) {
			continue
		}
		views = append(views, a.policyView(p))
	}
	log.L(ctx).Debugf("Listed %d policies for %s (next=%d)", len(views), owner, next)
	return views, nil
}

// ListClaims returns the claims against policies held by the owner. Orphaned
// claims, whose policy slot is absent, are never included.
func (a *Aggregator) ListClaims(ctx context.Context, owner insapi.Identity) ([]*insapi.ClaimView, error) {
	views, err := a.listClaims(ctx, func(cv *insapi.ClaimView) bool {
		return cv.Holder != "" && owner.Equals(cv.Holder)
	})
	if err = a.finish(ctx, insapi.ListingClaims, err); err != nil {
		return nil, err
	}
	return views, nil
}

// ListAllClaims returns every claim, with an empty holder for orphans
func (a *Aggregator) ListAllClaims(ctx context.Context) ([]*insapi.ClaimView, error) {
	views, err := a.listClaims(ctx, func(*insapi.ClaimView) bool { return true })
	if err = a.finish(ctx, insapi.ListingAllClaims, err); err != nil {
		return nil, err
	}
	return views, nil
}

func (a *Aggregator) listClaims(ctx context.Context, include func(cv *insapi.ClaimView) bool) ([]*insapi.ClaimView, error) {
	contract := a.session.Contract()
	next, err := contract.NextClaimID(ctx)
	if err != nil {
		return nil, err
	}
	// discarded at the end of the pass
	policies := lru.NewCache[uint64, *insurance.PolicyRecord](lru.WithCapacity(a.cacheSize))
	views := []*insapi.ClaimView{}
	for id := uint64(0); id < a.ids(next); id++ {
		c, err := contract.Claim(ctx, id)
		if err != nil {
			return nil, err
		}
		if c.IsAbsent() {
			continue
		}
		p, ok := policies.Get(c.PolicyID)
		if !ok {
			if p, err = contract.Policy(ctx, c.PolicyID); err != nil {
				return nil, err
			}
			policies.Set(c.PolicyID, p)
		}
		cv := &insapi.ClaimView{
			ID:       c.ID,
			PolicyID: c.PolicyID,
			Claimant: c.Claimant.String(),
			Amount:   a.units.FromBaseUnits(c.Amount),
			Status:   insapi.DeriveClaimStatus(c.Approved, c.Paid),
		}
		if !p.IsAbsent() {
			cv.Holder = p.Holder.String()
		}
		if include(cv) {
			views = append(views, cv)
		}
	}
	log.L(ctx).Debugf("Listed %d claims (next=%d)", len(views), next)
	return views, nil
}
