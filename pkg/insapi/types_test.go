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

package insapi

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveClaimStatus(t *testing.T) {
	assert.Equal(t, ClaimPending, DeriveClaimStatus(false, false))
	assert.Equal(t, ClaimApproved, DeriveClaimStatus(true, false))
	assert.Equal(t, ClaimPaid, DeriveClaimStatus(true, true))
	assert.Equal(t, ClaimPaid, DeriveClaimStatus(false, true))
}

func TestIdentity(t *testing.T) {
	id := Identity("0x1234567890AbCdEf1234567890abcdef1234ABCD")
	assert.True(t, id.Equals("0x1234567890abcdef1234567890ABCDEF1234abcd"))
	assert.False(t, id.Equals("0x0000000000000000000000000000000000000000"))
	assert.Equal(t, "0x1234...ABCD", id.Short())
	assert.Equal(t, "0x12", Identity("0x12").Short())
}

func TestAggregationFailedUnwrap(t *testing.T) {
	cause := fmt.Errorf("pop")
	var err error = &AggregationFailed{Listing: ListingPolicies, PartialResultsDiscarded: true, Cause: cause}
	assert.Equal(t, "pop", err.Error())
	assert.True(t, errors.Is(err, cause))
	var af *AggregationFailed
	assert.True(t, errors.As(err, &af))
	assert.True(t, af.PartialResultsDiscarded)
}

func TestTxOutcomeFailed(t *testing.T) {
	assert.True(t, (&TxOutcome{Status: TxFailed}).Failed())
	assert.False(t, (&TxOutcome{Status: TxSucceeded}).Failed())
}

func TestKindOf(t *testing.T) {
	cause := fmt.Errorf("pop")
	err := NewError(ErrUserRejected, cause)
	assert.Equal(t, "pop", err.Error())
	assert.Equal(t, ErrUserRejected, KindOf(err))
	assert.Equal(t, ErrUserRejected, KindOf(fmt.Errorf("wrapped: %w", err)))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, ErrAggregationFailed, KindOf(&AggregationFailed{Cause: cause}))
	assert.Equal(t, ErrUnknown, KindOf(cause))
	assert.Equal(t, ErrUnknown, KindOf(nil))
}
