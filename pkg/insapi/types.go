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
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// Identity is the connected account. Comparisons are case-insensitive.
type Identity string

func (i Identity) Equals(other string) bool {
	return strings.EqualFold(string(i), other)
}

// Short renders 0x1234...abcd as shown on the admin connect button
func (i Identity) Short() string {
	s := string(i)
	if len(s) <= 10 {
		return s
	}
	return s[0:6] + "..." + s[len(s)-4:]
}

type AuthorizationStatus string

const (
	Authorized           AuthorizationStatus = "authorized"
	AccessDenied         AuthorizationStatus = "access_denied"
	ContractIncompatible AuthorizationStatus = "contract_incompatible"
)

type AuthorizationResult struct {
	Status AuthorizationStatus `json:"status"`
	// the accessor that answered, empty when neither did
	Accessor  string                 `json:"accessor,omitempty"`
	Authority *ethtypes.Address0xHex `json:"authority,omitempty"`
	Identity  Identity               `json:"identity"`
}

type ClaimStatus string

const (
	ClaimPending  ClaimStatus = "Pending"
	ClaimApproved ClaimStatus = "Approved"
	ClaimPaid     ClaimStatus = "Paid"
)

// DeriveClaimStatus applies paid > approved > pending. Paid wins regardless of approved.
func DeriveClaimStatus(approved, paid bool) ClaimStatus {
	switch {
	case paid:
		return ClaimPaid
	case approved:
		return ClaimApproved
	default:
		return ClaimPending
	}
}

type PolicyView struct {
	ID       uint64 `json:"id"`
	Holder   string `json:"holder"`
	Premium  string `json:"premium"`
	Coverage string `json:"coverage"`
	Active   bool   `json:"active"`
}

type ClaimView struct {
	ID       uint64      `json:"id"`
	PolicyID uint64      `json:"policyId"`
	Claimant string      `json:"claimant"`
	Holder   string      `json:"holder"` // empty when the referenced policy slot is absent
	Amount   string      `json:"amount"`
	Status   ClaimStatus `json:"status"`
}

type ListingKind string

const (
	ListingPolicies  ListingKind = "policies"
	ListingClaims    ListingKind = "claims"
	ListingAllClaims ListingKind = "all_claims"
)

type ReconciliationSource string

const (
	SourceEvent    ReconciliationSource = "event"
	SourceFallback ReconciliationSource = "fallback"
)

type TxStatus string

const (
	TxSucceeded TxStatus = "succeeded"
	TxFailed    TxStatus = "failed"
)

// TxOutcome is the reconciled result of one state changing operation.
// Only the fields relevant to the operation are set.
type TxOutcome struct {
	Operation string                     `json:"operation"`
	Status    TxStatus                   `json:"status"`
	TxHash    *ethtypes.HexBytes0xPrefix `json:"txHash,omitempty"`
	Source    ReconciliationSource       `json:"source,omitempty"`
	PolicyID  *uint64                    `json:"policyId,omitempty"`
	ClaimID   *uint64                    `json:"claimId,omitempty"`
	Holder    string                     `json:"holder,omitempty"`
	Premium   string                     `json:"premium,omitempty"`
	Coverage  string                     `json:"coverage,omitempty"`
	Amount    string                     `json:"amount,omitempty"`
	Summary   string                     `json:"summary"`
	Reason    string                     `json:"reason,omitempty"` // set when Status is TxFailed
	// a classification of the failure from the node error text, such as "transaction_reverted"
	FailureClass string `json:"failureClass,omitempty"`
	// set when the failure was detected by the client rather than the chain
	ErrorKind ErrorKind `json:"errorKind,omitempty"`
}

func (o *TxOutcome) Failed() bool {
	return o.Status == TxFailed
}

type ErrorKind string

const (
	ErrProviderUnavailable  ErrorKind = "ProviderUnavailable"
	ErrUserRejected         ErrorKind = "UserRejected"
	ErrContractIncompatible ErrorKind = "ContractIncompatible"
	ErrAccessDenied         ErrorKind = "AccessDenied"
	ErrInvalidAmount        ErrorKind = "InvalidAmount"
	// a missing field, malformed address or malformed id
	ErrInvalidInput      ErrorKind = "InvalidInput"
	ErrTxFailed          ErrorKind = "TxFailed"
	ErrAggregationFailed ErrorKind = "AggregationFailed"
	ErrNotConnected      ErrorKind = "NotConnected"
	ErrNotAuthorized     ErrorKind = "NotAuthorized"
	ErrUnknown           ErrorKind = "Unknown"
)

// Error attaches a kind to the coded error that caused a failure
type Error struct {
	Kind ErrorKind
	Err  error
}

func NewError(kind ErrorKind, err error) error {
	return &Error{Kind: kind, Err: err}
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf finds the outermost classified error in the chain
func KindOf(err error) ErrorKind {
	var ke *Error
	if errors.As(err, &ke) {
		return ke.Kind
	}
	var af *AggregationFailed
	if errors.As(err, &af) {
		return ErrAggregationFailed
	}
	return ErrUnknown
}

type OutcomeKind string

const (
	OutcomeConnected  OutcomeKind = "connected"
	OutcomeAuthorized OutcomeKind = "authorized"
	OutcomeTx         OutcomeKind = "tx"
	OutcomeListing    OutcomeKind = "listing"
	OutcomeFailed     OutcomeKind = "failed"
)

// Outcome is the discriminated result of dispatching one user command
type Outcome struct {
	Kind      OutcomeKind          `json:"kind"`
	ErrorKind ErrorKind            `json:"errorKind,omitempty"`
	Message   string               `json:"message"`
	Label     string               `json:"label,omitempty"`
	Identity  Identity             `json:"identity,omitempty"`
	Auth      *AuthorizationResult `json:"auth,omitempty"`
	Tx        *TxOutcome           `json:"tx,omitempty"`
	Listing   ListingKind          `json:"listing,omitempty"`
	Policies  []*PolicyView        `json:"policies,omitempty"`
	Claims    []*ClaimView         `json:"claims,omitempty"`
}

// AggregationFailed is returned by listings when any single read fails.
// No partial result accompanies it.
type AggregationFailed struct {
	Listing                 ListingKind
	PartialResultsDiscarded bool
	Cause                   error
}

func (e *AggregationFailed) Error() string {
	return e.Cause.Error()
}

func (e *AggregationFailed) Unwrap() error {
	return e.Cause
}

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

type LogEntry struct {
	ID       uuid.UUID `json:"id"`
	Time     time.Time `json:"time"`
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
}
