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

// Package session holds the connected identity and the contract handle that every
// command reads. Only a connect writes the identity.
package session

import (
	"context"
	"sync"

	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insapi"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insurance"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/log"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

type Session struct {
	lock     sync.RWMutex
	contract *insurance.Contract
	identity insapi.Identity
	address  *ethtypes.Address0xHex
	// set by a successful admin authorization, cleared when the identity changes
	admin *insapi.AuthorizationResult
}

func New(contract *insurance.Contract) *Session {
	return &Session{contract: contract}
}

func (s *Session) Contract() *insurance.Contract {
	return s.contract
}

// SetIdentity replaces the connected account. An account switch drops any admin authorization.
func (s *Session) SetIdentity(ctx context.Context, identity insapi.Identity, address *ethtypes.Address0xHex) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.identity != "" && !s.identity.Equals(string(identity)) {
		log.L(ctx).Infof("Connected account changed from %s to %s", s.identity, identity)
	}
	if !s.identity.Equals(string(identity)) {
		s.admin = nil
	}
	s.identity = identity
	s.address = address
}

// Identity returns the connected account, or an empty identity when disconnected
func (s *Session) Identity() insapi.Identity {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.identity
}

func (s *Session) Address() *ethtypes.Address0xHex {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.address
}

func (s *Session) Connected() bool {
	return s.Identity() != ""
}

// SetAdmin records the result of an admin authorization for the current identity
func (s *Session) SetAdmin(result *insapi.AuthorizationResult) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if result != nil && result.Status == insapi.Authorized && s.identity.Equals(string(result.Identity)) {
		s.admin = result
	} else {
		s.admin = nil
	}
}

func (s *Session) IsAdmin() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.admin != nil
}
