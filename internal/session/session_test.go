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

package session

import (
	"context"
	"sync"
	"testing"

	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insapi"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/stretchr/testify/assert"
)

const (
	insurer = "0x1111111111111111111111111111111111111111"
	alice   = "0xa11ce00000000000000000000000000000000001"
)

func TestSessionIdentity(t *testing.T) {
	ctx := context.Background()
	s := New(nil)
	assert.False(t, s.Connected())
	assert.Nil(t, s.Address())
	assert.Nil(t, s.Contract())

	s.SetIdentity(ctx, alice, ethtypes.MustNewAddress(alice))
	assert.True(t, s.Connected())
	assert.Equal(t, insapi.Identity(alice), s.Identity())
	assert.Equal(t, alice, s.Address().String())
}

func TestSessionAdmin(t *testing.T) {
	ctx := context.Background()
	s := New(nil)
	s.SetIdentity(ctx, insurer, ethtypes.MustNewAddress(insurer))

	s.SetAdmin(&insapi.AuthorizationResult{Status: insapi.AccessDenied, Identity: insurer})
	assert.False(t, s.IsAdmin())

	s.SetAdmin(&insapi.AuthorizationResult{Status: insapi.Authorized, Identity: alice})
	assert.False(t, s.IsAdmin())

	s.SetAdmin(&insapi.AuthorizationResult{Status: insapi.Authorized, Identity: "0x1111111111111111111111111111111111111111"})
	assert.True(t, s.IsAdmin())

	// reconnecting the same account keeps the authorization
	s.SetIdentity(ctx, insurer, ethtypes.MustNewAddress(insurer))
	assert.True(t, s.IsAdmin())

	// switching drops it
	s.SetIdentity(ctx, alice, ethtypes.MustNewAddress(alice))
	assert.False(t, s.IsAdmin())

	s.SetAdmin(nil)
	assert.False(t, s.IsAdmin())
}

func TestSessionConcurrentReaders(t *testing.T) {
	ctx := context.Background()
	s := New(nil)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Identity()
			_ = s.IsAdmin()
		}()
	}
	s.SetIdentity(ctx, alice, ethtypes.MustNewAddress(alice))
	wg.Wait()
	assert.True(t, s.Connected())
}
