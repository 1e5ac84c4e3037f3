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

package msgs

import (
	"context"
	"testing"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/stretchr/testify/assert"
)

func TestMessagesExpand(t *testing.T) {
	err := i18n.NewError(context.Background(), MsgUnitsInvalidAmount, "abc")
	assert.Regexp(t, "IN010200.*Invalid amount 'abc'", err)
}

func TestPrefixEnforced(t *testing.T) {
	assert.Panics(t, func() {
		ffe("XX010000", "wrong prefix")
	})
}
