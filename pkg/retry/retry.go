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

package retry

import (
	"context"
	"math"
	"time"

	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/msgs"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/confutil"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insconf"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/log"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

// Retry is a capped exponential backoff. A zero attempt limit retries until
// the context ends.
type Retry struct {
	initialDelay time.Duration
	maxDelay     time.Duration
	factor       float64
	maxAttempts  int
}

// New resolves conf against def, falling back to the generic defaults when
// def is nil
func New(conf *insconf.RetryConfigWithMax, def *insconf.RetryConfigWithMax) *Retry {
	if def == nil {
		def = insconf.GenericRetryDefaults
	}
	return &Retry{
		initialDelay: confutil.Duration(conf.InitialDelay, 0, *def.InitialDelay),
		maxDelay:     confutil.Duration(conf.MaxDelay, 0, *def.MaxDelay),
		factor:       confutil.AtLeast(conf.Factor, 1.0, *def.Factor),
		maxAttempts:  confutil.AtLeast(conf.MaxAttempts, 0, *def.MaxAttempts),
	}
}

func (r *Retry) MaxAttempts() int {
	return r.maxAttempts
}

// Delay is the pause after the given number of consecutive failures
func (r *Retry) Delay(failures int) time.Duration {
	if failures <= 0 {
		return 0
	}
	d := float64(r.initialDelay) * math.Pow(r.factor, float64(failures-1))
	if d > float64(r.maxDelay) {
		return r.maxDelay
	}
	return time.Duration(d)
}

// Do calls fn until it succeeds, reports the error as not retryable, or the
// attempt limit is reached. The last error is returned. Intermediate failures
// are expected while polling, so they are only logged at debug.
func (r *Retry) Do(ctx context.Context, fn func(attempt int) (retryable bool, err error)) error {
	for attempt := 1; ; attempt++ {
		retryable, err := fn(attempt)
		switch {
		case err == nil:
			return nil
		case !retryable, r.maxAttempts > 0 && attempt >= r.maxAttempts:
			log.L(ctx).Errorf("Giving up after attempt %d: %s", attempt, err)
			return err
		}
		delay := r.Delay(attempt)
		log.L(ctx).Debugf("Attempt %d failed, retrying in %s: %s", attempt, delay, err)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return i18n.NewError(ctx, msgs.MsgContextCanceled)
		}
	}
}
