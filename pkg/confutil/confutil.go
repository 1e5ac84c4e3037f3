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

package confutil

import (
	"time"

	"github.com/docker/go-units"
)

// Config structs hold optional values as pointers, so an omitted YAML key can
// be told apart from a zero. These helpers resolve them against defaults.
// The log package depends on this one, so nothing here may log.

type number interface {
	~int | ~int64 | ~float64
}

func P[T any](v T) *T {
	return &v
}

// Value is the configured value, or def when unset
func Value[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}

// AtLeast is Value clamped up to min
func AtLeast[T number](v *T, min, def T) T {
	if v == nil {
		return def
	}
	return max(*v, min)
}

func StringNotEmpty(v *string, def string) string {
	if v == nil || *v == "" {
		return def
	}
	return *v
}

func StringSlice(v []string, def []string) []string {
	if len(v) == 0 {
		return def
	}
	return v
}

// Duration parses a Go duration string. Unparseable values fall back to def.
func Duration(v *string, min time.Duration, def string) time.Duration {
	return parsed(v, min, def, time.ParseDuration)
}

// ByteSize parses sizes such as "20Mb" with binary multiples
func ByteSize(v *string, min int64, def string) int64 {
	return parsed(v, min, def, units.RAMInBytes)
}

func parsed[T number](v *string, min T, def string, parse func(string) (T, error)) T {
	if v != nil {
		if val, err := parse(*v); err == nil {
			return max(val, min)
		}
	}
	val, _ := parse(def)
	return val
}
