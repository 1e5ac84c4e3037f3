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

package insconf

import "github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/confutil"

type LogConfig struct {
	// trace, debug, info, warn or error
	Level *string `json:"level"`
	// console (prefixed text), plain (text with caller info) or json
	Format *string `json:"format"`
	// stderr, stdout or file
	Output *string `json:"output"`
	// "auto" follows TTY detection, "always" and "never" override it
	Color *string `json:"color"`
	// timestamps use this layout, in UTC when utc is set
	TimeFormat *string `json:"timeFormat"`
	UTC        *bool   `json:"utc"`
	// rotation settings when output is file
	File LogFileConfig `json:"file"`
	// field names when format is json
	JSON LogJSONConfig `json:"json"`
}

type LogFileConfig struct {
	Filename   *string `json:"filename"`
	MaxSize    *string `json:"maxSize"`
	MaxBackups *int    `json:"maxBackups"`
	MaxAge     *string `json:"maxAge"`
	Compress   *bool   `json:"compress"`
}

type LogJSONConfig struct {
	TimestampField *string `json:"timestampField"`
	LevelField     *string `json:"levelField"`
	MessageField   *string `json:"messageField"`
}

var LogDefaults = &LogConfig{
	Level:      confutil.P("warn"),
	Format:     confutil.P("console"),
	Output:     confutil.P("stderr"),
	Color:      confutil.P("auto"),
	TimeFormat: confutil.P("2006-01-02T15:04:05.000Z07:00"),
	UTC:        confutil.P(false),
	File: LogFileConfig{
		Filename:   confutil.P("insurectl.log"),
		MaxSize:    confutil.P("20Mb"),
		MaxBackups: confutil.P(3),
		MaxAge:     confutil.P("168h"),
		Compress:   confutil.P(true),
	},
	JSON: LogJSONConfig{
		TimestampField: confutil.P("@timestamp"),
		LevelField:     confutil.P("level"),
		MessageField:   confutil.P("message"),
	},
}
