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

package log

import (
	"context"
	"io"
	"math"
	"os"
	"strings"
	"sync/atomic"

	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/confutil"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insconf"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Correlation fields longer than this are cut, so a calldata blob cannot swamp a line
const maxFieldLength = 61

type ctxLogKey struct{}

var (
	rootLogger = logrus.NewEntry(logrus.StandardLogger())

	// L returns the logger carried by the context, or the root logger
	L = loggerFromContext

	configured atomic.Bool
)

// InitConfig applies the log section of the client configuration to the
// process-wide logrus logger.
func InitConfig(conf *insconf.LogConfig) {
	configured.Store(true)
	def := insconf.LogDefaults

	logrus.SetLevel(parseLevel(confutil.StringNotEmpty(conf.Level, *def.Level)))
	logrus.SetOutput(outputFor(conf, def))

	format := strings.ToLower(confutil.StringNotEmpty(conf.Format, *def.Format))
	logrus.SetReportCaller(format == "plain")
	formatter := formatterFor(format, conf, def)
	if confutil.Value(conf.UTC, *def.UTC) {
		formatter = utcFormatter{formatter}
	}
	logrus.SetFormatter(formatter)
}

func IsTraceEnabled() bool {
	return logrus.IsLevelEnabled(logrus.TraceLevel)
}

// WithLogField returns a context whose logger carries the extra field
func WithLogField(ctx context.Context, key, value string) context.Context {
	ensureConfigured()
	if len(value) > maxFieldLength {
		value = value[:maxFieldLength] + "..."
	}
	return context.WithValue(ctx, ctxLogKey{}, loggerFromContext(ctx).WithField(key, value))
}

func ensureConfigured() {
	if !configured.Load() {
		InitConfig(&insconf.LogConfig{})
	}
}

func loggerFromContext(ctx context.Context) *logrus.Entry {
	if logger, ok := ctx.Value(ctxLogKey{}).(*logrus.Entry); ok {
		return logger
	}
	return rootLogger
}

// parseLevel accepts the logrus names case-insensitively; anything else is info
func parseLevel(level string) logrus.Level {
	l, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil || l < logrus.ErrorLevel {
		return logrus.InfoLevel
	}
	return l
}

func outputFor(conf, def *insconf.LogConfig) io.Writer {
	switch confutil.StringNotEmpty(conf.Output, *def.Output) {
	case "stdout":
		return os.Stdout
	case "file":
		filename := confutil.StringNotEmpty(conf.File.Filename, *def.File.Filename)
		maxSize := confutil.ByteSize(conf.File.MaxSize, 1024*1024, *def.File.MaxSize)
		maxAge := confutil.Duration(conf.File.MaxAge, 0, *def.File.MaxAge)
		return &lumberjack.Logger{
			Filename:   filename,
			MaxSize:    int(math.Ceil(float64(maxSize) / (1024 * 1024))),
			MaxBackups: confutil.AtLeast(conf.File.MaxBackups, 0, *def.File.MaxBackups),
			MaxAge:     int(math.Ceil(maxAge.Hours() / 24)),
			Compress:   confutil.Value(conf.File.Compress, *def.File.Compress),
		}
	default:
		return os.Stderr
	}
}

func formatterFor(format string, conf, def *insconf.LogConfig) logrus.Formatter {
	timeFormat := confutil.StringNotEmpty(conf.TimeFormat, *def.TimeFormat)
	var force, disable bool
	switch confutil.StringNotEmpty(conf.Color, *def.Color) {
	case "always":
		force = true
	case "never":
		disable = true
	}
	switch format {
	case "json":
		return &logrus.JSONFormatter{
			TimestampFormat: timeFormat,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  confutil.StringNotEmpty(conf.JSON.TimestampField, *def.JSON.TimestampField),
				logrus.FieldKeyLevel: confutil.StringNotEmpty(conf.JSON.LevelField, *def.JSON.LevelField),
				logrus.FieldKeyMsg:   confutil.StringNotEmpty(conf.JSON.MessageField, *def.JSON.MessageField),
			},
		}
	case "plain":
		return &logrus.TextFormatter{
			ForceColors:     force,
			DisableColors:   disable,
			TimestampFormat: timeFormat,
			FullTimestamp:   true,
		}
	default:
		return &prefixed.TextFormatter{
			ForceColors:     force,
			DisableColors:   disable,
			TimestampFormat: timeFormat,
			FullTimestamp:   true,
			ForceFormatting: true,
		}
	}
}

type utcFormatter struct {
	logrus.Formatter
}

func (f utcFormatter) Format(e *logrus.Entry) ([]byte, error) {
	e.Time = e.Time.UTC()
	return f.Formatter.Format(e)
}
