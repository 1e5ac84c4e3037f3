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

package activitylog

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insapi"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/log"
	"github.com/google/uuid"
)

// Renderer is invoked synchronously for every recorded entry
type Renderer interface {
	Render(entry *insapi.LogEntry)
}

type ActivityLog struct {
	lock      sync.Mutex
	entries   []*insapi.LogEntry
	renderers []Renderer
	now       func() time.Time
}

func New(renderers ...Renderer) *ActivityLog {
	return &ActivityLog{
		renderers: renderers,
		now:       time.Now,
	}
}

func (al *ActivityLog) AddRenderer(r Renderer) {
	al.lock.Lock()
	defer al.lock.Unlock()
	al.renderers = append(al.renderers, r)
}

// Record prepends an entry, renders it, and mirrors it to the context logger
func (al *ActivityLog) Record(ctx context.Context, message string, severity insapi.Severity) *insapi.LogEntry {
	entry := &insapi.LogEntry{
		ID:       uuid.New(),
		Severity: severity,
		Message:  message,
	}

	al.lock.Lock()
	defer al.lock.Unlock()
	entry.Time = al.now()
	al.entries = append([]*insapi.LogEntry{entry}, al.entries...)

	l := log.L(ctx).WithField("activity", entry.ID.String())
	if severity == insapi.SeverityError {
		l.Error(message)
	} else {
		l.Info(message)
	}
	for _, r := range al.renderers {
		r.Render(entry)
	}
	return entry
}

func (al *ActivityLog) Info(ctx context.Context, message string) *insapi.LogEntry {
	return al.Record(ctx, message, insapi.SeverityInfo)
}

func (al *ActivityLog) Success(ctx context.Context, message string) *insapi.LogEntry {
	return al.Record(ctx, message, insapi.SeveritySuccess)
}

func (al *ActivityLog) Error(ctx context.Context, message string) *insapi.LogEntry {
	return al.Record(ctx, message, insapi.SeverityError)
}

// Entries returns a copy of the feed, newest first
func (al *ActivityLog) Entries() []*insapi.LogEntry {
	al.lock.Lock()
	defer al.lock.Unlock()
	entries := make([]*insapi.LogEntry, len(al.entries))
	copy(entries, al.entries)
	return entries
}

func (al *ActivityLog) Len() int {
	al.lock.Lock()
	defer al.lock.Unlock()
	return len(al.entries)
}

type writerRenderer struct {
	w          io.Writer
	timeFormat string
}

// NewWriterRenderer prints each entry as "[15:04:05] message" on its own line
func NewWriterRenderer(w io.Writer) Renderer {
	return &writerRenderer{w: w, timeFormat: time.TimeOnly}
}

func (wr *writerRenderer) Render(entry *insapi.LogEntry) {
	_, _ = fmt.Fprintf(wr.w, "[%s] %s\n", entry.Time.Format(wr.timeFormat), entry.Message)
}

// RenderAll writes a feed in the order given
func RenderAll(w io.Writer, entries []*insapi.LogEntry) {
	r := NewWriterRenderer(w)
	for _, e := range entries {
		r.Render(e)
	}
}
