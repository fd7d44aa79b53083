// Copyright 2026 The Mrklar Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package telemetry

import (
	"time"

	buffer "github.com/globocom/go-buffer"
	"k8s.io/klog/v2"
)

// CommitEvent is one "upload committed" occurrence.
type CommitEvent struct {
	Index    int
	Filename string
}

// CommitLog batches commit events and flushes them as a single log line,
// so a burst of uploads doesn't produce one klog call per file.
type CommitLog struct {
	buf *buffer.Buffer
}

const (
	commitLogBatchSize     = 50
	commitLogFlushInterval = 2 * time.Second
)

// NewCommitLog returns a CommitLog that flushes every commitLogBatchSize
// events or commitLogFlushInterval, whichever comes first.
func NewCommitLog() *CommitLog {
	c := &CommitLog{}
	c.buf = buffer.New(
		buffer.WithSize(commitLogBatchSize),
		buffer.WithFlushInterval(commitLogFlushInterval),
		buffer.WithPusher(buffer.PusherFunc(c.flush)),
	)
	return c
}

// Record enqueues ev for the next flush.
func (c *CommitLog) Record(ev CommitEvent) {
	c.buf.Push(ev)
}

// Close flushes any remaining events.
func (c *CommitLog) Close() {
	c.buf.Flush()
}

func (c *CommitLog) flush(items []any) error {
	if len(items) == 0 {
		return nil
	}
	klog.Infof("telemetry: %d files committed", len(items))
	return nil
}
