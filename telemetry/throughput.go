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
	"sync"

	movingaverage "github.com/RobinUS2/golang-moving-average"
)

// throughputWindow is how many recent samples feed the rolling average.
const throughputWindow = 30

// Throughput tracks a rolling average of bytes moved per call, over the
// samples passed to Observe.
type Throughput struct {
	mu  sync.Mutex
	avg *movingaverage.MovingAverage
}

// NewThroughput returns a Throughput with an empty window.
func NewThroughput() *Throughput {
	return &Throughput{avg: movingaverage.New(throughputWindow)}
}

// Observe records n bytes moved by one call.
func (t *Throughput) Observe(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.avg.Add(float64(n))
}

// BytesPerCall returns the current rolling average, or 0 before any
// sample has been recorded.
func (t *Throughput) BytesPerCall() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.avg.Avg()
}
