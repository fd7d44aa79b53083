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

package merkle

import (
	"errors"
	"testing"
)

func TestLevelCapacityHalvesPerOrdinal(t *testing.T) {
	if got, want := levelCapacity(MaxLevels-1), 1; got != want {
		t.Fatalf("levelCapacity(root) = %d, want %d", got, want)
	}
	if got, want := levelCapacity(MaxLevels-2), 2; got != want {
		t.Fatalf("levelCapacity(MaxLevels-2) = %d, want %d", got, want)
	}
	if got, want := levelCapacity(MaxLevels-3), 4; got != want {
		t.Fatalf("levelCapacity(MaxLevels-3) = %d, want %d", got, want)
	}
}

func TestSetAtRejectsAppendPastCapacity(t *testing.T) {
	l := newLevel(MaxLevels - 2) // capacity 2
	a := Sum([]byte("a"))
	b := Sum([]byte("b"))
	c := Sum([]byte("c"))

	if err := l.setAt(0, a); err != nil {
		t.Fatalf("setAt(0): %v", err)
	}
	if err := l.setAt(1, b); err != nil {
		t.Fatalf("setAt(1): %v", err)
	}
	err := l.setAt(2, c)
	var full *LevelFullError
	if !errors.As(err, &full) {
		t.Fatalf("setAt(2) err = %v, want *LevelFullError", err)
	}
	if full.Level != l.ordinal {
		t.Fatalf("LevelFullError.Level = %d, want %d", full.Level, l.ordinal)
	}

	// Overwriting an existing position is still fine once the level is full.
	if err := l.setAt(0, c); err != nil {
		t.Fatalf("setAt(0) overwrite on a full level: %v", err)
	}
}
