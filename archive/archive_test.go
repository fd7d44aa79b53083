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

package archive

import (
	"testing"

	"github.com/mrklar-dev/mrklar/config"
	"github.com/mrklar-dev/mrklar/config/configtest"
)

func mustCommit(t *testing.T, a *Archive, cfg *config.Config, name string, data []byte) int {
	t.Helper()
	sf, err := Stage(cfg)
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if _, err := sf.Write(data); err != nil {
		t.Fatalf("Write: %v", err)
	}
	path, digest, err := sf.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	index, err := a.Commit(name, path, digest)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return index
}

func TestCommitAndProof(t *testing.T) {
	cfg := configtest.Default(t)
	a, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	names := []string{"a.txt", "b.txt", "c.txt"}
	for i, n := range names {
		idx := mustCommit(t, a, cfg, n, []byte("payload-"+n))
		if idx != i {
			t.Fatalf("Commit(%q) index = %d, want %d", n, idx, i)
		}
	}

	if got := a.NumEntries(); got != len(names) {
		t.Fatalf("NumEntries = %d, want %d", got, len(names))
	}
	if _, err := a.Root(); err != nil {
		t.Fatalf("Root: %v", err)
	}

	for i, n := range names {
		entry, err := a.EntryAt(i)
		if err != nil {
			t.Fatalf("EntryAt(%d): %v", i, err)
		}
		if entry.Filename != n {
			t.Fatalf("EntryAt(%d).Filename = %q, want %q", i, entry.Filename, n)
		}
		proof, err := a.ProofAt(i)
		if err != nil {
			t.Fatalf("ProofAt(%d): %v", i, err)
		}
		if !proof.Verify(entry.Digest) {
			t.Fatalf("proof(%d) failed to verify its own entry", i)
		}
	}
}

func TestOpenReloadsPersistedState(t *testing.T) {
	cfg := configtest.Default(t)
	a, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	mustCommit(t, a, cfg, "first.txt", []byte("one"))
	mustCommit(t, a, cfg, "second.txt", []byte("two"))
	wantRoot, _ := a.Root()

	reloaded, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open (reload): %v", err)
	}
	if got := reloaded.NumEntries(); got != 2 {
		t.Fatalf("reloaded NumEntries = %d, want 2", got)
	}
	gotRoot, err := reloaded.Root()
	if err != nil {
		t.Fatal(err)
	}
	if gotRoot != wantRoot {
		t.Fatalf("reloaded root = %x, want %x", gotRoot, wantRoot)
	}
	entry, err := reloaded.EntryAt(1)
	if err != nil {
		t.Fatal(err)
	}
	if entry.Filename != "second.txt" {
		t.Fatalf("reloaded entry 1 filename = %q, want %q", entry.Filename, "second.txt")
	}
}

func TestCommitRollsBackOnRenameFailure(t *testing.T) {
	cfg := configtest.Default(t)
	a, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	mustCommit(t, a, cfg, "ok.txt", []byte("ok"))
	before := a.NumEntries()
	beforeRoot, _ := a.Root()

	// A staged path that was never actually created makes os.Rename fail
	// inside Commit, exercising the rollback path.
	if _, err := a.Commit("missing.txt", cfg.FilesTmpDir()+"/does-not-exist", [32]byte{1}); err == nil {
		t.Fatal("Commit should fail when the staged file is missing")
	}

	if got := a.NumEntries(); got != before {
		t.Fatalf("NumEntries after failed commit = %d, want %d (rollback should restore it)", got, before)
	}
	afterRoot, err := a.Root()
	if err != nil {
		t.Fatal(err)
	}
	if afterRoot != beforeRoot {
		t.Fatalf("root after failed commit = %x, want unchanged %x", afterRoot, beforeRoot)
	}

	// The archive must still accept further commits at the correct index.
	idx := mustCommit(t, a, cfg, "after.txt", []byte("after"))
	if idx != before {
		t.Fatalf("index after rollback = %d, want %d", idx, before)
	}
}
