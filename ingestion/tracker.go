// Copyright 2026 Gray Iron Labs
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

package ingestion

import (
	"log/slog"
	"sync"
	"time"

	"github.com/grayiron/foundrydocs/core"
)

// Tracker holds the progress record for every known document job.
// Records are replaced wholesale under the lock, so a concurrent poller
// always reads a complete snapshot, never a half-updated one.
//
// Completed records evict themselves after a delay through a per-key
// timer that an explicit Delete cancels. Error records have no timer;
// they stay visible until the stale sweep claims them, so a client that
// polls infrequently still sees what went wrong.
type Tracker struct {
	mu           sync.Mutex
	records      map[core.DocumentID]*trackedRecord
	completedTTL time.Duration
	staleAfter   time.Duration
	logger       *slog.Logger
}

type trackedRecord struct {
	record core.ProgressRecord
	evict  *time.Timer
}

// NewTracker creates a progress tracker.
func NewTracker(completedTTL, staleAfter time.Duration) *Tracker {
	return &Tracker{
		records:      make(map[core.DocumentID]*trackedRecord),
		completedTTL: completedTTL,
		staleAfter:   staleAfter,
		logger:       slog.Default().With("component", "progress-tracker"),
	}
}

// restartStages may legitimately lower the percent: they open a new
// attempt for the document.
func restartStage(s core.Stage) bool {
	return s == core.StageQueued || s == core.StagePreparing || s == core.StageStarting
}

// Set replaces the record for docID. Percent never moves backwards
// within an attempt: a lower value on a non-restart, non-error stage is
// lifted to the previous percent.
func (t *Tracker) Set(docID core.DocumentID, record core.ProgressRecord) {
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	existing, ok := t.records[docID]
	if ok {
		if existing.evict != nil {
			existing.evict.Stop()
			existing.evict = nil
		}
		if record.Percent < existing.record.Percent &&
			record.Stage != core.StageError && !restartStage(record.Stage) {
			record.Percent = existing.record.Percent
		}
	} else {
		existing = &trackedRecord{}
		t.records[docID] = existing
	}

	existing.record = record

	if record.Stage == core.StageCompleted {
		existing.evict = time.AfterFunc(t.completedTTL, func() {
			t.evictCompleted(docID)
		})
	}
}

// evictCompleted removes a record when its eviction timer fires, unless
// the record was replaced in the meantime.
func (t *Tracker) evictCompleted(docID core.DocumentID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	tracked, ok := t.records[docID]
	if !ok || tracked.record.Stage != core.StageCompleted {
		return
	}
	delete(t.records, docID)
	t.logger.Debug("completed record evicted", "document_id", docID)
}

// Get returns the current record for docID.
func (t *Tracker) Get(docID core.DocumentID) (core.ProgressRecord, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	tracked, ok := t.records[docID]
	if !ok {
		return core.ProgressRecord{}, false
	}
	return tracked.record, true
}

// Delete removes a record immediately, cancelling any pending eviction.
func (t *Tracker) Delete(docID core.DocumentID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if tracked, ok := t.records[docID]; ok {
		if tracked.evict != nil {
			tracked.evict.Stop()
		}
		delete(t.records, docID)
	}
}

// Counts reports how many jobs are actively running and how many are
// waiting for admission.
func (t *Tracker) Counts() (active, queued int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, tracked := range t.records {
		switch {
		case tracked.record.Stage == core.StageQueued:
			queued++
		case tracked.record.Stage.Active():
			active++
		}
	}
	return active, queued
}

// SweepStale removes records older than the stale age and returns how
// many were dropped. Terminal and abandoned records alike are eligible:
// anything untouched for that long no longer describes a live job.
func (t *Tracker) SweepStale() int {
	cutoff := time.Now().UTC().Add(-t.staleAfter)

	t.mu.Lock()
	defer t.mu.Unlock()

	removed := 0
	for docID, tracked := range t.records {
		if tracked.record.Timestamp.After(cutoff) {
			continue
		}
		if tracked.evict != nil {
			tracked.evict.Stop()
		}
		delete(t.records, docID)
		removed++
	}

	if removed > 0 {
		t.logger.Info("stale progress records swept", "removed", removed)
	}
	return removed
}

// Close stops all eviction timers. Records remain readable.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, tracked := range t.records {
		if tracked.evict != nil {
			tracked.evict.Stop()
			tracked.evict = nil
		}
	}
}
