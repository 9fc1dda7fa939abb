package ingestion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grayiron/foundrydocs/core"
)

func TestTrackerSetAndGet(t *testing.T) {
	tr := NewTracker(time.Hour, time.Hour)
	defer tr.Close()

	tr.Set("doc_1", core.ProgressRecord{Stage: core.StageAnalyzing, Percent: 5, Message: "analyzing"})

	record, ok := tr.Get("doc_1")
	require.True(t, ok)
	assert.Equal(t, core.StageAnalyzing, record.Stage)
	assert.Equal(t, 5, record.Percent)
	assert.False(t, record.Timestamp.IsZero())

	_, ok = tr.Get("unknown")
	assert.False(t, ok)
}

func TestTrackerMonotonicPercent(t *testing.T) {
	tr := NewTracker(time.Hour, time.Hour)
	defer tr.Close()

	tr.Set("doc_1", core.ProgressRecord{Stage: core.StageEmbedding, Percent: 70})
	tr.Set("doc_1", core.ProgressRecord{Stage: core.StageEmbedding, Percent: 65})

	record, _ := tr.Get("doc_1")
	assert.Equal(t, 70, record.Percent, "percent must not move backwards mid-job")
}

func TestTrackerRestartAllowsLowerPercent(t *testing.T) {
	tr := NewTracker(time.Hour, time.Hour)
	defer tr.Close()

	tr.Set("doc_1", core.ProgressRecord{Stage: core.StageStoring, Percent: 80})
	tr.Set("doc_1", core.ProgressRecord{Stage: core.StageQueued, Percent: 0})

	record, _ := tr.Get("doc_1")
	assert.Equal(t, core.StageQueued, record.Stage)
	assert.Equal(t, 0, record.Percent)
}

func TestTrackerErrorKeepsReportedPercent(t *testing.T) {
	tr := NewTracker(time.Hour, time.Hour)
	defer tr.Close()

	tr.Set("doc_1", core.ProgressRecord{Stage: core.StageEmbedding, Percent: 70})
	tr.Set("doc_1", core.ProgressRecord{Stage: core.StageError, Percent: 70, Message: "boom"})

	record, _ := tr.Get("doc_1")
	assert.Equal(t, core.StageError, record.Stage)
	assert.Equal(t, 70, record.Percent)
}

func TestTrackerCompletedEviction(t *testing.T) {
	tr := NewTracker(50*time.Millisecond, time.Hour)
	defer tr.Close()

	tr.Set("doc_1", core.ProgressRecord{Stage: core.StageCompleted, Percent: 100})

	_, ok := tr.Get("doc_1")
	require.True(t, ok, "completed record visible before TTL")

	assert.Eventually(t, func() bool {
		_, ok := tr.Get("doc_1")
		return !ok
	}, time.Second, 10*time.Millisecond, "completed record should evict after TTL")
}

func TestTrackerDeleteCancelsEviction(t *testing.T) {
	tr := NewTracker(50*time.Millisecond, time.Hour)
	defer tr.Close()

	tr.Set("doc_1", core.ProgressRecord{Stage: core.StageCompleted, Percent: 100})
	tr.Delete("doc_1")

	_, ok := tr.Get("doc_1")
	assert.False(t, ok)

	// The cancelled timer must not touch a later record under the same key.
	tr.Set("doc_1", core.ProgressRecord{Stage: core.StagePreparing})
	time.Sleep(120 * time.Millisecond)

	record, ok := tr.Get("doc_1")
	require.True(t, ok)
	assert.Equal(t, core.StagePreparing, record.Stage)
}

func TestTrackerOverwriteCancelsEviction(t *testing.T) {
	tr := NewTracker(50*time.Millisecond, time.Hour)
	defer tr.Close()

	tr.Set("doc_1", core.ProgressRecord{Stage: core.StageCompleted, Percent: 100})
	tr.Set("doc_1", core.ProgressRecord{Stage: core.StageQueued})

	time.Sleep(120 * time.Millisecond)

	record, ok := tr.Get("doc_1")
	require.True(t, ok, "re-queued record must not be evicted by the stale timer")
	assert.Equal(t, core.StageQueued, record.Stage)
}

func TestTrackerCounts(t *testing.T) {
	tr := NewTracker(time.Hour, time.Hour)
	defer tr.Close()

	tr.Set("running_1", core.ProgressRecord{Stage: core.StageEmbedding, Percent: 65})
	tr.Set("running_2", core.ProgressRecord{Stage: core.StageOCR, Percent: 20})
	tr.Set("waiting", core.ProgressRecord{Stage: core.StageQueued})
	tr.Set("done", core.ProgressRecord{Stage: core.StageCompleted, Percent: 100})
	tr.Set("dead", core.ProgressRecord{Stage: core.StageError, Percent: 40})

	active, queued := tr.Counts()
	assert.Equal(t, 2, active)
	assert.Equal(t, 1, queued)
}

func TestTrackerSweepStale(t *testing.T) {
	tr := NewTracker(time.Hour, time.Hour)
	defer tr.Close()

	old := time.Now().UTC().Add(-2 * time.Hour)
	tr.Set("stale_error", core.ProgressRecord{Stage: core.StageError, Percent: 30, Timestamp: old})
	tr.Set("stale_abandoned", core.ProgressRecord{Stage: core.StageEmbedding, Percent: 65, Timestamp: old})
	tr.Set("fresh", core.ProgressRecord{Stage: core.StageError, Percent: 10})

	removed := tr.SweepStale()
	assert.Equal(t, 2, removed)

	_, ok := tr.Get("stale_error")
	assert.False(t, ok)
	_, ok = tr.Get("fresh")
	assert.True(t, ok, "recent error record survives the sweep")
}
