// Package ingestion orchestrates asynchronous document processing.
//
// The Service type is the scheduler: it admits up to a configured
// number of document jobs at once, queues the rest in submission order,
// and drives each admitted job through the pipeline:
//
//	extraction -> correction -> chunking -> embedding -> storage
//
// Progress for every job is observable through per-document status
// records with stage, percent, and stage-specific details. Percent is
// monotonic for a live job; Completed records evict themselves after a
// short delay, Error records persist until the stale sweep.
//
// A failing job is compensated, not abandoned: its uploaded file,
// extracted artifacts, and any partially stored records are removed,
// leaving only the terminal Error status behind.
package ingestion
