// Package reembed regenerates the stored vectors of ingested document
// chunks. It is the maintenance counterpart to ingestion: run it after
// switching embedding models, or to repair chunks that were stored with
// zero vectors when an embedding batch failed during ingestion.
//
// The package processes chunks document by document in batches, retries
// embedding calls with exponential backoff, normalizes vectors to unit
// length for cosine similarity, and reports progress to a writer.
package reembed
