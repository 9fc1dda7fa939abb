package core

import "fmt"

// Deterministic record identifiers. A document's stored entries are fully
// enumerable from its DocumentID alone, which is what makes deletion and
// re-embedding possible without a secondary index.

// ChunkID returns the record identifier for the i-th text chunk of a document.
func ChunkID(docID DocumentID, i int) string {
	return fmt.Sprintf("%s_text_chunk_%d", docID, i)
}

// ImageID returns the record identifier for the i-th image of a document.
func ImageID(docID DocumentID, i int) string {
	return fmt.Sprintf("%s_image_%d", docID, i)
}

// TableID returns the record identifier for the i-th table of a document.
func TableID(docID DocumentID, i int) string {
	return fmt.Sprintf("%s_table_%d", docID, i)
}

// ArtifactFilename returns the on-disk filename for an extracted page image.
func ArtifactFilename(docID DocumentID, page, index int, ext string) string {
	return fmt.Sprintf("%s_page_%d_img_%d.%s", docID, page, index, ext)
}

// TableFilename returns the on-disk filename for a detected table region.
// Table crops are always re-encoded as PNG.
func TableFilename(docID DocumentID, page, index int) string {
	return fmt.Sprintf("%s_page_%d_table_%d.png", docID, page, index)
}
