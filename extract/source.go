package extract

// pageImage is a raster image embedded in a document page, already
// decoded from the document's object model but still in its encoded
// file form (PNG, JPEG, TIFF).
type pageImage struct {
	Name     string
	FileType string
	Data     []byte
}

// pageSource provides page-wise access to an opened document. It hides
// the PDF object model so batching, error recovery, and artifact
// handling can be tested against a fake.
type pageSource interface {
	// PageCount returns the number of pages in the document.
	PageCount() int

	// PageText returns the selectable text of a page, already
	// whitespace-normalized. Empty string means the page has no
	// selectable text (typical for scanned pages).
	PageText(pageNr int) (string, error)

	// PageImages returns the raster images embedded in a page.
	PageImages(pageNr int) ([]pageImage, error)

	// Close releases the underlying file handle.
	Close() error
}

// sourceOpener opens a document at a filesystem path.
type sourceOpener func(path string) (pageSource, error)
