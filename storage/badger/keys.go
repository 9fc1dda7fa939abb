package badger

import (
	"encoding/binary"

	"github.com/grayiron/foundrydocs/core"
)

// Key prefixes for the three record collections
const (
	chunkPrefix = "chkrec"
	imagePrefix = "imgrec"
	tablePrefix = "tblrec"
)

var collectionPrefixes = []string{chunkPrefix, imagePrefix, tablePrefix}

// makeRecordKey generates a collection key for one record of a document.
// Format: prefix:docID:index, with the index encoded BigEndian so
// lexicographic iteration yields records in index order.
func makeRecordKey(prefix string, docID core.DocumentID, index int) []byte {
	head := prefix + ":" + string(docID) + ":"
	buf := make([]byte, len(head)+4)
	offset := copy(buf, head)
	binary.BigEndian.PutUint32(buf[offset:], uint32(index))
	return buf
}

// makeDocumentPrefix generates the iteration prefix covering every record of
// a document within one collection.
func makeDocumentPrefix(prefix string, docID core.DocumentID) []byte {
	return []byte(prefix + ":" + string(docID) + ":")
}

// makeCollectionPrefix generates the iteration prefix covering a whole
// collection.
func makeCollectionPrefix(prefix string) []byte {
	return []byte(prefix + ":")
}

// recordIndex decodes the index suffix of a collection key.
func recordIndex(key []byte) int {
	if len(key) < 4 {
		return 0
	}
	return int(binary.BigEndian.Uint32(key[len(key)-4:]))
}

// documentIDFromKey extracts the document ID between the collection prefix
// and the index suffix. Returns "" for malformed keys.
func documentIDFromKey(prefix string, key []byte) core.DocumentID {
	head := len(prefix) + 1
	if len(key) < head+1+4 {
		return ""
	}
	return core.DocumentID(key[head : len(key)-5])
}
