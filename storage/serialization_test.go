package storage

import (
	"testing"
	"time"

	"github.com/grayiron/foundrydocs/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalChunkRecord(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	record := &core.ChunkRecord{
		DocumentID:  "report_ab12cd34",
		Filename:    "report.pdf",
		ChunkIndex:  7,
		ContentType: "text_chunk",
		Text:        "Alloy composition per heat: 0.8% carbon, 1.2% manganese.",
		Vector:      []float32{0.1, -0.2, 0.3, 0.4},
		InsertedAt:  now,
	}

	data := MarshalChunkRecord(record)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalChunkRecord(data)
	require.NoError(t, err)

	assert.Equal(t, record.DocumentID, decoded.DocumentID)
	assert.Equal(t, record.Filename, decoded.Filename)
	assert.Equal(t, record.ChunkIndex, decoded.ChunkIndex)
	assert.Equal(t, record.Text, decoded.Text)
	assert.Equal(t, record.Vector, decoded.Vector)
	assert.True(t, record.InsertedAt.Equal(decoded.InsertedAt))
}

func TestMarshalUnmarshalChunkRecord_ZeroVector(t *testing.T) {
	// Zero-filled vectors mark embedding failures and must survive storage.
	record := &core.ChunkRecord{
		DocumentID: "doc_00000000",
		Text:       "chunk whose embedding batch failed",
		Vector:     make([]float32, 1536),
		InsertedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	decoded, err := UnmarshalChunkRecord(MarshalChunkRecord(record))
	require.NoError(t, err)
	assert.Len(t, decoded.Vector, 1536)
	for _, v := range decoded.Vector {
		assert.Zero(t, v)
	}
}

func TestMarshalUnmarshalImageRecord(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	record := &core.ImageRecord{
		DocumentID:  "report_ab12cd34",
		Index:       2,
		Description: "Image from report.pdf, page 3",
		Artifact: core.ImageArtifact{
			Filename:  "report_ab12cd34_page_3_img_1.png",
			Path:      "/data/content/report_ab12cd34/report_ab12cd34_page_3_img_1.png",
			Page:      3,
			Index:     1,
			SizeBytes: 20480,
		},
		InsertedAt: now,
	}

	decoded, err := UnmarshalImageRecord(MarshalImageRecord(record))
	require.NoError(t, err)
	assert.Equal(t, record.DocumentID, decoded.DocumentID)
	assert.Equal(t, record.Artifact, decoded.Artifact)
	assert.True(t, record.InsertedAt.Equal(decoded.InsertedAt))
}

func TestMarshalUnmarshalTableRecord(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	record := &core.TableRecord{
		DocumentID: "report_ab12cd34",
		Index:      0,
		Content:    "heat\ttemp\n1042\t1540",
		Artifact: core.TableArtifact{
			Filename: "report_ab12cd34_page_1_img_1.png",
			Page:     1,
			Index:    1,
			X:        40,
			Y:        120,
			Width:    500,
			Height:   200,
			RawText:  "heat temp\n1042 1540",
		},
		InsertedAt: now,
	}

	decoded, err := UnmarshalTableRecord(MarshalTableRecord(record))
	require.NoError(t, err)
	assert.Equal(t, record.Content, decoded.Content)
	assert.Equal(t, record.Artifact, decoded.Artifact)
}

func TestUnmarshalChunkRecord_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"partial data", []byte{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalChunkRecord(tt.data)
			assert.Error(t, err)
		})
	}
}
