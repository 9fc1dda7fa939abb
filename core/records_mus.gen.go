// Code generated by musgen-go. DO NOT EDIT.

package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

var (
	sliceWOXZ0MRj5ycJOUYtX6BWVAΞΞ = ord.NewSliceSer[float32](varint.Float32)
)

var ImageArtifactMUS = imageArtifactMUS{}

type imageArtifactMUS struct{}

func (s imageArtifactMUS) Marshal(v ImageArtifact, bs []byte) (n int) {
	n = ord.String.Marshal(v.Filename, bs)
	n += ord.String.Marshal(v.Path, bs[n:])
	n += varint.Int.Marshal(v.Page, bs[n:])
	n += varint.Int.Marshal(v.Index, bs[n:])
	return n + varint.Int64.Marshal(v.SizeBytes, bs[n:])
}

func (s imageArtifactMUS) Unmarshal(bs []byte) (v ImageArtifact, n int, err error) {
	v.Filename, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Path, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Page, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Index, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SizeBytes, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	return
}

func (s imageArtifactMUS) Size(v ImageArtifact) (size int) {
	size = ord.String.Size(v.Filename)
	size += ord.String.Size(v.Path)
	size += varint.Int.Size(v.Page)
	size += varint.Int.Size(v.Index)
	return size + varint.Int64.Size(v.SizeBytes)
}

func (s imageArtifactMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int64.Skip(bs[n:])
	n += n1
	return
}

var TableArtifactMUS = tableArtifactMUS{}

type tableArtifactMUS struct{}

func (s tableArtifactMUS) Marshal(v TableArtifact, bs []byte) (n int) {
	n = ord.String.Marshal(v.Filename, bs)
	n += ord.String.Marshal(v.Path, bs[n:])
	n += varint.Int.Marshal(v.Page, bs[n:])
	n += varint.Int.Marshal(v.Index, bs[n:])
	n += varint.Int.Marshal(v.X, bs[n:])
	n += varint.Int.Marshal(v.Y, bs[n:])
	n += varint.Int.Marshal(v.Width, bs[n:])
	n += varint.Int.Marshal(v.Height, bs[n:])
	n += ord.String.Marshal(v.RawText, bs[n:])
	return n + varint.Int64.Marshal(v.SizeBytes, bs[n:])
}

func (s tableArtifactMUS) Unmarshal(bs []byte) (v TableArtifact, n int, err error) {
	v.Filename, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Path, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Page, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Index, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.X, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Y, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Width, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Height, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.RawText, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SizeBytes, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	return
}

func (s tableArtifactMUS) Size(v TableArtifact) (size int) {
	size = ord.String.Size(v.Filename)
	size += ord.String.Size(v.Path)
	size += varint.Int.Size(v.Page)
	size += varint.Int.Size(v.Index)
	size += varint.Int.Size(v.X)
	size += varint.Int.Size(v.Y)
	size += varint.Int.Size(v.Width)
	size += varint.Int.Size(v.Height)
	size += ord.String.Size(v.RawText)
	return size + varint.Int64.Size(v.SizeBytes)
}

func (s tableArtifactMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int64.Skip(bs[n:])
	n += n1
	return
}

var ChunkRecordMUS = chunkRecordMUS{}

type chunkRecordMUS struct{}

func (s chunkRecordMUS) Marshal(v ChunkRecord, bs []byte) (n int) {
	n = ord.String.Marshal(v.DocumentID, bs)
	n += ord.String.Marshal(v.Filename, bs[n:])
	n += varint.Int.Marshal(v.ChunkIndex, bs[n:])
	n += ord.String.Marshal(v.ContentType, bs[n:])
	n += ord.String.Marshal(v.Text, bs[n:])
	n += sliceWOXZ0MRj5ycJOUYtX6BWVAΞΞ.Marshal(v.Vector, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.InsertedAt, bs[n:])
}

func (s chunkRecordMUS) Unmarshal(bs []byte) (v ChunkRecord, n int, err error) {
	v.DocumentID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Filename, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ChunkIndex, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ContentType, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Vector, n1, err = sliceWOXZ0MRj5ycJOUYtX6BWVAΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s chunkRecordMUS) Size(v ChunkRecord) (size int) {
	size = ord.String.Size(v.DocumentID)
	size += ord.String.Size(v.Filename)
	size += varint.Int.Size(v.ChunkIndex)
	size += ord.String.Size(v.ContentType)
	size += ord.String.Size(v.Text)
	size += sliceWOXZ0MRj5ycJOUYtX6BWVAΞΞ.Size(v.Vector)
	return size + raw.TimeUnixMicro.Size(v.InsertedAt)
}

func (s chunkRecordMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceWOXZ0MRj5ycJOUYtX6BWVAΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

var ImageRecordMUS = imageRecordMUS{}

type imageRecordMUS struct{}

func (s imageRecordMUS) Marshal(v ImageRecord, bs []byte) (n int) {
	n = ord.String.Marshal(v.DocumentID, bs)
	n += varint.Int.Marshal(v.Index, bs[n:])
	n += ord.String.Marshal(v.Description, bs[n:])
	n += ImageArtifactMUS.Marshal(v.Artifact, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.InsertedAt, bs[n:])
}

func (s imageRecordMUS) Unmarshal(bs []byte) (v ImageRecord, n int, err error) {
	v.DocumentID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Index, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Description, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Artifact, n1, err = ImageArtifactMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s imageRecordMUS) Size(v ImageRecord) (size int) {
	size = ord.String.Size(v.DocumentID)
	size += varint.Int.Size(v.Index)
	size += ord.String.Size(v.Description)
	size += ImageArtifactMUS.Size(v.Artifact)
	return size + raw.TimeUnixMicro.Size(v.InsertedAt)
}

func (s imageRecordMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ImageArtifactMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

var TableRecordMUS = tableRecordMUS{}

type tableRecordMUS struct{}

func (s tableRecordMUS) Marshal(v TableRecord, bs []byte) (n int) {
	n = ord.String.Marshal(v.DocumentID, bs)
	n += varint.Int.Marshal(v.Index, bs[n:])
	n += ord.String.Marshal(v.Content, bs[n:])
	n += TableArtifactMUS.Marshal(v.Artifact, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.InsertedAt, bs[n:])
}

func (s tableRecordMUS) Unmarshal(bs []byte) (v TableRecord, n int, err error) {
	v.DocumentID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Index, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Content, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Artifact, n1, err = TableArtifactMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s tableRecordMUS) Size(v TableRecord) (size int) {
	size = ord.String.Size(v.DocumentID)
	size += varint.Int.Size(v.Index)
	size += ord.String.Size(v.Content)
	size += TableArtifactMUS.Size(v.Artifact)
	return size + raw.TimeUnixMicro.Size(v.InsertedAt)
}

func (s tableRecordMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = TableArtifactMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}
