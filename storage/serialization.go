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


package storage

import (
	"github.com/grayiron/foundrydocs/core"
)

// MarshalChunkRecord serializes a ChunkRecord to bytes.
func MarshalChunkRecord(record *core.ChunkRecord) []byte {
	buf := make([]byte, core.ChunkRecordMUS.Size(*record))
	core.ChunkRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalChunkRecord deserializes a ChunkRecord from bytes.
func UnmarshalChunkRecord(data []byte) (*core.ChunkRecord, error) {
	record, _, err := core.ChunkRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarshalImageRecord serializes an ImageRecord to bytes.
func MarshalImageRecord(record *core.ImageRecord) []byte {
	buf := make([]byte, core.ImageRecordMUS.Size(*record))
	core.ImageRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalImageRecord deserializes an ImageRecord from bytes.
func UnmarshalImageRecord(data []byte) (*core.ImageRecord, error) {
	record, _, err := core.ImageRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarshalTableRecord serializes a TableRecord to bytes.
func MarshalTableRecord(record *core.TableRecord) []byte {
	buf := make([]byte, core.TableRecordMUS.Size(*record))
	core.TableRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalTableRecord deserializes a TableRecord from bytes.
func UnmarshalTableRecord(data []byte) (*core.TableRecord, error) {
	record, _, err := core.TableRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}
