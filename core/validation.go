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


package core

import (
	"fmt"
	"strings"
)

// ValidateChunkRecord validates a ChunkRecord according to domain rules.
//
// Validation rules:
//   - DocumentID must not be empty
//   - Text must not be empty or whitespace-only
//   - ChunkIndex must not be negative
//
// NOT validated (populated by processors):
//   - Vector (zero-length or zero-filled vectors are legal failure markers)
//   - InsertedAt (set by the store at write time)
func ValidateChunkRecord(record *ChunkRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidChunk)
	}

	if record.DocumentID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyDocumentID)
	}

	if strings.TrimSpace(record.Text) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyChunkText)
	}

	if record.ChunkIndex < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrNegativeIndex)
	}

	return nil
}

// ValidateStage validates that a Stage has a defined value.
func ValidateStage(stage Stage) error {
	if _, ok := stageNames[stage]; !ok {
		return fmt.Errorf("%w: value %d", ErrUnknownStage, stage)
	}
	return nil
}

// ValidateDocumentID validates a document identifier.
func ValidateDocumentID(id DocumentID) error {
	if id == "" {
		return ErrEmptyDocumentID
	}
	if sanitizeKey(string(id)) != string(id) {
		return fmt.Errorf("document id %q contains unsafe characters", id)
	}
	return nil
}
