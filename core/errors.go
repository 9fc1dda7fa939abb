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

import "errors"

// Domain validation errors
var (
	// ErrFileMissing indicates the source file does not exist on disk.
	ErrFileMissing = errors.New("source file missing")

	// ErrOpenFailure indicates the source file exists but could not be parsed.
	ErrOpenFailure = errors.New("document open failure")

	// ErrEmptyExtraction indicates extraction produced no text, images, or tables.
	ErrEmptyExtraction = errors.New("no extractable content")

	// ErrUnsupportedFormat indicates the uploaded file is not a supported document type.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrEmptyDocumentID indicates a document identifier was empty.
	ErrEmptyDocumentID = errors.New("document id cannot be empty")

	// ErrInvalidChunk indicates a chunk record failed validation.
	ErrInvalidChunk = errors.New("invalid chunk record")

	// ErrEmptyChunkText indicates a chunk's text was empty.
	ErrEmptyChunkText = errors.New("chunk text cannot be empty")

	// ErrNegativeIndex indicates an artifact or chunk index was negative.
	ErrNegativeIndex = errors.New("index cannot be negative")

	// ErrUnknownStage indicates a Stage value outside the defined range.
	ErrUnknownStage = errors.New("unknown stage")
)
