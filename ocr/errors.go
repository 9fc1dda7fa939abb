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

package ocr

import "errors"

var (
	// ErrEngineClosed indicates recognition was attempted after Close.
	ErrEngineClosed = errors.New("ocr engine is closed")

	// ErrEmptyImage indicates the provided image data was empty.
	ErrEmptyImage = errors.New("empty image data")

	// ErrRecognitionFailed indicates the backend could not process the image.
	ErrRecognitionFailed = errors.New("recognition failed")
)
