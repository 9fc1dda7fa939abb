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

// Package ocr defines the text recognition interface used to read scanned
// pages and table regions inside ingested documents.
//
// The package follows an interface-based design:
//
//   - Engine: text recognition for raster images
//
// Implementations:
//
//   - ocr/tesseract: Tesseract backend with Korean and English models
//   - ocr/mock: function-field mock for testing
//
// Korean foundry manuals are frequently scanned rather than born digital,
// so recognition quality drives the quality of everything downstream.
// Engines are configured with both Korean and English language models
// because the documents mix Hangul terminology with English unit notation
// and part numbers.
package ocr
