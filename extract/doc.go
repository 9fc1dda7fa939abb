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

// Package extract pulls text, embedded images, and table regions out of
// PDF documents.
//
// Pages are processed in batches sized against a memory budget, with a
// forced garbage collection between batches, so peak memory is bounded
// by one batch of raster buffers no matter how long the document is.
// A page that fails leaves an inline error marker in the text and the
// run continues; extraction only fails outright when the file is
// missing, unparseable, or yields no content at all.
//
// Scanned pages have no selectable text. For those the extractor falls
// back to OCR over the page's largest embedded raster image, which for
// scans is the full-page image itself. Table detection works on the
// same raster using a coarse ink-density heuristic, capped per page.
package extract
