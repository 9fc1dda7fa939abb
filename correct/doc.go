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

// Package correct cleans OCR noise out of extracted document text.
//
// Correction is an ordered chain of strategies. Each strategy receives
// the output of the previous one and either produces improved text or
// fails, in which case its input passes through unchanged. The pattern
// strategy (terminology dictionary plus character-confusion rules) is
// always present and cannot fail; the LLM strategy is optional, splits
// the text into sentence-bounded batches, and degrades per batch rather
// than aborting. Correction therefore never makes text worse than what
// the pattern pass produced, and never returns an error to the caller.
package correct
