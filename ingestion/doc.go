// Copyright 2025 Poiesic Systems
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


// Package ingestion turns URLs and local files into stored article
// summaries. The Resolver extracts readable text from web pages, PDFs
// and plain text files; the Guard skips sources that were already
// processed; the Pipeline wires both to the summarizer and the article
// store and reports per-item outcomes.
package ingestion
