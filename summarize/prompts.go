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


package summarize

import "fmt"

// SystemPrompt instructs every backend to act as the article organizer
// and to return nothing but the record schema. Shared across providers;
// each vendor package decides where the system text goes in its API.
const SystemPrompt = `You are an assistant that organizes learning articles.
Given a title, url and article_text, return ONLY the JSON below.

Rules:
- summary: 3-5 concrete sentences
- key_insights: 3-5 bullets separated by newlines, each line starting with '- '
- tags: array of 3-6 technical tags
- source: publishing domain or outlet (e.g. arXiv, Medium, GitHub Blog)
- title: improve a weak input title, at most 60 characters

Output exactly this JSON schema and nothing else:
{
  "title": "...",
  "summary": "...",
  "key_insights": "- ...\n- ...",
  "tags": ["...", "..."],
  "source": "..."
}`

// summaryPrompt builds the single-call prompt for content that fits in
// one chunk.
func summaryPrompt(title, url, text string) string {
	return fmt.Sprintf("title: %s\nurl: %s\narticle_text:\n%s", title, url, text)
}

const mapPromptTemplate = `Below is one chunk of a larger document. Produce JSON for this chunk only,
without assuming anything about the other chunks.

chunk_index: %d/%d
chunk_text:
%s

Output exactly this JSON and nothing else:
{
  "chunk_summary": "2-4 sentences",
  "key_points": ["key point 1", "key point 2", "key point 3"],
  "tags": ["tag1", "tag2", "tag3"],
  "source_hint": "inferred source, or an empty string"
}`

// mapPrompt builds the chunk-scoped prompt for map call index of total.
func mapPrompt(chunk string, index, total int) string {
	return fmt.Sprintf(mapPromptTemplate, index, total, chunk)
}

const reducePromptTemplate = `Below are per-chunk summary results for one document, in original order.
Consolidate them into a single final record.

%s

Output exactly this JSON schema and nothing else:
{
  "title": "...",
  "summary": "...",
  "key_insights": "- ...\n- ...",
  "tags": ["...", "..."],
  "source": "..."
}`

// reducePrompt wraps the marshalled chunk payload for the reduce call.
func reducePrompt(payload string) string {
	return fmt.Sprintf(reducePromptTemplate, payload)
}
