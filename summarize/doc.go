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


// Package summarize turns source content into validated structured
// records by driving a chain of interchangeable LLM backends.
//
// The package is designed around a single-capability interface:
//
//   - Provider: one backend, one Generate(prompt) call
//
// On top of it sit three cooperating pieces:
//
//   - Chain: an ordered provider list tried in sequence. Each call runs
//     under a retry policy for rate-limit signals and a per-call
//     timeout; a provider that still fails is recorded and the next one
//     is tried. Chain exhaustion surfaces as AllProvidersFailedError.
//   - Summarizer: direct single-call summarization for content that
//     fits in one chunk, map/reduce decomposition for longer content.
//     Map calls are independent per chunk; the reduce call receives the
//     chunk results in original order. One failed map call fails the
//     whole item.
//   - ParseRecord/ParseChunk: schema validation of raw backend output,
//     including markdown fence stripping and JSON repair.
//
// # Implementation Packages
//
//   - summarize/gemini: Google Gemini via langchaingo
//   - summarize/openai: OpenAI via langchaingo
//   - summarize/anthropic: Anthropic via langchaingo
//   - summarize/mock: test doubles
//
// Backend constructors return concrete types; BuildChain assembles them
// behind the Provider interface, dropping backends without credentials
// from auto chains (a warning, not an error, unless the chain empties).
package summarize
