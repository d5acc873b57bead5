// Package mock provides a test double for the summarize.Provider
// interface.
//
// The mock allows tests to run without external LLM services. Behavior
// is injected through the GenerateFunc field; by default Generate
// returns a canned record that parses against the summary schema.
// Every prompt is recorded in call order for assertions about chunking
// and fallback behavior.
package mock
