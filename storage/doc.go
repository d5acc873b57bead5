// Package storage defines the persistence gateway for summarized
// articles.
//
// The external store owns its schema and CRUD semantics; this package
// only specifies the interface boundary the pipeline depends on:
// adding a record, checking URL existence, and searching by title or
// tag.
//
// # Implementation Packages
//
//   - storage/notion: production implementation against a Notion database
//   - storage/mock: in-memory test double
package storage
