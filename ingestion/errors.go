package ingestion

import "errors"

var (
	// ErrNoContent indicates a source yielded no usable text.
	ErrNoContent = errors.New("no content extracted")

	// ErrContentTooShort indicates extracted text is below the minimum length.
	ErrContentTooShort = errors.New("content below minimum length")

	// ErrEmptyPDF indicates a PDF produced no text across all pages.
	ErrEmptyPDF = errors.New("pdf contains no extractable text")

	// ErrUnsupportedFile indicates a file extension the resolver does not handle.
	ErrUnsupportedFile = errors.New("unsupported file type")

	// ErrResolverRequired indicates the pipeline was built without a resolver.
	ErrResolverRequired = errors.New("resolver is required")

	// ErrGuardRequired indicates the pipeline was built without a dedup guard.
	ErrGuardRequired = errors.New("dedup guard is required")

	// ErrSummarizerRequired indicates the pipeline was built without a summarizer.
	ErrSummarizerRequired = errors.New("summarizer is required")

	// ErrStoreRequired indicates the pipeline was built without an article store.
	ErrStoreRequired = errors.New("article store is required")
)
