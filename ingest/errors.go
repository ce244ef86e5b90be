package ingest

import "errors"

var (
	// ErrPostRepositoryRequired is returned when a post repository is not provided.
	ErrPostRepositoryRequired = errors.New("post repository required")

	// ErrFeedRepositoryRequired is returned when a feed repository is not provided.
	ErrFeedRepositoryRequired = errors.New("feed repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrArticleExtractorRequired is returned when an article extractor is not provided.
	ErrArticleExtractorRequired = errors.New("article extractor required")

	// ErrVideoExtractorRequired is returned when a video extractor is not provided.
	ErrVideoExtractorRequired = errors.New("video extractor required")

	// ErrFeedParserRequired is returned when a feed parser is not provided.
	ErrFeedParserRequired = errors.New("feed parser required")

	// ErrSummaryFailed indicates summary generation exhausted its retry budget.
	ErrSummaryFailed = errors.New("summary generation failed")

	// ErrEmbeddingFailed indicates the embedding call failed.
	ErrEmbeddingFailed = errors.New("embedding generation failed")

	// ErrDerivationFailed indicates the derivation stage failed because the
	// summary or the embedding could not be produced.
	ErrDerivationFailed = errors.New("derivation failed")

	// ErrInvalidMaxAttempts is returned when retry is configured with a
	// non-positive attempt budget.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be > 0")
)
