// Package httpserver exposes feed management and URL submission over HTTP.
//
// Submission is fire-and-forget: POST /feeds/{slug}/posts schedules the
// ingestion pipeline and answers 201 before any fetching or derivation has
// happened. Callers observe the outcome by listing the feed's posts later.
//
// User identity arrives in the X-User-ID header; the upstream session layer
// that would normally populate it is outside this package.
package httpserver
