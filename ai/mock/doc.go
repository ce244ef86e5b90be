// Package mock provides test doubles for the ai interfaces.
//
// The mocks produce deterministic output by default: embeddings are derived
// from an FNV hash of the input text, summaries echo the first sentence.
// Tests can inject custom behavior through the exported function fields and
// assert on call counts.
package mock
