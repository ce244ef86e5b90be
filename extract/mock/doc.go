// Package mock provides test doubles for the extract interfaces.
//
// The mocks return canned content by default and support behavior injection
// through exported function fields, mirroring the ai/mock package.
package mock
