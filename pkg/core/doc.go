// Package core defines the shared language of the contacts system.
//
// This package contains:
//   - Domain entities (Contact, ContactUpdate, SearchTerm)
//   - Service interfaces (ContactStore)
//   - The error taxonomy (ErrBackendUnavailable, ErrStaleNavigation, ErrNotFound)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
