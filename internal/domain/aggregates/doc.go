// Package aggregates defines domain-facing aggregate contracts.
//
// Contracts here avoid persistence and transport detail; each one names
// a semantic write boundary where cross-row invariants (tenant
// isolation, exactly-one-of references, ordering uniqueness) must hold
// atomically.
package aggregates
