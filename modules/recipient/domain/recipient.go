package domain

import "context"

// LookupRepository reads the precomputed DUNS → recipient hash mapping.
// The table is not guaranteed to contain every recipient.
type LookupRepository interface {
	// FetchHashByDUNS returns nil without error when no row exists.
	FetchHashByDUNS(ctx context.Context, duns string) (*string, error)
}
