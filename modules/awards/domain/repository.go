package domain

import (
	"context"
	"strconv"

	"github.com/go-faster/errors"

	"github.com/fedspend/awards-api/pkg/projection"
)

var ErrAwardNotFound = errors.New("award not found")

// Identifier selects exactly one award: either the internal numeric id or
// the generated unique award id. An all-digit request string is treated as
// the internal id.
type Identifier struct {
	ID                     *int64
	GeneratedUniqueAwardID *string
}

func ParseIdentifier(raw string) Identifier {
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return Identifier{ID: &id}
	}
	return Identifier{GeneratedUniqueAwardID: &raw}
}

func (i Identifier) String() string {
	if i.ID != nil {
		return strconv.FormatInt(*i.ID, 10)
	}
	if i.GeneratedUniqueAwardID != nil {
		return *i.GeneratedUniqueAwardID
	}
	return ""
}

// ParentState distinguishes the three outcomes of chasing a parent link.
type ParentState int

const (
	// ParentNone: no link row, the award has no parent.
	ParentNone ParentState = iota
	// ParentFound: link and parent award both resolved.
	ParentFound
	// ParentDangling: the link row exists but the parent award row does not.
	// The link ids are still reported; the summary fields stay null.
	ParentDangling
)

// ParentLookup is the result of the two-step parent-award resolution.
type ParentLookup struct {
	State                  ParentState
	AwardID                int64
	GeneratedUniqueAwardID string
	Summary                *ParentAwardSummary
}

// AwardVariantRow is the minimal projection used to dispatch a request to
// its variant-specific assembler.
type AwardVariantRow struct {
	Category *string
	Type     *string
}

// Repository reads award rows projected through the variant field
// catalogues. Every fetch returns the first matching row; identifiers are
// expected to be unique and a near-duplicate silently yields an arbitrary
// match. Award fetches return ErrAwardNotFound when no row matches.
type Repository interface {
	// FetchVariant resolves just enough of the award to pick an assembler.
	FetchVariant(ctx context.Context, ident Identifier) (*AwardVariantRow, error)
	FetchAssistanceAward(ctx context.Context, ident Identifier) (projection.Row, error)
	FetchContractAward(ctx context.Context, ident Identifier) (projection.Row, error)
	// FetchAssistanceTransaction reads the FABS transaction backing the award.
	FetchAssistanceTransaction(ctx context.Context, transactionID int64) (projection.Row, error)
	// FetchContractTransaction reads the FPDS transaction backing the award.
	FetchContractTransaction(ctx context.Context, transactionID int64) (projection.Row, error)
	// FetchIDVTransaction reads the FPDS transaction with the ordering-period
	// date fields regrouped for the IDV variant.
	FetchIDVTransaction(ctx context.Context, transactionID int64) (projection.Row, error)
	// FetchParentAward follows the parent-link table for an IDV.
	FetchParentAward(ctx context.Context, generatedUniqueAwardID string) (*ParentLookup, error)
}
