package persistence

import (
	"context"
	stderrors "errors"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/fedspend/awards-api/modules/recipient/domain"
	"github.com/fedspend/awards-api/pkg/composables"
)

const lookupFindQuery = `SELECT recipient_hash FROM recipient_lookup WHERE duns = $1`

type LookupRepository struct{}

func NewLookupRepository() domain.LookupRepository {
	return &LookupRepository{}
}

func (r *LookupRepository) FetchHashByDUNS(ctx context.Context, duns string) (*string, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	var hash string
	err = tx.QueryRow(ctx, lookupFindQuery, duns).Scan(&hash)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to fetch recipient hash")
	}
	return &hash, nil
}
