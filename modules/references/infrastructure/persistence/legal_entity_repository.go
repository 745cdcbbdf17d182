package persistence

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/fedspend/awards-api/modules/references/domain"
	"github.com/fedspend/awards-api/pkg/composables"
	"github.com/fedspend/awards-api/pkg/mapping"
)

const (
	businessCategoriesQuery = `SELECT business_categories FROM legal_entity WHERE legal_entity_id = $1`

	officersQuery = `
	SELECT
		officer_1_name, officer_1_amount,
		officer_2_name, officer_2_amount,
		officer_3_name, officer_3_amount,
		officer_4_name, officer_4_amount,
		officer_5_name, officer_5_amount
	FROM legal_entity_officers
	WHERE legal_entity_id = $1`
)

type LegalEntityRepository struct{}

func NewLegalEntityRepository() domain.LegalEntityRepository {
	return &LegalEntityRepository{}
}

func (r *LegalEntityRepository) FetchBusinessCategories(ctx context.Context, legalEntityID int64) ([]string, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	var categories []string
	err = tx.QueryRow(ctx, businessCategoriesQuery, legalEntityID).Scan(&categories)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return []string{}, nil
		}
		return nil, errors.Wrap(err, "failed to fetch business categories")
	}
	if categories == nil {
		return []string{}, nil
	}
	return categories, nil
}

// FetchOfficers fills the fixed five-slot roster. A missing officers row, or
// sparsely populated slots, still yield five entries.
func (r *LegalEntityRepository) FetchOfficers(ctx context.Context, legalEntityID int64) (domain.OfficerSlots, error) {
	var slots domain.OfficerSlots

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return slots, err
	}

	var (
		names   [domain.OfficerSlotCount]sql.NullString
		amounts [domain.OfficerSlotCount]sql.NullFloat64
	)
	err = tx.QueryRow(ctx, officersQuery, legalEntityID).Scan(
		&names[0], &amounts[0],
		&names[1], &amounts[1],
		&names[2], &amounts[2],
		&names[3], &amounts[3],
		&names[4], &amounts[4],
	)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return slots, nil
		}
		return slots, errors.Wrap(err, "failed to fetch officers")
	}

	for i := range slots {
		slots[i] = domain.OfficerSlot{
			Name:   mapping.SQLNullStringToPointer(names[i]),
			Amount: mapping.SQLNullFloat64ToPointer(amounts[i]),
		}
	}
	return slots, nil
}
