package persistence

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/fedspend/awards-api/modules/awards/domain"
	"github.com/fedspend/awards-api/pkg/composables"
	"github.com/fedspend/awards-api/pkg/mapping"
	"github.com/fedspend/awards-api/pkg/projection"
	"github.com/fedspend/awards-api/pkg/repo"
)

const (
	awardVariantQuery = `SELECT category, type FROM awards WHERE %s = $1 LIMIT 1`

	parentLinkQuery = `
	SELECT parent_award_id, parent_generated_unique_award_id
	FROM parent_award
	WHERE generated_unique_award_id = $1
	LIMIT 1`

	parentSummaryQuery = `
	SELECT
		fpds.agency_id,
		fpds.idv_type_description,
		fpds.multiple_or_single_aw_desc,
		fpds.piid,
		fpds.type_of_idc_description
	FROM awards a
	JOIN transaction_fpds fpds ON fpds.transaction_id = a.latest_transaction_id
	WHERE a.id = $1
	LIMIT 1`
)

type AwardRepository struct{}

func NewAwardRepository() domain.Repository {
	return &AwardRepository{}
}

func (r *AwardRepository) FetchVariant(ctx context.Context, ident domain.Identifier) (*domain.AwardVariantRow, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	column, arg := identifierFilter(ident)
	var category, awardType sql.NullString
	err = tx.QueryRow(ctx, fmt.Sprintf(awardVariantQuery, column), arg).Scan(&category, &awardType)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAwardNotFound
		}
		return nil, errors.Wrap(err, "failed to fetch award variant")
	}
	return &domain.AwardVariantRow{
		Category: mapping.SQLNullStringToPointer(category),
		Type:     mapping.SQLNullStringToPointer(awardType),
	}, nil
}

func (r *AwardRepository) FetchAssistanceAward(ctx context.Context, ident domain.Identifier) (projection.Row, error) {
	return r.fetchAward(ctx, ident, FABSAwardFields)
}

func (r *AwardRepository) FetchContractAward(ctx context.Context, ident domain.Identifier) (projection.Row, error) {
	return r.fetchAward(ctx, ident, FPDSAwardFields)
}

func (r *AwardRepository) fetchAward(ctx context.Context, ident domain.Identifier, cat *projection.Catalog) (projection.Row, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	column, arg := identifierFilter(ident)
	query := fmt.Sprintf(`SELECT %s FROM awards WHERE %s = $1 LIMIT 1`, cat.SelectList(), column)
	row, err := queryProjectedRow(ctx, tx, query, cat, arg)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAwardNotFound
		}
		return nil, errors.Wrap(err, "failed to fetch award")
	}
	return row, nil
}

func (r *AwardRepository) FetchAssistanceTransaction(ctx context.Context, transactionID int64) (projection.Row, error) {
	return r.fetchTransaction(ctx, "transaction_fabs", transactionID, FABSAssistanceFields)
}

func (r *AwardRepository) FetchContractTransaction(ctx context.Context, transactionID int64) (projection.Row, error) {
	return r.fetchTransaction(ctx, "transaction_fpds", transactionID, FPDSContractFields)
}

func (r *AwardRepository) FetchIDVTransaction(ctx context.Context, transactionID int64) (projection.Row, error) {
	return r.fetchTransaction(ctx, "transaction_fpds", transactionID, IDVContractFields)
}

func (r *AwardRepository) fetchTransaction(ctx context.Context, table string, transactionID int64, cat *projection.Catalog) (projection.Row, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE transaction_id = $1 LIMIT 1`, cat.SelectList(), table)
	row, err := queryProjectedRow(ctx, tx, query, cat, transactionID)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			// The source system guarantees the latest-transaction reference
			// resolves; a miss here is a data defect, not a NotFound.
			return nil, errors.Errorf("latest transaction %d missing from %s", transactionID, table)
		}
		return nil, errors.Wrapf(err, "failed to fetch %s transaction", table)
	}
	return row, nil
}

// FetchParentAward resolves the parent chain in two steps: the link row
// first, the parent's summary second. A missing link means no parent; a
// link whose parent award row is gone is reported as dangling rather than
// silently emitting nulls.
func (r *AwardRepository) FetchParentAward(ctx context.Context, generatedUniqueAwardID string) (*domain.ParentLookup, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	var (
		parentAwardID int64
		parentGUAI    string
	)
	err = tx.QueryRow(ctx, parentLinkQuery, generatedUniqueAwardID).Scan(&parentAwardID, &parentGUAI)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return &domain.ParentLookup{State: domain.ParentNone}, nil
		}
		return nil, errors.Wrap(err, "failed to fetch parent award link")
	}

	var (
		agencyID, idvType, multipleOrSingle, piid, idcType sql.NullString
	)
	err = tx.QueryRow(ctx, parentSummaryQuery, parentAwardID).Scan(
		&agencyID, &idvType, &multipleOrSingle, &piid, &idcType,
	)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return &domain.ParentLookup{
				State:                  domain.ParentDangling,
				AwardID:                parentAwardID,
				GeneratedUniqueAwardID: parentGUAI,
			}, nil
		}
		return nil, errors.Wrap(err, "failed to fetch parent award summary")
	}

	return &domain.ParentLookup{
		State:                  domain.ParentFound,
		AwardID:                parentAwardID,
		GeneratedUniqueAwardID: parentGUAI,
		Summary: &domain.ParentAwardSummary{
			AgencyID:               mapping.SQLNullStringToPointer(agencyID),
			AwardID:                parentAwardID,
			GeneratedUniqueAwardID: parentGUAI,
			IDVTypeDescription:     mapping.SQLNullStringToPointer(idvType),
			MultipleOrSingleAwDesc: mapping.SQLNullStringToPointer(multipleOrSingle),
			PIID:                   mapping.SQLNullStringToPointer(piid),
			TypeOfIDCDescription:   mapping.SQLNullStringToPointer(idcType),
		},
	}, nil
}

func identifierFilter(ident domain.Identifier) (column string, arg any) {
	if ident.ID != nil {
		return "id", *ident.ID
	}
	var guai string
	if ident.GeneratedUniqueAwardID != nil {
		guai = *ident.GeneratedUniqueAwardID
	}
	return "generated_unique_award_id", guai
}

func queryProjectedRow(ctx context.Context, tx repo.Tx, query string, cat *projection.Catalog, args ...any) (projection.Row, error) {
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, pgx.ErrNoRows
	}
	row, err := projection.CollectRow(rows, cat)
	if err != nil {
		return nil, err
	}
	return row, rows.Err()
}
