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

const agencyFindQuery = `
	SELECT
		ta.name, ta.fpds_code, ta.abbreviation,
		sa.name, sa.subtier_code, sa.abbreviation,
		oa.name
	FROM agency a
	LEFT JOIN toptier_agency ta ON ta.toptier_agency_id = a.toptier_agency_id
	LEFT JOIN subtier_agency sa ON sa.subtier_agency_id = a.subtier_agency_id
	LEFT JOIN office_agency oa ON oa.office_agency_id = a.office_agency_id
	WHERE a.id = $1`

type AgencyRepository struct{}

func NewAgencyRepository() domain.AgencyRepository {
	return &AgencyRepository{}
}

func (r *AgencyRepository) FetchAgency(ctx context.Context, agencyID int64) (*domain.AgencyDetails, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	var (
		toptierName, toptierCode, toptierAbbr sql.NullString
		subtierName, subtierCode, subtierAbbr sql.NullString
		officeName                            sql.NullString
	)
	err = tx.QueryRow(ctx, agencyFindQuery, agencyID).Scan(
		&toptierName, &toptierCode, &toptierAbbr,
		&subtierName, &subtierCode, &subtierAbbr,
		&officeName,
	)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to fetch agency")
	}

	return &domain.AgencyDetails{
		ID: agencyID,
		ToptierAgency: domain.AgencyTier{
			Name:         mapping.SQLNullStringToPointer(toptierName),
			Code:         mapping.SQLNullStringToPointer(toptierCode),
			Abbreviation: mapping.SQLNullStringToPointer(toptierAbbr),
		},
		SubtierAgency: domain.AgencyTier{
			Name:         mapping.SQLNullStringToPointer(subtierName),
			Code:         mapping.SQLNullStringToPointer(subtierCode),
			Abbreviation: mapping.SQLNullStringToPointer(subtierAbbr),
		},
		OfficeAgencyName: mapping.SQLNullStringToPointer(officeName),
	}, nil
}
