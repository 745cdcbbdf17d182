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

const cfdaFindQuery = `SELECT program_title, objectives FROM references_cfda WHERE program_number = $1`

type CFDARepository struct{}

func NewCFDARepository() domain.CFDARepository {
	return &CFDARepository{}
}

func (r *CFDARepository) FetchProgram(ctx context.Context, programNumber string) (*domain.CFDAProgram, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	var title, objectives sql.NullString
	err = tx.QueryRow(ctx, cfdaFindQuery, programNumber).Scan(&title, &objectives)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to fetch cfda program")
	}

	return &domain.CFDAProgram{
		ProgramNumber: programNumber,
		ProgramTitle:  mapping.SQLNullStringToPointer(title),
		Objectives:    mapping.SQLNullStringToPointer(objectives),
	}, nil
}
