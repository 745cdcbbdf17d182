package persistence

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/fedspend/awards-api/modules/references/domain"
	"github.com/fedspend/awards-api/pkg/composables"
	"github.com/fedspend/awards-api/pkg/mapping"
)

const (
	glossaryListQuery = `
	SELECT d.id, d.term, d.plain, d.data_act_term, d.official, r.title, r.url
	FROM glossary_definition d
	LEFT JOIN glossary_definition_resource r ON r.definition_id = d.id
	ORDER BY d.term, d.id`

	glossaryInsertQuery = `
	INSERT INTO glossary_definition (term, plain, data_act_term, official)
	VALUES ($1, $2, $3, $4)
	RETURNING id`

	glossaryResourceInsertQuery = `
	INSERT INTO glossary_definition_resource (definition_id, title, url)
	VALUES ($1, $2, $3)`
)

type GlossaryRepository struct{}

func NewGlossaryRepository() domain.GlossaryRepository {
	return &GlossaryRepository{}
}

func (r *GlossaryRepository) List(ctx context.Context) ([]domain.Definition, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, glossaryListQuery)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list glossary definitions")
	}
	defer rows.Close()

	var (
		defs    []domain.Definition
		byID    = map[int64]int{}
		current domain.Definition
	)
	for rows.Next() {
		var (
			resTitle *string
			resURL   *string
		)
		if err := rows.Scan(
			&current.ID,
			&current.Term,
			&current.Plain,
			&current.DataActTerm,
			&current.Official,
			&resTitle,
			&resURL,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan glossary row")
		}
		idx, seen := byID[current.ID]
		if !seen {
			def := current
			def.Resources = nil
			defs = append(defs, def)
			idx = len(defs) - 1
			byID[current.ID] = idx
		}
		if resTitle != nil {
			defs[idx].Resources = append(defs[idx].Resources, domain.DefinitionResource{
				Title: *resTitle,
				URL:   resURL,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}
	return defs, nil
}

func (r *GlossaryRepository) DeleteAll(ctx context.Context) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM glossary_definition_resource`); err != nil {
		return errors.Wrap(err, "failed to delete glossary resources")
	}
	if _, err := tx.Exec(ctx, `DELETE FROM glossary_definition`); err != nil {
		return errors.Wrap(err, "failed to delete glossary definitions")
	}
	return nil
}

func (r *GlossaryRepository) Create(ctx context.Context, def domain.Definition) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	var id int64
	err = tx.QueryRow(ctx, glossaryInsertQuery,
		def.Term,
		mapping.PointerToSQLNullString(def.Plain),
		mapping.PointerToSQLNullString(def.DataActTerm),
		mapping.PointerToSQLNullString(def.Official),
	).Scan(&id)
	if err != nil {
		return 0, errors.Wrap(err, "failed to insert glossary definition")
	}
	return id, nil
}

func (r *GlossaryRepository) CreateResource(ctx context.Context, definitionID int64, res domain.DefinitionResource) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, glossaryResourceInsertQuery, definitionID, res.Title, mapping.PointerToSQLNullString(res.URL)); err != nil {
		return errors.Wrap(err, "failed to insert glossary resource")
	}
	return nil
}
