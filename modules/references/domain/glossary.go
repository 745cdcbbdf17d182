package domain

import "context"

// Definition is one glossary term loaded from the terminology workbook.
type Definition struct {
	ID          int64                `json:"id"`
	Term        string               `json:"term"`
	Plain       *string              `json:"plain"`
	DataActTerm *string              `json:"data_act_term"`
	Official    *string              `json:"official"`
	Resources   []DefinitionResource `json:"resources"`
}

type DefinitionResource struct {
	Title string  `json:"title"`
	URL   *string `json:"url"`
}

type GlossaryRepository interface {
	List(ctx context.Context) ([]Definition, error)
	DeleteAll(ctx context.Context) error
	Create(ctx context.Context, def Definition) (int64, error)
	CreateResource(ctx context.Context, definitionID int64, res DefinitionResource) error
}
