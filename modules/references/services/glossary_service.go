package services

import (
	"context"
	"io"
	"slices"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"

	"github.com/fedspend/awards-api/modules/references/domain"
	"github.com/fedspend/awards-api/pkg/composables"
)

// expectedHeaders is the fixed header row of the terminology workbook.
// Header drift means the workbook format changed and the load must not guess.
var expectedHeaders = []string{
	"Term",
	"Plain Language",
	"DATA Act Schema Term",
	"DATA Act Schema Definition",
	"More Resources",
}

type GlossaryService struct {
	repo domain.GlossaryRepository
}

func NewGlossaryService(repo domain.GlossaryRepository) *GlossaryService {
	return &GlossaryService{repo: repo}
}

func (s *GlossaryService) List(ctx context.Context) ([]domain.Definition, error) {
	return s.repo.List(ctx)
}

// LoadWorkbook ingests the glossary spreadsheet. Unless append is set, the
// existing glossary is replaced. Runs inside one transaction so a malformed
// workbook never leaves the glossary half loaded.
func (s *GlossaryService) LoadWorkbook(ctx context.Context, r io.Reader, appendTerms bool) (int, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return 0, errors.Wrap(err, "failed to open glossary workbook")
	}
	defer func() {
		_ = wb.Close()
	}()

	sheet := wb.GetSheetName(0)
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return 0, errors.Wrap(err, "failed to read glossary sheet")
	}
	if len(rows) == 0 {
		return 0, errors.New("glossary workbook is empty")
	}

	headers := padRow(rows[0], len(expectedHeaders))
	if !slices.Equal(headers, expectedHeaders) {
		return 0, errors.Errorf("expected headers %v, got %v", expectedHeaders, headers)
	}

	logger := composables.UseLogger(ctx)
	count := 0
	err = composables.InTx(ctx, func(txCtx context.Context) error {
		if appendTerms {
			logger.Info("appending definitions to existing glossary")
		} else {
			logger.Info("deleting existing definitions from glossary")
			if err := s.repo.DeleteAll(txCtx); err != nil {
				return err
			}
		}

		for i, row := range rows[1:] {
			cells := padRow(row, len(expectedHeaders))
			if cells[0] == "" {
				break
			}
			def := domain.Definition{
				Term:        cells[0],
				Plain:       optional(cells[1]),
				DataActTerm: optional(cells[2]),
				Official:    optional(cells[3]),
			}
			id, err := s.repo.Create(txCtx, def)
			if err != nil {
				return err
			}
			count++

			if cells[4] != "" {
				res := domain.DefinitionResource{Title: cells[4]}
				// Row 1 is the header, data starts on sheet row 2.
				cellRef, err := excelize.CoordinatesToCellName(5, i+2)
				if err == nil {
					if ok, target, err := wb.GetCellHyperLink(sheet, cellRef); err == nil && ok {
						res.URL = &target
					}
				}
				if err := s.repo.CreateResource(txCtx, id, res); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.Infof("%d definitions loaded", count)
	return count, nil
}

func padRow(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
