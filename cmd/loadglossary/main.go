package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/fedspend/awards-api/modules/references/infrastructure/persistence"
	"github.com/fedspend/awards-api/modules/references/services"
	"github.com/fedspend/awards-api/pkg/composables"
	"github.com/fedspend/awards-api/pkg/configuration"
)

func main() {
	conf := configuration.Use()

	var (
		path        string
		appendTerms bool
	)

	cmd := &cobra.Command{
		Use:   "loadglossary",
		Short: "Load the glossary terminology workbook into the database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			pool, err := pgxpool.New(ctx, conf.Database.Opts)
			if err != nil {
				return err
			}
			defer pool.Close()
			ctx = composables.WithPool(ctx, pool)

			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer func() {
				_ = f.Close()
			}()

			svc := services.NewGlossaryService(persistence.NewGlossaryRepository())
			count, err := svc.LoadWorkbook(ctx, f, appendTerms)
			if err != nil {
				return err
			}
			conf.Logger().WithField("count", count).Info("glossary loaded")
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", conf.GlossaryPath, "path to the glossary .xlsx workbook")
	cmd.Flags().BoolVar(&appendTerms, "append", false, "append to the existing glossary instead of replacing it")

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
