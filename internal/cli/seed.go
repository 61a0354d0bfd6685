package cli

import (
	"context"
	"fmt"
	"log"

	"trivia-game-service/internal/config"
	"trivia-game-service/internal/domain"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
)

// NewSeedCmd loads the sample content pool into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample categories into the content store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return runSeed(cmd.Context(), cfg)
		},
	}
}

func runSeed(ctx context.Context, cfg config.Config) error {
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}
	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}

	db := openBunDB(cfg.Postgres.URL)
	defer db.Close()

	categories := sampleCategories()
	if err := insertCategories(ctx, db, categories); err != nil {
		return err
	}
	log.Printf("seeded %d categories", len(categories))
	return nil
}

func insertCategories(ctx context.Context, db *bun.DB, categories []domain.Category) error {
	for _, category := range categories {
		if _, err := db.ExecContext(ctx, `
			INSERT INTO categories (id, name_en, name_de) VALUES (?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET name_en = EXCLUDED.name_en, name_de = EXCLUDED.name_de`,
			category.ID, category.Name.EN, category.Name.DE); err != nil {
			return fmt.Errorf("insert category %s: %w", category.ID, err)
		}
		for _, question := range category.Questions {
			if _, err := db.ExecContext(ctx, `
				INSERT INTO questions (id, category_id, text_en, text_de, max_time_seconds, points)
				VALUES (?, ?, ?, ?, ?, ?)
				ON CONFLICT (id) DO UPDATE SET text_en = EXCLUDED.text_en, text_de = EXCLUDED.text_de,
					max_time_seconds = EXCLUDED.max_time_seconds, points = EXCLUDED.points`,
				question.ID, category.ID, question.Text.EN, question.Text.DE, question.MaxTimeSeconds, question.Points); err != nil {
				return fmt.Errorf("insert question %s: %w", question.ID, err)
			}
			for _, choice := range question.Choices {
				if _, err := db.ExecContext(ctx, `
					INSERT INTO choices (id, question_id, text_en, text_de, correct)
					VALUES (?, ?, ?, ?, ?)
					ON CONFLICT (id) DO UPDATE SET text_en = EXCLUDED.text_en, text_de = EXCLUDED.text_de,
						correct = EXCLUDED.correct`,
					choice.ID, question.ID, choice.Text.EN, choice.Text.DE, choice.Correct); err != nil {
					return fmt.Errorf("insert choice %s: %w", choice.ID, err)
				}
			}
		}
	}
	return nil
}
