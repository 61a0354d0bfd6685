package postgres

import (
	"context"
	"fmt"

	"trivia-game-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ContentLoader loads the category/question/choice pool from Postgres.
type ContentLoader struct {
	pool *pgxpool.Pool
}

func NewContentLoader(pool *pgxpool.Pool) *ContentLoader {
	return &ContentLoader{pool: pool}
}

type questionRef struct {
	categoryID string
	index      int
}

// LoadCategories reads the whole content pool: every category with its
// ordered questions and their choices.
func (l *ContentLoader) LoadCategories(ctx context.Context) ([]domain.Category, error) {
	categories, order, err := l.loadCategories(ctx)
	if err != nil {
		return nil, err
	}
	refs, err := l.loadQuestions(ctx, categories)
	if err != nil {
		return nil, err
	}
	if err := l.loadChoices(ctx, categories, refs); err != nil {
		return nil, err
	}

	result := make([]domain.Category, 0, len(order))
	for _, id := range order {
		result = append(result, *categories[id])
	}
	return result, nil
}

func (l *ContentLoader) loadCategories(ctx context.Context) (map[string]*domain.Category, []string, error) {
	rows, err := l.pool.Query(ctx, `SELECT id, name_en, name_de FROM categories ORDER BY id`)
	if err != nil {
		return nil, nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := make(map[string]*domain.Category)
	var order []string
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name.EN, &c.Name.DE); err != nil {
			return nil, nil, fmt.Errorf("scan category: %w", err)
		}
		categories[c.ID] = &c
		order = append(order, c.ID)
	}
	return categories, order, rows.Err()
}

func (l *ContentLoader) loadQuestions(ctx context.Context, categories map[string]*domain.Category) (map[string]questionRef, error) {
	rows, err := l.pool.Query(ctx, `
		SELECT id, category_id, text_en, text_de, max_time_seconds, points
		FROM questions
		ORDER BY category_id, id`)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	refs := make(map[string]questionRef)
	for rows.Next() {
		var q domain.Question
		var categoryID string
		if err := rows.Scan(&q.ID, &categoryID, &q.Text.EN, &q.Text.DE, &q.MaxTimeSeconds, &q.Points); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		category, ok := categories[categoryID]
		if !ok {
			continue
		}
		category.Questions = append(category.Questions, q)
		refs[q.ID] = questionRef{categoryID: categoryID, index: len(category.Questions) - 1}
	}
	return refs, rows.Err()
}

func (l *ContentLoader) loadChoices(ctx context.Context, categories map[string]*domain.Category, refs map[string]questionRef) error {
	rows, err := l.pool.Query(ctx, `
		SELECT id, question_id, text_en, text_de, correct
		FROM choices
		ORDER BY question_id, id`)
	if err != nil {
		return fmt.Errorf("query choices: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c domain.Choice
		var questionID string
		if err := rows.Scan(&c.ID, &questionID, &c.Text.EN, &c.Text.DE, &c.Correct); err != nil {
			return fmt.Errorf("scan choice: %w", err)
		}
		ref, ok := refs[questionID]
		if !ok {
			continue
		}
		question := &categories[ref.categoryID].Questions[ref.index]
		question.Choices = append(question.Choices, c)
	}
	return rows.Err()
}
