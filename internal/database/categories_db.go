package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/valeriaulyamaeva/finance-tracker/models"
)

const categoryColumns = `id, name, type, icon, color, created_at`

func scanCategory(row pgx.Row) (models.Category, error) {
	var c models.Category
	err := row.Scan(&c.ID, &c.Name, &c.Type, &c.Icon, &c.Color, &c.CreatedAt)
	return c, err
}

func collectCategories(rows pgx.Rows) ([]models.Category, error) {
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ListCategories возвращает категории: сначала доходы, затем по имени.
func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		ORDER BY CASE WHEN type = 'income' THEN 0 ELSE 1 END, name`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, wrapError("ошибка при получении категорий", err)
	}
	categories, err := collectCategories(rows)
	if err != nil {
		return nil, wrapError("ошибка при получении категорий", err)
	}
	return categories, nil
}

// CreateCategory добавляет категорию и заполняет ID и дату создания.
func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (name, type, icon, color)
		VALUES ($1, $2::transaction_type, $3, $4)
		RETURNING id, created_at`

	err := s.pool.QueryRow(ctx, query, category.Name, string(category.Type), category.Icon, category.Color).
		Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		return wrapError("ошибка при добавлении категории", err)
	}
	return nil
}

// UpdateCategory обновляет категорию, ErrNotFound если ее нет.
func (s *Store) UpdateCategory(ctx context.Context, category *models.Category) error {
	query := `
		UPDATE categories
		SET name = $2, type = $3::transaction_type, icon = $4, color = $5
		WHERE id = $1
		RETURNING created_at`

	err := s.pool.QueryRow(ctx, query, category.ID, category.Name, string(category.Type), category.Icon, category.Color).
		Scan(&category.CreatedAt)
	if err != nil {
		return wrapError("ошибка обновления категории", err)
	}
	return nil
}

// DeleteCategory удаляет категорию и ее связи с транзакциями.
func (s *Store) DeleteCategory(ctx context.Context, id int) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return wrapError("ошибка при удалении категории", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
