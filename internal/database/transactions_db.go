package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/valeriaulyamaeva/finance-tracker/models"
)

const transactionSelect = `
	SELECT t.id, t.wallet_id, t.description, t.amount, t.type, t.date, t.created_at,
	       COALESCE(
	           json_agg(
	               json_build_object('id', c.id, 'name', c.name, 'type', c.type, 'icon', c.icon, 'color', c.color)
	               ORDER BY c.name
	           ) FILTER (WHERE c.id IS NOT NULL),
	           '[]'::json
	       ) AS categories
	FROM transactions t
	LEFT JOIN transaction_categories tc ON tc.transaction_id = t.id
	LEFT JOIN categories c ON c.id = tc.category_id`

const transactionGroupBy = `
	GROUP BY t.id, t.wallet_id, t.description, t.amount, t.type, t.date, t.created_at`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var (
		tr   models.Transaction
		date time.Time
	)
	err := row.Scan(&tr.ID, &tr.WalletID, &tr.Description, &tr.Amount, &tr.Type, &date, &tr.CreatedAt, &tr.Categories)
	if err != nil {
		return models.Transaction{}, err
	}
	tr.Date = models.DateOf(date)
	if tr.Categories == nil {
		tr.Categories = []models.CategoryRef{}
	}
	return tr, nil
}

// ListTransactions возвращает транзакции кошелька, новые сначала.
// limit <= 0 означает без ограничения.
func (s *Store) ListTransactions(ctx context.Context, walletID, limit int) ([]models.Transaction, error) {
	query := transactionSelect + `
	WHERE t.wallet_id = $1` + transactionGroupBy + `
	ORDER BY t.date DESC, t.id DESC`
	args := []any{walletID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapError("ошибка при получении транзакций", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		tr, err := scanTransaction(rows)
		if err != nil {
			return nil, wrapError("ошибка чтения транзакции", err)
		}
		transactions = append(transactions, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("ошибка при получении транзакций", err)
	}
	return transactions, nil
}

// GetTransaction возвращает транзакцию кошелька вместе с категориями.
func (s *Store) GetTransaction(ctx context.Context, id, walletID int) (*models.Transaction, error) {
	return getTransaction(ctx, s.pool, id, walletID)
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getTransaction(ctx context.Context, q querier, id, walletID int) (*models.Transaction, error) {
	query := transactionSelect + `
	WHERE t.id = $1 AND t.wallet_id = $2` + transactionGroupBy

	tr, err := scanTransaction(q.QueryRow(ctx, query, id, walletID))
	if err != nil {
		return nil, wrapError(fmt.Sprintf("ошибка при получении транзакции %d", id), err)
	}
	return &tr, nil
}

// CreateTransaction в одной транзакции БД добавляет запись и ее категории.
func (s *Store) CreateTransaction(ctx context.Context, in models.TransactionInput) (*models.Transaction, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, wrapError("ошибка начала транзакции", err)
	}
	defer tx.Rollback(ctx)

	categoryIDs := UniqueIDs(in.CategoryIDs)
	if err := checkCategories(ctx, tx, categoryIDs, in.Type); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO transactions (wallet_id, description, amount, type, date)
		VALUES ($1, $2, $3, $4::transaction_type, $5)
		RETURNING id`

	var id int
	err = tx.QueryRow(ctx, query, in.WalletID, in.Description, in.Amount, string(in.Type), in.Date.Time).Scan(&id)
	if err != nil {
		return nil, wrapError("ошибка при добавлении транзакции", err)
	}

	if err := linkCategories(ctx, tx, id, categoryIDs); err != nil {
		return nil, err
	}

	created, err := getTransaction(ctx, tx, id, in.WalletID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, wrapError("ошибка фиксации транзакции", err)
	}
	return created, nil
}

// UpdateTransaction в одной транзакции БД обновляет запись и заменяет
// набор ее категорий. ErrNotFound, если в кошельке нет такой записи.
func (s *Store) UpdateTransaction(ctx context.Context, id int, in models.TransactionInput) (*models.Transaction, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, wrapError("ошибка начала транзакции", err)
	}
	defer tx.Rollback(ctx)

	categoryIDs := UniqueIDs(in.CategoryIDs)
	if err := checkCategories(ctx, tx, categoryIDs, in.Type); err != nil {
		return nil, err
	}

	query := `
		UPDATE transactions
		SET description = $3, amount = $4, type = $5::transaction_type, date = $6
		WHERE id = $1 AND wallet_id = $2`

	result, err := tx.Exec(ctx, query, id, in.WalletID, in.Description, in.Amount, string(in.Type), in.Date.Time)
	if err != nil {
		return nil, wrapError("ошибка обновления транзакции", err)
	}
	if result.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM transaction_categories WHERE transaction_id = $1`, id); err != nil {
		return nil, wrapError("ошибка удаления категорий транзакции", err)
	}
	if err := linkCategories(ctx, tx, id, categoryIDs); err != nil {
		return nil, err
	}

	updated, err := getTransaction(ctx, tx, id, in.WalletID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, wrapError("ошибка фиксации транзакции", err)
	}
	return updated, nil
}

// DeleteTransaction удаляет транзакцию кошелька.
func (s *Store) DeleteTransaction(ctx context.Context, id, walletID int) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1 AND wallet_id = $2`, id, walletID)
	if err != nil {
		return wrapError("ошибка удаления транзакции", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountTransactions считает транзакции кошелька в интервале дат включительно.
func (s *Store) CountTransactions(ctx context.Context, walletID int, from, to models.Date) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM transactions
		WHERE wallet_id = $1 AND date BETWEEN $2 AND $3`

	var count int
	if err := s.pool.QueryRow(ctx, query, walletID, from.Time, to.Time).Scan(&count); err != nil {
		return 0, wrapError("ошибка подсчета транзакций", err)
	}
	return count, nil
}

// checkCategories убеждается, что все категории существуют и совпадают по типу.
func checkCategories(ctx context.Context, tx pgx.Tx, ids []int, typ models.TransactionType) error {
	if len(ids) == 0 {
		return nil
	}

	rows, err := tx.Query(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = ANY($1::int[])`, ids)
	if err != nil {
		return wrapError("ошибка проверки категорий", err)
	}
	found, err := collectCategories(rows)
	if err != nil {
		return wrapError("ошибка проверки категорий", err)
	}

	return MatchCategories(ids, found, typ)
}

// MatchCategories сверяет запрошенные ID с найденными категориями.
func MatchCategories(ids []int, found []models.Category, typ models.TransactionType) error {
	if len(found) != len(ids) {
		return ErrCategoryNotFound
	}
	for _, c := range found {
		if c.Type != typ {
			return ErrCategoryTypeMismatch
		}
	}
	return nil
}

func linkCategories(ctx context.Context, tx pgx.Tx, transactionID int, categoryIDs []int) error {
	if len(categoryIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO transaction_categories (transaction_id, category_id)
		SELECT $1, unnest($2::int[])`
	if _, err := tx.Exec(ctx, query, transactionID, categoryIDs); err != nil {
		return wrapError("ошибка привязки категорий", err)
	}
	return nil
}

// UniqueIDs оставляет положительные ID без повторов в исходном порядке.
func UniqueIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
