package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/finance-tracker/models"
)

const walletSelect = `
	SELECT w.id, w.name, w.description, w.icon, w.color, w.created_at,
	       COALESCE(SUM(CASE WHEN t.type = 'income' THEN t.amount END), 0) AS total_income,
	       COALESCE(SUM(CASE WHEN t.type = 'expense' THEN t.amount END), 0) AS total_expense
	FROM wallets w
	LEFT JOIN transactions t ON t.wallet_id = w.id`

func scanWallet(row pgx.Row) (models.Wallet, error) {
	var (
		w               models.Wallet
		income, expense decimal.Decimal
	)
	err := row.Scan(&w.ID, &w.Name, &w.Description, &w.Icon, &w.Color, &w.CreatedAt, &income, &expense)
	if err != nil {
		return models.Wallet{}, err
	}
	w.ApplyTotals(income, expense)
	return w, nil
}

// ListWallets возвращает кошельки с итогами в порядке создания.
func (s *Store) ListWallets(ctx context.Context) ([]models.Wallet, error) {
	query := walletSelect + `
	GROUP BY w.id
	ORDER BY w.created_at ASC, w.id ASC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, wrapError("ошибка при получении кошельков", err)
	}
	defer rows.Close()

	wallets := []models.Wallet{}
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, wrapError("ошибка чтения кошелька", err)
		}
		wallets = append(wallets, w)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("ошибка при получении кошельков", err)
	}
	return wallets, nil
}

// GetWallet возвращает кошелек с итогами по ID.
func (s *Store) GetWallet(ctx context.Context, id int) (*models.Wallet, error) {
	query := walletSelect + `
	WHERE w.id = $1
	GROUP BY w.id`

	w, err := scanWallet(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, wrapError("ошибка при получении кошелька", err)
	}
	return &w, nil
}

// CreateWallet добавляет кошелек и заполняет ID и дату создания.
func (s *Store) CreateWallet(ctx context.Context, wallet *models.Wallet) error {
	query := `
		INSERT INTO wallets (name, description, icon, color)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := s.pool.QueryRow(ctx, query, wallet.Name, wallet.Description, wallet.Icon, wallet.Color).
		Scan(&wallet.ID, &wallet.CreatedAt)
	if err != nil {
		return wrapError("ошибка при добавлении кошелька", err)
	}
	wallet.ApplyTotals(decimal.Zero, decimal.Zero)
	return nil
}

// UpdateWallet обновляет кошелек и возвращает его с актуальными итогами.
func (s *Store) UpdateWallet(ctx context.Context, wallet *models.Wallet) (*models.Wallet, error) {
	query := `
		UPDATE wallets
		SET name = $2, description = $3, icon = $4, color = $5
		WHERE id = $1`

	result, err := s.pool.Exec(ctx, query, wallet.ID, wallet.Name, wallet.Description, wallet.Icon, wallet.Color)
	if err != nil {
		return nil, wrapError("ошибка обновления кошелька", err)
	}
	if result.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return s.GetWallet(ctx, wallet.ID)
}

// DeleteWallet удаляет кошелек вместе с его транзакциями и целями.
func (s *Store) DeleteWallet(ctx context.Context, id int) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM wallets WHERE id = $1`, id)
	if err != nil {
		return wrapError("ошибка удаления кошелька", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
