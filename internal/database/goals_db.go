package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/finance-tracker/internal/goals"
	"github.com/valeriaulyamaeva/finance-tracker/models"
)

const goalColumns = `id, wallet_id, name, type, target_amount, start_date, interval_days, created_at, updated_at`

func scanGoal(row pgx.Row) (models.Goal, error) {
	var (
		g     models.Goal
		start time.Time
	)
	err := row.Scan(&g.ID, &g.WalletID, &g.Name, &g.Type, &g.TargetAmount, &start, &g.IntervalDays, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return models.Goal{}, err
	}
	g.StartDate = models.DateOf(start)
	return g, nil
}

func (s *Store) queryGoals(ctx context.Context, query string, args ...any) ([]models.Goal, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapError("ошибка при получении целей", err)
	}
	defer rows.Close()

	result := []models.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, wrapError("ошибка чтения цели", err)
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("ошибка при получении целей", err)
	}
	return result, nil
}

// ListGoals возвращает цели кошелька, последние созданные сначала.
func (s *Store) ListGoals(ctx context.Context, walletID int) ([]models.Goal, error) {
	query := `
		SELECT ` + goalColumns + `
		FROM goals
		WHERE wallet_id = $1
		ORDER BY created_at DESC, id DESC`
	return s.queryGoals(ctx, query, walletID)
}

// ListAllGoals возвращает цели всех кошельков.
func (s *Store) ListAllGoals(ctx context.Context) ([]models.Goal, error) {
	query := `
		SELECT ` + goalColumns + `
		FROM goals
		ORDER BY wallet_id, created_at DESC, id DESC`
	return s.queryGoals(ctx, query)
}

// GetGoal возвращает цель кошелька по ID.
func (s *Store) GetGoal(ctx context.Context, id, walletID int) (*models.Goal, error) {
	query := `
		SELECT ` + goalColumns + `
		FROM goals
		WHERE id = $1 AND wallet_id = $2
		LIMIT 1`

	g, err := scanGoal(s.pool.QueryRow(ctx, query, id, walletID))
	if err != nil {
		return nil, wrapError("ошибка при получении цели", err)
	}
	return &g, nil
}

// CreateGoal добавляет цель и возвращает ее ID.
func (s *Store) CreateGoal(ctx context.Context, in models.GoalInput) (int, error) {
	query := `
		INSERT INTO goals (wallet_id, name, type, target_amount, start_date, interval_days)
		VALUES ($1, $2, $3::transaction_type, $4, $5, $6)
		RETURNING id`

	var id int
	err := s.pool.QueryRow(ctx, query,
		in.WalletID,
		in.Name,
		string(in.Type),
		in.TargetAmount,
		in.StartDate.Time,
		in.IntervalDays).Scan(&id)
	if err != nil {
		return 0, wrapError("ошибка при добавлении цели", err)
	}
	return id, nil
}

// UpdateGoal обновляет цель кошелька, ErrNotFound если ее нет.
func (s *Store) UpdateGoal(ctx context.Context, id int, in models.GoalInput) error {
	query := `
		UPDATE goals
		SET name = $3,
		    type = $4::transaction_type,
		    target_amount = $5,
		    start_date = $6,
		    interval_days = $7,
		    updated_at = NOW()
		WHERE id = $1 AND wallet_id = $2`

	result, err := s.pool.Exec(ctx, query,
		id,
		in.WalletID,
		in.Name,
		string(in.Type),
		in.TargetAmount,
		in.StartDate.Time,
		in.IntervalDays)
	if err != nil {
		return wrapError("ошибка обновления цели", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteGoal удаляет цель кошелька.
func (s *Store) DeleteGoal(ctx context.Context, id, walletID int) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM goals WHERE id = $1 AND wallet_id = $2`, id, walletID)
	if err != nil {
		return wrapError("ошибка удаления цели", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const progressQuery = `
	WITH goal_periods AS (
		SELECT *
		FROM unnest($1::int[], $2::int[], $3::text[], $4::date[], $5::date[])
		     AS gp(goal_id, wallet_id, type, start_date, end_date)
	)
	SELECT gp.goal_id, COALESCE(SUM(t.amount), 0) AS progress
	FROM goal_periods gp
	LEFT JOIN transactions t
	       ON t.wallet_id = gp.wallet_id
	      AND t.type = gp.type::transaction_type
	      AND t.date BETWEEN gp.start_date AND gp.end_date
	GROUP BY gp.goal_id`

// SumProgress одним запросом суммирует транзакции по окнам всех целей.
// Окна передаются параллельными массивами и разворачиваются через unnest.
func (s *Store) SumProgress(ctx context.Context, windows []goals.Window) (map[int]decimal.Decimal, error) {
	progress := make(map[int]decimal.Decimal, len(windows))
	if len(windows) == 0 {
		return progress, nil
	}

	var (
		goalIDs   = make([]int, len(windows))
		walletIDs = make([]int, len(windows))
		types     = make([]string, len(windows))
		starts    = make([]time.Time, len(windows))
		ends      = make([]time.Time, len(windows))
	)
	for i, w := range windows {
		goalIDs[i] = w.GoalID
		walletIDs[i] = w.WalletID
		types[i] = string(w.Type)
		starts[i] = w.Start.Time
		ends[i] = w.End.Time
		progress[w.GoalID] = decimal.Zero
	}

	rows, err := s.pool.Query(ctx, progressQuery, goalIDs, walletIDs, types, starts, ends)
	if err != nil {
		return nil, wrapError("ошибка подсчета прогресса целей", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			goalID int
			sum    decimal.Decimal
		)
		if err := rows.Scan(&goalID, &sum); err != nil {
			return nil, wrapError("ошибка чтения прогресса цели", err)
		}
		progress[goalID] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("ошибка подсчета прогресса целей", err)
	}
	return progress, nil
}
