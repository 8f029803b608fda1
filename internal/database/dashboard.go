package database

import "context"

// CountEntities возвращает количество кошельков и категорий.
func (s *Store) CountEntities(ctx context.Context) (wallets, categories int, err error) {
	query := `
		SELECT (SELECT COUNT(*) FROM wallets),
		       (SELECT COUNT(*) FROM categories)`

	if err := s.pool.QueryRow(ctx, query).Scan(&wallets, &categories); err != nil {
		return 0, 0, wrapError("ошибка подсчета кошельков и категорий", err)
	}
	return wallets, categories, nil
}
