package utils

import (
	"context"
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/finance-tracker/models"
)

// SeedStore содержит операции записи, нужные генератору.
type SeedStore interface {
	CreateWallet(ctx context.Context, wallet *models.Wallet) error
	CreateCategory(ctx context.Context, category *models.Category) error
	CreateTransaction(ctx context.Context, in models.TransactionInput) (*models.Transaction, error)
	CreateGoal(ctx context.Context, in models.GoalInput) (int, error)
}

var (
	walletIcons   = []string{"fa-solid fa-wallet", "fa-solid fa-piggy-bank", "fa-solid fa-credit-card", "fa-solid fa-building-columns"}
	categoryIcons = []string{"fa-solid fa-tag", "fa-solid fa-cart-shopping", "fa-solid fa-bus", "fa-solid fa-house", "fa-solid fa-briefcase"}
	goalIntervals = []int{1, 7, 14, 30, 90}
)

// Generator наполняет базу случайными кошельками, категориями,
// транзакциями и целями.
type Generator struct {
	store SeedStore
	faker *gofakeit.Faker
	today models.Date
}

// NewGenerator создает генератор. Одинаковый seed дает одинаковые данные.
func NewGenerator(store SeedStore, seed int64, today models.Date) *Generator {
	return &Generator{store: store, faker: gofakeit.New(seed), today: today}
}

func (g *Generator) GenerateTestWallets(ctx context.Context, n int) ([]models.Wallet, error) {
	wallets := make([]models.Wallet, 0, n)
	for i := 0; i < n; i++ {
		description := g.faker.Sentence(4)
		wallet := models.Wallet{
			Name:        fmt.Sprintf("%s %d", g.faker.Company(), i+1),
			Description: &description,
			Icon:        g.faker.RandomString(walletIcons),
			Color:       g.faker.HexColor(),
		}
		if err := g.store.CreateWallet(ctx, &wallet); err != nil {
			return nil, fmt.Errorf("ошибка при добавлении кошелька: %w", err)
		}
		wallets = append(wallets, wallet)
	}
	return wallets, nil
}

func (g *Generator) GenerateTestCategories(ctx context.Context, n int) ([]models.Category, error) {
	categories := make([]models.Category, 0, n)
	for i := 0; i < n; i++ {
		category := models.Category{
			Name:  fmt.Sprintf("%s %d", g.faker.Word(), i+1),
			Type:  randomType(g.faker),
			Icon:  g.faker.RandomString(categoryIcons),
			Color: g.faker.HexColor(),
		}
		if err := g.store.CreateCategory(ctx, &category); err != nil {
			return nil, fmt.Errorf("ошибка при добавлении категории: %w", err)
		}
		categories = append(categories, category)
	}
	return categories, nil
}

// GenerateTestTransactions создает n транзакций в каждом кошельке за последние
// 90 дней. Категории подбираются того же типа, что и транзакция.
func (g *Generator) GenerateTestTransactions(ctx context.Context, wallets []models.Wallet, categories []models.Category, n int) (int, error) {
	byType := map[models.TransactionType][]int{}
	for _, c := range categories {
		byType[c.Type] = append(byType[c.Type], c.ID)
	}

	created := 0
	for _, w := range wallets {
		for i := 0; i < n; i++ {
			typ := randomType(g.faker)
			in := models.TransactionInput{
				WalletID:    w.ID,
				Description: g.faker.Sentence(3),
				Amount:      decimal.NewFromFloat(g.faker.Price(1, 1000)).Round(2),
				Type:        typ,
				Date:        g.today.AddDays(-g.faker.Number(0, 89)),
			}
			if ids := byType[typ]; len(ids) > 0 {
				in.CategoryIDs = []int{ids[g.faker.Number(0, len(ids)-1)]}
			}
			if _, err := g.store.CreateTransaction(ctx, in); err != nil {
				return created, fmt.Errorf("ошибка при добавлении транзакции: %w", err)
			}
			created++
		}
	}
	return created, nil
}

// GenerateTestGoals создает n целей в каждом кошельке.
func (g *Generator) GenerateTestGoals(ctx context.Context, wallets []models.Wallet, n int) (int, error) {
	created := 0
	for _, w := range wallets {
		for i := 0; i < n; i++ {
			in := models.GoalInput{
				WalletID:     w.ID,
				Name:         g.faker.HipsterWord() + " " + g.faker.Noun(),
				Type:         randomType(g.faker),
				TargetAmount: decimal.NewFromInt(int64(g.faker.Number(1, 50)) * 100),
				StartDate:    g.today.AddDays(-g.faker.Number(0, 60)),
				IntervalDays: goalIntervals[g.faker.Number(0, len(goalIntervals)-1)],
			}
			if _, err := g.store.CreateGoal(ctx, in); err != nil {
				return created, fmt.Errorf("ошибка при добавлении цели: %w", err)
			}
			created++
		}
	}
	return created, nil
}

func randomType(f *gofakeit.Faker) models.TransactionType {
	if f.Bool() {
		return models.TypeIncome
	}
	return models.TypeExpense
}
