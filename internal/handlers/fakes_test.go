package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/finance-tracker/internal/database"
	"github.com/valeriaulyamaeva/finance-tracker/internal/goals"
	"github.com/valeriaulyamaeva/finance-tracker/models"
)

// memStore — хранилище в памяти для тестов обработчиков.
type memStore struct {
	mu sync.Mutex

	wallets      map[int]models.Wallet
	categories   []models.Category
	transactions []models.Transaction
	goals        map[int]models.Goal
	progress     map[int]decimal.Decimal
	nextID       int

	walletErr   error
	txErr       error
	monthCount  int
	countFrom   models.Date
	countTo     models.Date
	listLimit   int
	lastTxInput models.TransactionInput
}

func newMemStore() *memStore {
	return &memStore{
		wallets:  map[int]models.Wallet{},
		goals:    map[int]models.Goal{},
		progress: map[int]decimal.Decimal{},
		nextID:   100,
	}
}

func (m *memStore) ListWallets(context.Context) ([]models.Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Wallet, 0, len(m.wallets))
	for _, w := range m.wallets {
		out = append(out, w)
	}
	return out, nil
}

func (m *memStore) GetWallet(_ context.Context, id int) (*models.Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.wallets[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &w, nil
}

func (m *memStore) CreateWallet(_ context.Context, wallet *models.Wallet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.walletErr != nil {
		return m.walletErr
	}
	m.nextID++
	wallet.ID = m.nextID
	m.wallets[wallet.ID] = *wallet
	return nil
}

func (m *memStore) UpdateWallet(_ context.Context, wallet *models.Wallet) (*models.Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.wallets[wallet.ID]; !ok {
		return nil, database.ErrNotFound
	}
	m.wallets[wallet.ID] = *wallet
	return wallet, nil
}

func (m *memStore) DeleteWallet(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.wallets[id]; !ok {
		return database.ErrNotFound
	}
	delete(m.wallets, id)
	return nil
}

func (m *memStore) ListCategories(context.Context) ([]models.Category, error) {
	return m.categories, nil
}

func (m *memStore) CreateCategory(_ context.Context, category *models.Category) error {
	m.nextID++
	category.ID = m.nextID
	m.categories = append(m.categories, *category)
	return nil
}

func (m *memStore) UpdateCategory(_ context.Context, category *models.Category) error {
	for i, c := range m.categories {
		if c.ID == category.ID {
			m.categories[i] = *category
			return nil
		}
	}
	return database.ErrNotFound
}

func (m *memStore) DeleteCategory(_ context.Context, id int) error {
	for i, c := range m.categories {
		if c.ID == id {
			m.categories = append(m.categories[:i], m.categories[i+1:]...)
			return nil
		}
	}
	return database.ErrNotFound
}

func (m *memStore) ListTransactions(_ context.Context, walletID, limit int) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listLimit = limit
	out := []models.Transaction{}
	for _, tr := range m.transactions {
		if tr.WalletID == walletID {
			out = append(out, tr)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) CreateTransaction(_ context.Context, in models.TransactionInput) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastTxInput = in
	if m.txErr != nil {
		return nil, m.txErr
	}
	m.nextID++
	tr := models.Transaction{
		ID:          m.nextID,
		WalletID:    in.WalletID,
		Description: in.Description,
		Amount:      in.Amount,
		Type:        in.Type,
		Date:        in.Date,
		Categories:  []models.CategoryRef{},
	}
	m.transactions = append(m.transactions, tr)
	return &tr, nil
}

func (m *memStore) UpdateTransaction(_ context.Context, id int, in models.TransactionInput) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastTxInput = in
	if m.txErr != nil {
		return nil, m.txErr
	}
	for i, tr := range m.transactions {
		if tr.ID == id && tr.WalletID == in.WalletID {
			tr.Description, tr.Amount, tr.Type, tr.Date = in.Description, in.Amount, in.Type, in.Date
			m.transactions[i] = tr
			return &tr, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *memStore) DeleteTransaction(_ context.Context, id, walletID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, tr := range m.transactions {
		if tr.ID == id && tr.WalletID == walletID {
			m.transactions = append(m.transactions[:i], m.transactions[i+1:]...)
			return nil
		}
	}
	return database.ErrNotFound
}

func (m *memStore) CountTransactions(_ context.Context, _ int, from, to models.Date) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.countFrom, m.countTo = from, to
	return m.monthCount, nil
}

func (m *memStore) CountEntities(context.Context) (int, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.wallets), len(m.categories), nil
}

func (m *memStore) ListGoals(_ context.Context, walletID int) ([]models.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Goal
	for id := 0; id <= m.nextID; id++ {
		if g, ok := m.goals[id]; ok && g.WalletID == walletID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (m *memStore) GetGoal(_ context.Context, id, walletID int) (*models.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[id]
	if !ok || g.WalletID != walletID {
		return nil, database.ErrNotFound
	}
	return &g, nil
}

func (m *memStore) SumProgress(_ context.Context, windows []goals.Window) (map[int]decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[int]decimal.Decimal, len(windows))
	for _, w := range windows {
		if p, ok := m.progress[w.GoalID]; ok {
			out[w.GoalID] = p
		}
	}
	return out, nil
}

func (m *memStore) CreateGoal(_ context.Context, in models.GoalInput) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.wallets[in.WalletID]; !ok {
		return 0, database.ErrInvalidReference
	}
	m.nextID++
	m.goals[m.nextID] = goalFromInput(m.nextID, in)
	return m.nextID, nil
}

func (m *memStore) UpdateGoal(_ context.Context, id int, in models.GoalInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[id]
	if !ok || g.WalletID != in.WalletID {
		return database.ErrNotFound
	}
	m.goals[id] = goalFromInput(id, in)
	return nil
}

func (m *memStore) DeleteGoal(_ context.Context, id, walletID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[id]
	if !ok || g.WalletID != walletID {
		return database.ErrNotFound
	}
	delete(m.goals, id)
	return nil
}

func goalFromInput(id int, in models.GoalInput) models.Goal {
	return models.Goal{
		ID:           id,
		WalletID:     in.WalletID,
		Name:         in.Name,
		Type:         in.Type,
		TargetAmount: in.TargetAmount,
		StartDate:    in.StartDate,
		IntervalDays: in.IntervalDays,
	}
}

type sentEvent struct {
	key   string
	event any
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []sentEvent
}

func (n *recordingNotifier) Notify(_ context.Context, key string, event any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, sentEvent{key: key, event: event})
}

func clockAt(d models.Date) func() models.Date {
	return func() models.Date { return d }
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// do выполняет запрос к роутеру. body сериализуется в JSON, строка
// отправляется как есть.
func do(t *testing.T, r http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("ошибка сериализации тела: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeObject(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("ответ не является JSON-объектом: %v, тело: %s", err, w.Body.String())
	}
	return out
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("ответ не является JSON-массивом: %v, тело: %s", err, w.Body.String())
	}
	return out
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("ожидался статус %d, получен %d: %s", want, w.Code, w.Body.String())
	}
}
