package cache

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/valeriaulyamaeva/finance-tracker/models"
)

type CategoryStore interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id int) error
}

const allCategoriesKey = "categories:all"

// Categories кэширует список категорий поверх хранилища.
// Любое изменение категорий сбрасывает кэш.
type Categories struct {
	CategoryStore
	lru *LRUCache[[]models.Category]

	mu         sync.Mutex
	generation uint64
}

func NewCategories(store CategoryStore, ttl time.Duration) *Categories {
	return &Categories{CategoryStore: store, lru: NewLRUCache[[]models.Category](1, ttl)}
}

// ListCategories отдает копию кэшированного списка или читает хранилище.
func (c *Categories) ListCategories(ctx context.Context) ([]models.Category, error) {
	if cached, ok := c.lru.Get(allCategoriesKey); ok {
		return slices.Clone(cached), nil
	}

	c.mu.Lock()
	generation := c.generation
	c.mu.Unlock()

	categories, err := c.CategoryStore.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	// Список, прочитанный до сброса кэша, может быть устаревшим.
	c.mu.Lock()
	if c.generation == generation {
		c.lru.Set(allCategoriesKey, slices.Clone(categories))
	}
	c.mu.Unlock()
	return categories, nil
}

func (c *Categories) CreateCategory(ctx context.Context, category *models.Category) error {
	defer c.Invalidate()
	return c.CategoryStore.CreateCategory(ctx, category)
}

func (c *Categories) UpdateCategory(ctx context.Context, category *models.Category) error {
	defer c.Invalidate()
	return c.CategoryStore.UpdateCategory(ctx, category)
}

func (c *Categories) DeleteCategory(ctx context.Context, id int) error {
	defer c.Invalidate()
	return c.CategoryStore.DeleteCategory(ctx, id)
}

// Invalidate сбрасывает кэш.
func (c *Categories) Invalidate() {
	c.mu.Lock()
	c.generation++
	c.lru.Clear()
	c.mu.Unlock()
}

// CleanExpired удаляет просроченный список.
func (c *Categories) CleanExpired() int {
	return c.lru.CleanExpired()
}
