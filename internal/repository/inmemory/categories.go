package inmemory

import (
	"sync"
	"time"

	expensesdomain "expenses-app-go/internal/domain/expenses"
)

type InMemoryCategoriesCache struct {
	mu        sync.RWMutex
	value     []expensesdomain.Category
	expiresAt time.Time
	now       func() time.Time
}

func NewInMemoryCategoriesCache() *InMemoryCategoriesCache {
	return &InMemoryCategoriesCache{now: time.Now}
}

func (c *InMemoryCategoriesCache) Get() ([]expensesdomain.Category, bool) {
	now := c.now()

	c.mu.RLock()
	value, expiresAt := c.value, c.expiresAt
	c.mu.RUnlock()
	if value == nil {
		return nil, false
	}

	if !expiresAt.After(now) {
		c.mu.Lock()
		if c.value != nil && !c.expiresAt.After(now) {
			c.value = nil
		}
		c.mu.Unlock()
		return nil, false
	}

	return cloneCategories(value), true
}

func (c *InMemoryCategoriesCache) Set(categories []expensesdomain.Category, ttl time.Duration) {
	if ttl <= 0 {
		c.Delete()
		return
	}

	value := cloneCategories(categories)
	if value == nil {
		value = []expensesdomain.Category{}
	}

	c.mu.Lock()
	c.value = value
	c.expiresAt = c.now().Add(ttl)
	c.mu.Unlock()
}

func (c *InMemoryCategoriesCache) Delete() {
	c.mu.Lock()
	c.value = nil
	c.mu.Unlock()
}

func cloneCategories(categories []expensesdomain.Category) []expensesdomain.Category {
	if categories == nil {
		return nil
	}
	cloned := make([]expensesdomain.Category, len(categories))
	copy(cloned, categories)
	return cloned
}
