package expenses

import "time"

type CategoriesCache interface {
	Get() ([]Category, bool)
	Set(categories []Category, ttl time.Duration)
	Delete()
}

type noopCategoriesCache struct{}

func (noopCategoriesCache) Get() ([]Category, bool) {
	return nil, false
}

func (noopCategoriesCache) Set([]Category, time.Duration) {}

func (noopCategoriesCache) Delete() {}
