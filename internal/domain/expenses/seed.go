package expenses

import (
	"context"
	"strconv"
)

type sampleExpense struct {
	category string
	input    ExpenseInput
}

var sampleCategories = []string{"Food", "Clothing", "Entertainment"}

var sampleExpenses = []sampleExpense{
	{category: "Food", input: ExpenseInput{Name: "Dominos Pizza", Amount: "20.50", PurchaseDate: "2024-04-20"}},
	{category: "Clothing", input: ExpenseInput{Name: "Jeans", Amount: "15.75", PurchaseDate: "2024-04-21"}},
	{category: "Entertainment", input: ExpenseInput{Name: "Broadway Show", Amount: "100.00", PurchaseDate: "2024-04-22"}},
}

// SeedResult counts what SeedSampleData inserted.
type SeedResult struct {
	Categories int
	Expenses   int
}

// SeedSampleData inserts the sample categories and their expenses. A sample
// category whose name already exists is skipped together with its expenses,
// so running it twice changes nothing.
func (s *Service) SeedSampleData(ctx context.Context) (SeedResult, error) {
	var result SeedResult

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		existing, err := tx.ListCategories(ctx)
		if err != nil {
			return err
		}
		known := make(map[string]bool, len(existing))
		for _, category := range existing {
			known[category.Name] = true
		}

		created := make(map[string]int64)
		for _, name := range sampleCategories {
			if known[name] {
				continue
			}
			category := Category{Name: name}
			if err := tx.CreateCategory(ctx, &category); err != nil {
				return err
			}
			created[name] = category.ID
			result.Categories++
		}

		for _, sample := range sampleExpenses {
			categoryID, ok := created[sample.category]
			if !ok {
				continue
			}
			input := sample.input
			input.CategoryID = strconv.FormatInt(categoryID, 10)
			expense, err := parseExpenseInput(input)
			if err != nil {
				return err
			}
			if err := tx.CreateExpense(ctx, &expense); err != nil {
				return err
			}
			result.Expenses++
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}

	if result.Categories > 0 {
		s.invalidateCategories()
	}
	return result, nil
}
