package handler

import (
	"net/http"

	expensesdomain "expenses-app-go/internal/domain/expenses"
	"github.com/go-chi/chi/v5"
)

func idParam(r *http.Request, name string) (int64, error) {
	return expensesdomain.ParseID(chi.URLParam(r, name))
}

func expenseInputFromForm(r *http.Request) expensesdomain.ExpenseInput {
	return expensesdomain.ExpenseInput{
		Name:         r.PostFormValue("name"),
		Amount:       r.PostFormValue("amount"),
		PurchaseDate: r.PostFormValue("purchase_date"),
		CategoryID:   r.PostFormValue("category"),
	}
}
