package handler

import (
	"net/http"

	expensesdomain "expenses-app-go/internal/domain/expenses"
)

type indexView struct {
	Categories []expensesdomain.Category
	Expenses   []expensesdomain.ExpenseWithCategory
}

type addView struct {
	Categories []expensesdomain.Category
}

type editView struct {
	Expense            *expensesdomain.Expense
	Categories         []expensesdomain.Category
	SelectedCategoryID int64
}

func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Expenses.ListCategories(r.Context())
	if err != nil {
		h.fail(w, r, "expenses.index", err)
		return
	}
	expenses, err := h.Expenses.ListExpenses(r.Context())
	if err != nil {
		h.fail(w, r, "expenses.index", err)
		return
	}

	h.render(w, r, http.StatusOK, "index", indexView{Categories: categories, Expenses: expenses})
}

func (h *Handlers) AddExpensePage(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Expenses.ListCategories(r.Context())
	if err != nil {
		h.fail(w, r, "expenses.add_page", err)
		return
	}

	h.render(w, r, http.StatusOK, "add", addView{Categories: categories})
}

func (h *Handlers) AddExpense(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid form")
		return
	}

	expense, err := h.Expenses.CreateExpense(r.Context(), expenseInputFromForm(r))
	if err != nil {
		h.fail(w, r, "expenses.create", err)
		return
	}

	h.log.Debug("expenses.create: created", "expense_id", expense.ID)
	redirect(w, r, "/")
}

func (h *Handlers) EditExpensePage(w http.ResponseWriter, r *http.Request) {
	expenseID, err := idParam(r, "id")
	if err != nil {
		h.fail(w, r, "expenses.edit_page", expensesdomain.ErrExpenseNotFound)
		return
	}

	expense, err := h.Expenses.GetExpense(r.Context(), expenseID)
	if err != nil {
		h.fail(w, r, "expenses.edit_page", err, "expense_id", expenseID)
		return
	}
	categories, err := h.Expenses.ListCategories(r.Context())
	if err != nil {
		h.fail(w, r, "expenses.edit_page", err, "expense_id", expenseID)
		return
	}

	view := editView{Expense: expense, Categories: categories}
	if expense.CategoryID != nil {
		view.SelectedCategoryID = *expense.CategoryID
	}
	h.render(w, r, http.StatusOK, "edit", view)
}

func (h *Handlers) EditExpense(w http.ResponseWriter, r *http.Request) {
	expenseID, err := idParam(r, "id")
	if err != nil {
		h.fail(w, r, "expenses.update", expensesdomain.ErrExpenseNotFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid form")
		return
	}

	if _, err := h.Expenses.UpdateExpense(r.Context(), expenseID, expenseInputFromForm(r)); err != nil {
		h.fail(w, r, "expenses.update", err, "expense_id", expenseID)
		return
	}

	redirect(w, r, "/")
}

func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	expenseID, err := idParam(r, "id")
	if err != nil {
		h.fail(w, r, "expenses.delete", expensesdomain.ErrExpenseNotFound)
		return
	}

	if err := h.Expenses.DeleteExpense(r.Context(), expenseID); err != nil {
		h.fail(w, r, "expenses.delete", err, "expense_id", expenseID)
		return
	}

	redirect(w, r, "/")
}
