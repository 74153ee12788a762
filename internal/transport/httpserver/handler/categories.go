package handler

import (
	"errors"
	"net/http"

	expensesdomain "expenses-app-go/internal/domain/expenses"
)

var errUnknownAction = errors.New("unknown action")

type categoriesView struct {
	Categories []expensesdomain.Category
}

func (h *Handlers) CategoriesPage(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Expenses.ListCategories(r.Context())
	if err != nil {
		h.fail(w, r, "categories.list", err)
		return
	}

	h.render(w, r, http.StatusOK, "categories", categoriesView{Categories: categories})
}

// EditCategory dispatches the category form on its action field.
func (h *Handlers) EditCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid form")
		return
	}

	action := r.PostFormValue("action")
	switch action {
	case "add":
		category, err := h.Expenses.CreateCategory(r.Context(), r.PostFormValue("new_category"))
		if err != nil {
			h.fail(w, r, "categories.create", err)
			return
		}
		h.log.Debug("categories.create: created", "category_id", category.ID)
	case "edit":
		categoryID, err := expensesdomain.ParseID(r.PostFormValue("category_id"))
		if err != nil {
			h.fail(w, r, "categories.rename", err)
			return
		}
		if _, err := h.Expenses.RenameCategory(r.Context(), categoryID, r.PostFormValue("new_name")); err != nil {
			h.fail(w, r, "categories.rename", err, "category_id", categoryID)
			return
		}
	case "delete":
		categoryID, err := expensesdomain.ParseID(r.PostFormValue("category_id"))
		if err != nil {
			h.fail(w, r, "categories.delete", err)
			return
		}
		if err := h.Expenses.DeleteCategory(r.Context(), categoryID); err != nil {
			h.fail(w, r, "categories.delete", err, "category_id", categoryID)
			return
		}
	default:
		h.log.BusinessError("categories.edit: unknown action", errUnknownAction, "action", action)
		h.renderError(w, r, http.StatusBadRequest, errUnknownAction.Error())
		return
	}

	redirect(w, r, "/edit_category")
}
