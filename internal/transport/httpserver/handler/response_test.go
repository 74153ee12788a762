package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	expensesdomain "expenses-app-go/internal/domain/expenses"
	reportdomain "expenses-app-go/internal/domain/report"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		err      error
		status   int
		code     string
		internal bool
	}{
		{expensesdomain.ErrInvalidAmount, http.StatusBadRequest, "invalid_request", false},
		{fmt.Errorf("date_start: %w", expensesdomain.ErrInvalidDate), http.StatusBadRequest, "invalid_request", false},
		{expensesdomain.ErrExpenseNotFound, http.StatusNotFound, "not_found", false},
		{expensesdomain.ErrCategoryNotFound, http.StatusNotFound, "not_found", false},
		{expensesdomain.ErrCategoryInUse, http.StatusConflict, "conflict", false},
		{fmt.Errorf("expense 4: %w", reportdomain.ErrDanglingCategory), http.StatusInternalServerError, "data_integrity", true},
		{errors.New("connection refused"), http.StatusInternalServerError, "internal_error", true},
	}

	for _, tc := range cases {
		f := classify(tc.err)
		assert.Equal(t, tc.status, f.status, tc.err.Error())
		assert.Equal(t, tc.code, f.code, tc.err.Error())
		assert.Equal(t, tc.internal, f.internal, tc.err.Error())
	}
}

func TestClassifyHidesInternalDetails(t *testing.T) {
	f := classify(errors.New("pq: password authentication failed"))
	assert.Equal(t, "internal error", f.message)
}
