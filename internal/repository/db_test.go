package repository

import (
	"errors"
	"testing"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateConstraintErr(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{
			name: "Duplicate email constraint",
			input: &pgconn.PgError{
				Code:           "23505",
				ConstraintName: "customers_email_key",
			},
			expected: model.ErrDuplicateEmail,
		},
		{
			name: "Duplicate product name constraint",
			input: &pgconn.PgError{
				Code:           "23505",
				ConstraintName: "products_name_key",
			},
			expected: model.ErrDuplicateProductName,
		},
		{
			name: "Duplicate category name constraint",
			input: &pgconn.PgError{
				Code:           "23505",
				ConstraintName: "categories_name_key",
			},
			expected: model.ErrDuplicateCategoryName,
		},
		{
			name: "Unknown constraint passes through",
			input: &pgconn.PgError{
				Code:           "23505",
				ConstraintName: "some_other_key",
			},
		},
		{
			name: "Non-unique-violation passes through",
			input: &pgconn.PgError{
				Code:           "23503",
				ConstraintName: "products_category_id_fkey",
			},
		},
		{
			name:  "Plain error passes through",
			input: errors.New("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := translateConstraintErr(tt.input)
			if tt.expected != nil {
				assert.Equal(t, tt.expected, result)
			} else {
				assert.Equal(t, tt.input, result)
			}
		})
	}
}
