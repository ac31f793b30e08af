package repository

import (
	"errors"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error code for unique constraint violations.
const uniqueViolationCode = "23505"

// constraintErrors maps schema constraint names to the domain errors
// surfaced as 409 conflicts.
var constraintErrors = map[string]*model.DomainError{
	"customers_email_key":  model.ErrDuplicateEmail,
	"products_name_key":    model.ErrDuplicateProductName,
	"categories_name_key":  model.ErrDuplicateCategoryName,
	"one_cart_per_customer": model.NewDomainError(
		model.ErrCodeInternalError,
		"Customer already has an open cart.",
	),
}

// translateConstraintErr converts a unique-violation error from the
// database into the matching domain error. Other errors pass through
// unchanged.
func translateConstraintErr(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return err
	}

	if domainErr, ok := constraintErrors[pgErr.ConstraintName]; ok {
		return domainErr
	}

	return err
}
