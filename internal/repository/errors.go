// Package repository provides data access layer implementations for the application.
package repository

import (
	"errors"

	"postboard/internal/middleware"
	"postboard/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes the store reports for constraint violations.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || pgCode(err) == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated) || pgCode(err) == pgForeignKeyViolation
}

// translate maps a store error onto the application taxonomy.
// notFound is returned for missing rows and dangling references; conflict for uniqueness violations.
// Everything else becomes an internal error wrapping the cause.
func translate(operation string, err error, notFound, conflict *models.AppError) error {
	if err == nil {
		return nil
	}

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case notFound != nil && (errors.Is(err, gorm.ErrRecordNotFound) || isForeignKeyViolation(err)):
		middleware.StoreErrors.WithLabelValues(operation, models.CodeNotFound).Inc()
		notFound.Err = err
		return notFound
	case conflict != nil && isUniqueViolation(err):
		middleware.StoreErrors.WithLabelValues(operation, models.CodeConflict).Inc()
		conflict.Err = err
		return conflict
	default:
		middleware.StoreErrors.WithLabelValues(operation, models.CodeInternal).Inc()
		return models.NewInternalError(err)
	}
}
