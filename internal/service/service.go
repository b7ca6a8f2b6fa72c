// Package service holds the workflows behind the HTTP handlers. Every method
// returns either a result or a *domain.Error.
package service

import (
	"errors" // Sentinel matching

	"stock_management/internal/domain"     // Domain models and errors
	"stock_management/internal/repository" // Storage interfaces

	"github.com/google/uuid" // Record IDs
)

func newID() string { return uuid.NewString() }

// productLockKey names the critical section guarding one product's stock
func productLockKey(id string) string { return "product:" + id }

// storeError turns a repository failure about entity into a workflow error.
// field names the unique key reported on duplicates.
func storeError(entity, field string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return domain.NotFound(entity)
	case errors.Is(err, repository.ErrDuplicate):
		return domain.Conflict(entity, field)
	case errors.Is(err, repository.ErrOutOfStock):
		return domain.OutOfStock()
	default:
		return domain.Internal("Failed to access "+entity+" store", err)
	}
}

// exists reports whether a lookup found its record, separating "missing"
// from store failures
func exists(entity string, err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repository.ErrNotFound):
		return false, nil
	default:
		return false, domain.Internal("Failed to access "+entity+" store", err)
	}
}
