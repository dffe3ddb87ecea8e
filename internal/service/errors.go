package service

import (
	"errors"
	"fmt"

	"medipred/internal/model"
)

var (
	ErrNotFound     = errors.New("prediction not found")
	ErrUnauthorized = errors.New("not authorized to access this prediction")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// StoreError reports a persistence failure. For assessments the scoring
// result is still valid and is carried along so the caller can show it or
// retry the write without rescoring.
type StoreError struct {
	Op     string
	Err    error
	Result *model.PredictionResult
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("prediction store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
