package model

import "github.com/m-mizutani/relmake/pkg/domain/types"

// Result represents the outcome of one delegated operation
type Result struct {
	Name   string       // Human readable operation name
	Status types.Status // Outcome status
	Code   int          // Exit code when the operation was a subprocess
	Value  string       // Operation specific value (new version, release URL, ...)
	Output string       // Captured output, if any
}

// NewResult creates a successful result
func NewResult(name string) *Result {
	return &Result{
		Name:   name,
		Status: types.StatusOK,
	}
}

// WithValue sets the value and returns the result
func (r *Result) WithValue(value string) *Result {
	r.Value = value
	return r
}

// OK reports whether the operation succeeded
func (r *Result) OK() bool {
	return r.Status == types.StatusOK
}
