// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package store

import "errors"

// Sentinel errors for store operations.
// These errors can be checked using errors.Is() for classification.
var (
	// ErrInvalidInput indicates a triple that cannot be stored, such as a
	// literal subject.
	ErrInvalidInput = errors.New("invalid input")

	// ErrClosed indicates the store was used after Close.
	ErrClosed = errors.New("store closed")
)
