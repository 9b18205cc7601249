// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package health

import "time"

// Metrics exposes the call history of one federated data source for
// monitoring and operator visibility. All fields are point-in-time snapshots
// safe to serialize to JSON.
type Metrics struct {
	Source        string     `json:"source"`
	Calls         int64      `json:"calls"`
	FailureCount  int64      `json:"failure_count"`
	LastError     string     `json:"last_error,omitempty"`
	LastFailureAt *time.Time `json:"last_failure_at,omitempty"`
	LastSuccessAt *time.Time `json:"last_success_at,omitempty"`
	Available     bool       `json:"available"`
}
