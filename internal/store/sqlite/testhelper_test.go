// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package sqlite_test

import (
	"path/filepath"
	"testing"
)

// testDBPath returns a temp SQLite database path.
func testDBPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name+".db")
}
