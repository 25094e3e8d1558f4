package kpi

import (
	"testing"

	"opsdesk/testutil"
)

func TestNoStorageImports(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.StorageImport, "kpi derives from in-memory views only")
}
