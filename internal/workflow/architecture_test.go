package workflow

import (
	"testing"

	"opsdesk/testutil"
)

func TestNoStorageImports(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.StorageImport, "workflow derives from in-memory views only")
}
