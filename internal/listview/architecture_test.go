package listview

import (
	"testing"

	"opsdesk/testutil"
)

func TestNoStorageImports(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.StorageImport, "listview derives from in-memory views only")
}
