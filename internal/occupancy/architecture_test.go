package occupancy

import (
	"testing"

	"opsdesk/testutil"
)

func TestNoStorageImports(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.StorageImport, "occupancy derives from in-memory views only")
}
