package domain

import (
	"testing"

	"opsdesk/testutil"
)

// TestDomainDoesNotImportInternal keeps the record types free of store,
// persistence and transport packages so every layer can depend on them.
func TestDomainDoesNotImportInternal(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.InternalImport, "domain must not depend on internal packages")
}
