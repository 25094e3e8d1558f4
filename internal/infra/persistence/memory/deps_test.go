package memory

import (
	"go/build"
	"strings"
	"testing"
)

var allowedInternalImports = map[string]struct{}{
	"opsdesk/pkg/domain":         {},
	"opsdesk/internal/occupancy": {},
}

func TestImportsAreDomainOrStdlib(t *testing.T) {
	pkg, err := build.Default.ImportDir(".", 0)
	if err != nil {
		t.Fatalf("import dir: %v", err)
	}
	for _, imp := range pkg.Imports {
		if !strings.HasPrefix(imp, "opsdesk/") {
			continue
		}
		if _, ok := allowedInternalImports[imp]; ok {
			continue
		}
		t.Fatalf("unexpected dependency: %s", imp)
	}
}
