// FILE: loglens/src/internal/version/version_test.go
package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "v1.2.3"
	assert.Equal(t, "v1.2.3", Short())
	assert.Contains(t, String(), "loglens v1.2.3")
	assert.Contains(t, String(), runtime.Version())
}
