package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo(t *testing.T) {
	info := Info()
	assert.Contains(t, info, Name, "Info() should contain the product name")
	assert.Contains(t, info, runtime.Version(), "Info() should contain the Go version")
}

func TestShort(t *testing.T) {
	assert.Equal(t, "dev", Short(), "default version")
}

func TestMap(t *testing.T) {
	m := Map()

	for _, key := range []string{"version", "git_commit", "build_date", "go_version", "os", "arch"} {
		assert.Contains(t, m, key)
	}
	assert.Equal(t, "dev", m["version"])
	assert.Equal(t, runtime.Version(), m["go_version"])
}
