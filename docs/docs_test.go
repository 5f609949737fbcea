package docs

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

var routerLine = regexp.MustCompile(`@Router\s+(\S+)\s+\[(\w+)\]`)

type route struct{ path, method string }

// annotatedRoutes collects every @Router annotation under root.
func annotatedRoutes(t *testing.T, root string) []route {
	t.Helper()
	var routes []route
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return err
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, m := range routerLine.FindAllStringSubmatch(string(src), -1) {
			routes = append(routes, route{path: m[1], method: strings.ToLower(m[2])})
		}
		return nil
	})
	require.NoError(t, err)
	return routes
}

func TestDocCoversAnnotatedRoutes(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		BasePath string                                `json:"basePath"`
		Paths    map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc), "rendered doc must be valid JSON")
	assert.Equal(t, "/api/v1", doc.BasePath)

	routes := annotatedRoutes(t, filepath.Join("..", "internal"))
	require.NotEmpty(t, routes)
	for _, r := range routes {
		ops, ok := doc.Paths[r.path]
		if !assert.True(t, ok, "path %s missing from doc", r.path) {
			continue
		}
		assert.Contains(t, ops, r.method, "%s %s missing from doc", strings.ToUpper(r.method), r.path)
	}
}
