package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HerbHall/plantmatch/internal/catalog"
	"github.com/HerbHall/plantmatch/internal/testutil"
	pkgcatalog "github.com/HerbHall/plantmatch/pkg/catalog"
)

func testEngine() *catalog.Engine {
	return catalog.NewEngine(pkgcatalog.NewCatalogFromPlants([]pkgcatalog.Plant{
		testutil.NewPlant(
			testutil.WithID(1),
			testutil.WithLatin("Sansevieria trifasciata"),
			testutil.WithCommon("Snake plant"),
			testutil.WithClimate("Arid"),
			testutil.WithLight("Direct sunlight", "Shade"),
			testutil.WithMBTI("ISTP"),
		),
		testutil.NewPlant(
			testutil.WithID(2),
			testutil.WithLatin("Monstera deliciosa"),
			testutil.WithCommon("Monstera"),
			testutil.WithClimate("Tropical humid"),
		),
		testutil.NewPlant(
			testutil.WithID(3),
			testutil.WithLatin("Calathea orbifolia"),
			testutil.WithCommon("Calathea"),
			testutil.WithClimate("Tropical humid"),
			testutil.WithMBTI("INFP"),
		),
	}))
}

func connect(t *testing.T) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	server := NewServer(testEngine(), testutil.Logger(t))
	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func callText(t *testing.T, cs *mcp.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return text.Text, res.IsError
}

func TestListTools(t *testing.T) {
	cs := connect(t)

	res, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)
	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"recommend_plants", "get_plant", "catalog_summary"}, names)
}

func TestRecommendPlants(t *testing.T) {
	cs := connect(t)

	text, isErr := callText(t, cs, "recommend_plants", map[string]any{"climate": "tropical", "limit": 1})
	require.False(t, isErr, text)

	var out RecommendOutput
	require.NoError(t, json.Unmarshal([]byte(text), &out))
	assert.True(t, out.HasActiveFilter)
	assert.Equal(t, 2, out.Total)
	require.Len(t, out.Plants, 1)
	// Equal scores fall back to latin order.
	assert.Equal(t, "Calathea orbifolia", out.Plants[0].Latin)
	assert.InDelta(t, 100, out.Plants[0].Percent, 1e-9)
	assert.Equal(t, "perfect", out.Plants[0].Band)
	assert.Equal(t, []string{"climate"}, out.Plants[0].MatchedFactors)
}

func TestRecommendPlantsNoFilter(t *testing.T) {
	cs := connect(t)

	text, isErr := callText(t, cs, "recommend_plants", map[string]any{"light": "-"})
	require.False(t, isErr, text)

	var out RecommendOutput
	require.NoError(t, json.Unmarshal([]byte(text), &out))
	assert.False(t, out.HasActiveFilter)
	assert.Len(t, out.Plants, 3)
	for _, p := range out.Plants {
		assert.Empty(t, p.Band)
	}
}

func TestGetPlant(t *testing.T) {
	cs := connect(t)

	text, isErr := callText(t, cs, "get_plant", map[string]any{"id": 2})
	require.False(t, isErr, text)
	var p pkgcatalog.Plant
	require.NoError(t, json.Unmarshal([]byte(text), &p))
	assert.Equal(t, "Monstera deliciosa", p.Latin)

	text, isErr = callText(t, cs, "get_plant", map[string]any{"id": 404})
	assert.True(t, isErr)
	assert.Contains(t, text, "no plant with id 404")
}

func TestCatalogSummary(t *testing.T) {
	cs := connect(t)

	text, isErr := callText(t, cs, "catalog_summary", map[string]any{})
	require.False(t, isErr)
	lines := strings.Split(strings.TrimSpace(text), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "#1 | Snake plant"), lines[0])
}

func TestHTTPHandler(t *testing.T) {
	srv := httptest.NewServer(NewHTTPHandler(NewServer(testEngine(), testutil.Logger(t))))
	defer srv.Close()

	ctx := context.Background()
	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, &mcp.StreamableClientTransport{Endpoint: srv.URL, HTTPClient: http.DefaultClient}, nil)
	require.NoError(t, err)
	defer cs.Close()

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{Name: "get_plant", Arguments: map[string]any{"id": 1}})
	require.NoError(t, err)
	assert.False(t, res.IsError)
}
