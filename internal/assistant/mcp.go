// Package assistant exposes the plant catalog and recommendation engine to
// the chat assistant over the Model Context Protocol.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/HerbHall/plantmatch/internal/catalog"
	"github.com/HerbHall/plantmatch/internal/recommend"
	"github.com/HerbHall/plantmatch/internal/version"
)

// DefaultLimit is how many plants recommend_plants returns when the caller
// does not ask for a specific number.
const DefaultLimit = 10

// RecommendInput is the argument of the recommend_plants tool.
type RecommendInput struct {
	Light     string `json:"light,omitempty" jsonschema:"light available, e.g. bright indirect or shade"`
	Climate   string `json:"climate,omitempty" jsonschema:"climate the plant should suit, e.g. tropical"`
	Aesthetic string `json:"aesthetic,omitempty" jsonschema:"intended use, e.g. table top or hanging"`
	Watering  string `json:"watering,omitempty" jsonschema:"watering preference: light, moderate or frequent"`
	MBTI      string `json:"mbti,omitempty" jsonschema:"MBTI personality type, e.g. INFJ"`
	Limit     int    `json:"limit,omitempty" jsonschema:"maximum number of plants to return"`
}

// PlantInput is the argument of the get_plant tool.
type PlantInput struct {
	ID int `json:"id" jsonschema:"catalog plant id"`
}

// Recommendation is one entry of the recommend_plants result.
type Recommendation struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Latin          string   `json:"latin"`
	Percent        float64  `json:"percent"`
	Band           string   `json:"band,omitempty"`
	MBTIMatch      bool     `json:"mbti_match"`
	MatchedFactors []string `json:"matched_factors"`
}

// RecommendOutput is the recommend_plants result.
type RecommendOutput struct {
	HasActiveFilter bool             `json:"has_active_filter"`
	Total           int              `json:"total"`
	Plants          []Recommendation `json:"plants"`
}

// NewServer builds the MCP server with the catalog tools registered.
func NewServer(engine *catalog.Engine, logger *zap.Logger) *mcp.Server {
	t := &tools{engine: engine, logger: logger}

	s := mcp.NewServer(&mcp.Implementation{
		Name:    "plantmatch",
		Version: version.Short(),
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "recommend_plants",
		Description: "Rank catalog plants against the user's light, climate, aesthetic, watering and MBTI preferences. Returns the best matches with match percentages.",
	}, t.recommend)
	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_plant",
		Description: "Return the full catalog record of one plant by id.",
	}, t.plant)
	mcp.AddTool(s, &mcp.Tool{
		Name:        "catalog_summary",
		Description: "Return a one-line-per-plant summary of the whole catalog.",
	}, t.summary)

	return s
}

// NewHTTPHandler serves s over streamable HTTP without session state.
func NewHTTPHandler(s *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s
	}, &mcp.StreamableHTTPOptions{Stateless: true})
}

// RunStdio serves s over stdin/stdout until ctx is done or the client
// disconnects.
func RunStdio(ctx context.Context, s *mcp.Server) error {
	if err := s.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("assistant: mcp stdio: %w", err)
	}
	return nil
}

type tools struct {
	engine *catalog.Engine
	logger *zap.Logger
}

func (t *tools) recommend(_ context.Context, _ *mcp.CallToolRequest, in RecommendInput) (*mcp.CallToolResult, any, error) {
	f := catalog.FilterFromValues(in.Light, in.Climate, in.Aesthetic, in.Watering, in.MBTI)
	res, err := t.engine.Recommend(f, "")
	if err != nil {
		t.logger.Error("recommend_plants failed", zap.Error(err))
		return nil, nil, fmt.Errorf("load catalog: %w", err)
	}

	limit := in.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	out := RecommendOutput{
		HasActiveFilter: res.HasActiveFilter,
		Total:           res.Count,
		Plants:          make([]Recommendation, 0, min(limit, len(res.Plants))),
	}
	for i := range res.Plants {
		if i == limit {
			break
		}
		out.Plants = append(out.Plants, toRecommendation(&res.Plants[i]))
	}
	return jsonResult(out)
}

func toRecommendation(sp *recommend.ScoredPlant) Recommendation {
	r := Recommendation{
		ID:             sp.ID,
		Name:           sp.DisplayName(),
		Latin:          sp.Latin,
		Percent:        sp.Percent(),
		MBTIMatch:      sp.MBTIMatch,
		MatchedFactors: sp.MatchedFactors,
	}
	if sp.HasActiveFilter {
		if b, ok := recommend.BandFor(sp.NormalizedScore); ok {
			r.Band = string(b)
		}
	}
	return r
}

func (t *tools) plant(_ context.Context, _ *mcp.CallToolRequest, in PlantInput) (*mcp.CallToolResult, any, error) {
	p, err := t.engine.Plant(in.ID)
	if err != nil {
		if catalog.IsNotFound(err) {
			return nil, nil, fmt.Errorf("no plant with id %d", in.ID)
		}
		t.logger.Error("get_plant failed", zap.Int("id", in.ID), zap.Error(err))
		return nil, nil, fmt.Errorf("load catalog: %w", err)
	}
	return jsonResult(p)
}

func (t *tools) summary(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	plants, err := t.engine.Plants()
	if err != nil {
		t.logger.Error("catalog_summary failed", zap.Error(err))
		return nil, nil, fmt.Errorf("load catalog: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: catalog.ContextText(plants)}},
	}, nil, nil
}

func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, nil, fmt.Errorf("encode result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}
