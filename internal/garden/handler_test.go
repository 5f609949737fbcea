package garden

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HerbHall/plantmatch/internal/auth"
	"github.com/HerbHall/plantmatch/internal/catalog"
	"github.com/HerbHall/plantmatch/internal/services"
	"github.com/HerbHall/plantmatch/internal/testutil"
	pkgcatalog "github.com/HerbHall/plantmatch/pkg/catalog"
)

// The handler resolves plants through the same engine the server wires.
var _ PlantLookup = (*catalog.Engine)(nil)

type testEnv struct {
	mux      *http.ServeMux
	verifier *auth.Verifier
	clock    *testutil.Clock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	clock := testutil.NewClock(time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC))
	repo := testutil.NewGardenRepository(t, clock)

	cat := pkgcatalog.NewCatalogFromPlants([]pkgcatalog.Plant{
		testutil.NewPlant(testutil.WithID(1), testutil.WithLatin("Aloe vera"), testutil.WithCommon("Aloe")),
		testutil.NewPlant(testutil.WithID(2), testutil.WithLatin("Ficus lyrata"), testutil.WithCommon("Fiddle-leaf fig")),
	})

	verifier := auth.NewVerifier("test-secret", "plantmatch")
	mux := http.NewServeMux()
	logger := testutil.Logger(t)
	NewHandler(repo, catalog.NewEngine(cat), auth.NewMiddleware(verifier, logger), logger).RegisterRoutes(mux)
	return &testEnv{mux: mux, verifier: verifier, clock: clock}
}

func (e *testEnv) do(t *testing.T, user, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if user != "" {
		token, err := e.verifier.Sign(user, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.mux.ServeHTTP(w, req)
	return w
}

func (e *testEnv) add(t *testing.T, user string, plantID int) services.GardenEntry {
	t.Helper()
	w := e.do(t, user, http.MethodPost, "/api/v1/garden", `{"plant_id":`+strconv.Itoa(plantID)+`}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var entry services.GardenEntry
	require.NoError(t, json.NewDecoder(w.Body).Decode(&entry))
	return entry
}

func TestGardenRequiresAuth(t *testing.T) {
	env := newTestEnv(t)
	for _, target := range []string{"/api/v1/garden", "/api/v1/garden/summary", "/api/v1/garden/history"} {
		w := env.do(t, "", http.MethodGet, target, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, target)
	}
}

func TestAddAndList(t *testing.T) {
	env := newTestEnv(t)

	entry := env.add(t, "alice", 1)
	assert.Equal(t, 1, entry.PlantID)
	assert.Equal(t, "Aloe", entry.PlantName)
	assert.Equal(t, "alice", entry.UserID)

	w := env.do(t, "alice", http.MethodGet, "/api/v1/garden", "")
	require.Equal(t, http.StatusOK, w.Code)
	var entries []services.GardenEntry
	require.NoError(t, json.NewDecoder(w.Body).Decode(&entries))
	require.Len(t, entries, 1)
	assert.Equal(t, entry.ID, entries[0].ID)

	w = env.do(t, "bob", http.MethodGet, "/api/v1/garden", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestAddValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"missing body", "", http.StatusBadRequest},
		{"malformed", `{"plant_id":`, http.StatusBadRequest},
		{"zero id", `{"plant_id":0}`, http.StatusBadRequest},
		{"unknown field", `{"plant_id":1,"extra":true}`, http.StatusBadRequest},
		{"unknown plant", `{"plant_id":42}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, "alice", http.MethodPost, "/api/v1/garden", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestWaterIsIdempotentPerDay(t *testing.T) {
	env := newTestEnv(t)
	entry := env.add(t, "alice", 2)
	target := "/api/v1/garden/" + entry.ID + "/water"

	for i := 0; i < 2; i++ {
		w := env.do(t, "alice", http.MethodPost, target, "")
		require.Equal(t, http.StatusOK, w.Code)
	}
	env.clock.AdvanceDays(1)
	w := env.do(t, "alice", http.MethodPost, target, "")
	require.Equal(t, http.StatusOK, w.Code)

	var got services.GardenEntry
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, []string{"2025-05-01", "2025-05-02"}, got.WateringHistory)
	require.NotNil(t, got.LastWateredAt)
}

func TestWaterOtherUsersEntry(t *testing.T) {
	env := newTestEnv(t)
	entry := env.add(t, "alice", 1)

	w := env.do(t, "bob", http.MethodPost, "/api/v1/garden/"+entry.ID+"/water", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, "alice", http.MethodPost, "/api/v1/garden/does-not-exist/water", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStopMovesToHistory(t *testing.T) {
	env := newTestEnv(t)
	entry := env.add(t, "alice", 1)
	env.do(t, "alice", http.MethodPost, "/api/v1/garden/"+entry.ID+"/water", "")

	w := env.do(t, "alice", http.MethodPost, "/api/v1/garden/"+entry.ID+"/stop", `{"reason":"bored"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, "alice", http.MethodPost, "/api/v1/garden/"+entry.ID+"/stop", `{"reason":"not_suitable"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var hist services.HistoryEntry
	require.NoError(t, json.NewDecoder(w.Body).Decode(&hist))
	assert.Equal(t, services.StopReasonNotSuitable, hist.Reason)
	assert.Equal(t, 1, hist.TotalWateringDays)

	w = env.do(t, "alice", http.MethodGet, "/api/v1/garden", "")
	assert.JSONEq(t, `[]`, w.Body.String())

	w = env.do(t, "alice", http.MethodGet, "/api/v1/garden/history", "")
	require.Equal(t, http.StatusOK, w.Code)
	var history []services.HistoryEntry
	require.NoError(t, json.NewDecoder(w.Body).Decode(&history))
	require.Len(t, history, 1)
	assert.Equal(t, entry.PlantID, history[0].PlantID)

	w = env.do(t, "alice", http.MethodPost, "/api/v1/garden/"+entry.ID+"/stop", `{"reason":"died"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClearHistory(t *testing.T) {
	env := newTestEnv(t)
	for _, id := range []int{1, 2} {
		entry := env.add(t, "alice", id)
		w := env.do(t, "alice", http.MethodPost, "/api/v1/garden/"+entry.ID+"/stop", `{"reason":"died"}`)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := env.do(t, "alice", http.MethodDelete, "/api/v1/garden/history", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":2}`, w.Body.String())

	w = env.do(t, "alice", http.MethodGet, "/api/v1/garden/history", "")
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestSummary(t *testing.T) {
	env := newTestEnv(t)
	watered := env.add(t, "alice", 1)
	env.add(t, "alice", 2)
	env.do(t, "alice", http.MethodPost, "/api/v1/garden/"+watered.ID+"/water", "")

	w := env.do(t, "alice", http.MethodGet, "/api/v1/garden/summary", "")
	require.Equal(t, http.StatusOK, w.Code)
	var sum services.GardenSummary
	require.NoError(t, json.NewDecoder(w.Body).Decode(&sum))
	assert.Equal(t, services.GardenSummary{Total: 2, UnwateredToday: 1, Overdue: 1}, sum)

	env.clock.AdvanceDays(4)
	w = env.do(t, "alice", http.MethodGet, "/api/v1/garden/summary", "")
	require.NoError(t, json.NewDecoder(w.Body).Decode(&sum))
	assert.Equal(t, services.GardenSummary{Total: 2, UnwateredToday: 2, Overdue: 2}, sum)
}
