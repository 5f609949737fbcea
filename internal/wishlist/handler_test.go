package wishlist

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HerbHall/plantmatch/internal/auth"
	"github.com/HerbHall/plantmatch/internal/catalog"
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
	clock := testutil.NewClock()
	repo := testutil.NewWishlistRepository(t, clock)
	cat := pkgcatalog.NewCatalogFromPlants([]pkgcatalog.Plant{
		testutil.NewPlant(testutil.WithID(1), testutil.WithLatin("Aloe vera")),
		testutil.NewPlant(testutil.WithID(2), testutil.WithLatin("Ficus lyrata")),
		testutil.NewPlant(testutil.WithID(3), testutil.WithLatin("Crassula ovata")),
	})
	verifier := auth.NewVerifier("test-secret", "")
	mux := http.NewServeMux()
	logger := testutil.Logger(t)
	NewHandler(repo, catalog.NewEngine(cat), auth.NewMiddleware(verifier, logger), logger).RegisterRoutes(mux)
	return &testEnv{mux: mux, verifier: verifier, clock: clock}
}

func (e *testEnv) doAs(t *testing.T, user, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	token, err := e.verifier.Sign(user, time.Hour)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	e.mux.ServeHTTP(w, req)
	return w
}

func (e *testEnv) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	return e.doAs(t, "alice", method, target, body)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}

func TestWishlistRequiresAuth(t *testing.T) {
	env := newTestEnv(t)
	w := httptest.NewRecorder()
	env.mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/wishlist", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAddListAndCount(t *testing.T) {
	env := newTestEnv(t)

	for _, id := range []string{"1", "3"} {
		w := env.do(t, http.MethodPost, "/api/v1/wishlist", `{"plant_id":`+id+`}`)
		require.Equal(t, http.StatusCreated, w.Code, "add %s: %s", id, w.Body.String())
		env.clock.Advance(time.Minute)
	}

	w := env.do(t, http.MethodPost, "/api/v1/wishlist", `{"plant_id":1}`)
	assert.Equal(t, http.StatusConflict, w.Code, "duplicate add")
	w = env.do(t, http.MethodPost, "/api/v1/wishlist", `{"plant_id":99}`)
	assert.Equal(t, http.StatusNotFound, w.Code, "unknown plant")

	w = env.do(t, http.MethodGet, "/api/v1/wishlist", "")
	require.Equal(t, http.StatusOK, w.Code)
	items := decode[[]Item](t, w)
	require.Len(t, items, 2)
	assert.Equal(t, 3, items[0].PlantID, "newest first")
	assert.Equal(t, 1, items[1].PlantID)
	require.NotNil(t, items[0].Plant, "plant details missing")
	assert.Equal(t, "Crassula ovata", items[0].Plant.Latin)

	w = env.do(t, http.MethodGet, "/api/v1/wishlist/count", "")
	assert.Equal(t, 2, decode[CountResponse](t, w).Count)
}

func TestWishlistIsPerUser(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/api/v1/wishlist", `{"plant_id":2}`).Code)

	w := env.doAs(t, "bob", http.MethodGet, "/api/v1/wishlist", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = env.doAs(t, "bob", http.MethodGet, "/api/v1/wishlist/2", "")
	assert.False(t, decode[ContainsResponse](t, w).InWishlist)

	w = env.doAs(t, "bob", http.MethodDelete, "/api/v1/wishlist/2", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Bob may save the same plant without conflicting with Alice.
	w = env.doAs(t, "bob", http.MethodPost, "/api/v1/wishlist", `{"plant_id":2}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestContains(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/v1/wishlist", `{"plant_id":2}`)

	tests := []struct {
		target string
		status int
		want   bool
	}{
		{"/api/v1/wishlist/2", http.StatusOK, true},
		{"/api/v1/wishlist/1", http.StatusOK, false},
		{"/api/v1/wishlist/abc", http.StatusBadRequest, false},
		{"/api/v1/wishlist/0", http.StatusBadRequest, false},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			w := env.do(t, http.MethodGet, tt.target, "")
			require.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.want, decode[ContainsResponse](t, w).InWishlist)
			}
		})
	}
}

func TestRemove(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/v1/wishlist", `{"plant_id":2}`)

	require.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, "/api/v1/wishlist/2", "").Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, "/api/v1/wishlist/2", "").Code, "second remove")
}

func TestRemoveMany(t *testing.T) {
	env := newTestEnv(t)
	for _, body := range []string{`{"plant_id":1}`, `{"plant_id":2}`, `{"plant_id":3}`} {
		env.do(t, http.MethodPost, "/api/v1/wishlist", body)
	}

	w := env.do(t, http.MethodPost, "/api/v1/wishlist/remove", `{"plant_ids":[1,3,42]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 2, decode[RemoveResponse](t, w).Removed)

	w = env.do(t, http.MethodPost, "/api/v1/wishlist/remove", `{"plant_ids":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "empty ids")

	w = env.do(t, http.MethodGet, "/api/v1/wishlist/count", "")
	assert.Equal(t, 1, decode[CountResponse](t, w).Count)
}
