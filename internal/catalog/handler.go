package catalog

import (
	"bytes"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/HerbHall/plantmatch/internal/metrics"
	"github.com/HerbHall/plantmatch/internal/recommend"
	"github.com/HerbHall/plantmatch/internal/server"
	pkgcatalog "github.com/HerbHall/plantmatch/pkg/catalog"
)

// Handler serves the catalog and recommendation API.
type Handler struct {
	engine  *Engine
	logger  *zap.Logger
	metrics *metrics.Recorder
}

// NewHandler creates a new catalog API handler. m may be nil.
func NewHandler(engine *Engine, logger *zap.Logger, m *metrics.Recorder) *Handler {
	return &Handler{engine: engine, logger: logger, metrics: m}
}

// RegisterRoutes implements server.RouteRegistrar.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/plants", h.handleListPlants)
	mux.HandleFunc("GET /api/v1/plants/options", h.handleOptions)
	mux.HandleFunc("GET /api/v1/plants/export", h.handleExport)
	mux.HandleFunc("GET /api/v1/plants/{id}", h.handleGetPlant)
	mux.HandleFunc("GET /api/v1/recommendations", h.handleRecommendations)
	mux.HandleFunc("GET /api/v1/recommendations/bands", h.handleBands)
	mux.HandleFunc("GET /api/v1/assistant/context", h.handleContext)
}

// handleListPlants returns the whole catalog.
//
//	@Summary		List plants
//	@Description	Returns the normalized plant catalog in source order.
//	@Tags			plants
//	@Produce		json
//	@Success		200 {array} pkgcatalog.Plant
//	@Failure		500 {object} server.Problem
//	@Router			/plants [get]
func (h *Handler) handleListPlants(w http.ResponseWriter, r *http.Request) {
	plants, err := h.engine.Plants()
	if err != nil {
		h.catalogError(w, r, err)
		return
	}
	if plants == nil {
		plants = []pkgcatalog.Plant{}
	}
	server.WriteJSON(w, http.StatusOK, plants)
}

// handleGetPlant returns one plant.
//
//	@Summary		Get plant
//	@Tags			plants
//	@Produce		json
//	@Param			id path int true "Plant ID"
//	@Success		200 {object} pkgcatalog.Plant
//	@Failure		400 {object} server.Problem
//	@Failure		404 {object} server.Problem
//	@Router			/plants/{id} [get]
func (h *Handler) handleGetPlant(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		server.BadRequest(w, "plant id must be an integer", r.URL.Path)
		return
	}
	p, err := h.engine.Plant(id)
	if err != nil {
		if IsNotFound(err) {
			server.NotFound(w, "plant not found", r.URL.Path)
			return
		}
		h.catalogError(w, r, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, p)
}

// handleOptions returns the filter dropdown values.
//
//	@Summary		Filter options
//	@Description	Distinct, sorted values for each filter field, each list starting with "-".
//	@Tags			plants
//	@Produce		json
//	@Success		200 {object} FilterOptions
//	@Failure		500 {object} server.Problem
//	@Router			/plants/options [get]
func (h *Handler) handleOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.engine.Options()
	if err != nil {
		h.catalogError(w, r, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, opts)
}

// handleExport returns the selected plants as CSV.
//
//	@Summary		Export plants
//	@Tags			plants
//	@Produce		text/csv
//	@Param			ids query string true "Comma-separated plant IDs"
//	@Success		200 {string} string
//	@Failure		400 {object} server.Problem
//	@Failure		404 {object} server.Problem
//	@Router			/plants/export [get]
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	ids, err := ParseIDs(r.URL.Query().Get("ids"))
	if err != nil {
		server.BadRequest(w, err.Error(), r.URL.Path)
		return
	}
	if len(ids) == 0 {
		server.BadRequest(w, "ids is required", r.URL.Path)
		return
	}
	plants, err := h.engine.Select(ids)
	if err != nil {
		if IsNotFound(err) {
			server.NotFound(w, err.Error(), r.URL.Path)
			return
		}
		h.catalogError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, plants); err != nil {
		h.logger.Error("failed to write export", zap.Error(err))
		server.InternalError(w, "failed to export plants", r.URL.Path)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="plants.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// handleRecommendations scores and ranks the catalog.
//
//	@Summary		Recommend plants
//	@Description	Scores every plant against the filter, ranks best first and groups by match band when a filter is active. "-" means no preference.
//	@Tags			recommendations
//	@Produce		json
//	@Param			light query string false "Light condition"
//	@Param			climate query string false "Climate"
//	@Param			aesthetic query string false "Aesthetic use"
//	@Param			watering query string false "Watering preference"
//	@Param			mbti query string false "MBTI type"
//	@Param			q query string false "Search text"
//	@Success		200 {object} Result
//	@Failure		500 {object} server.Problem
//	@Router			/recommendations [get]
func (h *Handler) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	f := FilterFromQuery(r)
	res, err := h.engine.Recommend(f, r.URL.Query().Get("q"))
	if err != nil {
		h.catalogError(w, r, err)
		return
	}
	h.metrics.ObserveRecommendation(ActiveFields(f), res.Count, bandCounts(res.Groups))
	server.WriteJSON(w, http.StatusOK, res)
}

// handleBands returns the band display metadata.
//
//	@Summary		Match bands
//	@Tags			recommendations
//	@Produce		json
//	@Success		200 {array} recommend.BandMeta
//	@Router			/recommendations/bands [get]
func (h *Handler) handleBands(w http.ResponseWriter, _ *http.Request) {
	server.WriteJSON(w, http.StatusOK, recommend.Bands())
}

// handleContext returns the flat catalog summary for the chat assistant.
//
//	@Summary		Assistant context
//	@Tags			assistant
//	@Produce		plain
//	@Success		200 {string} string
//	@Failure		500 {object} server.Problem
//	@Router			/assistant/context [get]
func (h *Handler) handleContext(w http.ResponseWriter, r *http.Request) {
	plants, err := h.engine.Plants()
	if err != nil {
		h.catalogError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := WriteContext(w, plants); err != nil {
		h.logger.Debug("context write aborted", zap.Error(err))
	}
}

func (h *Handler) catalogError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("failed to load catalog", zap.Error(err))
	server.InternalError(w, "failed to load catalog", r.URL.Path)
}

// FilterFromQuery reads the filter fields from the query string.
func FilterFromQuery(r *http.Request) recommend.Filter {
	q := r.URL.Query()
	return FilterFromValues(q.Get("light"), q.Get("climate"), q.Get("aesthetic"), q.Get("watering"), q.Get("mbti"))
}

func bandCounts(g *recommend.Groups) map[string]int {
	if g == nil {
		return nil
	}
	out := make(map[string]int, len(recommend.Bands()))
	for _, b := range recommend.Bands() {
		out[string(b.Key)] = len(g.Get(b.Key))
	}
	return out
}
