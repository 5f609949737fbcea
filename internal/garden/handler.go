// Package garden serves a user's garden: the plants they are growing, the
// daily watering log and the history of plants they stopped growing.
package garden

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/HerbHall/plantmatch/internal/auth"
	"github.com/HerbHall/plantmatch/internal/server"
	"github.com/HerbHall/plantmatch/internal/services"
	pkgcatalog "github.com/HerbHall/plantmatch/pkg/catalog"
)

// PlantLookup resolves catalog plants by id.
type PlantLookup interface {
	Plant(id int) (pkgcatalog.Plant, error)
}

// AddRequest is the body of POST /api/v1/garden.
type AddRequest struct {
	PlantID int `json:"plant_id" validate:"required,gt=0"`
}

// StopRequest is the body of POST /api/v1/garden/{id}/stop.
type StopRequest struct {
	Reason services.StopReason `json:"reason" validate:"required,oneof=died not_suitable"`
}

// ClearResponse reports how many history entries were deleted.
type ClearResponse struct {
	Deleted int `json:"deleted"`
}

// Handler serves the garden API. Every route requires authentication.
type Handler struct {
	repo   services.GardenRepository
	plants PlantLookup
	auth   *auth.Middleware
	logger *zap.Logger
}

// NewHandler creates a garden API handler.
func NewHandler(repo services.GardenRepository, plants PlantLookup, authMW *auth.Middleware, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, plants: plants, auth: authMW, logger: logger}
}

// RegisterRoutes implements server.RouteRegistrar.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/garden", h.auth.Require(h.handleList))
	mux.HandleFunc("POST /api/v1/garden", h.auth.Require(h.handleAdd))
	mux.HandleFunc("GET /api/v1/garden/summary", h.auth.Require(h.handleSummary))
	mux.HandleFunc("GET /api/v1/garden/history", h.auth.Require(h.handleHistory))
	mux.HandleFunc("DELETE /api/v1/garden/history", h.auth.Require(h.handleClearHistory))
	mux.HandleFunc("POST /api/v1/garden/{id}/water", h.auth.Require(h.handleWater))
	mux.HandleFunc("POST /api/v1/garden/{id}/stop", h.auth.Require(h.handleStop))
}

// handleList returns the user's garden.
//
//	@Summary		List garden
//	@Tags			garden
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200 {array} services.GardenEntry
//	@Failure		401 {object} server.Problem
//	@Router			/garden [get]
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.repo.List(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		h.internalError(w, r, "failed to list garden", err)
		return
	}
	if entries == nil {
		entries = []services.GardenEntry{}
	}
	server.WriteJSON(w, http.StatusOK, entries)
}

// handleAdd plants a catalog plant in the user's garden.
//
//	@Summary		Add plant to garden
//	@Tags			garden
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request body AddRequest true "Plant to add"
//	@Success		201 {object} services.GardenEntry
//	@Failure		400 {object} server.Problem
//	@Failure		404 {object} server.Problem
//	@Router			/garden [post]
func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req AddRequest
	if err := server.DecodeJSON(w, r, &req); err != nil {
		server.BadRequest(w, err.Error(), r.URL.Path)
		return
	}

	plant, err := h.plants.Plant(req.PlantID)
	if err != nil {
		if errors.Is(err, pkgcatalog.ErrPlantNotFound) {
			server.NotFound(w, "plant not found", r.URL.Path)
			return
		}
		h.internalError(w, r, "failed to load catalog", err)
		return
	}

	entry, err := h.repo.Add(r.Context(), auth.UserID(r.Context()), plant.ID, plant.DisplayName(), plant.Image)
	if err != nil {
		h.internalError(w, r, "failed to add plant", err)
		return
	}
	h.logger.Debug("garden entry added",
		zap.String("entry_id", entry.ID),
		zap.Int("plant_id", plant.ID),
	)
	server.WriteJSON(w, http.StatusCreated, entry)
}

// handleWater records today's watering. Repeating it on the same day is a
// no-op.
//
//	@Summary		Water plant
//	@Tags			garden
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id path string true "Garden entry ID"
//	@Success		200 {object} services.GardenEntry
//	@Failure		404 {object} server.Problem
//	@Router			/garden/{id}/water [post]
func (h *Handler) handleWater(w http.ResponseWriter, r *http.Request) {
	entry, err := h.repo.MarkWatered(r.Context(), auth.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		h.repoError(w, r, "failed to record watering", err)
		return
	}
	server.WriteJSON(w, http.StatusOK, entry)
}

// handleStop moves an entry to the plant history.
//
//	@Summary		Stop growing plant
//	@Tags			garden
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id path string true "Garden entry ID"
//	@Param			request body StopRequest true "Stop reason"
//	@Success		200 {object} services.HistoryEntry
//	@Failure		400 {object} server.Problem
//	@Failure		404 {object} server.Problem
//	@Router			/garden/{id}/stop [post]
func (h *Handler) handleStop(w http.ResponseWriter, r *http.Request) {
	var req StopRequest
	if err := server.DecodeJSON(w, r, &req); err != nil {
		server.BadRequest(w, err.Error(), r.URL.Path)
		return
	}

	hist, err := h.repo.Stop(r.Context(), auth.UserID(r.Context()), r.PathValue("id"), req.Reason)
	if err != nil {
		h.repoError(w, r, "failed to stop plant", err)
		return
	}
	server.WriteJSON(w, http.StatusOK, hist)
}

// handleSummary counts entries needing water.
//
//	@Summary		Garden summary
//	@Tags			garden
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200 {object} services.GardenSummary
//	@Router			/garden/summary [get]
func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.repo.Summary(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		h.internalError(w, r, "failed to summarize garden", err)
		return
	}
	server.WriteJSON(w, http.StatusOK, sum)
}

// handleHistory returns the plants the user stopped growing.
//
//	@Summary		Plant history
//	@Tags			garden
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200 {array} services.HistoryEntry
//	@Router			/garden/history [get]
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	hist, err := h.repo.History(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		h.internalError(w, r, "failed to list history", err)
		return
	}
	if hist == nil {
		hist = []services.HistoryEntry{}
	}
	server.WriteJSON(w, http.StatusOK, hist)
}

// handleClearHistory deletes the user's plant history.
//
//	@Summary		Clear plant history
//	@Tags			garden
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200 {object} ClearResponse
//	@Router			/garden/history [delete]
func (h *Handler) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	n, err := h.repo.ClearHistory(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		h.internalError(w, r, "failed to clear history", err)
		return
	}
	server.WriteJSON(w, http.StatusOK, ClearResponse{Deleted: n})
}

func (h *Handler) repoError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		server.NotFound(w, "garden entry not found", r.URL.Path)
	case errors.Is(err, services.ErrInvalidReason):
		server.BadRequest(w, err.Error(), r.URL.Path)
	default:
		h.internalError(w, r, msg, err)
	}
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.Error(msg, zap.String("path", r.URL.Path), zap.Error(err))
	server.InternalError(w, msg, r.URL.Path)
}
