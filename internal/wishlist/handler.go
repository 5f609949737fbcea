// Package wishlist serves the per-user list of plants saved for later.
package wishlist

import (
	"errors"
	"net/http"
	"strconv"

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

// AddRequest is the body of POST /api/v1/wishlist.
type AddRequest struct {
	PlantID int `json:"plant_id" validate:"required,gt=0"`
}

// RemoveRequest is the body of POST /api/v1/wishlist/remove.
type RemoveRequest struct {
	PlantIDs []int `json:"plant_ids" validate:"required,min=1,dive,gt=0"`
}

// Item is a wishlist entry with its catalog plant attached.
type Item struct {
	services.WishlistItem
	Plant *pkgcatalog.Plant `json:"plant,omitempty"`
}

// CountResponse is the body of GET /api/v1/wishlist/count.
type CountResponse struct {
	Count int `json:"count"`
}

// ContainsResponse is the body of GET /api/v1/wishlist/{plant_id}.
type ContainsResponse struct {
	PlantID    int  `json:"plant_id"`
	InWishlist bool `json:"in_wishlist"`
}

// RemoveResponse reports how many plants were removed.
type RemoveResponse struct {
	Removed int `json:"removed"`
}

// Handler serves the wishlist API. Every route requires authentication.
type Handler struct {
	repo   services.WishlistRepository
	plants PlantLookup
	auth   *auth.Middleware
	logger *zap.Logger
}

// NewHandler creates a wishlist API handler.
func NewHandler(repo services.WishlistRepository, plants PlantLookup, authMW *auth.Middleware, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, plants: plants, auth: authMW, logger: logger}
}

// RegisterRoutes implements server.RouteRegistrar.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/wishlist", h.auth.Require(h.handleList))
	mux.HandleFunc("POST /api/v1/wishlist", h.auth.Require(h.handleAdd))
	mux.HandleFunc("GET /api/v1/wishlist/count", h.auth.Require(h.handleCount))
	mux.HandleFunc("POST /api/v1/wishlist/remove", h.auth.Require(h.handleRemoveMany))
	mux.HandleFunc("GET /api/v1/wishlist/{plant_id}", h.auth.Require(h.handleContains))
	mux.HandleFunc("DELETE /api/v1/wishlist/{plant_id}", h.auth.Require(h.handleRemove))
}

// handleList returns the user's wishlist, newest first. Plants that have
// since left the catalog are listed without plant details.
//
//	@Summary		List wishlist
//	@Tags			wishlist
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200 {array} Item
//	@Failure		401 {object} server.Problem
//	@Router			/wishlist [get]
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.repo.List(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		h.internalError(w, r, "failed to list wishlist", err)
		return
	}

	out := make([]Item, 0, len(items))
	for _, it := range items {
		item := Item{WishlistItem: it}
		if p, err := h.plants.Plant(it.PlantID); err == nil {
			item.Plant = &p
		} else if !errors.Is(err, pkgcatalog.ErrPlantNotFound) {
			h.internalError(w, r, "failed to load catalog", err)
			return
		}
		out = append(out, item)
	}
	server.WriteJSON(w, http.StatusOK, out)
}

// handleAdd saves a plant to the wishlist.
//
//	@Summary		Add to wishlist
//	@Tags			wishlist
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request body AddRequest true "Plant to save"
//	@Success		201 {object} services.WishlistItem
//	@Failure		400 {object} server.Problem
//	@Failure		404 {object} server.Problem
//	@Failure		409 {object} server.Problem
//	@Router			/wishlist [post]
func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req AddRequest
	if err := server.DecodeJSON(w, r, &req); err != nil {
		server.BadRequest(w, err.Error(), r.URL.Path)
		return
	}
	if _, err := h.plants.Plant(req.PlantID); err != nil {
		if errors.Is(err, pkgcatalog.ErrPlantNotFound) {
			server.NotFound(w, "plant not found", r.URL.Path)
			return
		}
		h.internalError(w, r, "failed to load catalog", err)
		return
	}

	item, err := h.repo.Add(r.Context(), auth.UserID(r.Context()), req.PlantID)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyExists) {
			server.Conflict(w, "plant is already in the wishlist", r.URL.Path)
			return
		}
		h.internalError(w, r, "failed to add to wishlist", err)
		return
	}
	server.WriteJSON(w, http.StatusCreated, item)
}

// handleCount returns the number of saved plants.
//
//	@Summary		Wishlist count
//	@Tags			wishlist
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200 {object} CountResponse
//	@Router			/wishlist/count [get]
func (h *Handler) handleCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.repo.Count(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		h.internalError(w, r, "failed to count wishlist", err)
		return
	}
	server.WriteJSON(w, http.StatusOK, CountResponse{Count: n})
}

// handleContains reports whether a plant is saved.
//
//	@Summary		Wishlist membership
//	@Tags			wishlist
//	@Produce		json
//	@Security		BearerAuth
//	@Param			plant_id path int true "Plant ID"
//	@Success		200 {object} ContainsResponse
//	@Failure		400 {object} server.Problem
//	@Router			/wishlist/{plant_id} [get]
func (h *Handler) handleContains(w http.ResponseWriter, r *http.Request) {
	id, ok := plantIDParam(w, r)
	if !ok {
		return
	}
	in, err := h.repo.Contains(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		h.internalError(w, r, "failed to check wishlist", err)
		return
	}
	server.WriteJSON(w, http.StatusOK, ContainsResponse{PlantID: id, InWishlist: in})
}

// handleRemove deletes a plant from the wishlist.
//
//	@Summary		Remove from wishlist
//	@Tags			wishlist
//	@Security		BearerAuth
//	@Param			plant_id path int true "Plant ID"
//	@Success		204
//	@Failure		404 {object} server.Problem
//	@Router			/wishlist/{plant_id} [delete]
func (h *Handler) handleRemove(w http.ResponseWriter, r *http.Request) {
	id, ok := plantIDParam(w, r)
	if !ok {
		return
	}
	if err := h.repo.Remove(r.Context(), auth.UserID(r.Context()), id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			server.NotFound(w, "plant is not in the wishlist", r.URL.Path)
			return
		}
		h.internalError(w, r, "failed to remove from wishlist", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRemoveMany deletes several plants at once. Ids that are not saved
// are ignored.
//
//	@Summary		Bulk remove from wishlist
//	@Tags			wishlist
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request body RemoveRequest true "Plants to remove"
//	@Success		200 {object} RemoveResponse
//	@Failure		400 {object} server.Problem
//	@Router			/wishlist/remove [post]
func (h *Handler) handleRemoveMany(w http.ResponseWriter, r *http.Request) {
	var req RemoveRequest
	if err := server.DecodeJSON(w, r, &req); err != nil {
		server.BadRequest(w, err.Error(), r.URL.Path)
		return
	}
	n, err := h.repo.RemoveMany(r.Context(), auth.UserID(r.Context()), req.PlantIDs)
	if err != nil {
		h.internalError(w, r, "failed to remove from wishlist", err)
		return
	}
	server.WriteJSON(w, http.StatusOK, RemoveResponse{Removed: n})
}

func plantIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("plant_id"))
	if err != nil || id <= 0 {
		server.BadRequest(w, "plant_id must be a positive integer", r.URL.Path)
		return 0, false
	}
	return id, true
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.Error(msg, zap.String("path", r.URL.Path), zap.Error(err))
	server.InternalError(w, msg, r.URL.Path)
}
