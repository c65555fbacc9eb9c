package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jon4hz/funfacts/internal/api/models"
	"github.com/jon4hz/funfacts/internal/engine"
)

// AddFavorite bookmarks a fact. Repeating the request is a success.
func (h *Handler) AddFavorite(c *gin.Context) {
	var req models.FavoriteRequest
	if !bindJSON(c, &req) {
		return
	}

	favorite, outcome, err := h.engine.Favorites.Add(c.Request.Context(), req.UserID, req.FactID)
	if err != nil {
		h.fail(c, err, http.StatusBadRequest)
		return
	}

	message := "Added to favorites!"
	if outcome == engine.FavoriteAlreadyExists {
		message = "Already in favorites"
	}
	ok(c, message, models.FavoriteResult{
		Favorite: favorite,
		Outcome:  outcome.String(),
	})
}

func (h *Handler) ListFavorites(c *gin.Context) {
	userID, valid := parseIDParam(c, "user_id", "user ID")
	if !valid {
		return
	}

	favorites, err := h.engine.Favorites.List(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, models.FavoritesResponse{
		Success:   true,
		Favorites: favorites,
	})
}

func (h *Handler) RemoveFavorite(c *gin.Context) {
	id, valid := parseIDParam(c, "fav_id", "favorite ID")
	if !valid {
		return
	}
	if err := h.engine.Favorites.Remove(c.Request.Context(), id); err != nil {
		h.fail(c, err, http.StatusBadRequest)
		return
	}
	ok(c, "Removed from favorites!", nil)
}
