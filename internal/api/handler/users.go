package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jon4hz/funfacts/internal/api/models"
	"github.com/jon4hz/funfacts/internal/engine"
)

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.engine.Users.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, http.StatusNotFound)
		return
	}
	ok(c, "", models.ToUsers(users, h.avatar()))
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, valid := parseIDParam(c, "id", "user ID")
	if !valid {
		return
	}
	var req engine.UserUpdate
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.engine.Users.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err, http.StatusBadRequest)
		return
	}
	ok(c, "User updated successfully!", models.ToUser(user, h.avatar()))
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, valid := parseIDParam(c, "id", "user ID")
	if !valid {
		return
	}
	if err := h.engine.Users.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, http.StatusBadRequest)
		return
	}
	ok(c, "User deleted successfully!", nil)
}
