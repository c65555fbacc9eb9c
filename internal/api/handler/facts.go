package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jon4hz/funfacts/internal/api/models"
	"github.com/jon4hz/funfacts/internal/engine"
)

func (h *Handler) AddFact(c *gin.Context) {
	var req engine.NewFact
	if !bindJSON(c, &req) {
		return
	}

	fact, err := h.engine.Facts.Add(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, http.StatusBadRequest)
		return
	}
	ok(c, "Fact added successfully!", fact)
}

func (h *Handler) ListFacts(c *gin.Context) {
	facts, err := h.engine.Facts.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, http.StatusNotFound)
		return
	}
	ok(c, "", facts)
}

// RandomFact draws a fact, optionally restricted by the category query parameter.
func (h *Handler) RandomFact(c *gin.Context) {
	fact, err := h.engine.Facts.Random(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.fail(c, err, http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, models.RandomFactResponse{
		Success: true,
		Fact:    fact,
	})
}

func (h *Handler) Categories(c *gin.Context) {
	counts, err := h.engine.Facts.Categories(c.Request.Context())
	if err != nil {
		h.fail(c, err, http.StatusNotFound)
		return
	}
	ok(c, "", counts)
}

func (h *Handler) UpdateFact(c *gin.Context) {
	id, valid := parseIDParam(c, "id", "fact ID")
	if !valid {
		return
	}
	var req engine.FactUpdate
	if !bindJSON(c, &req) {
		return
	}

	fact, err := h.engine.Facts.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err, http.StatusBadRequest)
		return
	}
	ok(c, "Fact updated successfully!", fact)
}

func (h *Handler) DeleteFact(c *gin.Context) {
	id, valid := parseIDParam(c, "id", "fact ID")
	if !valid {
		return
	}
	if err := h.engine.Facts.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, http.StatusBadRequest)
		return
	}
	ok(c, "Fact deleted successfully!", nil)
}
