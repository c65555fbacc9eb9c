package handler

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/funfacts/internal/api/models"
	"github.com/jon4hz/funfacts/internal/engine"
)

const sessionUserKey = "user_id"

// Register creates a new user.
func (h *Handler) Register(c *gin.Context) {
	var req engine.NewUser
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.engine.Users.Register(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, http.StatusBadRequest)
		return
	}
	ok(c, "User added successfully!", models.ToUser(user, h.avatar()))
}

// Login checks the credentials and stores the user in the session.
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.engine.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err, http.StatusNotFound)
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserKey, user.ID)
	if err := session.Save(); err != nil {
		log.Error("Failed to save session", "error", err)
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		Success: true,
		Message: "Login successful!",
		UserID:  user.ID,
	})
}

func (h *Handler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		log.Error("Failed to clear session", "error", err)
	}
	ok(c, "Logged out", nil)
}

// Me returns the user of the current session.
func (h *Handler) Me(c *gin.Context) {
	userID, isUint := sessions.Default(c).Get(sessionUserKey).(uint)
	if !isUint || userID == 0 {
		c.JSON(http.StatusUnauthorized, models.Envelope{Success: false, Message: "Not logged in"})
		return
	}

	user, err := h.engine.Users.Get(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err, http.StatusUnauthorized)
		return
	}
	ok(c, "", models.ToUser(user, h.avatar()))
}
