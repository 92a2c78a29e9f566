package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/models"
)

func (h *Handler) getUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	u, err := h.store.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) updateUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var upd models.UserUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		badRequest(c, "Invalid user data", err)
		return
	}
	u, err := h.store.UpdateUser(c.Request.Context(), id, upd)
	if err != nil {
		respondError(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, u)
}
