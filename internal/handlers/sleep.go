package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/models"
	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/util"
)

type createSleepReq struct {
	UserID         uint        `json:"userId" binding:"required"`
	Date           timestamp   `json:"date"`
	TotalSleep     *int        `json:"totalSleep" binding:"omitempty,min=0,max=1440"`
	RemSleep       *int        `json:"remSleep" binding:"omitempty,min=0,max=1440"`
	DeepSleep      *int        `json:"deepSleep" binding:"omitempty,min=0,max=1440"`
	LightSleep     *int        `json:"lightSleep" binding:"omitempty,min=0,max=1440"`
	SleepQuality   *int        `json:"sleepQuality" binding:"omitempty,min=0,max=100"`
	DreamFrequency *int        `json:"dreamFrequency" binding:"omitempty,min=0"`
	Tracker        *string     `json:"tracker"`
	RawData        models.JSON `json:"rawData"`
}

func (h *Handler) listSleepData(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}
	rows, err := h.store.ListSleepDataByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "User")
		return
	}
	if rows == nil {
		rows = []models.SleepData{}
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) createSleepData(c *gin.Context) {
	var req createSleepReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid sleep data", err)
		return
	}

	s := &models.SleepData{
		UserID:         req.UserID,
		Date:           util.TruncateDay(req.Date.or(util.Now())),
		TotalSleep:     req.TotalSleep,
		RemSleep:       req.RemSleep,
		DeepSleep:      req.DeepSleep,
		LightSleep:     req.LightSleep,
		SleepQuality:   req.SleepQuality,
		DreamFrequency: req.DreamFrequency,
		Tracker:        req.Tracker,
		RawData:        req.RawData,
	}
	if err := h.store.CreateSleepData(c.Request.Context(), s); err != nil {
		respondError(c, err, "User")
		return
	}
	c.JSON(http.StatusCreated, s)
}
