package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/models"
	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/rewards"
	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/store"
	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/util"
)

type createDreamReq struct {
	UserID          *uint     `json:"userId"`
	Title           string    `json:"title" binding:"required"`
	Content         string    `json:"content" binding:"required"`
	Category        string    `json:"category" binding:"required"`
	MoodRating      *int      `json:"moodRating" binding:"required,min=0,max=10"`
	ClarityRating   *int      `json:"clarityRating" binding:"required,min=0,max=10"`
	VividnessRating *int      `json:"vividnessRating" binding:"required,min=0,max=10"`
	Tags            []string  `json:"tags"`
	IsPrivate       *bool     `json:"isPrivate"`
	RecordedAt      timestamp `json:"recordedAt"`
}

func (h *Handler) createDream(c *gin.Context) {
	var req createDreamReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid dream data", err)
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		badRequest(c, "Invalid dream data", errors.New("content must not be blank"))
		return
	}

	ctx := c.Request.Context()
	owner, err := h.dreamOwner(ctx, req.UserID)
	if err != nil {
		respondError(c, err, "User")
		return
	}

	d := &models.Dream{
		UserID:          owner.ID,
		Title:           req.Title,
		Content:         req.Content,
		Category:        req.Category,
		MoodRating:      *req.MoodRating,
		ClarityRating:   *req.ClarityRating,
		VividnessRating: *req.VividnessRating,
		Tags:            pq.StringArray(req.Tags),
		IsPrivate:       true,
		RecordedAt:      req.RecordedAt.or(util.Now()),
	}
	if d.Tags == nil {
		d.Tags = pq.StringArray{}
	}
	if req.IsPrivate != nil {
		d.IsPrivate = *req.IsPrivate
	}
	if err := h.store.CreateDream(ctx, d); err != nil {
		respondError(c, err, "User")
		return
	}

	log := logrus.WithFields(logrus.Fields{"request_id": c.GetString(requestIDKey), "dream_id": d.ID})

	// Reward and analysis are extras: the dream is already saved. The reward
	// goes first so a backfill running during analysis finds it.
	if _, err := rewards.Issue(ctx, h.store, d); errors.Is(err, store.ErrAlreadyExists) {
		log.Debug("dream already rewarded by backfill")
	} else if err != nil {
		log.WithError(err).Warn("mining reward creation failed")
	}
	if analysis, err := h.analyzer.Analyze(ctx, d.Content, d.Category); err != nil {
		log.WithError(err).Warn("analysis skipped, dream saved without it")
	} else if err := h.store.CreateDreamAnalysis(ctx, analysis.Record(d.ID)); err != nil {
		log.WithError(err).Warn("saving analysis failed")
	}

	c.JSON(http.StatusOK, gin.H{
		"dream":          d,
		"expectedReward": rewards.Calculate(d.Category, d.VividnessRating, d.ClarityRating),
	})
}

func (h *Handler) dreamOwner(ctx context.Context, userID *uint) (*models.User, error) {
	if userID == nil {
		return EnsureDefaultUser(ctx, h.store)
	}
	return h.store.GetUser(ctx, *userID)
}

func (h *Handler) getDream(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	d, err := h.store.GetDream(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Dream")
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) updateDream(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var upd models.DreamUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		badRequest(c, "Invalid dream data", err)
		return
	}
	d, err := h.store.UpdateDream(c.Request.Context(), id, upd)
	if err != nil {
		respondError(c, err, "Dream")
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) listUserDreams(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}
	dreams, err := h.store.ListDreamsByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "User")
		return
	}
	if dreams == nil {
		dreams = []models.Dream{}
	}
	c.JSON(http.StatusOK, dreams)
}

type analyzeReq struct {
	Content  string `json:"content" binding:"required"`
	Category string `json:"category" binding:"required"`
}

func (h *Handler) analyzeContent(c *gin.Context) {
	var req analyzeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Dream content and category are required", nil)
		return
	}
	res, err := h.analyzer.Analyze(c.Request.Context(), req.Content, req.Category)
	if err != nil {
		respondError(c, err, "Analysis")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) analyzeDream(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	d, err := h.store.GetDream(ctx, id)
	if err != nil {
		respondError(c, err, "Dream")
		return
	}
	// skip the model calls when the answer would be a conflict anyway
	if _, err := h.store.GetDreamAnalysis(ctx, id); err == nil {
		respondError(c, store.ErrAlreadyExists, "Analysis")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		respondError(c, err, "Analysis")
		return
	}

	res, err := h.analyzer.Analyze(ctx, d.Content, d.Category)
	if err != nil {
		respondError(c, err, "Analysis")
		return
	}
	rec := res.Record(d.ID)
	if err := h.store.CreateDreamAnalysis(ctx, rec); err != nil {
		respondError(c, err, "Analysis")
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *Handler) getAnalysis(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	a, err := h.store.GetDreamAnalysis(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Analysis")
		return
	}
	c.JSON(http.StatusOK, a)
}
