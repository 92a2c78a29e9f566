package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/ai"
	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/models"
)

const directCategory = "Generated"

type generateDreamNFTReq struct {
	ArtStyle string `json:"artStyle" binding:"required"`
	UserID   *uint  `json:"userId"`
}

type dreamNFTResponse struct {
	*models.DreamNFT
	ImageURL    string `json:"imageUrl"`
	Description string `json:"description"`
	TokenURI    string `json:"tokenURI"`
}

func (h *Handler) generateDreamNFT(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req generateDreamNFTReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Art style is required", err)
		return
	}
	ctx := c.Request.Context()

	d, err := h.store.GetDream(ctx, id)
	if err != nil {
		respondError(c, err, "Dream")
		return
	}
	owner := d.UserID
	if req.UserID != nil {
		owner = *req.UserID
	}

	res, err := h.nfts.Generate(ctx, d.Content, req.ArtStyle)
	if err != nil {
		respondError(c, err, "NFT")
		return
	}
	uri, err := ai.TokenURI(res.Title, res, d.Category)
	if err != nil {
		respondError(c, err, "NFT")
		return
	}

	nft := &models.DreamNFT{
		DreamID:     d.ID,
		UserID:      owner,
		Title:       res.Title,
		ArtStyle:    res.ArtStyle,
		Rarity:      res.Rarity,
		RarityScore: res.RarityScore,
	}
	if err := h.store.CreateDreamNFT(ctx, nft); err != nil {
		respondError(c, err, "User")
		return
	}

	c.JSON(http.StatusOK, dreamNFTResponse{
		DreamNFT:    nft,
		ImageURL:    res.ImageURL,
		Description: res.Description,
		TokenURI:    uri,
	})
}

type generateNFTReq struct {
	DreamContent string `json:"dreamContent" binding:"required"`
	ArtStyle     string `json:"artStyle" binding:"required"`
	Title        string `json:"title" binding:"required"`
}

func (h *Handler) generateNFT(c *gin.Context) {
	var req generateNFTReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Dream content, art style, and title are required", nil)
		return
	}

	res, err := h.nfts.Generate(c.Request.Context(), req.DreamContent, req.ArtStyle)
	if err != nil {
		respondError(c, err, "NFT")
		return
	}
	uri, err := ai.TokenURI(req.Title, res, directCategory)
	if err != nil {
		respondError(c, err, "NFT")
		return
	}

	c.JSON(http.StatusOK, struct {
		*ai.NFTResult
		TokenURI string `json:"tokenURI"`
	}{res, uri})
}

func (h *Handler) listNFTs(c *gin.Context) {
	nfts, err := h.store.ListDreamNFTs(c.Request.Context(), 0)
	if err != nil {
		respondError(c, err, "NFT")
		return
	}
	if nfts == nil {
		nfts = []models.DreamNFT{}
	}
	c.JSON(http.StatusOK, nfts)
}

func (h *Handler) getNFT(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	n, err := h.store.GetDreamNFT(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "NFT")
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *Handler) listUserNFTs(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}
	nfts, err := h.store.ListDreamNFTsByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "User")
		return
	}
	if nfts == nil {
		nfts = []models.DreamNFT{}
	}
	c.JSON(http.StatusOK, nfts)
}
