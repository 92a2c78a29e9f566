package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	fallbackTitle       = "Dream Vision"
	fallbackDescription = "A unique dream-inspired digital artwork"
	fallbackRarity      = "Rare"
	fallbackRarityScore = 75
	fallbackTechnique   = "Digital surrealism"
)

var (
	fallbackVisualElements = []string{"Abstract forms", "Ethereal lighting"}
	fallbackColorPalette   = []string{"Deep purple", "Cosmic blue", "Golden highlights"}
)

type NFTResult struct {
	ImageURL          string   `json:"imageUrl"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	ArtStyle          string   `json:"artStyle"`
	Rarity            string   `json:"rarity"`
	RarityScore       int      `json:"rarityScore"`
	VisualElements    []string `json:"visualElements"`
	ColorPalette      []string `json:"colorPalette"`
	ArtisticTechnique string   `json:"artisticTechnique"`
	ArtPrompt         string   `json:"artPrompt"`
}

// NFTGenerator turns a dream into artwork and marketplace metadata.
type NFTGenerator struct {
	chat  TextModel
	image ImageModel
}

func NewNFTGenerator(chat TextModel, image ImageModel) *NFTGenerator {
	return &NFTGenerator{chat: chat, image: image}
}

// Generate runs prompt engineering, image generation and metadata extraction in order.
// The first failing step aborts the run; nothing is retried.
func (g *NFTGenerator) Generate(ctx context.Context, content, artStyle string) (*NFTResult, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if !g.chat.Configured() || !g.image.Configured() {
		return nil, ErrNotConfigured
	}

	artPrompt, err := g.chat.Complete(ctx, Prompt{
		System: fmt.Sprintf(`You are an expert AI art prompt engineer. Write a detailed image-generation prompt for NFT artwork based on a dream description, in the %s art style.

Describe visual elements, colours, composition and atmosphere. Stay under 400 characters while keeping it vivid and specific.`, artStyle),
		User:      "Create an art prompt for this dream: " + content,
		MaxTokens: 150,
	})
	if err != nil {
		return nil, &GenerationError{Step: "prompt", Err: err}
	}
	if strings.TrimSpace(artPrompt) == "" {
		artPrompt = content
	}

	imageURL, err := g.image.GenerateImage(ctx, artPrompt)
	if err != nil {
		return nil, &GenerationError{Step: "image", Err: err}
	}

	raw, err := g.chat.Complete(ctx, Prompt{
		System: `You are an NFT metadata expert and art critic. From the dream content and art style, produce NFT metadata as JSON.

Return a JSON object with exactly these keys:
- title: creative title for the NFT (string)
- description: detailed description of the artwork (string)
- rarity: one of "Common", "Uncommon", "Rare", "Epic", "Legendary" (string)
- rarityScore: rarity from 0 to 100 (number)
- visualElements: key visual elements of the artwork (array of strings)
- colorPalette: dominant colours (array of strings)
- artisticTechnique: main technique or style descriptor (string)`,
		User:      fmt.Sprintf("Dream: %s\nArt Style: %s\nGenerated with prompt: %s", content, artStyle, artPrompt),
		MaxTokens: 400,
		JSON:      true,
	})
	if err != nil {
		return nil, &GenerationError{Step: "metadata", Err: err}
	}
	if strings.TrimSpace(raw) == "" {
		raw = "{}"
	}
	meta, err := parseObject(raw)
	if err != nil {
		return nil, &GenerationError{Step: "metadata", Err: err}
	}

	res := &NFTResult{
		ImageURL:          imageURL,
		Title:             stringOr(meta.Get("title"), fallbackTitle),
		Description:       stringOr(meta.Get("description"), fallbackDescription),
		ArtStyle:          artStyle,
		Rarity:            stringOr(meta.Get("rarity"), fallbackRarity),
		RarityScore:       score(meta.Get("rarityScore"), fallbackRarityScore),
		VisualElements:    stringsOf(meta.Get("visualElements")),
		ColorPalette:      stringsOf(meta.Get("colorPalette")),
		ArtisticTechnique: stringOr(meta.Get("artisticTechnique"), fallbackTechnique),
		ArtPrompt:         artPrompt,
	}
	if len(res.VisualElements) == 0 {
		res.VisualElements = append([]string{}, fallbackVisualElements...)
	}
	if len(res.ColorPalette) == 0 {
		res.ColorPalette = append([]string{}, fallbackColorPalette...)
	}

	logrus.WithFields(logrus.Fields{
		"title":  res.Title,
		"rarity": res.Rarity,
		"style":  artStyle,
	}).Info("nft artwork generated")
	return res, nil
}

type tokenAttribute struct {
	TraitType string `json:"trait_type"`
	Value     any    `json:"value"`
}

type tokenMetadata struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Image       string           `json:"image"`
	Attributes  []tokenAttribute `json:"attributes"`
}

// TokenURI renders the ERC-721 style metadata blob handed to the client for minting.
func TokenURI(name string, r *NFTResult, category string) (string, error) {
	b, err := json.Marshal(tokenMetadata{
		Name:        name,
		Description: r.Description,
		Image:       r.ImageURL,
		Attributes: []tokenAttribute{
			{TraitType: "Art Style", Value: r.ArtStyle},
			{TraitType: "Rarity", Value: r.Rarity},
			{TraitType: "Rarity Score", Value: r.RarityScore},
			{TraitType: "Dream Category", Value: category},
		},
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}
