package ai

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/models"
)

const defaultDreamType = "Standard"

type Analysis struct {
	Interpretation      string               `json:"interpretation"`
	Symbols             models.Symbols       `json:"symbols"`
	Emotions            []string             `json:"emotions"`
	PersonalityInsights []string             `json:"personalityInsights"`
	TrendPredictions    []string             `json:"trendPredictions"`
	RarityScore         int                  `json:"rarityScore"`
	DreamType           string               `json:"dreamType"`
	LucidityLevel       int                  `json:"lucidityLevel"`
	PsychologicalThemes []string             `json:"psychologicalThemes"`
	SpiritualInsights   []string             `json:"spiritualInsights"`
	AgentAnalyses       models.AgentAnalyses `json:"agentAnalyses"`
}

// Analyzer runs the five personas and the master interpreter against one dream.
type Analyzer struct {
	model TextModel
}

func NewAnalyzer(model TextModel) *Analyzer {
	return &Analyzer{model: model}
}

// Analyze fans the dream out to all six prompts concurrently and merges the answers.
// Either every call succeeds and the master answer parses, or an *AnalysisError is returned.
func (a *Analyzer) Analyze(ctx context.Context, content, category string) (*Analysis, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if !a.model.Configured() {
		return nil, ErrNotConfigured
	}

	voices := make([]string, len(personas))
	var master *Analysis

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range personas {
		i, p := i, p
		g.Go(func() error {
			text, err := a.model.Complete(gctx, Prompt{System: p.system, User: content, MaxTokens: p.maxTokens})
			if err != nil {
				return err
			}
			voices[i] = text
			return nil
		})
	}
	g.Go(func() error {
		text, err := a.model.Complete(gctx, Prompt{
			System:    masterSystemPrompt(category),
			User:      masterUserPrompt(content),
			MaxTokens: masterMaxTokens,
		})
		if err != nil {
			return err
		}
		master, err = parseMasterAnalysis(text)
		return err
	})

	if err := g.Wait(); err != nil {
		logrus.WithError(err).WithField("category", category).Warn("dream analysis failed")
		return nil, &AnalysisError{Err: err}
	}

	master.AgentAnalyses = models.AgentAnalyses{
		Symbolist:      voices[0],
		PatternAnalyst: voices[1],
		TrendPredictor: voices[2],
		MoodAnalyzer:   voices[3],
		LucidityCoach:  voices[4],
	}
	return master, nil
}

func parseMasterAnalysis(text string) (*Analysis, error) {
	obj, err := parseObject(text)
	if err != nil {
		return nil, err
	}

	symbols := models.Symbols{}
	for _, s := range obj.Get("symbols").Array() {
		if !s.IsObject() {
			continue
		}
		symbols = append(symbols, models.Symbol{
			Name:                 s.Get("name").String(),
			Meaning:              s.Get("meaning").String(),
			Rarity:               score(s.Get("rarity"), 0),
			Category:             s.Get("category").String(),
			CulturalSignificance: s.Get("culturalSignificance").String(),
		})
	}

	return &Analysis{
		Interpretation:      stringOr(obj.Get("interpretation"), ""),
		Symbols:             symbols,
		Emotions:            stringsOf(obj.Get("emotions")),
		PersonalityInsights: stringsOf(obj.Get("personalityInsights")),
		TrendPredictions:    stringsOf(obj.Get("trendPredictions")),
		RarityScore:         score(obj.Get("rarityScore"), 0),
		DreamType:           stringOr(obj.Get("dreamType"), defaultDreamType),
		LucidityLevel:       score(obj.Get("lucidityLevel"), 0),
		PsychologicalThemes: stringsOf(obj.Get("psychologicalThemes")),
		SpiritualInsights:   stringsOf(obj.Get("spiritualInsights")),
	}, nil
}

// Record converts the analysis into its stored form for dreamID.
func (a *Analysis) Record(dreamID uint) *models.DreamAnalysis {
	return &models.DreamAnalysis{
		DreamID:             dreamID,
		Interpretation:      a.Interpretation,
		Symbols:             a.Symbols,
		Emotions:            a.Emotions,
		PersonalityInsights: a.PersonalityInsights,
		TrendPredictions:    a.TrendPredictions,
		RarityScore:         a.RarityScore,
		DreamType:           a.DreamType,
		LucidityLevel:       a.LucidityLevel,
		PsychologicalThemes: a.PsychologicalThemes,
		SpiritualInsights:   a.SpiritualInsights,
		AgentAnalyses:       a.AgentAnalyses,
	}
}
