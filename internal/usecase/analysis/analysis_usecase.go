package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/scoutlane/talent-backend/internal/ai"
	"github.com/scoutlane/talent-backend/internal/config"
	"github.com/scoutlane/talent-backend/internal/domain"
	"github.com/scoutlane/talent-backend/internal/repository"
	"github.com/scoutlane/talent-backend/internal/usecase/embeddings"
)

// AnalysisUseCase produces a short structured assessment of one player,
// contextualized to the requesting coach's program. Output is generated
// fresh per request and never cached.
type AnalysisUseCase struct {
	playerRepo repository.PlayerRepository
	coachRepo  repository.CoachRepository
	generator  ai.Generator
	cfg        *config.AIConfig
	logger     zerolog.Logger
}

func NewAnalysisUseCase(
	playerRepo repository.PlayerRepository,
	coachRepo repository.CoachRepository,
	generator ai.Generator,
	cfg *config.AIConfig,
	logger zerolog.Logger,
) *AnalysisUseCase {
	return &AnalysisUseCase{
		playerRepo: playerRepo,
		coachRepo:  coachRepo,
		generator:  generator,
		cfg:        cfg,
		logger:     logger.With().Str("component", "analysis").Logger(),
	}
}

// Generate builds the prompt, runs one generation call and parses the
// response. A response that cannot be parsed into the full three-part
// shape is a hard failure; no partial analysis is ever returned.
func (uc *AnalysisUseCase) Generate(ctx context.Context, playerID, coachID int) (*domain.PlayerAnalysis, error) {
	if !uc.cfg.Configured() {
		return nil, domain.ErrAINotConfigured
	}

	player, err := uc.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	coachCtx, err := uc.coachRepo.GetContext(ctx, coachID)
	if err != nil {
		return nil, fmt.Errorf("loading coach context: %w", err)
	}

	prompt := buildPrompt(player, coachCtx)
	raw, err := uc.generator.GenerateText(ctx, prompt)
	if err != nil {
		if errors.Is(err, domain.ErrAINotConfigured) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrAnalysisGeneration, err)
	}

	result, err := parseAnalysis(raw)
	if err != nil {
		uc.logger.Warn().Err(err).Int("player_id", playerID).Msg("unparseable analysis response")
		return nil, err
	}
	return result, nil
}

func buildPrompt(player *domain.Player, coach *domain.CoachContext) string {
	var sb strings.Builder

	sb.WriteString("You are an esports recruiting analyst. Assess the following player for a coach.\n\n")
	sb.WriteString("Player profile:\n")
	sb.WriteString(embeddings.BuildProfileText(player))
	sb.WriteString("\n\nCoach context:\n")
	if coach.SchoolName != "" {
		sb.WriteString(fmt.Sprintf("Recruiting for %s (%s).\n", coach.SchoolName, coach.SchoolType))
	}
	if len(coach.Games) > 0 {
		sb.WriteString(fmt.Sprintf("The program fields teams in: %s.\n", strings.Join(coach.Games, ", ")))
	}
	sb.WriteString(`
Task: Write a recruiting assessment of this player for this program.
Output: JSON only, no markdown, with exactly this shape:
{"overview": "2-3 sentence assessment", "pros": ["short strength", ...], "cons": ["short concern", ...]}
Keep pros and cons to at most 4 entries each, each under 12 words.
`)
	return sb.String()
}

// parseAnalysis parses the model output, tolerating markdown code
// fences around the JSON but nothing else.
func parseAnalysis(raw string) (*domain.PlayerAnalysis, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var parsed struct {
		Overview string    `json:"overview"`
		Pros     *[]string `json:"pros"`
		Cons     *[]string `json:"cons"`
	}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAnalysisGeneration, err)
	}
	if strings.TrimSpace(parsed.Overview) == "" {
		return nil, fmt.Errorf("%w: missing overview", domain.ErrAnalysisGeneration)
	}
	if parsed.Pros == nil || parsed.Cons == nil {
		return nil, fmt.Errorf("%w: missing pros or cons", domain.ErrAnalysisGeneration)
	}

	analysis := &domain.PlayerAnalysis{
		Overview: strings.TrimSpace(parsed.Overview),
		Pros:     *parsed.Pros,
		Cons:     *parsed.Cons,
	}
	if analysis.Pros == nil {
		analysis.Pros = []string{}
	}
	if analysis.Cons == nil {
		analysis.Cons = []string{}
	}
	return analysis, nil
}
