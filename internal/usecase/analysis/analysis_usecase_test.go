package analysis

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/scoutlane/talent-backend/internal/config"
	"github.com/scoutlane/talent-backend/internal/domain"
	"github.com/stretchr/testify/suite"
)

type stubPlayerRepo struct {
	players map[int]*domain.Player
}

func (r *stubPlayerRepo) GetByID(_ context.Context, id int) (*domain.Player, error) {
	if p, ok := r.players[id]; ok {
		return p, nil
	}
	return nil, domain.ErrPlayerNotFound
}

func (r *stubPlayerRepo) GetByIDs(context.Context, []int) ([]*domain.Player, error) {
	return nil, nil
}
func (r *stubPlayerRepo) ListIDs(context.Context, bool) ([]int, error) { return nil, nil }
func (r *stubPlayerRepo) Count(context.Context) (int, error)           { return 0, nil }

type stubCoachRepo struct {
	ctx domain.CoachContext
}

func (r *stubCoachRepo) GetContext(context.Context, int) (*domain.CoachContext, error) {
	c := r.ctx
	return &c, nil
}

type stubGenerator struct {
	response string
	err      error
	prompts  []string
}

func (g *stubGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.response, g.err
}

func (g *stubGenerator) Configured() bool { return true }

type AnalysisSuite struct {
	suite.Suite
	playerRepo *stubPlayerRepo
	coachRepo  *stubCoachRepo
	generator  *stubGenerator
	cfg        *config.AIConfig
	uc         *AnalysisUseCase
}

func TestAnalysisSuite(t *testing.T) {
	suite.Run(t, new(AnalysisSuite))
}

func (s *AnalysisSuite) SetupTest() {
	s.playerRepo = &stubPlayerRepo{players: map[int]*domain.Player{
		1: {ID: 1, Name: "Jane Doe", Username: "janedoe"},
	}}
	s.coachRepo = &stubCoachRepo{ctx: domain.CoachContext{
		SchoolName: "State University",
		SchoolType: domain.SchoolTypeUniversity,
		Games:      []string{"Valorant", "Rocket League"},
	}}
	s.generator = &stubGenerator{}
	s.cfg = &config.AIConfig{APIKey: "test-key"}
	s.rebuild()
}

func (s *AnalysisSuite) rebuild() {
	s.uc = NewAnalysisUseCase(s.playerRepo, s.coachRepo, s.generator, s.cfg, zerolog.Nop())
}

func (s *AnalysisSuite) TestWellFormedResponse() {
	s.generator.response = `{"overview": "Strong duelist prospect.", "pros": ["Great aim", "Shot caller"], "cons": ["Limited agent pool"]}`

	result, err := s.uc.Generate(context.Background(), 1, 7)
	s.Require().NoError(err)
	s.Equal("Strong duelist prospect.", result.Overview)
	s.Equal([]string{"Great aim", "Shot caller"}, result.Pros)
	s.Equal([]string{"Limited agent pool"}, result.Cons)
}

func (s *AnalysisSuite) TestFencedResponseAccepted() {
	s.generator.response = "```json\n{\"overview\": \"Solid pick.\", \"pros\": [], \"cons\": []}\n```"

	result, err := s.uc.Generate(context.Background(), 1, 7)
	s.Require().NoError(err)
	s.Equal("Solid pick.", result.Overview)
	s.NotNil(result.Pros)
	s.NotNil(result.Cons)
	s.Empty(result.Pros)
	s.Empty(result.Cons)
}

func (s *AnalysisSuite) TestGarbageResponseIsHardFailure() {
	s.generator.response = "I think this player is pretty good overall!"

	_, err := s.uc.Generate(context.Background(), 1, 7)
	s.ErrorIs(err, domain.ErrAnalysisGeneration)
}

func (s *AnalysisSuite) TestMissingConsIsHardFailure() {
	s.generator.response = `{"overview": "Looks good.", "pros": ["Aim"]}`

	_, err := s.uc.Generate(context.Background(), 1, 7)
	s.ErrorIs(err, domain.ErrAnalysisGeneration)
}

func (s *AnalysisSuite) TestNullProsIsHardFailure() {
	s.generator.response = `{"overview": "Looks good.", "pros": null, "cons": ["Slow"]}`

	_, err := s.uc.Generate(context.Background(), 1, 7)
	s.ErrorIs(err, domain.ErrAnalysisGeneration)
}

func (s *AnalysisSuite) TestEmptyOverviewIsHardFailure() {
	s.generator.response = `{"overview": "  ", "pros": ["Aim"], "cons": ["Comms"]}`

	_, err := s.uc.Generate(context.Background(), 1, 7)
	s.ErrorIs(err, domain.ErrAnalysisGeneration)
}

func (s *AnalysisSuite) TestUnknownPlayer() {
	_, err := s.uc.Generate(context.Background(), 42, 7)
	s.ErrorIs(err, domain.ErrPlayerNotFound)
}

func (s *AnalysisSuite) TestUnconfiguredFailsFast() {
	s.cfg.APIKey = ""
	s.rebuild()

	_, err := s.uc.Generate(context.Background(), 1, 7)
	s.ErrorIs(err, domain.ErrAINotConfigured)
	s.Empty(s.generator.prompts)
}

func (s *AnalysisSuite) TestPromptCarriesPlayerAndCoachContext() {
	s.generator.response = `{"overview": "ok", "pros": [], "cons": []}`

	_, err := s.uc.Generate(context.Background(), 1, 7)
	s.Require().NoError(err)
	s.Require().Len(s.generator.prompts, 1)
	prompt := s.generator.prompts[0]
	s.Contains(prompt, "Jane Doe")
	s.Contains(prompt, "State University")
	s.Contains(prompt, "Valorant")
}
