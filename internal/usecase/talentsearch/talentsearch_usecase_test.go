package talentsearch

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/scoutlane/talent-backend/internal/config"
	"github.com/scoutlane/talent-backend/internal/domain"
	"github.com/scoutlane/talent-backend/internal/repository"
	"github.com/scoutlane/talent-backend/internal/usecase/search"
	"github.com/stretchr/testify/suite"
)

type stubEmbedder struct {
	vector []float64
}

func (e *stubEmbedder) EmbedText(context.Context, string) ([]float64, error) {
	return e.vector, nil
}

func (e *stubEmbedder) Configured() bool { return true }

type stubEmbeddingRepo struct {
	candidates []repository.EmbeddingCandidate
}

func (r *stubEmbeddingRepo) Upsert(context.Context, *domain.PlayerEmbedding) error { return nil }
func (r *stubEmbeddingRepo) Count(context.Context) (int, error)                    { return 0, nil }
func (r *stubEmbeddingRepo) MissingCount(context.Context) (int, error)             { return 0, nil }

func (r *stubEmbeddingRepo) Candidates(context.Context, *domain.SearchFilters) ([]repository.EmbeddingCandidate, error) {
	return r.candidates, nil
}

type stubPlayerRepo struct {
	players map[int]*domain.Player
	calls   int
}

func (r *stubPlayerRepo) GetByID(_ context.Context, id int) (*domain.Player, error) {
	if p, ok := r.players[id]; ok {
		return p, nil
	}
	return nil, domain.ErrPlayerNotFound
}

// GetByIDs intentionally returns rows in ascending-ID order regardless
// of the requested order, like a real bulk fetch would.
func (r *stubPlayerRepo) GetByIDs(_ context.Context, ids []int) ([]*domain.Player, error) {
	r.calls++
	var out []*domain.Player
	for id := 0; id < 1000; id++ {
		for _, want := range ids {
			if want == id {
				if p, ok := r.players[id]; ok {
					out = append(out, p)
				}
			}
		}
	}
	return out, nil
}

func (r *stubPlayerRepo) ListIDs(context.Context, bool) ([]int, error) { return nil, nil }
func (r *stubPlayerRepo) Count(context.Context) (int, error)           { return len(r.players), nil }

type stubFavoriteRepo struct {
	favorites map[int]bool
}

func (r *stubFavoriteRepo) FavoritedSet(_ context.Context, _ int, ids []int) (map[int]bool, error) {
	out := make(map[int]bool)
	for _, id := range ids {
		if r.favorites[id] {
			out[id] = true
		}
	}
	return out, nil
}

type UseCaseSuite struct {
	suite.Suite
	embedder      *stubEmbedder
	embeddingRepo *stubEmbeddingRepo
	playerRepo    *stubPlayerRepo
	favoriteRepo  *stubFavoriteRepo
	cfg           *config.AIConfig
	uc            *TalentSearchUseCase
}

func TestUseCaseSuite(t *testing.T) {
	suite.Run(t, new(UseCaseSuite))
}

func (s *UseCaseSuite) SetupTest() {
	s.embedder = &stubEmbedder{vector: []float64{1, 0}}
	s.embeddingRepo = &stubEmbeddingRepo{}
	s.playerRepo = &stubPlayerRepo{players: make(map[int]*domain.Player)}
	s.favoriteRepo = &stubFavoriteRepo{favorites: make(map[int]bool)}
	s.cfg = &config.AIConfig{APIKey: "test-key"}
	s.rebuild()
}

func (s *UseCaseSuite) rebuild() {
	engine := search.NewEngine(s.embedder, s.embeddingRepo, zerolog.Nop())
	s.uc = NewTalentSearchUseCase(engine, s.playerRepo, s.favoriteRepo, s.cfg, zerolog.Nop())
}

func (s *UseCaseSuite) addPlayer(id int, name string) {
	s.playerRepo.players[id] = &domain.Player{ID: id, Name: name}
}

func (s *UseCaseSuite) addCandidate(id int, vector []float64) {
	s.embeddingRepo.candidates = append(s.embeddingRepo.candidates,
		repository.EmbeddingCandidate{PlayerID: id, Vector: vector})
}

func (s *UseCaseSuite) search(query string) (*domain.SearchResponse, error) {
	return s.uc.Search(context.Background(), &domain.SearchFilters{Query: query}, 99)
}

func (s *UseCaseSuite) TestUnconfiguredFailsFast() {
	s.cfg.APIKey = ""
	s.rebuild()

	_, err := s.search("anyone")
	s.ErrorIs(err, domain.ErrAINotConfigured)
	// The gate fires before any backend work.
	s.Equal(0, s.playerRepo.calls)
}

func (s *UseCaseSuite) TestAvailabilityMatchesGate() {
	s.True(s.uc.Availability().IsAvailable)

	s.cfg.APIKey = ""
	s.rebuild()
	avail := s.uc.Availability()
	s.False(avail.IsAvailable)
	s.NotEmpty(avail.Message)
}

func (s *UseCaseSuite) TestEmptyQueryRejected() {
	_, err := s.search("")
	s.ErrorIs(err, domain.ErrInvalidFilters)
}

func (s *UseCaseSuite) TestGPARangeValidated() {
	minGPA, maxGPA := 3.8, 3.0
	_, err := s.uc.Search(context.Background(), &domain.SearchFilters{
		Query:  "inverted range",
		MinGPA: &minGPA,
		MaxGPA: &maxGPA,
	}, 99)
	s.ErrorIs(err, domain.ErrInvalidFilters)
}

func (s *UseCaseSuite) TestEmptyCorpusSkipsHydration() {
	resp, err := s.search("fresh system")
	s.Require().NoError(err)
	s.Empty(resp.Results)
	s.Equal(0, resp.TotalCount)
	s.Equal("fresh system", resp.Query)
	s.Equal(0, s.playerRepo.calls)
}

func (s *UseCaseSuite) TestResultsReSortedAfterHydration() {
	// Candidate 9 outranks 2 outranks 5, but the bulk fetch returns
	// ascending IDs.
	s.addCandidate(9, []float64{1, 0})
	s.addCandidate(2, []float64{0.9, 0.43589})
	s.addCandidate(5, []float64{0.6, 0.8})
	s.addPlayer(2, "Second")
	s.addPlayer(5, "Third")
	s.addPlayer(9, "First")

	resp, err := s.search("best available")
	s.Require().NoError(err)
	s.Require().Len(resp.Results, 3)
	s.Equal(9, resp.Results[0].Player.ID)
	s.Equal(2, resp.Results[1].Player.ID)
	s.Equal(5, resp.Results[2].Player.ID)
	for i := 1; i < len(resp.Results); i++ {
		s.GreaterOrEqual(resp.Results[i-1].Similarity, resp.Results[i].Similarity)
	}
}

func (s *UseCaseSuite) TestDeletedPlayerSilentlyDropped() {
	s.addCandidate(1, []float64{1, 0})
	s.addCandidate(2, []float64{1, 0})
	s.addPlayer(1, "Still here")
	// Player 2 was deleted between ranking and hydration.

	resp, err := s.search("anyone")
	s.Require().NoError(err)
	s.Require().Len(resp.Results, 1)
	s.Equal(1, resp.Results[0].Player.ID)
	s.Equal(1, resp.TotalCount)
}

func (s *UseCaseSuite) TestFavoriteAnnotation() {
	s.addCandidate(1, []float64{1, 0})
	s.addCandidate(2, []float64{1, 0})
	s.addPlayer(1, "Fav")
	s.addPlayer(2, "Not fav")
	s.favoriteRepo.favorites[1] = true

	resp, err := s.search("anyone")
	s.Require().NoError(err)
	s.Require().Len(resp.Results, 2)
	for _, r := range resp.Results {
		if r.Player.ID == 1 {
			s.True(r.IsFavorited)
		} else {
			s.False(r.IsFavorited)
		}
	}
}

func (s *UseCaseSuite) TestDeploymentFloorAppliedWhenUnset() {
	s.cfg.MinSimilarity = 0.9
	s.rebuild()
	s.addCandidate(1, []float64{0, 1}) // score 0.5
	s.addPlayer(1, "Low scorer")

	resp, err := s.search("anyone")
	s.Require().NoError(err)
	s.Empty(resp.Results)
}

func (s *UseCaseSuite) TestExplicitZeroFloorDisablesIt() {
	s.cfg.MinSimilarity = 0.9
	s.rebuild()
	s.addCandidate(1, []float64{0, 1}) // score 0.5
	s.addPlayer(1, "Low scorer")

	floor := 0.0
	resp, err := s.uc.Search(context.Background(), &domain.SearchFilters{
		Query:         "anyone",
		MinSimilarity: &floor,
	}, 99)
	s.Require().NoError(err)
	s.Require().Len(resp.Results, 1)
	s.Equal(1, resp.Results[0].Player.ID)
}

func (s *UseCaseSuite) TestSimilarityCarriedThroughHydration() {
	s.addCandidate(4, []float64{0.6, 0.8}) // score 0.8
	s.addPlayer(4, "Scored")

	resp, err := s.search("scored player")
	s.Require().NoError(err)
	s.Require().Len(resp.Results, 1)
	s.InDelta(0.8, resp.Results[0].Similarity, 0.001)
}
