package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/osu-tournament/internal/domain/matchup"
	"github.com/riskibarqy/osu-tournament/internal/domain/tournament"
	"github.com/riskibarqy/osu-tournament/internal/platform/cache"
	"github.com/riskibarqy/osu-tournament/internal/platform/docstore"
	"github.com/riskibarqy/osu-tournament/internal/platform/logging"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateMatchupInput struct {
	Tournament string
	Date       time.Time
	TeamRed    *primitive.ObjectID
	TeamBlue   *primitive.ObjectID
}

type MatchupService struct {
	repo        matchup.Repository
	tournaments tournament.Repository
	logger      *logging.Logger
}

func NewMatchupService(repo matchup.Repository, tournaments tournament.Repository, logger *logging.Logger) *MatchupService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchupService{
		repo:        repo,
		tournaments: tournaments,
		logger:      logger,
	}
}

func (s *MatchupService) CreateMatchup(ctx context.Context, input CreateMatchupInput) (_ matchup.Matchup, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchupService.CreateMatchup")
	defer finishSpan(span, &err)

	idOrSlug := strings.TrimSpace(input.Tournament)
	if idOrSlug == "" {
		return matchup.Matchup{}, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}
	teams, found, err := s.tournaments.ListTeams(ctx, idOrSlug)
	if err != nil {
		return matchup.Matchup{}, fmt.Errorf("list tournament teams: %w", err)
	}
	if !found {
		return matchup.Matchup{}, notFound("tournament", idOrSlug)
	}
	t, found, err := s.tournaments.GetByIDOrSlug(cache.Bypass(ctx), idOrSlug)
	if err != nil {
		return matchup.Matchup{}, fmt.Errorf("get tournament: %w", err)
	}
	if !found {
		return matchup.Matchup{}, notFound("tournament", idOrSlug)
	}

	m := matchup.Matchup{
		TournamentID: t.ID,
		Date:         docstore.StoredTime(input.Date),
		TeamRed:      input.TeamRed,
		TeamBlue:     input.TeamBlue,
		Maps:         []matchup.Map{},
	}
	if err := m.Validate(); err != nil {
		return matchup.Matchup{}, invalid(err)
	}
	if err := checkTeamsRegistered(teams, m.TeamRed, m.TeamBlue); err != nil {
		return matchup.Matchup{}, err
	}

	id, err := s.repo.Create(ctx, m)
	if err != nil {
		return matchup.Matchup{}, fmt.Errorf("create matchup: %w", err)
	}
	m.ID = id

	s.logger.InfoContext(ctx, "matchup created", "matchup_id", id.Hex(), "tournament_id", t.ID.Hex())
	return m, nil
}

func (s *MatchupService) GetMatchup(ctx context.Context, id string) (matchup.Matchup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchupService.GetMatchup")
	defer span.End()

	return s.get(ctx, id)
}

func (s *MatchupService) ListByTournament(ctx context.Context, idOrSlug string) ([]matchup.Matchup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchupService.ListByTournament")
	defer span.End()

	idOrSlug = strings.TrimSpace(idOrSlug)
	if idOrSlug == "" {
		return nil, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}
	t, found, err := s.tournaments.GetByIDOrSlug(ctx, idOrSlug)
	if err != nil {
		return nil, fmt.Errorf("get tournament: %w", err)
	}
	if !found {
		return nil, notFound("tournament", idOrSlug)
	}

	out, err := s.repo.ListByTournament(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("list matchups by tournament: %w", err)
	}
	return out, nil
}

func (s *MatchupService) UpdateMatchup(ctx context.Context, id string, p matchup.Patch) (_ matchup.Matchup, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchupService.UpdateMatchup")
	defer finishSpan(span, &err)

	existing, err := s.get(ctx, id)
	if err != nil {
		return matchup.Matchup{}, err
	}

	merged := p.Apply(existing)
	if p.Has(matchup.Date.Key) {
		merged.Date = docstore.StoredTime(merged.Date)
		p = p.With(matchup.Date.Set(merged.Date))
	}
	if err := merged.Validate(); err != nil {
		return matchup.Matchup{}, invalid(err)
	}
	if p.Has(matchup.TeamRed.Key) || p.Has(matchup.TeamBlue.Key) {
		teams, found, err := s.tournaments.ListTeams(ctx, merged.TournamentID.Hex())
		if err != nil {
			return matchup.Matchup{}, fmt.Errorf("list tournament teams: %w", err)
		}
		if !found {
			return matchup.Matchup{}, notFound("tournament", merged.TournamentID.Hex())
		}
		if err := checkTeamsRegistered(teams, merged.TeamRed, merged.TeamBlue); err != nil {
			return matchup.Matchup{}, err
		}
	}

	found, err := s.repo.Update(ctx, existing.ID, p)
	if err != nil {
		return matchup.Matchup{}, fmt.Errorf("update matchup: %w", err)
	}
	if !found {
		return matchup.Matchup{}, notFound("matchup", id)
	}
	return merged, nil
}

func (s *MatchupService) DeleteMatchup(ctx context.Context, id string) (err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchupService.DeleteMatchup")
	defer finishSpan(span, &err)

	found, err := s.repo.Delete(ctx, docstore.NormalizeID(strings.TrimSpace(id)))
	if err != nil {
		return fmt.Errorf("delete matchup: %w", err)
	}
	if !found {
		return notFound("matchup", id)
	}
	return nil
}

// AddMaps records picks, bans and protects. Each map must be attributed to
// one of the two sides of the matchup.
func (s *MatchupService) AddMaps(ctx context.Context, id string, maps []matchup.Map) (err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchupService.AddMaps")
	defer finishSpan(span, &err)

	if len(maps) == 0 {
		return fmt.Errorf("%w: maps are required", ErrInvalidInput)
	}

	existing, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	for i, m := range maps {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("%w: map %d: %v", ErrInvalidInput, i, err)
		}
		if !playsIn(existing, m.Team) {
			return fmt.Errorf("%w: map %d: team %s does not play this matchup", ErrInvalidInput, i, m.Team.Hex())
		}
	}

	found, err := s.repo.AppendMaps(ctx, existing.ID, maps...)
	if err != nil {
		return fmt.Errorf("append matchup maps: %w", err)
	}
	if !found {
		return notFound("matchup", id)
	}
	return nil
}

func (s *MatchupService) get(ctx context.Context, id string) (matchup.Matchup, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return matchup.Matchup{}, fmt.Errorf("%w: matchup id is required", ErrInvalidInput)
	}

	m, found, err := s.repo.GetByID(ctx, docstore.NormalizeID(id))
	if err != nil {
		return matchup.Matchup{}, fmt.Errorf("get matchup: %w", err)
	}
	if !found {
		return matchup.Matchup{}, notFound("matchup", id)
	}
	return m, nil
}

func checkTeamsRegistered(teams []tournament.Team, sides ...*primitive.ObjectID) error {
	registered := make(map[primitive.ObjectID]struct{}, len(teams))
	for _, team := range teams {
		registered[team.ID] = struct{}{}
	}
	for _, side := range sides {
		if side == nil {
			continue
		}
		if _, ok := registered[*side]; !ok {
			return fmt.Errorf("%w: team %s is not registered in the tournament", ErrInvalidInput, side.Hex())
		}
	}
	return nil
}

func playsIn(m matchup.Matchup, team primitive.ObjectID) bool {
	return (m.TeamRed != nil && *m.TeamRed == team) || (m.TeamBlue != nil && *m.TeamBlue == team)
}
