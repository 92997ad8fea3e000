package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/osu-tournament/internal/domain/tournament"
	"github.com/riskibarqy/osu-tournament/internal/platform/cache"
	"github.com/riskibarqy/osu-tournament/internal/platform/docstore"
	"github.com/riskibarqy/osu-tournament/internal/platform/logging"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/attribute"
)

type CreateTournamentInput struct {
	Slug              string
	Name              string
	Mode              tournament.Mode
	InviteOnly        bool
	MinTeamSize       int32
	MaxTeamSize       int32
	RegistrationStart *time.Time
	RegistrationEnd   *time.Time
}

type RegisterTeamInput struct {
	Name    string
	Captain int32
	Players []int32
}

type TournamentService struct {
	repo   tournament.Repository
	logger *logging.Logger
	now    func() time.Time
}

func NewTournamentService(repo tournament.Repository, logger *logging.Logger) *TournamentService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TournamentService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *TournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (_ tournament.Tournament, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.CreateTournament", attribute.String("tournament.slug", input.Slug))
	defer finishSpan(span, &err)

	now := docstore.StoredTime(s.now())
	t := tournament.Tournament{
		Slug:              strings.TrimSpace(input.Slug),
		Name:              strings.TrimSpace(input.Name),
		Mode:              input.Mode,
		InviteOnly:        input.InviteOnly,
		MinTeamSize:       input.MinTeamSize,
		MaxTeamSize:       input.MaxTeamSize,
		RegistrationStart: now,
		RegistrationEnd:   now,
	}
	if input.RegistrationStart != nil {
		t.RegistrationStart = docstore.StoredTime(*input.RegistrationStart)
	}
	if input.RegistrationEnd != nil {
		t.RegistrationEnd = docstore.StoredTime(*input.RegistrationEnd)
	}

	if err := t.ValidateNew(); err != nil {
		return tournament.Tournament{}, invalid(err)
	}

	taken, err := s.repo.SlugExists(ctx, t.Slug)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("check tournament slug: %w", err)
	}
	if taken {
		return tournament.Tournament{}, &tournament.DuplicateError{Key: "slug"}
	}

	id, err := s.repo.Create(ctx, t)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("create tournament: %w", err)
	}
	t.ID = id

	s.logger.InfoContext(ctx, "tournament created", "tournament_id", id.Hex(), "slug", t.Slug)
	return t, nil
}

func (s *TournamentService) GetTournament(ctx context.Context, idOrSlug string) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.GetTournament")
	defer span.End()

	return s.resolve(ctx, idOrSlug)
}

// UpdateTournament validates the merged record but only writes the
// attributes touched by p.
func (s *TournamentService) UpdateTournament(ctx context.Context, idOrSlug string, p tournament.Patch) (_ tournament.Tournament, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.UpdateTournament")
	defer finishSpan(span, &err)

	existing, err := s.resolveStored(ctx, idOrSlug)
	if err != nil {
		return tournament.Tournament{}, err
	}

	merged := p.Apply(existing)
	if p.Has(tournament.Slug.Key) {
		merged.Slug = strings.TrimSpace(merged.Slug)
		p = p.With(tournament.Slug.Set(merged.Slug))
	}
	if p.Has(tournament.Name.Key) {
		merged.Name = strings.TrimSpace(merged.Name)
		p = p.With(tournament.Name.Set(merged.Name))
	}
	if p.Has(tournament.RegistrationStart.Key) {
		merged.RegistrationStart = docstore.StoredTime(merged.RegistrationStart)
		p = p.With(tournament.RegistrationStart.Set(merged.RegistrationStart))
	}
	if p.Has(tournament.RegistrationEnd.Key) {
		merged.RegistrationEnd = docstore.StoredTime(merged.RegistrationEnd)
		p = p.With(tournament.RegistrationEnd.Set(merged.RegistrationEnd))
	}
	if err := merged.Validate(); err != nil {
		return tournament.Tournament{}, invalid(err)
	}

	if p.Has(tournament.Slug.Key) && merged.Slug != existing.Slug {
		taken, err := s.repo.SlugExists(ctx, merged.Slug)
		if err != nil {
			return tournament.Tournament{}, fmt.Errorf("check tournament slug: %w", err)
		}
		if taken {
			return tournament.Tournament{}, &tournament.DuplicateError{Key: "slug"}
		}
	}

	found, err := s.repo.Update(ctx, existing.ID, p)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("update tournament: %w", err)
	}
	if !found {
		return tournament.Tournament{}, notFound("tournament", idOrSlug)
	}

	return merged, nil
}

func (s *TournamentService) DeleteTournament(ctx context.Context, idOrSlug string) (err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.DeleteTournament")
	defer finishSpan(span, &err)

	existing, err := s.resolveStored(ctx, idOrSlug)
	if err != nil {
		return err
	}

	found, err := s.repo.Delete(ctx, existing.ID)
	if err != nil {
		return fmt.Errorf("delete tournament: %w", err)
	}
	if !found {
		return notFound("tournament", idOrSlug)
	}

	s.logger.InfoContext(ctx, "tournament deleted", "tournament_id", existing.ID.Hex())
	return nil
}

// RegisterTeam appends a roster once the registration window is open and no
// listed player already plays for another team. The duplicate check and the
// append are separate store operations.
func (s *TournamentService) RegisterTeam(ctx context.Context, idOrSlug string, input RegisterTeamInput) (_ tournament.Team, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.RegisterTeam")
	defer finishSpan(span, &err)

	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return tournament.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	team := tournament.NewTeam(input.Name, input.Captain, input.Players)
	if err := team.Validate(); err != nil {
		return tournament.Team{}, invalid(err)
	}

	t, err := s.resolveStored(ctx, idOrSlug)
	if err != nil {
		return tournament.Team{}, err
	}

	if err := tournament.CheckRegistrationWindow(t, s.now()); err != nil {
		return tournament.Team{}, err
	}

	duplicates, err := s.repo.DuplicatePlayers(ctx, t.ID, team.Players)
	if err != nil {
		return tournament.Team{}, fmt.Errorf("check registered players: %w", err)
	}
	if len(duplicates) > 0 {
		s.logger.WarnContext(ctx, "team registration rejected",
			"tournament_id", t.ID.Hex(),
			"duplicate_players", duplicates,
		)
		return tournament.Team{}, &tournament.AlreadyRegisteredError{Players: duplicates}
	}

	found, err := s.repo.AppendTeams(ctx, t.ID, team)
	if err != nil {
		return tournament.Team{}, fmt.Errorf("append team: %w", err)
	}
	if !found {
		return tournament.Team{}, notFound("tournament", idOrSlug)
	}

	s.logger.InfoContext(ctx, "team registered",
		"tournament_id", t.ID.Hex(),
		"team_id", team.ID.Hex(),
		"players", len(team.Players),
	)
	return team, nil
}

func (s *TournamentService) ListTeams(ctx context.Context, idOrSlug string) ([]tournament.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.ListTeams")
	defer span.End()

	idOrSlug = strings.TrimSpace(idOrSlug)
	if idOrSlug == "" {
		return nil, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}

	teams, found, err := s.repo.ListTeams(ctx, idOrSlug)
	if err != nil {
		return nil, fmt.Errorf("list tournament teams: %w", err)
	}
	if !found {
		return nil, notFound("tournament", idOrSlug)
	}
	return teams, nil
}

func (s *TournamentService) ListPlayers(ctx context.Context, idOrSlug string) ([]int32, error) {
	teams, err := s.ListTeams(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	return tournament.Tournament{Teams: teams}.Players(), nil
}

// RemoveTeams withdraws teams from a tournament. Every id must belong to a
// registered team.
func (s *TournamentService) RemoveTeams(ctx context.Context, idOrSlug string, teamIDs []string) (err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.RemoveTeams")
	defer finishSpan(span, &err)

	if len(teamIDs) == 0 {
		return fmt.Errorf("%w: team ids are required", ErrInvalidInput)
	}

	t, err := s.resolveStored(ctx, idOrSlug)
	if err != nil {
		return err
	}
	teams, found, err := s.repo.ListTeams(ctx, t.ID.Hex())
	if err != nil {
		return fmt.Errorf("list tournament teams: %w", err)
	}
	if !found {
		return notFound("tournament", idOrSlug)
	}

	registered := make(map[primitive.ObjectID]struct{}, len(teams))
	for _, team := range teams {
		registered[team.ID] = struct{}{}
	}

	ids := make([]primitive.ObjectID, 0, len(teamIDs))
	for _, raw := range teamIDs {
		id := docstore.NormalizeID(strings.TrimSpace(raw))
		if _, ok := registered[id]; !ok {
			return notFound("team", raw)
		}
		ids = append(ids, id)
	}

	found, err = s.repo.RemoveTeams(ctx, t.ID, ids)
	if err != nil {
		return fmt.Errorf("remove tournament teams: %w", err)
	}
	if !found {
		return notFound("tournament", idOrSlug)
	}

	s.logger.InfoContext(ctx, "teams removed", "tournament_id", t.ID.Hex(), "count", len(ids))
	return nil
}

// resolveStored skips any lookup cache; the registration window and patch
// merges are decided on the stored record.
func (s *TournamentService) resolveStored(ctx context.Context, idOrSlug string) (tournament.Tournament, error) {
	return s.resolve(cache.Bypass(ctx), idOrSlug)
}

func (s *TournamentService) resolve(ctx context.Context, idOrSlug string) (tournament.Tournament, error) {
	idOrSlug = strings.TrimSpace(idOrSlug)
	if idOrSlug == "" {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}

	t, found, err := s.repo.GetByIDOrSlug(ctx, idOrSlug)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("get tournament: %w", err)
	}
	if !found {
		return tournament.Tournament{}, notFound("tournament", idOrSlug)
	}
	return t, nil
}
