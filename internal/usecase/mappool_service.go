package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/osu-tournament/internal/domain/mappool"
	"github.com/riskibarqy/osu-tournament/internal/domain/tournament"
	"github.com/riskibarqy/osu-tournament/internal/platform/cache"
	"github.com/riskibarqy/osu-tournament/internal/platform/docstore"
	"github.com/riskibarqy/osu-tournament/internal/platform/logging"
)

type CreateMappoolInput struct {
	Tournament  string
	Private     bool
	MappackLink string
	Maps        []mappool.Map
}

type MappoolService struct {
	repo        mappool.Repository
	tournaments tournament.Repository
	logger      *logging.Logger
}

func NewMappoolService(repo mappool.Repository, tournaments tournament.Repository, logger *logging.Logger) *MappoolService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MappoolService{
		repo:        repo,
		tournaments: tournaments,
		logger:      logger,
	}
}

func (s *MappoolService) CreateMappool(ctx context.Context, input CreateMappoolInput) (_ mappool.Mappool, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MappoolService.CreateMappool")
	defer finishSpan(span, &err)

	t, err := s.tournament(cache.Bypass(ctx), input.Tournament)
	if err != nil {
		return mappool.Mappool{}, err
	}

	m := mappool.Mappool{
		TournamentID: t.ID,
		Private:      input.Private,
		MappackLink:  strings.TrimSpace(input.MappackLink),
		Maps:         input.Maps,
	}
	if m.Maps == nil {
		m.Maps = []mappool.Map{}
	}
	if err := m.Validate(); err != nil {
		return mappool.Mappool{}, invalid(err)
	}

	id, err := s.repo.Create(ctx, m)
	if err != nil {
		return mappool.Mappool{}, fmt.Errorf("create mappool: %w", err)
	}
	m.ID = id

	s.logger.InfoContext(ctx, "mappool created", "mappool_id", id.Hex(), "tournament_id", t.ID.Hex())
	return m, nil
}

func (s *MappoolService) GetMappool(ctx context.Context, id string) (mappool.Mappool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MappoolService.GetMappool")
	defer span.End()

	return s.get(ctx, id)
}

func (s *MappoolService) ListByTournament(ctx context.Context, idOrSlug string) ([]mappool.Mappool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MappoolService.ListByTournament")
	defer span.End()

	t, err := s.tournament(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}

	pools, err := s.repo.ListByTournament(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("list mappools by tournament: %w", err)
	}
	return pools, nil
}

func (s *MappoolService) UpdateMappool(ctx context.Context, id string, p mappool.Patch) (_ mappool.Mappool, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MappoolService.UpdateMappool")
	defer finishSpan(span, &err)

	existing, err := s.get(ctx, id)
	if err != nil {
		return mappool.Mappool{}, err
	}

	merged := p.Apply(existing)
	if err := merged.Validate(); err != nil {
		return mappool.Mappool{}, invalid(err)
	}
	if merged.TournamentID != existing.TournamentID {
		if _, err := s.tournament(cache.Bypass(ctx), merged.TournamentID.Hex()); err != nil {
			return mappool.Mappool{}, err
		}
	}

	found, err := s.repo.Update(ctx, existing.ID, p)
	if err != nil {
		return mappool.Mappool{}, fmt.Errorf("update mappool: %w", err)
	}
	if !found {
		return mappool.Mappool{}, notFound("mappool", id)
	}
	return merged, nil
}

func (s *MappoolService) DeleteMappool(ctx context.Context, id string) (err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MappoolService.DeleteMappool")
	defer finishSpan(span, &err)

	found, err := s.repo.Delete(ctx, docstore.NormalizeID(strings.TrimSpace(id)))
	if err != nil {
		return fmt.Errorf("delete mappool: %w", err)
	}
	if !found {
		return notFound("mappool", id)
	}
	return nil
}

func (s *MappoolService) AddMaps(ctx context.Context, id string, maps []mappool.Map) (err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MappoolService.AddMaps")
	defer finishSpan(span, &err)

	if len(maps) == 0 {
		return fmt.Errorf("%w: maps are required", ErrInvalidInput)
	}
	for i, m := range maps {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("%w: map %d: %v", ErrInvalidInput, i, err)
		}
	}

	found, err := s.repo.AppendMaps(ctx, docstore.NormalizeID(strings.TrimSpace(id)), maps...)
	if err != nil {
		return fmt.Errorf("append mappool maps: %w", err)
	}
	if !found {
		return notFound("mappool", id)
	}
	return nil
}

// RemoveMap drops the map at pos; later maps shift down by one.
func (s *MappoolService) RemoveMap(ctx context.Context, id string, pos int) (err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MappoolService.RemoveMap")
	defer finishSpan(span, &err)

	if pos < 0 {
		return fmt.Errorf("%w: position must not be negative", ErrInvalidInput)
	}

	found, err := s.repo.RemoveMap(ctx, docstore.NormalizeID(strings.TrimSpace(id)), pos)
	if err != nil {
		if errors.Is(err, mappool.ErrMapNotFound) {
			return err
		}
		return fmt.Errorf("remove mappool map: %w", err)
	}
	if !found {
		return notFound("mappool", id)
	}
	return nil
}

func (s *MappoolService) get(ctx context.Context, id string) (mappool.Mappool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return mappool.Mappool{}, fmt.Errorf("%w: mappool id is required", ErrInvalidInput)
	}

	m, found, err := s.repo.GetByID(ctx, docstore.NormalizeID(id))
	if err != nil {
		return mappool.Mappool{}, fmt.Errorf("get mappool: %w", err)
	}
	if !found {
		return mappool.Mappool{}, notFound("mappool", id)
	}
	return m, nil
}

func (s *MappoolService) tournament(ctx context.Context, idOrSlug string) (tournament.Tournament, error) {
	idOrSlug = strings.TrimSpace(idOrSlug)
	if idOrSlug == "" {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}

	t, found, err := s.tournaments.GetByIDOrSlug(ctx, idOrSlug)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("get tournament: %w", err)
	}
	if !found {
		return tournament.Tournament{}, notFound("tournament", idOrSlug)
	}
	return t, nil
}
