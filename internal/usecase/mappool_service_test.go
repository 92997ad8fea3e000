package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/osu-tournament/internal/domain/mappool"
	"github.com/riskibarqy/osu-tournament/internal/domain/tournament"
	"github.com/riskibarqy/osu-tournament/internal/infrastructure/repository/memory"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seededTournaments(teams ...tournament.Team) (*memory.TournamentRepository, primitive.ObjectID) {
	id := primitive.NewObjectID()
	repo := memory.NewTournamentRepository(tournament.Tournament{
		ID:                id,
		Slug:              "osuwc",
		Name:              "osu! World Cup",
		Mode:              tournament.ModeStandard,
		MinTeamSize:       1,
		MaxTeamSize:       8,
		RegistrationStart: registrationOpensAt,
		RegistrationEnd:   registrationOpensAt,
		Teams:             teams,
	})
	return repo, id
}

func TestMappoolService_Lifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tournaments, tournamentID := seededTournaments()
	svc := NewMappoolService(memory.NewMappoolRepository(), tournaments, nil)

	pool, err := svc.CreateMappool(ctx, CreateMappoolInput{
		Tournament: "osuwc",
		Private:    true,
		Maps:       []mappool.Map{{BeatmapID: 101, Modifiers: "NM"}},
	})
	if err != nil {
		t.Fatalf("create mappool: %v", err)
	}
	if pool.TournamentID != tournamentID {
		t.Fatalf("unexpected tournament id: %s", pool.TournamentID.Hex())
	}

	if err := svc.AddMaps(ctx, pool.ID.Hex(), []mappool.Map{{BeatmapID: 102, Modifiers: "HD"}, {BeatmapID: 103, Modifiers: "HR"}}); err != nil {
		t.Fatalf("add maps: %v", err)
	}
	if err := svc.RemoveMap(ctx, pool.ID.Hex(), 1); err != nil {
		t.Fatalf("remove map: %v", err)
	}

	got, err := svc.GetMappool(ctx, pool.ID.Hex())
	if err != nil {
		t.Fatalf("get mappool: %v", err)
	}
	if len(got.Maps) != 2 || got.Maps[0].BeatmapID != 101 || got.Maps[1].BeatmapID != 103 {
		t.Fatalf("unexpected maps after removal: %+v", got.Maps)
	}

	if err := svc.RemoveMap(ctx, pool.ID.Hex(), 5); !errors.Is(err, mappool.ErrMapNotFound) {
		t.Fatalf("expected ErrMapNotFound, got %v", err)
	}

	updated, err := svc.UpdateMappool(ctx, pool.ID.Hex(), mappool.Patch{}.With(mappool.Private.Set(false)))
	if err != nil {
		t.Fatalf("update mappool: %v", err)
	}
	if updated.Private || len(updated.Maps) != 2 {
		t.Fatalf("unexpected updated mappool: %+v", updated)
	}

	pools, err := svc.ListByTournament(ctx, tournamentID.Hex())
	if err != nil {
		t.Fatalf("list mappools: %v", err)
	}
	if len(pools) != 1 {
		t.Fatalf("expected one mappool, got %d", len(pools))
	}

	if err := svc.DeleteMappool(ctx, pool.ID.Hex()); err != nil {
		t.Fatalf("delete mappool: %v", err)
	}
	if _, err := svc.GetMappool(ctx, pool.ID.Hex()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMappoolService_RequiresTournament(t *testing.T) {
	t.Parallel()

	tournaments, _ := seededTournaments()
	svc := NewMappoolService(memory.NewMappoolRepository(), tournaments, nil)

	_, err := svc.CreateMappool(context.Background(), CreateMappoolInput{Tournament: "unknown"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMappoolService_RejectsInvalidMaps(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tournaments, _ := seededTournaments()
	svc := NewMappoolService(memory.NewMappoolRepository(), tournaments, nil)

	if _, err := svc.CreateMappool(ctx, CreateMappoolInput{Tournament: "osuwc", Maps: []mappool.Map{{BeatmapID: 0}}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput on create, got %v", err)
	}
	if err := svc.AddMaps(ctx, primitive.NewObjectID().Hex(), nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty maps, got %v", err)
	}
	if err := svc.AddMaps(ctx, primitive.NewObjectID().Hex(), []mappool.Map{{BeatmapID: 7}}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown mappool, got %v", err)
	}
	if err := svc.RemoveMap(ctx, primitive.NewObjectID().Hex(), -1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative position, got %v", err)
	}
}
