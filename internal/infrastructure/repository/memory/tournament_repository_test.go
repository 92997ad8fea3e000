package memory

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/riskibarqy/osu-tournament/internal/domain/mappool"
	"github.com/riskibarqy/osu-tournament/internal/domain/tournament"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedTournament() tournament.Tournament {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return tournament.Tournament{
		Slug:              "osuwc",
		Name:              "OSU World Cup",
		Mode:              tournament.ModeStandard,
		MinTeamSize:       1,
		MaxTeamSize:       4,
		RegistrationStart: start,
		RegistrationEnd:   start.Add(7 * 24 * time.Hour),
	}
}

func TestTournamentRepository_PartialUpdateIsolation(t *testing.T) {
	ctx := context.Background()
	repo := NewTournamentRepository()

	id, err := repo.Create(ctx, seedTournament())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	found, err := repo.Update(ctx, id, tournament.Patch{}.With(tournament.Name.Set("OSU World Cup 2024")))
	if err != nil || !found {
		t.Fatalf("update: found=%v err=%v", found, err)
	}

	got, ok, err := repo.GetByIDOrSlug(ctx, id.Hex())
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}

	want := seedTournament()
	want.ID = id
	want.Name = "OSU World Cup 2024"
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected record:\ngot=%+v\nwant=%+v", got, want)
	}
}

func TestTournamentRepository_EmptyPatchIsNoop(t *testing.T) {
	ctx := context.Background()
	repo := NewTournamentRepository()

	id, err := repo.Create(ctx, seedTournament())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	before, _, _ := repo.GetByIDOrSlug(ctx, "osuwc")

	found, err := repo.Update(ctx, id, tournament.Patch{})
	if err != nil || !found {
		t.Fatalf("empty update: found=%v err=%v", found, err)
	}

	after, _, _ := repo.GetByIDOrSlug(ctx, "osuwc")
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("empty patch changed record: before=%+v after=%+v", before, after)
	}

	found, err = repo.Update(ctx, primitive.NewObjectID(), tournament.Patch{})
	if err != nil || found {
		t.Fatalf("empty patch on missing record: found=%v err=%v", found, err)
	}
}

func TestTournamentRepository_SlugIsUnique(t *testing.T) {
	ctx := context.Background()
	repo := NewTournamentRepository()

	if _, err := repo.Create(ctx, seedTournament()); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := repo.Create(ctx, seedTournament())
	if !errors.Is(err, tournament.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	other := seedTournament()
	other.Slug = "owc2"
	otherID, err := repo.Create(ctx, other)
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	_, err = repo.Update(ctx, otherID, tournament.Patch{}.With(tournament.Slug.Set("osuwc")))
	if !errors.Is(err, tournament.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate on slug update, got %v", err)
	}
}

func TestTournamentRepository_SentinelLookupMisses(t *testing.T) {
	ctx := context.Background()
	repo := NewTournamentRepository(seedTournament())

	if _, ok, err := repo.GetByIDOrSlug(ctx, "not-a-valid-id"); err != nil || ok {
		t.Fatalf("expected miss without error: ok=%v err=%v", ok, err)
	}
	if _, ok, err := repo.ListTeams(ctx, "000000000000000000000000"); err != nil || ok {
		t.Fatalf("expected miss for sentinel id: ok=%v err=%v", ok, err)
	}
}

func TestTournamentRepository_TeamsAppendAndRemove(t *testing.T) {
	ctx := context.Background()
	repo := NewTournamentRepository()

	id, err := repo.Create(ctx, seedTournament())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	a := tournament.NewTeam("Team A", 1, []int32{2})
	b := tournament.NewTeam("Team B", 3, []int32{4})
	if ok, err := repo.AppendTeams(ctx, id, a); err != nil || !ok {
		t.Fatalf("append a: ok=%v err=%v", ok, err)
	}
	if ok, err := repo.AppendTeams(ctx, id, b); err != nil || !ok {
		t.Fatalf("append b: ok=%v err=%v", ok, err)
	}

	dups, err := repo.DuplicatePlayers(ctx, id, []int32{4, 9, 2})
	if err != nil {
		t.Fatalf("duplicates: %v", err)
	}
	if !reflect.DeepEqual(dups, []int32{2, 4}) {
		t.Fatalf("unexpected duplicates: %v", dups)
	}

	if ok, err := repo.RemoveTeams(ctx, id, []primitive.ObjectID{a.ID}); err != nil || !ok {
		t.Fatalf("remove: ok=%v err=%v", ok, err)
	}

	teams, ok, err := repo.ListTeams(ctx, "osuwc")
	if err != nil || !ok {
		t.Fatalf("list teams: ok=%v err=%v", ok, err)
	}
	if len(teams) != 1 || teams[0].ID != b.ID {
		t.Fatalf("unexpected teams: %+v", teams)
	}

	fetched, _, _ := repo.GetByIDOrSlug(ctx, "osuwc")
	if fetched.Teams != nil {
		t.Fatalf("single fetch must not carry teams: %+v", fetched.Teams)
	}
}

func TestMappoolRepository_RemoveMap(t *testing.T) {
	ctx := context.Background()
	repo := NewMappoolRepository()

	id, err := repo.Create(ctx, mappool.Mappool{
		TournamentID: primitive.NewObjectID(),
		Maps: []mappool.Map{
			{BeatmapID: 1, Modifiers: "NM"},
			{BeatmapID: 2, Modifiers: "HD"},
			{BeatmapID: 3, Modifiers: "HR"},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if ok, err := repo.RemoveMap(ctx, id, 1); err != nil || !ok {
		t.Fatalf("remove map: ok=%v err=%v", ok, err)
	}
	got, _, _ := repo.GetByID(ctx, id)
	if len(got.Maps) != 2 || got.Maps[0].BeatmapID != 1 || got.Maps[1].BeatmapID != 3 {
		t.Fatalf("unexpected maps: %+v", got.Maps)
	}

	ok, err := repo.RemoveMap(ctx, id, 5)
	if !ok || !errors.Is(err, mappool.ErrMapNotFound) {
		t.Fatalf("expected ErrMapNotFound: ok=%v err=%v", ok, err)
	}

	ok, err = repo.RemoveMap(ctx, primitive.NewObjectID(), 0)
	if ok || err != nil {
		t.Fatalf("expected missing mappool: ok=%v err=%v", ok, err)
	}
}
