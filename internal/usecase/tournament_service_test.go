package usecase

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/osu-tournament/internal/domain/tournament"
	repocache "github.com/riskibarqy/osu-tournament/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/osu-tournament/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/osu-tournament/internal/platform/docstore"
	"github.com/sourcegraph/conc"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var registrationOpensAt = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func newTestTournamentService(repo tournament.Repository, now time.Time) *TournamentService {
	svc := NewTournamentService(repo, nil)
	svc.now = func() time.Time { return now }
	return svc
}

func osuwcInput() CreateTournamentInput {
	start := registrationOpensAt
	end := registrationOpensAt.Add(7 * 24 * time.Hour)
	return CreateTournamentInput{
		Slug:              "osuwc",
		Name:              "osu! World Cup",
		Mode:              tournament.ModeStandard,
		MinTeamSize:       1,
		MaxTeamSize:       8,
		RegistrationStart: &start,
		RegistrationEnd:   &end,
	}
}

func TestTournamentService_OsuWorldCupScenario(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := memory.NewTournamentRepository()
	svc := newTestTournamentService(repo, registrationOpensAt.Add(time.Hour))

	created, err := svc.CreateTournament(ctx, osuwcInput())
	if err != nil {
		t.Fatalf("create tournament: %v", err)
	}
	if created.ID.IsZero() {
		t.Fatalf("expected generated id")
	}

	byID, err := svc.GetTournament(ctx, created.ID.Hex())
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	bySlug, err := svc.GetTournament(ctx, "osuwc")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if byID.ID != bySlug.ID {
		t.Fatalf("id and slug resolve to different tournaments: %s %s", byID.ID.Hex(), bySlug.ID.Hex())
	}

	teamA, err := svc.RegisterTeam(ctx, "osuwc", RegisterTeamInput{Name: "Team Alpha", Captain: 1, Players: []int32{1, 2}})
	if err != nil {
		t.Fatalf("register team alpha: %v", err)
	}
	if !reflect.DeepEqual(teamA.Players, []int32{1, 2}) {
		t.Fatalf("unexpected roster: %v", teamA.Players)
	}

	_, err = svc.RegisterTeam(ctx, "osuwc", RegisterTeamInput{Name: "Team Bravo", Captain: 3, Players: []int32{2, 3}})
	var already *tournament.AlreadyRegisteredError
	if !errors.As(err, &already) {
		t.Fatalf("expected AlreadyRegisteredError, got %v", err)
	}
	if !reflect.DeepEqual(already.Players, []int32{2}) {
		t.Fatalf("unexpected duplicates: %v", already.Players)
	}

	if _, err := svc.RegisterTeam(ctx, created.ID.Hex(), RegisterTeamInput{Name: "Team Bravo", Captain: 3, Players: []int32{3, 4}}); err != nil {
		t.Fatalf("register team bravo: %v", err)
	}

	players, err := svc.ListPlayers(ctx, "osuwc")
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if !reflect.DeepEqual(players, []int32{1, 2, 3, 4}) {
		t.Fatalf("unexpected players: %v", players)
	}

	renamed, err := svc.UpdateTournament(ctx, "osuwc", tournament.Patch{}.With(tournament.Name.Set("osu! World Cup 2024")))
	if err != nil {
		t.Fatalf("update tournament: %v", err)
	}
	if renamed.Name != "osu! World Cup 2024" || renamed.Slug != "osuwc" || renamed.MaxTeamSize != 8 {
		t.Fatalf("unexpected merged tournament: %+v", renamed)
	}

	if err := svc.RemoveTeams(ctx, "osuwc", []string{teamA.ID.Hex()}); err != nil {
		t.Fatalf("remove team: %v", err)
	}
	teams, err := svc.ListTeams(ctx, "osuwc")
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(teams) != 1 || teams[0].Name != "Team Bravo" {
		t.Fatalf("unexpected teams after removal: %+v", teams)
	}

	if err := svc.DeleteTournament(ctx, "osuwc"); err != nil {
		t.Fatalf("delete tournament: %v", err)
	}
	if _, err := svc.GetTournament(ctx, "osuwc"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

// Registration timeline: create at T0, register at T0+1d, overlap at T0+2d,
// late registration at T0+8d.
func TestTournamentService_RegistrationTimeline(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	t0 := registrationOpensAt
	now := t0
	svc := NewTournamentService(memory.NewTournamentRepository(), nil)
	svc.now = func() time.Time { return now }

	end := t0.Add(7 * 24 * time.Hour)
	created, err := svc.CreateTournament(ctx, CreateTournamentInput{
		Slug:              "osuwc",
		Name:              "OSU World Cup",
		Mode:              tournament.ModeStandard,
		MinTeamSize:       1,
		MaxTeamSize:       4,
		RegistrationStart: &t0,
		RegistrationEnd:   &end,
	})
	if err != nil {
		t.Fatalf("create tournament: %v", err)
	}
	if created.ID.IsZero() {
		t.Fatalf("expected generated id")
	}

	now = t0.Add(24 * time.Hour)
	if _, err := svc.RegisterTeam(ctx, "osuwc", RegisterTeamInput{Name: "A", Captain: 1, Players: []int32{2}}); err != nil {
		t.Fatalf("register A: %v", err)
	}

	now = t0.Add(2 * 24 * time.Hour)
	if _, err := svc.RegisterTeam(ctx, "osuwc", RegisterTeamInput{Name: "B", Captain: 2, Players: []int32{3}}); !errors.Is(err, tournament.ErrAlreadyRegistered) {
		t.Fatalf("expected AlreadyRegistered for B at T0+2d, got %v", err)
	}

	now = t0.Add(8 * 24 * time.Hour)
	if _, err := svc.RegisterTeam(ctx, "osuwc", RegisterTeamInput{Name: "B", Captain: 3, Players: []int32{4}}); !errors.Is(err, tournament.ErrRegistrationClosed) {
		t.Fatalf("expected RegistrationClosed for B at T0+8d, got %v", err)
	}

	players, err := svc.ListPlayers(ctx, "osuwc")
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if !reflect.DeepEqual(players, []int32{1, 2}) {
		t.Fatalf("unexpected players: %v", players)
	}
}

func TestTournamentService_RegisterTeamReadsStoredWindow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewTournamentRepository(tournament.Tournament{
		Slug:              "osuwc",
		Name:              "osu! World Cup",
		Mode:              tournament.ModeStandard,
		MinTeamSize:       1,
		MaxTeamSize:       8,
		RegistrationStart: registrationOpensAt,
		RegistrationEnd:   registrationOpensAt.Add(48 * time.Hour),
	})
	svc := newTestTournamentService(repocache.NewTournamentRepository(store, time.Minute), registrationOpensAt.Add(time.Hour))

	cached, err := svc.GetTournament(ctx, "osuwc")
	if err != nil {
		t.Fatalf("get tournament: %v", err)
	}

	// Another process closes registration; this process's cache still holds
	// the open window.
	closed := tournament.Patch{}.With(tournament.RegistrationEnd.Set(registrationOpensAt.Add(time.Minute)))
	if ok, err := store.Update(ctx, cached.ID, closed); err != nil || !ok {
		t.Fatalf("close registration: ok=%v err=%v", ok, err)
	}

	_, err = svc.RegisterTeam(ctx, "osuwc", RegisterTeamInput{Name: "Team Alpha", Captain: 1})
	if !errors.Is(err, tournament.ErrRegistrationClosed) {
		t.Fatalf("expected RegistrationClosed from the stored window, got %v", err)
	}
}

func TestTournamentService_TimestampsUseStoredPrecision(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestTournamentService(memory.NewTournamentRepository(), registrationOpensAt)

	input := osuwcInput()
	start := registrationOpensAt.Add(123_456_789 * time.Nanosecond)
	end := start.Add(7 * 24 * time.Hour)
	input.RegistrationStart = &start
	input.RegistrationEnd = &end

	created, err := svc.CreateTournament(ctx, input)
	if err != nil {
		t.Fatalf("create tournament: %v", err)
	}
	if !created.RegistrationStart.Equal(registrationOpensAt.Add(123 * time.Millisecond)) {
		t.Fatalf("start not truncated to milliseconds: %v", created.RegistrationStart)
	}

	later := end.Add(999_999 * time.Nanosecond)
	updated, err := svc.UpdateTournament(ctx, "osuwc", tournament.Patch{}.With(tournament.RegistrationEnd.Set(later)))
	if err != nil {
		t.Fatalf("update tournament: %v", err)
	}
	stored, err := svc.GetTournament(ctx, "osuwc")
	if err != nil {
		t.Fatalf("get tournament: %v", err)
	}
	if !updated.RegistrationEnd.Equal(stored.RegistrationEnd) {
		t.Fatalf("returned end %v differs from stored %v", updated.RegistrationEnd, stored.RegistrationEnd)
	}
	if !stored.RegistrationEnd.Equal(later.Truncate(time.Millisecond)) {
		t.Fatalf("end not truncated to milliseconds: %v", stored.RegistrationEnd)
	}
}

func TestTournamentService_CreateDefaultsWindowToNow(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 4, 12, 0, 0, 0, time.UTC)
	svc := newTestTournamentService(memory.NewTournamentRepository(), now)

	input := osuwcInput()
	input.RegistrationStart = nil
	input.RegistrationEnd = nil

	created, err := svc.CreateTournament(context.Background(), input)
	if err != nil {
		t.Fatalf("create tournament: %v", err)
	}
	if !created.RegistrationStart.Equal(now) || !created.RegistrationEnd.Equal(now) {
		t.Fatalf("unexpected window: %v - %v", created.RegistrationStart, created.RegistrationEnd)
	}
}

func TestTournamentService_CreateRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	cases := map[string]func(*CreateTournamentInput){
		"slug too short":        func(in *CreateTournamentInput) { in.Slug = "o" },
		"slug too long":         func(in *CreateTournamentInput) { in.Slug = "osuworldcup" },
		"name too short":        func(in *CreateTournamentInput) { in.Name = "owc" },
		"unknown mode":          func(in *CreateTournamentInput) { in.Mode = "Taiko" },
		"min team size too big": func(in *CreateTournamentInput) { in.MinTeamSize = 17; in.MaxTeamSize = 32 },
		"max below min":         func(in *CreateTournamentInput) { in.MinTeamSize = 4; in.MaxTeamSize = 2 },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			svc := newTestTournamentService(memory.NewTournamentRepository(), registrationOpensAt)
			input := osuwcInput()
			mutate(&input)

			if _, err := svc.CreateTournament(context.Background(), input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestTournamentService_SlugUniqueness(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestTournamentService(memory.NewTournamentRepository(), registrationOpensAt)

	if _, err := svc.CreateTournament(ctx, osuwcInput()); err != nil {
		t.Fatalf("create tournament: %v", err)
	}

	_, err := svc.CreateTournament(ctx, osuwcInput())
	var dup *tournament.DuplicateError
	if !errors.As(err, &dup) || dup.Key != "slug" {
		t.Fatalf("expected slug duplicate, got %v", err)
	}

	other := osuwcInput()
	other.Slug = "owc23"
	created, err := svc.CreateTournament(ctx, other)
	if err != nil {
		t.Fatalf("create second tournament: %v", err)
	}

	_, err = svc.UpdateTournament(ctx, created.ID.Hex(), tournament.Patch{}.With(tournament.Slug.Set("osuwc")))
	if !errors.Is(err, tournament.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate on slug change, got %v", err)
	}

	if _, err := svc.UpdateTournament(ctx, "owc23", tournament.Patch{}.With(tournament.Slug.Set("owc23"))); err != nil {
		t.Fatalf("re-setting own slug should pass: %v", err)
	}
}

func TestTournamentService_ConcurrentCreateKeepsSlugUnique(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := memory.NewTournamentRepository()
	svc := newTestTournamentService(repo, registrationOpensAt)

	const attempts = 8
	var (
		mu         sync.Mutex
		created    int
		duplicates int
		wg         conc.WaitGroup
	)
	for i := 0; i < attempts; i++ {
		wg.Go(func() {
			_, err := svc.CreateTournament(ctx, osuwcInput())
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, tournament.ErrDuplicate):
				duplicates++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
	wg.Wait()

	if created != 1 || duplicates != attempts-1 {
		t.Fatalf("expected one winner, got created=%d duplicates=%d", created, duplicates)
	}
}

func TestTournamentService_RegisterTeamWindow(t *testing.T) {
	t.Parallel()

	start := registrationOpensAt
	end := registrationOpensAt.Add(48 * time.Hour)

	cases := []struct {
		name string
		now  time.Time
		want error
	}{
		{name: "before start", now: start.Add(-time.Nanosecond), want: tournament.ErrRegistrationNotOpen},
		{name: "at start", now: start},
		{name: "inside", now: start.Add(time.Hour)},
		{name: "at end", now: end},
		{name: "after end", now: end.Add(time.Nanosecond), want: tournament.ErrRegistrationClosed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := memory.NewTournamentRepository(tournament.Tournament{
				Slug:              "osuwc",
				Name:              "osu! World Cup",
				Mode:              tournament.ModeStandard,
				MinTeamSize:       1,
				MaxTeamSize:       8,
				RegistrationStart: start,
				RegistrationEnd:   end,
			})
			svc := newTestTournamentService(repo, tc.now)

			_, err := svc.RegisterTeam(context.Background(), "osuwc", RegisterTeamInput{Name: "Team Alpha", Captain: 1})
			if tc.want == nil && err != nil {
				t.Fatalf("expected registration to pass, got %v", err)
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestTournamentService_RegisterTeamValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestTournamentService(memory.NewTournamentRepository(), registrationOpensAt)

	if _, err := svc.RegisterTeam(ctx, "osuwc", RegisterTeamInput{Name: "  ", Captain: 1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
	if _, err := svc.RegisterTeam(ctx, "osuwc", RegisterTeamInput{Name: "Team Alpha"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty roster, got %v", err)
	}
	if _, err := svc.RegisterTeam(ctx, "osuwc", RegisterTeamInput{Name: "Team Alpha", Captain: 1}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown tournament, got %v", err)
	}
}

func TestTournamentService_RemoveTeamsRequiresRegisteredTeams(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	team := tournament.NewTeam("Team Alpha", 1, []int32{2})
	repo := memory.NewTournamentRepository(tournament.Tournament{
		Slug:              "osuwc",
		Name:              "osu! World Cup",
		Mode:              tournament.ModeStandard,
		MinTeamSize:       1,
		MaxTeamSize:       8,
		RegistrationStart: registrationOpensAt,
		RegistrationEnd:   registrationOpensAt,
		Teams:             []tournament.Team{team},
	})
	svc := newTestTournamentService(repo, registrationOpensAt)

	err := svc.RemoveTeams(ctx, "osuwc", []string{team.ID.Hex(), primitive.NewObjectID().Hex()})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown team, got %v", err)
	}

	teams, err := svc.ListTeams(ctx, "osuwc")
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(teams) != 1 {
		t.Fatalf("expected team to survive a rejected removal, got %d teams", len(teams))
	}

	if err := svc.RemoveTeams(ctx, "osuwc", nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty ids, got %v", err)
	}
}

func TestTournamentService_SentinelLookupMisses(t *testing.T) {
	t.Parallel()

	svc := newTestTournamentService(memory.NewTournamentRepository(), registrationOpensAt)
	if _, err := svc.GetTournament(context.Background(), docstore.SentinelID.Hex()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.GetTournament(context.Background(), "zz-not-hex"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// barrierRepository holds every caller of DuplicatePlayers until all of them
// have read the current rosters.
type barrierRepository struct {
	*memory.TournamentRepository
	barrier *sync.WaitGroup
}

func (r *barrierRepository) DuplicatePlayers(ctx context.Context, id primitive.ObjectID, candidates []int32) ([]int32, error) {
	out, err := r.TournamentRepository.DuplicatePlayers(ctx, id, candidates)
	r.barrier.Done()
	r.barrier.Wait()
	return out, err
}

func TestTournamentService_RegisterTeam_ConcurrentRaceIsNotGuarded(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	inner := memory.NewTournamentRepository(tournament.Tournament{
		Slug:              "osuwc",
		Name:              "osu! World Cup",
		Mode:              tournament.ModeStandard,
		MinTeamSize:       1,
		MaxTeamSize:       8,
		RegistrationStart: registrationOpensAt,
		RegistrationEnd:   registrationOpensAt.Add(time.Hour),
	})
	barrier := &sync.WaitGroup{}
	barrier.Add(2)
	svc := newTestTournamentService(&barrierRepository{TournamentRepository: inner, barrier: barrier}, registrationOpensAt)

	var wg conc.WaitGroup
	errs := make([]error, 2)
	for i, name := range []string{"Team Alpha", "Team Bravo"} {
		wg.Go(func() {
			_, errs[i] = svc.RegisterTeam(ctx, "osuwc", RegisterTeamInput{Name: name, Captain: 7})
		})
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("registration %d: %v", i, err)
		}
	}

	teams, _, err := inner.ListTeams(ctx, "osuwc")
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if got := tournament.DuplicatePlayers(teams[:1], teams[1].Players); !reflect.DeepEqual(got, []int32{7}) {
		t.Fatalf("expected player 7 on both rosters, got %v", got)
	}
}
