package httpapi

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/osu-tournament/internal/domain/mappool"
	"github.com/riskibarqy/osu-tournament/internal/domain/matchup"
	"github.com/riskibarqy/osu-tournament/internal/domain/tournament"
	"github.com/riskibarqy/osu-tournament/internal/domain/user"
	"github.com/riskibarqy/osu-tournament/internal/platform/patch"
	"github.com/riskibarqy/osu-tournament/internal/usecase"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type createTournamentRequest struct {
	Slug                  string     `json:"slug" validate:"required,min=2,max=8"`
	Name                  string     `json:"name" validate:"required,min=4,max=64"`
	Mode                  string     `json:"mode" validate:"required,oneof=Standard Mania"`
	InviteOnly            bool       `json:"invite_only"`
	MinTeamSize           int32      `json:"min_team_size" validate:"min=1,max=16"`
	MaxTeamSize           int32      `json:"max_team_size" validate:"min=1,max=128,gtefield=MinTeamSize"`
	RegistrationStartDate *time.Time `json:"registration_start_date"`
	RegistrationEndDate   *time.Time `json:"registration_end_date"`
}

type updateTournamentRequest struct {
	Slug                  patch.Field[string]          `json:"slug"`
	Name                  patch.Field[string]          `json:"name"`
	Mode                  patch.Field[tournament.Mode] `json:"mode"`
	InviteOnly            patch.Field[bool]            `json:"invite_only"`
	MinTeamSize           patch.Field[int32]           `json:"min_team_size"`
	MaxTeamSize           patch.Field[int32]           `json:"max_team_size"`
	RegistrationStartDate patch.Field[time.Time]       `json:"registration_start_date"`
	RegistrationEndDate   patch.Field[time.Time]       `json:"registration_end_date"`
}

func (r updateTournamentRequest) toPatch() (tournament.Patch, error) {
	p := tournament.Patch{}
	var errs []error
	assign := func(next tournament.Patch, err error) {
		if err != nil {
			errs = append(errs, err)
			return
		}
		p = next
	}

	assign(patch.Assign(p, tournament.Slug, r.Slug))
	assign(patch.Assign(p, tournament.Name, r.Name))
	assign(patch.Assign(p, tournament.ModeAttr, r.Mode))
	assign(patch.Assign(p, tournament.InviteOnly, r.InviteOnly))
	assign(patch.Assign(p, tournament.MinTeamSize, r.MinTeamSize))
	assign(patch.Assign(p, tournament.MaxTeamSize, r.MaxTeamSize))
	assign(patch.Assign(p, tournament.RegistrationStart, r.RegistrationStartDate))
	assign(patch.Assign(p, tournament.RegistrationEnd, r.RegistrationEndDate))

	if err := errors.Join(errs...); err != nil {
		return tournament.Patch{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return p, nil
}

type registerTeamRequest struct {
	Name    string  `json:"name" validate:"required,min=4,max=64"`
	Players []int32 `json:"players" validate:"max=128,dive,gt=0"`
}

type mappoolMapRequest struct {
	BeatmapID int32  `json:"beatmap_id" validate:"gt=0"`
	Modifiers string `json:"modifiers" validate:"max=32"`
}

type createMappoolRequest struct {
	TournamentID string              `json:"tournament_id" validate:"required"`
	Private      bool                `json:"private"`
	MappackLink  string              `json:"mappack_link" validate:"omitempty,url"`
	Maps         []mappoolMapRequest `json:"maps" validate:"dive"`
}

type updateMappoolRequest struct {
	TournamentID patch.Field[string] `json:"tournament_id"`
	Private      patch.Field[bool]   `json:"private"`
	MappackLink  patch.Field[string] `json:"mappack_link"`
}

func (r updateMappoolRequest) toPatch() (mappool.Patch, error) {
	tournamentID, err := objectIDField(r.TournamentID)
	if err != nil {
		return mappool.Patch{}, err
	}

	p := mappool.Patch{}
	var errs []error
	assign := func(next mappool.Patch, err error) {
		if err != nil {
			errs = append(errs, err)
			return
		}
		p = next
	}

	assign(patch.Assign(p, mappool.TournamentID, tournamentID))
	assign(patch.Assign(p, mappool.Private, r.Private))
	assign(patch.Assign(p, mappool.MappackLink, r.MappackLink))

	if err := errors.Join(errs...); err != nil {
		return mappool.Patch{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return p, nil
}

type mappoolMapsRequest struct {
	Maps []mappoolMapRequest `json:"maps" validate:"required,min=1,dive"`
}

type createMatchupRequest struct {
	TournamentID string    `json:"tournament_id" validate:"required"`
	Date         time.Time `json:"date" validate:"required"`
	TeamRed      *string   `json:"team_red"`
	TeamBlue     *string   `json:"team_blue"`
}

type updateMatchupRequest struct {
	Date     patch.Field[time.Time] `json:"date"`
	TeamRed  patch.Field[string]    `json:"team_red"`
	TeamBlue patch.Field[string]    `json:"team_blue"`
}

func (r updateMatchupRequest) toPatch() (matchup.Patch, error) {
	p, err := patch.Assign(matchup.Patch{}, matchup.Date, r.Date)
	if err != nil {
		return matchup.Patch{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	red, err := objectIDField(r.TeamRed)
	if err != nil {
		return matchup.Patch{}, err
	}
	blue, err := objectIDField(r.TeamBlue)
	if err != nil {
		return matchup.Patch{}, err
	}

	p = patch.AssignOpt(p, matchup.TeamRed, red)
	p = patch.AssignOpt(p, matchup.TeamBlue, blue)
	return p, nil
}

type scoreRequest struct {
	Player int32   `json:"player" validate:"gt=0"`
	Mods   *string `json:"mods"`
	Score  int64   `json:"score" validate:"min=0,max=4294967295"`
}

type matchupMapRequest struct {
	MapID          int32          `json:"map_id" validate:"gt=0"`
	MapType        string         `json:"map_type" validate:"required,oneof=Pick Ban Protect"`
	Team           string         `json:"team" validate:"required"`
	TeamRedScores  []scoreRequest `json:"team_red_scores" validate:"dive"`
	TeamBlueScores []scoreRequest `json:"team_blue_scores" validate:"dive"`
}

type matchupMapsRequest struct {
	Maps []matchupMapRequest `json:"maps" validate:"required,min=1,dive"`
}

type tournamentDTO struct {
	ID                    string    `json:"id"`
	Slug                  string    `json:"slug"`
	Name                  string    `json:"name"`
	Mode                  string    `json:"mode"`
	InviteOnly            bool      `json:"invite_only"`
	MinTeamSize           int32     `json:"min_team_size"`
	MaxTeamSize           int32     `json:"max_team_size"`
	RegistrationStartDate time.Time `json:"registration_start_date"`
	RegistrationEndDate   time.Time `json:"registration_end_date"`
	Phase                 string    `json:"phase"`
}

type teamDTO struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Captain int32   `json:"captain"`
	Players []int32 `json:"players"`
}

type mappoolMapDTO struct {
	BeatmapID int32  `json:"beatmap_id"`
	Modifiers string `json:"modifiers"`
}

type mappoolDTO struct {
	ID           string          `json:"id"`
	TournamentID string          `json:"tournament_id"`
	Private      bool            `json:"private"`
	MappackLink  string          `json:"mappack_link,omitempty"`
	Maps         []mappoolMapDTO `json:"maps"`
}

type scoreDTO struct {
	Player int32   `json:"player"`
	Mods   *string `json:"mods,omitempty"`
	Score  int64   `json:"score"`
}

type matchupMapDTO struct {
	MapID          int32      `json:"map_id"`
	MapType        string     `json:"map_type"`
	Team           string     `json:"team"`
	TeamRedScores  []scoreDTO `json:"team_red_scores,omitempty"`
	TeamBlueScores []scoreDTO `json:"team_blue_scores,omitempty"`
}

type matchupDTO struct {
	ID           string          `json:"id"`
	TournamentID string          `json:"tournament_id"`
	Date         time.Time       `json:"date"`
	TeamRed      *string         `json:"team_red"`
	TeamBlue     *string         `json:"team_blue"`
	Maps         []matchupMapDTO `json:"maps"`
}

type osuConnectionDTO struct {
	ID        int32  `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

type principalDTO struct {
	ID  string            `json:"id"`
	Osu *osuConnectionDTO `json:"osu"`
}

func tournamentToDTO(t tournament.Tournament, now time.Time) tournamentDTO {
	return tournamentDTO{
		ID:                    t.ID.Hex(),
		Slug:                  t.Slug,
		Name:                  t.Name,
		Mode:                  string(t.Mode),
		InviteOnly:            t.InviteOnly,
		MinTeamSize:           t.MinTeamSize,
		MaxTeamSize:           t.MaxTeamSize,
		RegistrationStartDate: t.RegistrationStart,
		RegistrationEndDate:   t.RegistrationEnd,
		Phase:                 string(t.PhaseAt(now)),
	}
}

func teamToDTO(t tournament.Team) teamDTO {
	players := t.Players
	if players == nil {
		players = []int32{}
	}
	return teamDTO{
		ID:      t.ID.Hex(),
		Name:    t.Name,
		Captain: t.Captain,
		Players: players,
	}
}

func mappoolToDTO(m mappool.Mappool) mappoolDTO {
	maps := make([]mappoolMapDTO, 0, len(m.Maps))
	for _, mp := range m.Maps {
		maps = append(maps, mappoolMapDTO{BeatmapID: mp.BeatmapID, Modifiers: mp.Modifiers})
	}
	return mappoolDTO{
		ID:           m.ID.Hex(),
		TournamentID: m.TournamentID.Hex(),
		Private:      m.Private,
		MappackLink:  m.MappackLink,
		Maps:         maps,
	}
}

func matchupToDTO(m matchup.Matchup) matchupDTO {
	maps := make([]matchupMapDTO, 0, len(m.Maps))
	for _, mp := range m.Maps {
		maps = append(maps, matchupMapDTO{
			MapID:          mp.MapID,
			MapType:        string(mp.MapType),
			Team:           mp.Team.Hex(),
			TeamRedScores:  scoresToDTO(mp.TeamRedScores),
			TeamBlueScores: scoresToDTO(mp.TeamBlueScores),
		})
	}
	return matchupDTO{
		ID:           m.ID.Hex(),
		TournamentID: m.TournamentID.Hex(),
		Date:         m.Date,
		TeamRed:      hexOrNil(m.TeamRed),
		TeamBlue:     hexOrNil(m.TeamBlue),
		Maps:         maps,
	}
}

func scoresToDTO(scores []matchup.Score) []scoreDTO {
	if len(scores) == 0 {
		return nil
	}
	out := make([]scoreDTO, 0, len(scores))
	for _, s := range scores {
		out = append(out, scoreDTO{Player: s.Player, Mods: s.Mods, Score: s.Score})
	}
	return out
}

func principalToDTO(p user.Principal) principalDTO {
	out := principalDTO{ID: p.UserID}
	if p.HasOsu() {
		out.Osu = &osuConnectionDTO{
			ID:        p.Osu.ID,
			Username:  p.Osu.Username,
			AvatarURL: p.Osu.AvatarURL,
		}
	}
	return out
}

func mappoolMapsFromRequest(items []mappoolMapRequest) []mappool.Map {
	out := make([]mappool.Map, 0, len(items))
	for _, item := range items {
		out = append(out, mappool.Map{BeatmapID: item.BeatmapID, Modifiers: strings.TrimSpace(item.Modifiers)})
	}
	return out
}

func matchupMapsFromRequest(items []matchupMapRequest) ([]matchup.Map, error) {
	out := make([]matchup.Map, 0, len(items))
	for i, item := range items {
		team, err := parseObjectID(item.Team)
		if err != nil {
			return nil, fmt.Errorf("map %d: %w", i, err)
		}
		out = append(out, matchup.Map{
			MapID:          item.MapID,
			MapType:        matchup.MapType(item.MapType),
			Team:           team,
			TeamRedScores:  scoresFromRequest(item.TeamRedScores),
			TeamBlueScores: scoresFromRequest(item.TeamBlueScores),
		})
	}
	return out, nil
}

func scoresFromRequest(items []scoreRequest) []matchup.Score {
	if len(items) == 0 {
		return nil
	}
	out := make([]matchup.Score, 0, len(items))
	for _, item := range items {
		out = append(out, matchup.Score{Player: item.Player, Mods: item.Mods, Score: item.Score})
	}
	return out
}

// parseObjectID is strict: request bodies naming a reference must carry a
// well-formed id.
func parseObjectID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: malformed id %q", usecase.ErrInvalidInput, raw)
	}
	return id, nil
}

func optionalObjectID(raw *string) (*primitive.ObjectID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := parseObjectID(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func objectIDField(f patch.Field[string]) (patch.Field[primitive.ObjectID], error) {
	switch {
	case f.IsAbsent():
		return patch.Field[primitive.ObjectID]{}, nil
	case f.IsNull():
		return patch.Null[primitive.ObjectID](), nil
	}
	raw, _ := f.Get()
	id, err := parseObjectID(raw)
	if err != nil {
		return patch.Field[primitive.ObjectID]{}, err
	}
	return patch.Value(id), nil
}

func hexOrNil(id *primitive.ObjectID) *string {
	if id == nil {
		return nil
	}
	s := id.Hex()
	return &s
}
