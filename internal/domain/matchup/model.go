package matchup

import (
	"fmt"
	"time"

	"github.com/riskibarqy/osu-tournament/internal/platform/patch"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MapType string

const (
	MapTypePick    MapType = "Pick"
	MapTypeBan     MapType = "Ban"
	MapTypeProtect MapType = "Protect"
)

func (t MapType) Valid() bool {
	switch t {
	case MapTypePick, MapTypeBan, MapTypeProtect:
		return true
	default:
		return false
	}
}

// Matchup is a scheduled contest between two teams of a tournament.
type Matchup struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty"`
	TournamentID primitive.ObjectID  `bson:"tournament_id"`
	Date         time.Time           `bson:"date"`
	TeamRed      *primitive.ObjectID `bson:"team_red"`
	TeamBlue     *primitive.ObjectID `bson:"team_blue"`
	Maps         []Map               `bson:"maps"`
}

// Map is one pick, ban or protect made by Team.
type Map struct {
	MapID          int32              `bson:"map_id"`
	MapType        MapType            `bson:"map_type"`
	Team           primitive.ObjectID `bson:"team"`
	TeamRedScores  []Score            `bson:"team_red_scores,omitempty"`
	TeamBlueScores []Score            `bson:"team_blue_scores,omitempty"`
}

type Score struct {
	Player int32   `bson:"player"`
	Mods   *string `bson:"mods,omitempty"`
	Score  int64   `bson:"score"`
}

func (m Matchup) Validate() error {
	if m.TournamentID.IsZero() {
		return fmt.Errorf("matchup tournament id is required")
	}
	if m.Date.IsZero() {
		return fmt.Errorf("matchup date is required")
	}
	if m.TeamRed != nil && m.TeamBlue != nil && *m.TeamRed == *m.TeamBlue {
		return fmt.Errorf("a team cannot play against itself")
	}
	for i, mp := range m.Maps {
		if err := mp.Validate(); err != nil {
			return fmt.Errorf("map %d: %w", i, err)
		}
	}
	return nil
}

func (m Map) Validate() error {
	if m.MapID <= 0 {
		return fmt.Errorf("invalid map id: %d", m.MapID)
	}
	if !m.MapType.Valid() {
		return fmt.Errorf("invalid map type: %q", m.MapType)
	}
	for _, scores := range [][]Score{m.TeamRedScores, m.TeamBlueScores} {
		for _, s := range scores {
			if s.Score < 0 || s.Score > maxScore {
				return fmt.Errorf("score out of range: %d", s.Score)
			}
		}
	}
	return nil
}

const maxScore = 1<<32 - 1

type Patch = patch.Patch[Matchup]

var (
	Date = patch.Attr[Matchup, time.Time]{
		Key: "date",
		Ref: func(m *Matchup) *time.Time { return &m.Date },
	}
	TeamRed = patch.OptAttr[Matchup, primitive.ObjectID]{
		Key: "team_red",
		Ref: func(m *Matchup) **primitive.ObjectID { return &m.TeamRed },
	}
	TeamBlue = patch.OptAttr[Matchup, primitive.ObjectID]{
		Key: "team_blue",
		Ref: func(m *Matchup) **primitive.ObjectID { return &m.TeamBlue },
	}
)
