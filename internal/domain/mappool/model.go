package mappool

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/osu-tournament/internal/platform/patch"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrMapNotFound = errors.New("map not found in mappool")

// Mappool is a set of beatmaps belonging to one tournament.
type Mappool struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	TournamentID primitive.ObjectID `bson:"tournament_id"`
	Private      bool               `bson:"private"`
	MappackLink  string             `bson:"mappack_link"`
	Maps         []Map              `bson:"maps"`
}

type Map struct {
	BeatmapID int32  `bson:"beatmap_id"`
	Modifiers string `bson:"modifiers"`
}

func (m Mappool) Validate() error {
	if m.TournamentID.IsZero() {
		return fmt.Errorf("mappool tournament id is required")
	}
	for i, mp := range m.Maps {
		if err := mp.Validate(); err != nil {
			return fmt.Errorf("map %d: %w", i, err)
		}
	}
	return nil
}

func (m Map) Validate() error {
	if m.BeatmapID <= 0 {
		return fmt.Errorf("invalid beatmap id: %d", m.BeatmapID)
	}
	return nil
}

type Patch = patch.Patch[Mappool]

var (
	TournamentID = patch.Attr[Mappool, primitive.ObjectID]{
		Key: "tournament_id",
		Ref: func(m *Mappool) *primitive.ObjectID { return &m.TournamentID },
	}
	Private = patch.Attr[Mappool, bool]{
		Key: "private",
		Ref: func(m *Mappool) *bool { return &m.Private },
	}
	MappackLink = patch.Attr[Mappool, string]{
		Key: "mappack_link",
		Ref: func(m *Mappool) *string { return &m.MappackLink },
	}
)
