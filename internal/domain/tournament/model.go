package tournament

import (
	"fmt"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Mode string

const (
	ModeStandard Mode = "Standard"
	ModeMania    Mode = "Mania"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeStandard, ModeMania:
		return true
	default:
		return false
	}
}

const (
	SlugMinLen        = 2
	SlugMaxLen        = 8
	NameMinLen        = 4
	NameMaxLen        = 64
	TeamSizeMax       = 128
	NewMinTeamSizeMax = 16
)

// Tournament is a competition with an embedded team roster. Teams are only
// populated by roster queries; single-record fetches leave them nil.
type Tournament struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Slug              string             `bson:"slug"`
	Name              string             `bson:"name"`
	Mode              Mode               `bson:"mode"`
	InviteOnly        bool               `bson:"invite_only,omitempty"`
	MinTeamSize       int32              `bson:"min_team_size"`
	MaxTeamSize       int32              `bson:"max_team_size"`
	RegistrationStart time.Time          `bson:"registration_start_date"`
	RegistrationEnd   time.Time          `bson:"registration_end_date"`
	Teams             []Team             `bson:"teams,omitempty"`
}

// Team is one registered roster. Players always include the captain.
type Team struct {
	ID      primitive.ObjectID `bson:"id"`
	Name    string             `bson:"name"`
	Captain int32              `bson:"captain"`
	Players []int32            `bson:"players"`
}

func (t Tournament) Validate() error {
	if n := utf8.RuneCountInString(t.Slug); n < SlugMinLen || n > SlugMaxLen {
		return fmt.Errorf("tournament slug must be %d-%d characters", SlugMinLen, SlugMaxLen)
	}
	if n := utf8.RuneCountInString(t.Name); n < NameMinLen || n > NameMaxLen {
		return fmt.Errorf("tournament name must be %d-%d characters", NameMinLen, NameMaxLen)
	}
	if !t.Mode.Valid() {
		return fmt.Errorf("invalid tournament mode: %q", t.Mode)
	}
	if t.MinTeamSize < 1 || t.MinTeamSize > TeamSizeMax {
		return fmt.Errorf("min team size must be 1-%d", TeamSizeMax)
	}
	if t.MaxTeamSize < 1 || t.MaxTeamSize > TeamSizeMax {
		return fmt.Errorf("max team size must be 1-%d", TeamSizeMax)
	}
	if t.MinTeamSize > t.MaxTeamSize {
		return fmt.Errorf("min team size %d exceeds max team size %d", t.MinTeamSize, t.MaxTeamSize)
	}
	if t.RegistrationEnd.Before(t.RegistrationStart) {
		return fmt.Errorf("registration end must not be before registration start")
	}

	return nil
}

// ValidateNew applies the stricter limits used when a tournament is created.
func (t Tournament) ValidateNew() error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.MinTeamSize > NewMinTeamSizeMax {
		return fmt.Errorf("min team size must be 1-%d", NewMinTeamSizeMax)
	}
	return nil
}

// Players flattens every team roster in registration order.
func (t Tournament) Players() []int32 {
	out := make([]int32, 0)
	for _, team := range t.Teams {
		out = append(out, team.Players...)
	}
	return out
}

func (t Team) Validate() error {
	if t.ID.IsZero() {
		return fmt.Errorf("team id is required")
	}
	if len(t.Players) == 0 {
		return fmt.Errorf("team must have at least one player")
	}
	for _, p := range t.Players {
		if p <= 0 {
			return fmt.Errorf("invalid player id: %d", p)
		}
	}
	return nil
}
