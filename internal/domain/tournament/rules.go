package tournament

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Phase is derived from the registration window and never stored.
type Phase string

const (
	PhaseDraft  Phase = "Draft"
	PhaseOpen   Phase = "Open"
	PhaseClosed Phase = "Closed"
)

func (t Tournament) PhaseAt(now time.Time) Phase {
	switch {
	case now.Before(t.RegistrationStart):
		return PhaseDraft
	case now.After(t.RegistrationEnd):
		return PhaseClosed
	default:
		return PhaseOpen
	}
}

// CheckRegistrationWindow accepts now inside [start, end], bounds included.
func CheckRegistrationWindow(t Tournament, now time.Time) error {
	switch t.PhaseAt(now) {
	case PhaseClosed:
		return ErrRegistrationClosed
	case PhaseDraft:
		return ErrRegistrationNotOpen
	default:
		return nil
	}
}

// NewTeam assembles a roster: the captain is listed as a player and
// duplicate player ids are dropped, keeping first occurrence order.
func NewTeam(name string, captain int32, players []int32) Team {
	roster := make([]int32, 0, len(players)+1)
	seen := make(map[int32]struct{}, len(players)+1)
	for _, p := range players {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		roster = append(roster, p)
	}
	if _, ok := seen[captain]; captain > 0 && !ok {
		roster = append(roster, captain)
	}

	return Team{
		ID:      primitive.NewObjectID(),
		Name:    name,
		Captain: captain,
		Players: roster,
	}
}

// DuplicatePlayers returns the candidates that already play in one of teams.
// Each id is reported once.
func DuplicatePlayers(teams []Team, candidates []int32) []int32 {
	out := make([]int32, 0)
	if len(candidates) == 0 {
		return out
	}

	wanted := make(map[int32]struct{}, len(candidates))
	for _, c := range candidates {
		wanted[c] = struct{}{}
	}

	reported := make(map[int32]struct{})
	for _, team := range teams {
		for _, p := range team.Players {
			if _, ok := wanted[p]; !ok {
				continue
			}
			if _, ok := reported[p]; ok {
				continue
			}
			reported[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}
