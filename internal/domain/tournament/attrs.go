package tournament

import (
	"time"

	"github.com/riskibarqy/osu-tournament/internal/platform/patch"
)

// Patch is a sparse change-set over Tournament.
type Patch = patch.Patch[Tournament]

var (
	Slug = patch.Attr[Tournament, string]{
		Key: "slug",
		Ref: func(t *Tournament) *string { return &t.Slug },
	}
	Name = patch.Attr[Tournament, string]{
		Key: "name",
		Ref: func(t *Tournament) *string { return &t.Name },
	}
	ModeAttr = patch.Attr[Tournament, Mode]{
		Key: "mode",
		Ref: func(t *Tournament) *Mode { return &t.Mode },
	}
	InviteOnly = patch.Attr[Tournament, bool]{
		Key: "invite_only",
		Ref: func(t *Tournament) *bool { return &t.InviteOnly },
	}
	MinTeamSize = patch.Attr[Tournament, int32]{
		Key: "min_team_size",
		Ref: func(t *Tournament) *int32 { return &t.MinTeamSize },
	}
	MaxTeamSize = patch.Attr[Tournament, int32]{
		Key: "max_team_size",
		Ref: func(t *Tournament) *int32 { return &t.MaxTeamSize },
	}
	RegistrationStart = patch.Attr[Tournament, time.Time]{
		Key: "registration_start_date",
		Ref: func(t *Tournament) *time.Time { return &t.RegistrationStart },
	}
	RegistrationEnd = patch.Attr[Tournament, time.Time]{
		Key: "registration_end_date",
		Ref: func(t *Tournament) *time.Time { return &t.RegistrationEnd },
	}
)
