package user

// Principal is the authenticated caller as reported by the identity service.
type Principal struct {
	UserID  string
	Osu     OsuConnection
	Discord DiscordConnection
}

// OsuConnection is the osu! account linked to a principal.
type OsuConnection struct {
	ID        int32
	Username  string
	AvatarURL string
}

type DiscordConnection struct {
	ID string
}

func (p Principal) HasOsu() bool {
	return p.Osu.ID > 0
}
