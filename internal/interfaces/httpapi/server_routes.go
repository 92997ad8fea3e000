package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/osu/tournaments/{tournamentID}", handler.GetTournament)
	mux.HandleFunc("GET /v1/osu/tournaments/{tournamentID}/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/osu/tournaments/{tournamentID}/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/osu/tournaments/{tournamentID}/mappools", handler.ListMappools)
	mux.HandleFunc("GET /v1/osu/tournaments/{tournamentID}/matchups", handler.ListMatchups)
	mux.HandleFunc("GET /v1/osu/mappools/{mappoolID}", handler.GetMappool)
	mux.HandleFunc("GET /v1/osu/matchups/{matchupID}", handler.GetMatchup)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, resolver PrincipalResolver) {
	registerAuthorizedTournamentRoutes(mux, handler, resolver)
	registerAuthorizedMappoolRoutes(mux, handler, resolver)
	registerAuthorizedMatchupRoutes(mux, handler, resolver)
	mux.Handle("GET /v1/users/me", RequireAuth(resolver, http.HandlerFunc(handler.Me)))
}

func registerAuthorizedTournamentRoutes(mux *http.ServeMux, handler *Handler, resolver PrincipalResolver) {
	mux.Handle("POST /v1/osu/tournaments", RequireAuth(resolver, http.HandlerFunc(handler.CreateTournament)))
	mux.Handle("PATCH /v1/osu/tournaments/{tournamentID}", RequireAuth(resolver, http.HandlerFunc(handler.UpdateTournament)))
	mux.Handle("DELETE /v1/osu/tournaments/{tournamentID}", RequireAuth(resolver, http.HandlerFunc(handler.DeleteTournament)))
	mux.Handle("POST /v1/osu/tournaments/{tournamentID}/register", RequireAuth(resolver, http.HandlerFunc(handler.RegisterTeam)))
	mux.Handle("DELETE /v1/osu/tournaments/{tournamentID}/teams/{teamID}", RequireAuth(resolver, http.HandlerFunc(handler.RemoveTeam)))
}

func registerAuthorizedMappoolRoutes(mux *http.ServeMux, handler *Handler, resolver PrincipalResolver) {
	mux.Handle("POST /v1/osu/mappools", RequireAuth(resolver, http.HandlerFunc(handler.CreateMappool)))
	mux.Handle("PATCH /v1/osu/mappools/{mappoolID}", RequireAuth(resolver, http.HandlerFunc(handler.UpdateMappool)))
	mux.Handle("DELETE /v1/osu/mappools/{mappoolID}", RequireAuth(resolver, http.HandlerFunc(handler.DeleteMappool)))
	mux.Handle("POST /v1/osu/mappools/{mappoolID}/maps", RequireAuth(resolver, http.HandlerFunc(handler.AddMappoolMaps)))
	mux.Handle("DELETE /v1/osu/mappools/{mappoolID}/maps/{pos}", RequireAuth(resolver, http.HandlerFunc(handler.RemoveMappoolMap)))
}

func registerAuthorizedMatchupRoutes(mux *http.ServeMux, handler *Handler, resolver PrincipalResolver) {
	mux.Handle("POST /v1/osu/matchups", RequireAuth(resolver, http.HandlerFunc(handler.CreateMatchup)))
	mux.Handle("PATCH /v1/osu/matchups/{matchupID}", RequireAuth(resolver, http.HandlerFunc(handler.UpdateMatchup)))
	mux.Handle("DELETE /v1/osu/matchups/{matchupID}", RequireAuth(resolver, http.HandlerFunc(handler.DeleteMatchup)))
	mux.Handle("POST /v1/osu/matchups/{matchupID}/maps", RequireAuth(resolver, http.HandlerFunc(handler.AddMatchupMaps)))
}
