package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/osu-tournament/internal/config"
	"github.com/riskibarqy/osu-tournament/internal/domain/mappool"
	"github.com/riskibarqy/osu-tournament/internal/domain/matchup"
	"github.com/riskibarqy/osu-tournament/internal/domain/tournament"
	"github.com/riskibarqy/osu-tournament/internal/infrastructure/account/identity"
	cacherepo "github.com/riskibarqy/osu-tournament/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/osu-tournament/internal/infrastructure/repository/memory"
	mongorepo "github.com/riskibarqy/osu-tournament/internal/infrastructure/repository/mongo"
	"github.com/riskibarqy/osu-tournament/internal/interfaces/httpapi"
	"github.com/riskibarqy/osu-tournament/internal/platform/docstore"
	"github.com/riskibarqy/osu-tournament/internal/platform/logging"
	"github.com/riskibarqy/osu-tournament/internal/usecase"
)

type repositories struct {
	tournaments tournament.Repository
	mappools    mappool.Repository
	matchups    matchup.Repository
	close       func(context.Context) error
}

// NewHTTPServer wires the store, services and router. The returned func
// releases the store connection and must be called after the server stops.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := newRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	tournamentRepo := repos.tournaments
	if cfg.CacheEnabled {
		tournamentRepo = cacherepo.NewTournamentRepository(tournamentRepo, cfg.CacheTTL)
	}

	tournamentSvc := usecase.NewTournamentService(tournamentRepo, logger)
	mappoolSvc := usecase.NewMappoolService(repos.mappools, tournamentRepo, logger)
	matchupSvc := usecase.NewMatchupService(repos.matchups, tournamentRepo, logger)

	identityClient := identity.NewClient(identity.ClientConfig{
		BaseURL:         cfg.IdentityBaseURL,
		ConnectionsPath: cfg.IdentityConnectionsPath,
		Timeout:         cfg.IdentityTimeout,
		CacheTTL:        cfg.IdentityCacheTTL,
		Logger:          logger,
		CircuitBreaker:  cfg.IdentityCircuit,
	})

	handler := httpapi.NewHandler(tournamentSvc, mappoolSvc, matchupSvc, logger)
	router := httpapi.NewRouter(handler, identityClient, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.RequestTimeout(cfg.RequestTimeout, router),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, repos.close, nil
}

// newRepositories connects to MongoDB, or keeps records in process when no
// MONGO_URI is configured.
func newRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	if cfg.MongoURI == "" {
		logger.Warn("MONGO_URI empty, records are kept in memory")
		return repositories{
			tournaments: memory.NewTournamentRepository(),
			mappools:    memory.NewMappoolRepository(),
			matchups:    memory.NewMatchupRepository(),
			close:       func(context.Context) error { return nil },
		}, nil
	}

	db, err := docstore.Connect(ctx, docstore.Options{
		URI:                    cfg.MongoURI,
		Database:               cfg.MongoDatabase,
		AppName:                cfg.ServiceName,
		ConnectTimeout:         cfg.MongoConnectTimeout,
		ServerSelectionTimeout: cfg.MongoServerSelectionTimeout,
	})
	if err != nil {
		return repositories{}, fmt.Errorf("connect mongo: %w", err)
	}
	logger.Info("mongo connected", "uri", redactMongoURI(cfg.MongoURI), "database", db.Name())

	return repositories{
		tournaments: mongorepo.NewTournamentRepository(db),
		mappools:    mongorepo.NewMappoolRepository(db),
		matchups:    mongorepo.NewMatchupRepository(db),
		close:       db.Disconnect,
	}, nil
}
