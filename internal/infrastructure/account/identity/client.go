package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/osu-tournament/internal/domain/user"
	"github.com/riskibarqy/osu-tournament/internal/platform/cache"
	"github.com/riskibarqy/osu-tournament/internal/platform/logging"
	"github.com/riskibarqy/osu-tournament/internal/platform/resilience"
	"github.com/riskibarqy/osu-tournament/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultConnectionsPath = "/connections/me"
	defaultTimeout         = 5 * time.Second
	defaultCacheTTL        = 30 * time.Second
	maxResponseBytes       = 1 << 20
)

var errIdentityTransient = crerr.New("identity service transient failure")

type ClientConfig struct {
	HTTPClient      *http.Client
	BaseURL         string
	ConnectionsPath string
	Timeout         time.Duration
	CacheTTL        time.Duration
	Logger          *logging.Logger
	CircuitBreaker  resilience.CircuitBreakerConfig
}

// Client resolves the caller behind an Authorization header by asking the
// identity service for its linked connections.
type Client struct {
	httpClient     *http.Client
	connectionsURL string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	principals     *cache.Store[user.Principal]
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	path := cfg.ConnectionsPath
	if strings.TrimSpace(path) == "" {
		path = defaultConnectionsPath
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	return &Client{
		httpClient:     httpClient,
		connectionsURL: buildURL(cfg.BaseURL, path),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		circuitEnabled: cfg.CircuitBreaker.Enabled,
		principals:     cache.NewStore[user.Principal](ttl),
	}
}

// Me returns the principal for authorization, the raw Authorization header
// value of the incoming request.
func (c *Client) Me(ctx context.Context, authorization string) (user.Principal, error) {
	authorization = strings.TrimSpace(authorization)
	if authorization == "" {
		return user.Principal{}, fmt.Errorf("%w: authorization is required", usecase.ErrUnauthorized)
	}

	return c.principals.GetOrLoad(ctx, hashToken(authorization), func(ctx context.Context) (user.Principal, error) {
		return c.fetch(ctx, authorization)
	})
}

func (c *Client) fetch(ctx context.Context, authorization string) (user.Principal, error) {
	var principal user.Principal
	call := func() error {
		var err error
		principal, err = c.request(ctx, authorization)
		return err
	}

	var err error
	if c.circuitEnabled {
		err = c.breaker.Execute(call, isTransient)
	} else {
		err = call()
	}

	switch {
	case err == nil:
		return principal, nil
	case errors.Is(err, resilience.ErrCircuitOpen):
		c.logger.WarnContext(ctx, "identity circuit breaker rejected request", "state", c.breaker.State())
		return user.Principal{}, fmt.Errorf("%w: identity service is temporarily unavailable", usecase.ErrDependencyUnavailable)
	case isTransient(err):
		c.logger.WarnContext(ctx, "identity request failed", "error", err)
		return user.Principal{}, fmt.Errorf("%w: identity service request failed", usecase.ErrDependencyUnavailable)
	default:
		return user.Principal{}, err
	}
}

func (c *Client) request(ctx context.Context, authorization string) (user.Principal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.connectionsURL, nil)
	if err != nil {
		return user.Principal{}, crerr.Wrap(err, "build identity request")
	}
	req.Header.Set("Authorization", authorization)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: send request: %v", errIdentityTransient, err)
	}
	defer resp.Body.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, maxResponseBytes)); err != nil {
		return user.Principal{}, fmt.Errorf("%w: read response body: %v", errIdentityTransient, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return user.Principal{}, fmt.Errorf("%w: identity service rejected credentials", usecase.ErrUnauthorized)
	case resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests:
		return user.Principal{}, fmt.Errorf("%w: identity status=%d", errIdentityTransient, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return user.Principal{}, crerr.Newf("identity service failed with status %d", resp.StatusCode)
	}

	// buf goes back to the pool, so decoded strings must be copied out of it.
	var decoded connectionsResponse
	if err := sonic.ConfigStd.Unmarshal(buf.B, &decoded); err != nil {
		return user.Principal{}, crerr.Wrap(err, "decode identity response")
	}
	if strings.TrimSpace(decoded.ID) == "" {
		return user.Principal{}, crerr.New("invalid identity response: id is empty")
	}

	principal := user.Principal{UserID: decoded.ID}
	if decoded.Osu != nil {
		principal.Osu = user.OsuConnection{
			ID:        decoded.Osu.ID,
			Username:  decoded.Osu.Username,
			AvatarURL: decoded.Osu.AvatarURL,
		}
	}
	if decoded.Discord != nil {
		principal.Discord = user.DiscordConnection{ID: decoded.Discord.ID}
	}
	return principal, nil
}

type connectionsResponse struct {
	ID      string             `json:"id"`
	Osu     *osuConnection     `json:"osu"`
	Discord *discordConnection `json:"discord"`
}

type osuConnection struct {
	ID        int32  `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

type discordConnection struct {
	ID string `json:"id"`
}

func isTransient(err error) bool {
	return errors.Is(err, errIdentityTransient)
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func buildURL(baseURL, path string) string {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	path = strings.TrimSpace(path)
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return baseURL + path
}
