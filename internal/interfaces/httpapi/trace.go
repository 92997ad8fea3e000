package httpapi

import (
	"context"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("osu-tournament/internal/interfaces/httpapi")
var noopSpan = trace.SpanFromContext(context.Background())

// routeIDs are the path wildcards recorded on handler spans.
var routeIDs = []struct {
	wildcard string
	attr     string
}{
	{wildcard: "tournamentID", attr: "osu.tournament.id"},
	{wildcard: "mappoolID", attr: "osu.mappool.id"},
	{wildcard: "matchupID", attr: "osu.matchup.id"},
	{wildcard: "teamID", attr: "osu.team.id"},
}

// startSpan only creates a span below an existing request span, and only for
// handler names; helpers and middleware share the request span.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noopSpan
	}
	if !shouldCreateHTTPAPISpan(name) {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// startHandlerSpan tags the handler span with the matched route and the
// record ids taken from it.
func startHandlerSpan(r *http.Request, name string) (context.Context, trace.Span) {
	return startSpan(r.Context(), name, routeAttributes(r)...)
}

func routeAttributes(r *http.Request) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(routeIDs)+1)
	if r.Pattern != "" {
		attrs = append(attrs, attribute.String("http.route", r.Pattern))
	}
	for _, id := range routeIDs {
		if v := strings.TrimSpace(r.PathValue(id.wildcard)); v != "" {
			attrs = append(attrs, attribute.String(id.attr, v))
		}
	}
	return attrs
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}
