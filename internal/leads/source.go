// Package leads implements the multi-source lead aggregation pipeline:
// pluggable source strategies fan queries out to upstream providers, and a
// single orchestrator owns deduplication, ranking, size bounding and
// progress events for every strategy.
package leads

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leadscout/internal/model"
)

// ErrNoCompanies is returned by the two-phase source when discovery yields
// zero organizations; there is nothing to enrich, so the run fails.
var ErrNoCompanies = eris.New("discover: no companies found")

// EmitFunc receives progress events while a source is working. Sources call
// it from the goroutine that produced the event; implementations must be
// safe for concurrent use.
type EmitFunc func(model.Event)

// Source is a pluggable lead-source strategy: given one request, produce a
// finite set of candidate leads, emitting events as work completes. A source
// run is not restartable. Candidates may contain duplicates; the
// orchestrator dedupes and ranks them.
type Source interface {
	Name() string
	Discover(ctx context.Context, req model.Request, emit EmitFunc) ([]model.Lead, error)
}
