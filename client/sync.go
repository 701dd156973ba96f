package client

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/pulseboard/pulseboard-backend/types"
)

// State is the observable listing state of a SyncController.
type State int

const (
	// StateLoaded means the controller holds the result of the most recent
	// successful fetch. This is also the initial state, with an empty listing.
	StateLoaded State = iota
	StateLoading
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// RatingAll disables the rating filter.
const RatingAll = 0

// ListFetcher is the slice of the API the controller needs.
type ListFetcher interface {
	ListFeedback(ctx context.Context) ([]types.Feedback, error)
}

// SyncController keeps a fetched feedback listing current. Each Refresh issues
// a monotonically increasing token; only the result of the most recently
// issued fetch is applied, so a slow earlier response can never overwrite a
// newer one.
type SyncController struct {
	api ListFetcher

	// issued is the newest fetch token handed out.
	issued atomic.Uint64

	mu           sync.Mutex
	state        State
	entries      []types.Feedback
	lastError    string
	ratingFilter int
}

// NewSyncController creates a controller in the loaded state with an empty
// listing. Call Refresh to populate it.
func NewSyncController(api ListFetcher) *SyncController {
	return &SyncController{
		api:          api,
		state:        StateLoaded,
		ratingFilter: RatingAll,
	}
}

// Refresh fetches the listing and applies the result unless a newer Refresh
// has been issued in the meantime. Safe for concurrent use.
func (c *SyncController) Refresh(ctx context.Context) {
	c.refresh(ctx, c.issued.Add(1))
}

func (c *SyncController) refresh(ctx context.Context, token uint64) {
	c.mu.Lock()
	// A stale caller must not flip the state back to Loading after a newer
	// Refresh has already applied its result.
	if token == c.issued.Load() {
		c.state = StateLoading
	}
	c.mu.Unlock()

	entries, err := c.api.ListFeedback(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.issued.Load() {
		// A newer fetch is in flight; its result wins.
		return
	}

	if err != nil {
		c.state = StateError
		c.lastError = err.Error()
		return
	}

	c.state = StateLoaded
	c.entries = entries
	c.lastError = ""
}

// State returns the current listing state.
func (c *SyncController) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastError returns the message of the most recent failed fetch, or "" when
// the last fetch succeeded.
func (c *SyncController) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastError
}

// SetRatingFilter restricts Entries to the given rating. RatingAll shows
// everything. Filtering is purely in-memory and never triggers a fetch.
func (c *SyncController) SetRatingFilter(rating int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ratingFilter = rating
}

// Entries returns the fetched listing with the rating filter applied. The
// returned slice is a copy.
func (c *SyncController) Entries() []types.Feedback {
	c.mu.Lock()
	defer c.mu.Unlock()

	filtered := make([]types.Feedback, 0, len(c.entries))
	for _, entry := range c.entries {
		if c.ratingFilter == RatingAll || entry.Rating == c.ratingFilter {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}
