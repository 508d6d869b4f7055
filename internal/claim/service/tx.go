package service

import (
	"context"
	"sync"
	"time"

	claimmodels "reclaim/internal/claim/models"
	itemmodels "reclaim/internal/items/models"
	matchmodels "reclaim/internal/match/models"
	id "reclaim/pkg/domain"
	dErrors "reclaim/pkg/domain-errors"
)

// MatchStore is the match surface the claim transaction needs. FindByIDForUpdate
// must lock the row for the remainder of the transaction.
type MatchStore interface {
	FindByIDForUpdate(ctx context.Context, matchID id.MatchID) (*matchmodels.Match, error)
	MarkClaimed(ctx context.Context, matchID id.MatchID, at time.Time) error
}

// LostStore is the lost-item surface the claim transaction needs.
type LostStore interface {
	FindByID(ctx context.Context, itemID id.LostItemID) (*itemmodels.LostItem, error)
	UpdateStatus(ctx context.Context, itemID id.LostItemID, status itemmodels.Status) error
}

// FoundStore is the found-item surface the claim transaction needs.
type FoundStore interface {
	FindByID(ctx context.Context, itemID id.FoundItemID) (*itemmodels.FoundItem, error)
	UpdateStatus(ctx context.Context, itemID id.FoundItemID, status itemmodels.Status) error
}

// ReturnStore appends return records.
type ReturnStore interface {
	Create(ctx context.Context, r *claimmodels.Return) error
}

// Stores bundles everything a claim touches inside one transaction.
type Stores struct {
	Matches MatchStore
	Lost    LostStore
	Found   FoundStore
	Returns ReturnStore
}

// Runner provides the transactional boundary for a claim. Implementations
// wrap a database transaction or, in-memory, a coarse lock; either way every
// write inside fn commits or rolls back as a unit. The context handed to fn
// carries the transaction, so the stores' reads and writes all join it.
type Runner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error
}

// defaultTxTimeout bounds a claim transaction so a stuck lock cannot park
// requests indefinitely.
const defaultTxTimeout = 5 * time.Second

// InMemoryRunner serializes claims with a single mutex over in-memory
// stores. One lock, not sharded: claims are rare compared to reads and the
// simplicity buys exactly the serialization the row lock gives Postgres.
type InMemoryRunner struct {
	mu      sync.Mutex
	stores  Stores
	timeout time.Duration
}

// NewInMemoryRunner constructs a runner over the given in-memory stores.
func NewInMemoryRunner(stores Stores) *InMemoryRunner {
	return &InMemoryRunner{stores: stores}
}

func (r *InMemoryRunner) RunInTx(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := r.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	return fn(ctx, r.stores)
}
