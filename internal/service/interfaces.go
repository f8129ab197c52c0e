package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/socialite-app/backend/internal/models"
)

// FileStorage stores opaque blobs under a subdirectory and returns the
// relative path to persist. Implementations own naming collisions and
// transport; the core only keeps the returned path.
type FileStorage interface {
	Store(ctx context.Context, data []byte, dir, name string) (string, error)
	Delete(ctx context.Context, path string) error
}

// ConnectionChecker supplies the friendship predicate consumed by the profile
// aggregator. The aggregator never walks the graph itself.
type ConnectionChecker interface {
	IsConnected(ctx context.Context, a, b uuid.UUID) (bool, error)
}

// FollowGraph is the full follow-relation surface the aggregator consumes:
// the connection predicate plus the public follower counts.
type FollowGraph interface {
	ConnectionChecker
	Counts(ctx context.Context, userID uuid.UUID) (followers, following int64, err error)
}

// Blocklist is the read side of the block relation used when computing
// connection state.
type Blocklist interface {
	IsBlocked(ctx context.Context, userID, targetID uuid.UUID) (bool, error)
}

// IEmailService sends transactional mail.
type IEmailService interface {
	SendVerificationEmail(user *models.User, code string) error
	SendWelcomeEmail(user *models.User) error
}
