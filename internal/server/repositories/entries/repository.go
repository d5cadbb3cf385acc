package entries

import (
	"context"
	"time"

	"github.com/dmitrijs2005/dailyjournal/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, entry *models.Entry) (*models.Entry, error)
	Get(ctx context.Context, id int64) (*models.Entry, error)
	// List returns up to limit entries, newest first, skipping offset rows.
	List(ctx context.Context, limit, offset int) ([]*models.Entry, error)
	Count(ctx context.Context) (int64, error)
	// SelectBetween returns entries with from <= created_at <= to, oldest first.
	SelectBetween(ctx context.Context, from, to time.Time) ([]*models.Entry, error)
	// Update overwrites content and mood; created_at only when createdAt is non-nil.
	Update(ctx context.Context, id int64, content string, mood *string, createdAt *time.Time) (*models.Entry, error)
	Delete(ctx context.Context, id int64) error
}
