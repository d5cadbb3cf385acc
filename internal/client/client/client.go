package client

import (
	"context"

	"github.com/dmitrijs2005/dailyjournal/internal/client/models"
)

type Client interface {
	Login(ctx context.Context, username string, password []byte) error
	Logout()
	IsLoggedIn() bool
	Health(ctx context.Context) error
	Me(ctx context.Context) (*models.User, error)
	CreateEntry(ctx context.Context, in models.EntryInput) (*models.Entry, error)
	ListEntries(ctx context.Context, page, pageSize int) (*models.EntryPage, error)
	GetEntry(ctx context.Context, id int64) (*models.Entry, error)
	UpdateEntry(ctx context.Context, id int64, in models.EntryInput) (*models.Entry, error)
	DeleteEntry(ctx context.Context, id int64) error
	Calendar(ctx context.Context, startDate, endDate string) (map[string][]models.Entry, error)
}
