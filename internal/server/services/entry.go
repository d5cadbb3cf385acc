package services

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/dailyjournal/internal/common"
	"github.com/dmitrijs2005/dailyjournal/internal/dbx"
	"github.com/dmitrijs2005/dailyjournal/internal/server/models"
	"github.com/dmitrijs2005/dailyjournal/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/dailyjournal/internal/timex"
)

const (
	// MaxPageSize bounds page_size on list requests.
	MaxPageSize = 100
	// MaxMoodLength is the longest accepted mood, in characters.
	MaxMoodLength = 32
)

// EntryInput is the writable part of an entry. CreatedAt is optional; when
// nil, creation uses the current time and update keeps the stored value.
type EntryInput struct {
	Content   string
	Mood      *string
	CreatedAt *time.Time
}

// EntryService implements journal entry operations. Timestamps are stored
// in UTC and every returned entry carries CreatedAt in the local zone.
type EntryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	zone        *timex.Zone
	now         func() time.Time
}

func NewEntryService(db *sql.DB, m repomanager.RepositoryManager, zone *timex.Zone) *EntryService {
	return &EntryService{
		db:          db,
		repomanager: m,
		zone:        zone,
		now:         time.Now,
	}
}

func (s *EntryService) validate(in *EntryInput) error {
	in.Content = strings.TrimSpace(in.Content)
	if in.Content == "" {
		return fmt.Errorf("%w: content must not be empty", common.ErrorValidation)
	}
	if in.Mood != nil {
		mood := strings.TrimSpace(*in.Mood)
		if mood == "" {
			in.Mood = nil
			return nil
		}
		if utf8.RuneCountInString(mood) > MaxMoodLength {
			return fmt.Errorf("%w: mood must be at most %d characters", common.ErrorValidation, MaxMoodLength)
		}
		in.Mood = &mood
	}
	return nil
}

func (s *EntryService) localize(e *models.Entry) *models.Entry {
	e.CreatedAt = s.zone.ToLocal(e.CreatedAt)
	return e
}

// Create stores a new entry. Without CreatedAt the entry is stamped with the
// current UTC time.
func (s *EntryService) Create(ctx context.Context, in EntryInput) (*models.Entry, error) {
	if err := s.validate(&in); err != nil {
		return nil, err
	}

	createdAt := s.zone.ToUTC(s.now())
	if in.CreatedAt != nil {
		createdAt = s.zone.ToUTC(*in.CreatedAt)
	}

	var created *models.Entry
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		created, err = s.repomanager.Entries(tx).Create(ctx, &models.Entry{
			Content:   in.Content,
			Mood:      in.Mood,
			CreatedAt: createdAt,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error creating entry: %w", err)
	}

	return s.localize(created), nil
}

// Get returns the entry with the given id or common.ErrorNotFound.
func (s *EntryService) Get(ctx context.Context, id int64) (*models.Entry, error) {
	e, err := s.repomanager.Entries(s.db).Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.localize(e), nil
}

// List returns one page of entries, newest first. It reads pageSize+1 rows
// to detect whether another page follows; the total is a separate count on
// the same connection.
func (s *EntryService) List(ctx context.Context, page, pageSize int) (*models.EntryPage, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page must be >= 1", common.ErrorValidation)
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return nil, fmt.Errorf("%w: page_size must be between 1 and %d", common.ErrorValidation, MaxPageSize)
	}
	if page-1 > math.MaxInt/pageSize {
		return nil, fmt.Errorf("%w: page is too large", common.ErrorValidation)
	}

	skip := (page - 1) * pageSize

	var (
		items []*models.Entry
		total int64
	)
	err := dbx.WithConn(ctx, s.db, func(ctx context.Context, conn dbx.DBTX) error {
		repo := s.repomanager.Entries(conn)

		var err error
		items, err = repo.List(ctx, pageSize+1, skip)
		if err != nil {
			return err
		}
		total, err = repo.Count(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error listing entries: %w", err)
	}

	hasMore := len(items) > pageSize
	if hasMore {
		items = items[:pageSize]
	}
	for _, e := range items {
		s.localize(e)
	}

	return &models.EntryPage{
		Items:   items,
		Total:   total,
		Page:    skip/pageSize + 1,
		Size:    pageSize,
		HasMore: hasMore,
	}, nil
}

// GetByDateRange returns the entries created on the local calendar days
// startDate through endDate (inclusive, YYYY-MM-DD), grouped by local day.
// Days without entries are absent. Within a day entries are oldest first.
func (s *EntryService) GetByDateRange(ctx context.Context, startDate, endDate string) (map[string][]*models.Entry, error) {
	start, err := s.zone.ParseDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := s.zone.ParseDate(endDate)
	if err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, fmt.Errorf("%w: start_date must not be after end_date", common.ErrorValidation)
	}

	from := s.zone.ToUTC(start)
	to := s.zone.ToUTC(s.zone.EndOfDay(end))

	list, err := s.repomanager.Entries(s.db).SelectBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("error selecting entries: %w", err)
	}

	result := make(map[string][]*models.Entry)
	for _, e := range list {
		key := s.zone.DateKey(e.CreatedAt)
		result[key] = append(result[key], s.localize(e))
	}

	return result, nil
}

// Update overwrites content and mood of an existing entry, and its
// timestamp when CreatedAt is given.
func (s *EntryService) Update(ctx context.Context, id int64, in EntryInput) (*models.Entry, error) {
	if err := s.validate(&in); err != nil {
		return nil, err
	}

	var createdAt *time.Time
	if in.CreatedAt != nil {
		t := s.zone.ToUTC(*in.CreatedAt)
		createdAt = &t
	}

	var updated *models.Entry
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		updated, err = s.repomanager.Entries(tx).Update(ctx, id, in.Content, in.Mood, createdAt)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error updating entry %d: %w", id, err)
	}

	return s.localize(updated), nil
}

// Delete removes the entry with the given id.
func (s *EntryService) Delete(ctx context.Context, id int64) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Entries(tx).Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("error deleting entry %d: %w", id, err)
	}
	return nil
}
