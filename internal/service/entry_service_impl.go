package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lbarrett/tempo/internal/db"
	"github.com/lbarrett/tempo/internal/domain"
	"github.com/lbarrett/tempo/internal/repository"
)

type entryService struct {
	entries  repository.TimeEntryRepo
	uow      db.UnitOfWork
	loc      *time.Location
	observer UseCaseObserver
}

// NewEntryService creates the manual create/edit/list service. Persisted
// instants are UTC; loc is the display timezone used only to resolve
// calendar-day boundaries for list filters.
func NewEntryService(entries repository.TimeEntryRepo, uow db.UnitOfWork, loc *time.Location, observer UseCaseObserver) EntryService {
	if loc == nil {
		loc = time.Local
	}
	return &entryService{
		entries:  entries,
		uow:      uow,
		loc:      loc,
		observer: useCaseObserverOrNoop(observer),
	}
}

func (s *entryService) Get(ctx context.Context, id string) (*domain.TimeEntry, error) {
	return s.entries.GetByID(ctx, id)
}

// dayStart anchors a calendar day at midnight in the display timezone.
func (s *entryService) dayStart(day time.Time) time.Time {
	y, m, d := day.In(s.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.loc)
}

func (s *entryService) ListForDay(ctx context.Context, day time.Time) ([]repository.EntryDetail, error) {
	start := s.dayStart(day)
	return s.entries.ListForRange(ctx, start.UTC(), start.AddDate(0, 0, 1).UTC())
}

func (s *entryService) ListForRange(ctx context.Context, from, to time.Time) ([]repository.EntryDetail, error) {
	start := s.dayStart(from)
	end := s.dayStart(to).AddDate(0, 0, 1)
	if end.Before(start) {
		return nil, NewValidationError("endDate cannot be before startDate")
	}
	return s.entries.ListForRange(ctx, start.UTC(), end.UTC())
}

func (s *entryService) Create(ctx context.Context, in CreateEntryInput) (entry *domain.TimeEntry, err error) {
	started := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "entry_create", started, err, map[string]any{"task_id": in.TaskID})
	}()

	if in.TaskID == "" {
		return nil, NewValidationError("taskId is required")
	}
	if in.Start.IsZero() {
		return nil, NewValidationError("startTime is required")
	}
	if in.End == nil && in.DurationSeconds == nil {
		return nil, NewValidationError("either endTime or duration (in seconds) is required")
	}

	start := in.Start.UTC()
	var end time.Time
	switch {
	case in.End != nil:
		// endTime wins when both are supplied; duration is re-derived.
		end = in.End.UTC()
		if end.Before(start) {
			return nil, NewValidationError("endTime cannot be before startTime")
		}
	default:
		if *in.DurationSeconds < 0 {
			return nil, NewValidationError("duration cannot be negative")
		}
		end = domain.EndFromDuration(start, *in.DurationSeconds)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLiteTimeEntryRepo(tx)
		txTasks := repository.NewSQLiteTaskRepo(tx)

		task, err := txTasks.GetByID(ctx, in.TaskID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		e := &domain.TimeEntry{
			ID:             uuid.New().String(),
			TaskID:         task.ID,
			TaskExternalID: task.ExternalID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := e.SetInterval(start, end); err != nil {
			return NewValidationError("endTime cannot be before startTime")
		}
		if err := txEntries.Create(ctx, e); err != nil {
			return err
		}
		entry = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *entryService) Update(ctx context.Context, id string, in UpdateEntryInput) (entry *domain.TimeEntry, err error) {
	started := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "entry_update", started, err, map[string]any{"entry_id": id})
	}()

	if in.Start.IsZero() || in.End.IsZero() {
		return nil, NewValidationError("startTime and endTime are required")
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLiteTimeEntryRepo(tx)

		e, err := txEntries.GetByID(ctx, id)
		if err != nil {
			return err
		}
		// Reject inversion before touching the row; the stored entry keeps
		// its previous interval.
		if err := e.SetInterval(in.Start.UTC(), in.End.UTC()); err != nil {
			return NewValidationError("endTime cannot be before startTime")
		}
		e.UpdatedAt = time.Now().UTC()
		if err := txEntries.Update(ctx, e); err != nil {
			return err
		}
		entry = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *entryService) Delete(ctx context.Context, id string) (err error) {
	started := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "entry_delete", started, err, map[string]any{"entry_id": id})
	}()
	return s.entries.Delete(ctx, id)
}
