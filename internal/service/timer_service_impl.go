package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lbarrett/tempo/internal/db"
	"github.com/lbarrett/tempo/internal/domain"
	"github.com/lbarrett/tempo/internal/repository"
)

type timerService struct {
	entries  repository.TimeEntryRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
}

// NewTimerService creates the timer lifecycle service. The now function is
// injectable for tests; pass nil for the wall clock.
func NewTimerService(entries repository.TimeEntryRepo, uow db.UnitOfWork, observer UseCaseObserver, now func() time.Time) TimerService {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &timerService{
		entries:  entries,
		uow:      uow,
		observer: useCaseObserverOrNoop(observer),
		now:      now,
	}
}

// Start runs the whole read-close-insert sequence in one transaction. Two
// racing Start calls serialize on the transaction; the partial unique index
// on open rows backstops the invariant even if they did not.
func (s *timerService) Start(ctx context.Context, taskID string) (result *StartResult, err error) {
	started := s.now()
	defer func() {
		observe(ctx, s.observer, "timer_start", started, err, map[string]any{"task_id": taskID})
	}()

	if taskID == "" {
		return nil, NewValidationError("taskId is required")
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLiteTimeEntryRepo(tx)
		txTasks := repository.NewSQLiteTaskRepo(tx)

		now := s.now()

		var stopped *domain.TimeEntry
		open, err := txEntries.FindOpen(ctx)
		switch {
		case err == nil:
			if open.TaskID == taskID {
				// The task already owns the running timer; resume it rather
				// than producing a new entry id and a zero-length gap.
				result = &StartResult{Entry: open, Resumed: true}
				return nil
			}
			if err := open.Close(now); err != nil {
				return fmt.Errorf("closing running entry: %w", err)
			}
			open.UpdatedAt = now
			if err := txEntries.Update(ctx, open); err != nil {
				return err
			}
			stopped = open
		case errors.Is(err, repository.ErrNotFound):
			// No running timer to close.
		default:
			return err
		}

		task, err := txTasks.GetByID(ctx, taskID)
		if err != nil {
			// Rolls back the close above: an unknown task must not stop
			// the running timer as a side effect.
			return err
		}

		entry := &domain.TimeEntry{
			ID:             uuid.New().String(),
			TaskID:         task.ID,
			TaskExternalID: task.ExternalID,
			StartTime:      now,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := txEntries.Create(ctx, entry); err != nil {
			return err
		}

		result = &StartResult{Entry: entry, Stopped: stopped}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *timerService) Stop(ctx context.Context, entryID string) (entry *domain.TimeEntry, err error) {
	started := s.now()
	defer func() {
		observe(ctx, s.observer, "timer_stop", started, err, map[string]any{"entry_id": entryID})
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLiteTimeEntryRepo(tx)

		e, err := txEntries.GetByID(ctx, entryID)
		if err != nil {
			return err
		}
		if !e.Running() {
			return fmt.Errorf("time entry %s: %w", entryID, ErrAlreadyStopped)
		}

		now := s.now()
		if err := e.Close(now); err != nil {
			return fmt.Errorf("closing entry: %w", err)
		}
		e.UpdatedAt = now
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

func (s *timerService) Active(ctx context.Context) (*repository.EntryDetail, error) {
	detail, err := s.entries.FindOpenDetail(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return detail, nil
}
