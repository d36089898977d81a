// Package sync reconciles locally persisted records with the backend.
// Quiz attempts are resubmitted; chat messages are only flagged, since
// they were never more than locally informational. Triggering is
// external: connectivity restoration or an explicit command.
package sync

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/thinkfirst/tutorsync/internal/db"
	"github.com/thinkfirst/tutorsync/internal/log"
	"github.com/thinkfirst/tutorsync/internal/models"
	"github.com/thinkfirst/tutorsync/internal/netmon"
)

// DefaultRetention is how long chat records are kept before cleanup.
const DefaultRetention = 30 * 24 * time.Hour

// Gateway is the slice of the remote gateway the sync service needs.
type Gateway interface {
	SubmitQuiz(ctx context.Context, submission models.QuizSubmission) (*models.QuizResult, error)
}

// Options tunes the sync service.
type Options struct {
	// Retention is the chat cleanup window; DefaultRetention when zero.
	Retention time.Duration
	// SubmitRate caps resubmissions per second; unlimited when zero.
	SubmitRate rate.Limit
}

// Service drains unsynced local records.
type Service struct {
	gateway   Gateway
	store     *db.DB
	monitor   netmon.Monitor
	limiter   *rate.Limiter
	retention time.Duration
}

// NewService wires a sync service.
func NewService(gateway Gateway, store *db.DB, monitor netmon.Monitor, opts Options) *Service {
	retention := opts.Retention
	if retention == 0 {
		retention = DefaultRetention
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.SubmitRate > 0 {
		limiter = rate.NewLimiter(opts.SubmitRate, 1)
	}
	return &Service{
		gateway:   gateway,
		store:     store,
		monitor:   monitor,
		limiter:   limiter,
		retention: retention,
	}
}

// SyncAll drains all unsynced records. Quiz attempts go first and the
// two passes never interleave. A failure for one record is logged and
// skipped; only a non-per-record failure (store unavailable, context
// cancelled) fails the run.
func (s *Service) SyncAll(ctx context.Context) error {
	log.Debugf("starting sync")

	if err := s.syncQuizAttempts(ctx); err != nil {
		return fmt.Errorf("sync quiz attempts: %w", err)
	}
	if err := s.syncChatMessages(ctx); err != nil {
		return fmt.Errorf("sync chat messages: %w", err)
	}

	log.Debugf("sync completed")
	return nil
}

// syncQuizAttempts resubmits every pending attempt in submission order.
// The backend's fresh grading is not written back to the stored record;
// only the synced flag flips.
func (s *Service) syncQuizAttempts(ctx context.Context) error {
	attempts, err := s.store.UnsyncedAttempts()
	if err != nil {
		return err
	}
	log.Debugf("syncing %d quiz attempts", len(attempts))

	for _, attempt := range attempts {
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}

		answers, err := attempt.DecodeAnswers()
		if err != nil {
			log.Errorf("failed to decode answers for attempt %d: %v", attempt.ID, err)
			continue
		}

		_, err = s.gateway.SubmitQuiz(ctx, models.QuizSubmission{
			ChildID:   attempt.ChildID,
			QuizID:    attempt.QuizID,
			Answers:   answers,
			ClientKey: attempt.ClientKey,
		})
		if err != nil {
			log.Errorf("failed to sync quiz attempt %d: %v", attempt.ID, err)
			continue
		}

		if err := s.store.MarkAttemptSynced(attempt.ID); err != nil {
			log.Errorf("failed to mark attempt %d synced: %v", attempt.ID, err)
			continue
		}
		log.Debugf("synced quiz attempt %d", attempt.ID)
	}
	return nil
}

// syncChatMessages flags pending messages as reconciled. Offline chat
// send is unsupported, so there is nothing to resubmit.
func (s *Service) syncChatMessages(ctx context.Context) error {
	messages, err := s.store.UnsyncedMessages()
	if err != nil {
		return err
	}
	log.Debugf("syncing %d chat messages", len(messages))

	for _, msg := range messages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.store.MarkMessageSynced(msg.ID); err != nil {
			log.Errorf("failed to mark message %d synced: %v", msg.ID, err)
			continue
		}
		log.Debugf("synced chat message %d", msg.ID)
	}
	return nil
}

// CleanupOldData deletes chat records older than the retention window,
// independent of sync state.
func (s *Service) CleanupOldData(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cutoff := time.Now().Add(-s.retention).UnixMilli()
	if err := s.store.DeleteMessagesBefore(cutoff); err != nil {
		return fmt.Errorf("cleanup old data: %w", err)
	}
	log.Debugf("cleaned up messages older than %s", s.retention)
	return nil
}

// Run drains records whenever connectivity is restored, until the
// context is cancelled. The service never schedules itself otherwise.
func (s *Service) Run(ctx context.Context) error {
	changes := s.monitor.Changes()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case connected := <-changes:
			if !connected {
				continue
			}
			if err := s.SyncAll(ctx); err != nil {
				log.Errorf("sync failed: %v", err)
			}
		}
	}
}
