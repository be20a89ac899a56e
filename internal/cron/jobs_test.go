package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/whatscart/whatscart-backend/pkg/logger"
)

func TestSharedCartSweepJobUsesCurrentTimeAsCutoff(t *testing.T) {
	now := time.Date(2026, 4, 2, 6, 0, 0, 0, time.UTC)
	repo := &fakeSweeper{deleted: 4}
	job := newSweepJob(t, repo)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !repo.lastCutoff.Equal(now) {
		t.Fatalf("expected cutoff %s, got %s", now, repo.lastCutoff)
	}
	if repo.called != 1 {
		t.Fatalf("expected one sweep, got %d", repo.called)
	}
}

func TestSharedCartSweepJobPropagatesError(t *testing.T) {
	repo := &fakeSweeper{err: errors.New("boom")}
	job := newSweepJob(t, repo)

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestCartRetentionJobAppliesRetentionWindow(t *testing.T) {
	now := time.Date(2026, 4, 2, 6, 0, 0, 0, time.UTC)
	repo := &fakeSweeper{deleted: 2}
	job := newRetentionJob(t, repo, 0)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	expected := now.Add(-cartRetentionDays * 24 * time.Hour)
	if !repo.lastCutoff.Equal(expected) {
		t.Fatalf("expected default cutoff %s, got %s", expected, repo.lastCutoff)
	}
}

func TestCartRetentionJobHonorsCustomRetention(t *testing.T) {
	now := time.Date(2026, 4, 2, 6, 0, 0, 0, time.UTC)
	repo := &fakeSweeper{}
	job := newRetentionJob(t, repo, 7)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	expected := now.Add(-7 * 24 * time.Hour)
	if !repo.lastCutoff.Equal(expected) {
		t.Fatalf("expected cutoff %s, got %s", expected, repo.lastCutoff)
	}
}

func newSweepJob(t *testing.T, repo *fakeSweeper) *sharedCartSweepJob {
	t.Helper()
	jobIface, err := NewSharedCartSweepJob(SharedCartSweepJobParams{
		Logger:     logger.New(logger.Options{ServiceName: "test"}),
		Repository: repo,
	})
	if err != nil {
		t.Fatalf("NewSharedCartSweepJob: %v", err)
	}
	return jobIface.(*sharedCartSweepJob)
}

func newRetentionJob(t *testing.T, repo *fakeSweeper, retention int) *cartRetentionJob {
	t.Helper()
	jobIface, err := NewCartRetentionJob(CartRetentionJobParams{
		Logger:        logger.New(logger.Options{ServiceName: "test"}),
		Repository:    repo,
		RetentionDays: retention,
	})
	if err != nil {
		t.Fatalf("NewCartRetentionJob: %v", err)
	}
	return jobIface.(*cartRetentionJob)
}

type fakeSweeper struct {
	lastCutoff time.Time
	called     int
	deleted    int64
	err        error
}

func (f *fakeSweeper) DeleteExpired(_ context.Context, cutoff time.Time) (int64, error) {
	return f.sweep(cutoff)
}

func (f *fakeSweeper) DeleteStale(_ context.Context, cutoff time.Time) (int64, error) {
	return f.sweep(cutoff)
}

func (f *fakeSweeper) sweep(cutoff time.Time) (int64, error) {
	f.called++
	f.lastCutoff = cutoff
	if f.err != nil {
		return 0, f.err
	}
	return f.deleted, nil
}
