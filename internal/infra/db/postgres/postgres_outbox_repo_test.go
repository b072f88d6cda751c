//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Antonio1491/parksys-sub000/internal/domain/model"
)

func testOutboxEntry() *model.EmailOutboxEntry {
	return &model.EmailOutboxEntry{
		ID:         ulid.Make().String(),
		Recipient:  "ana@example.com",
		TemplateID: "activity-registration-confirmation",
		Variables:  map[string]string{"participant_name": "Ana", "activity_title": "Guided Kayak Tour"},
		Status:     model.OutboxStatusPending,
		CreatedAt:  time.Now().Truncate(time.Millisecond),
	}
}

func TestOutboxRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode.")
	}

	ctx := context.Background()
	repo := NewOutboxRepo(testPool)

	t.Run("should save and list a pending entry with its variables", func(t *testing.T) {
		cleanup(t)
		entry := testOutboxEntry()
		if err := repo.Save(ctx, nil, entry); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		pending, err := repo.ListPending(ctx, nil, 10, 5)
		if err != nil {
			t.Fatalf("ListPending failed: %v", err)
		}
		if len(pending) != 1 {
			t.Fatalf("expected 1 pending entry, got %d", len(pending))
		}
		if pending[0].Variables["participant_name"] != "Ana" {
			t.Errorf("expected template variables to round-trip, got %v", pending[0].Variables)
		}
	})

	t.Run("should drain oldest first", func(t *testing.T) {
		cleanup(t)
		var ids []string
		for i := 0; i < 3; i++ {
			e := testOutboxEntry()
			ids = append(ids, e.ID)
			if err := repo.Save(ctx, nil, e); err != nil {
				t.Fatalf("Save %d failed: %v", i, err)
			}
		}

		pending, err := repo.ListPending(ctx, nil, 10, 5)
		if err != nil {
			t.Fatalf("ListPending failed: %v", err)
		}
		if len(pending) != 3 {
			t.Fatalf("expected 3 pending entries, got %d", len(pending))
		}
		for i, e := range pending {
			if e.ID != ids[i] {
				t.Errorf("position %d: expected %s, got %s", i, ids[i], e.ID)
			}
		}
	})

	t.Run("should exclude sent entries from the pending list", func(t *testing.T) {
		cleanup(t)
		entry := testOutboxEntry()
		if err := repo.Save(ctx, nil, entry); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if err := repo.MarkSent(ctx, nil, entry.ID); err != nil {
			t.Fatalf("MarkSent failed: %v", err)
		}

		pending, err := repo.ListPending(ctx, nil, 10, 5)
		if err != nil {
			t.Fatalf("ListPending failed: %v", err)
		}
		if len(pending) != 0 {
			t.Errorf("expected no pending entries, got %d", len(pending))
		}
	})

	t.Run("should park an entry as failed once attempts are exhausted", func(t *testing.T) {
		cleanup(t)
		entry := testOutboxEntry()
		if err := repo.Save(ctx, nil, entry); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		const maxAttempts = 2
		for i := 0; i < maxAttempts; i++ {
			if err := repo.MarkFailed(ctx, nil, entry.ID, "queue timeout", maxAttempts); err != nil {
				t.Fatalf("MarkFailed %d failed: %v", i, err)
			}
		}

		pending, err := repo.ListPending(ctx, nil, 10, maxAttempts)
		if err != nil {
			t.Fatalf("ListPending failed: %v", err)
		}
		if len(pending) != 0 {
			t.Errorf("expected the entry to be parked, got %d pending", len(pending))
		}

		var status string
		var attempts int
		var lastError string
		row := testPool.QueryRow(ctx, "SELECT status, attempts, last_error FROM email_outbox WHERE id=$1", entry.ID)
		if err := row.Scan(&status, &attempts, &lastError); err != nil {
			t.Fatalf("could not read entry back: %v", err)
		}
		if status != string(model.OutboxStatusFailed) {
			t.Errorf("expected status failed, got %s", status)
		}
		if attempts != maxAttempts {
			t.Errorf("expected %d attempts, got %d", maxAttempts, attempts)
		}
		if lastError != "queue timeout" {
			t.Errorf("expected the failure reason recorded, got %q", lastError)
		}
	})
}
