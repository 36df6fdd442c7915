package mock

import (
	"context"
	"testing"

	"folio/models"
)

func TestNewSeedsExpectedRecords(t *testing.T) {
	ctx := context.Background()
	db, err := New(ctx)
	if err != nil {
		t.Fatalf("mock database initialization failed: %v", err)
	}

	var messages []models.ContactMessage
	if err := db.WithContext(ctx).Find(&messages).Error; err != nil {
		t.Fatalf("query contact messages: %v", err)
	}
	if len(messages) == 0 {
		t.Fatal("expected seeded contact messages")
	}
	for _, message := range messages {
		if message.RemoteHash == "" {
			t.Fatalf("expected remote hash on seeded message %q", message.Name)
		}
	}
}

func TestNewIsIdempotent(t *testing.T) {
	ctx := context.Background()
	first, err := New(ctx)
	if err != nil {
		t.Fatalf("first New() error = %v", err)
	}
	var before int64
	first.Model(&models.ContactMessage{}).Count(&before)

	second, err := New(ctx)
	if err != nil {
		t.Fatalf("second New() error = %v", err)
	}
	var after int64
	second.Model(&models.ContactMessage{}).Count(&after)

	if before != after {
		t.Fatalf("expected seeding to be skipped on reuse, got %d then %d", before, after)
	}
}
