package contact

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	applog "folio/internal/log"
	"folio/models"
)

// Recorder stores messages in the database.
type Recorder struct {
	DB *gorm.DB
}

func (r Recorder) Submit(ctx context.Context, m Message) error {
	if r.DB == nil {
		return gorm.ErrInvalidDB
	}
	record := &models.ContactMessage{
		Name:       m.Name,
		Email:      m.Email,
		Body:       m.Body,
		RemoteHash: models.HashRemote(m.Remote),
	}
	if err := r.DB.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("store contact message: %w", err)
	}
	applog.Info(ctx, "contact message stored", "id", record.ID)
	return nil
}

// Recent returns up to limit stored messages, newest first.
func Recent(ctx context.Context, db *gorm.DB, limit int) ([]models.ContactMessage, error) {
	if db == nil {
		return nil, errors.New("contact: database not configured")
	}
	if limit <= 0 {
		limit = 100
	}
	var messages []models.ContactMessage
	err := db.WithContext(ctx).Order("created_at desc").Order("id desc").Limit(limit).Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	return messages, nil
}
