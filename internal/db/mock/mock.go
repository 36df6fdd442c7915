package mock

import (
	"context"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applog "folio/internal/log"
	"folio/models"
)

// New returns an in-memory sqlite database seeded with a few contact messages
// so the inbox has something to show in development.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	db, err := gorm.Open(sqlite.Open("file:folio-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.ContactMessage{}); err != nil {
		return nil, err
	}

	if err := seed(ctx, db); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return db, nil
}

func seed(ctx context.Context, db *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	var count int64
	if err := db.WithContext(ctx).Model(&models.ContactMessage{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	messages := []models.ContactMessage{
		{
			Name:       "Ada Reviewer",
			Email:      "ada@example.com",
			Body:       "Loved the timeline section. Are you open to a contract role next quarter?",
			RemoteHash: models.HashRemote("203.0.113.7:51000"),
		},
		{
			Name:       "Grace Recruiter",
			Email:      "grace@example.org",
			Body:       "Could you share a longer write-up of the featured project?",
			RemoteHash: models.HashRemote("198.51.100.23:44120"),
		},
	}

	for _, message := range messages {
		messageCopy := message
		if err := db.WithContext(ctx).Create(&messageCopy).Error; err != nil {
			return err
		}
	}

	applog.Debug(ctx, "mock database seeded", "messages", len(messages))
	return nil
}
