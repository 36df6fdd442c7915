package pages

import (
	"time"

	"folio/models"
)

func received(m models.ContactMessage) string {
	return m.CreatedAt.UTC().Format(time.RFC3339)
}
