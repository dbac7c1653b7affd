package initializers

import (
	"fmt"
	"log/slog"

	"github.com/Kariqs/perfume-api/models"
	"gorm.io/gorm"
)

func SyncDatabase(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}, &models.OrderItem{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	slog.Info("Database synced successfully.")
	return nil
}
