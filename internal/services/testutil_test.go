package services

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vjayanthr/freelance-tracker-hub/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Client{}, &models.Project{},
		&models.Invoice{}, &models.TimeEntry{}, &models.ActiveTimer{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seedHourlyProject creates user -> client -> hourly project at the given rate.
func seedHourlyProject(t *testing.T, db *gorm.DB, rate float64) (models.User, models.Project) {
	t.Helper()
	user := models.User{Email: t.Name() + "@test", Password: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("user: %v", err)
	}
	client := models.Client{UserID: user.ID, Name: "ClientCo"}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("client: %v", err)
	}
	project := models.Project{UserID: user.ID, ClientID: client.ID, Name: "Website", PricingType: models.PricingHourly, Rate: rate}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("project: %v", err)
	}
	return user, project
}

func seedEntry(t *testing.T, db *gorm.DB, user models.User, project models.Project, duration int64) models.TimeEntry {
	t.Helper()
	entry := models.TimeEntry{UserID: user.ID, ProjectID: project.ID, Duration: duration}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("entry: %v", err)
	}
	return entry
}
