package database

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// Stats provides overall statistics about the store.
type Stats struct {
	Users        int64      `json:"users"`
	Facts        int64      `json:"facts"`
	Favorites    int64      `json:"favorites"`
	Categories   int64      `json:"categories"`
	LastFactDate *time.Time `json:"last_fact_date,omitempty"`
}

func (c *Client) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	db := c.db.WithContext(ctx)

	if err := db.Model(&User{}).Count(&stats.Users).Error; err != nil {
		log.Error("failed to count users", "error", err)
		return nil, err
	}
	if err := db.Model(&Fact{}).Count(&stats.Facts).Error; err != nil {
		log.Error("failed to count facts", "error", err)
		return nil, err
	}
	if err := db.Model(&Favorite{}).Count(&stats.Favorites).Error; err != nil {
		log.Error("failed to count favorites", "error", err)
		return nil, err
	}
	if err := db.Model(&Fact{}).Distinct("category").Count(&stats.Categories).Error; err != nil {
		log.Error("failed to count categories", "error", err)
		return nil, err
	}

	var latest Fact
	result := db.Order("created_at desc").Limit(1).Find(&latest)
	if result.Error != nil {
		log.Error("failed to get latest fact", "error", result.Error)
		return nil, result.Error
	}
	if result.RowsAffected > 0 {
		stats.LastFactDate = &latest.CreatedAt
	}

	return &stats, nil
}
