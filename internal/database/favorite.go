package database

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Favorite links a user to a fact. There is at most one favorite per (user, fact) pair.
type Favorite struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorite_user_fact" json:"user_id"`
	FactID    uint      `gorm:"not null;uniqueIndex:idx_favorite_user_fact;index" json:"fact_id"`
	Fact      Fact      `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// AddFavorite inserts the favorite unless the pair already exists.
// The returned bool reports whether a new row was created.
func (c *Client) AddFavorite(ctx context.Context, userID, factID uint) (*Favorite, bool, error) {
	favorite := Favorite{
		UserID: userID,
		FactID: factID,
	}
	result := c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "fact_id"}},
		DoNothing: true,
	}).Omit("Fact").Create(&favorite)
	if result.Error != nil {
		log.Error("failed to add favorite", "error", result.Error)
		return nil, false, result.Error
	}
	if result.RowsAffected > 0 {
		return &favorite, true, nil
	}

	var existing Favorite
	if err := c.db.WithContext(ctx).
		Where("user_id = ? AND fact_id = ?", userID, factID).
		First(&existing).Error; err != nil {
		log.Error("failed to get existing favorite", "error", err)
		return nil, false, err
	}
	return &existing, false, nil
}

// GetFavoritesByUser returns the favorites of a user with their fact preloaded.
// The fact of a favorite is zero valued if it no longer exists.
func (c *Client) GetFavoritesByUser(ctx context.Context, userID uint) ([]Favorite, error) {
	var favorites []Favorite
	if err := c.db.WithContext(ctx).
		Preload("Fact").
		Where("user_id = ?", userID).
		Order("id").
		Find(&favorites).Error; err != nil {
		log.Error("failed to get favorites", "user_id", userID, "error", err)
		return nil, err
	}
	return favorites, nil
}

func (c *Client) DeleteFavorite(ctx context.Context, id uint) error {
	result := c.db.WithContext(ctx).Delete(&Favorite{}, id)
	if result.Error != nil {
		log.Error("failed to delete favorite", "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteOrphanedFavorites removes favorites whose fact was deleted.
func (c *Client) DeleteOrphanedFavorites(ctx context.Context) (int64, error) {
	result := c.db.WithContext(ctx).
		Where("fact_id NOT IN (?)", c.db.Model(&Fact{}).Select("id")).
		Delete(&Favorite{})
	if result.Error != nil {
		log.Error("failed to delete orphaned favorites", "error", result.Error)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
