package database

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// Fact is a short text tagged with a category.
type Fact struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Content   string    `gorm:"not null" json:"content"`
	Category  string    `gorm:"not null;index" json:"category"`
	UserID    *uint     `gorm:"index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FactUpdates holds the fields of a partial fact update.
// A nil field is left untouched.
type FactUpdates struct {
	Content  *string
	Category *string
}

func (u FactUpdates) columns() map[string]any {
	cols := make(map[string]any)
	if u.Content != nil {
		cols["content"] = *u.Content
	}
	if u.Category != nil {
		cols["category"] = *u.Category
	}
	return cols
}

// CategoryCount is the number of facts in a category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

func (c *Client) CreateFact(ctx context.Context, fact *Fact) error {
	if err := c.db.WithContext(ctx).Create(fact).Error; err != nil {
		log.Error("failed to create fact", "error", err)
		return err
	}
	return nil
}

func (c *Client) GetFacts(ctx context.Context) ([]Fact, error) {
	var facts []Fact
	if err := c.db.WithContext(ctx).Order("id").Find(&facts).Error; err != nil {
		log.Error("failed to get facts", "error", err)
		return nil, err
	}
	return facts, nil
}

func (c *Client) GetFactByID(ctx context.Context, id uint) (*Fact, error) {
	var fact Fact
	if err := c.db.WithContext(ctx).First(&fact, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("failed to get fact by ID", "error", err)
		}
		return nil, err
	}
	return &fact, nil
}

// GetFactsByCategory returns all facts with exactly the given category.
// An empty category returns every fact.
func (c *Client) GetFactsByCategory(ctx context.Context, category string) ([]Fact, error) {
	tx := c.db.WithContext(ctx).Order("id")
	if category != "" {
		tx = tx.Where("category = ?", category)
	}
	var facts []Fact
	if err := tx.Find(&facts).Error; err != nil {
		log.Error("failed to get facts by category", "category", category, "error", err)
		return nil, err
	}
	return facts, nil
}

func (c *Client) UpdateFact(ctx context.Context, id uint, updates FactUpdates) (*Fact, error) {
	result := c.db.WithContext(ctx).Model(&Fact{ID: id}).Updates(updates.columns())
	if result.Error != nil {
		log.Error("failed to update fact", "error", result.Error)
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return c.GetFactByID(ctx, id)
}

func (c *Client) DeleteFact(ctx context.Context, id uint) error {
	result := c.db.WithContext(ctx).Delete(&Fact{}, id)
	if result.Error != nil {
		log.Error("failed to delete fact", "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (c *Client) GetCategoryCounts(ctx context.Context) ([]CategoryCount, error) {
	var counts []CategoryCount
	if err := c.db.WithContext(ctx).
		Model(&Fact{}).
		Select("category, count(*) as count").
		Group("category").
		Order("category").
		Scan(&counts).Error; err != nil {
		log.Error("failed to get category counts", "error", err)
		return nil, err
	}
	return counts, nil
}
