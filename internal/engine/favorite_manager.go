package engine

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/funfacts/internal/database"
	"github.com/samber/lo"
)

// FavoriteOutcome tells whether Add created a favorite.
// Both outcomes are successes.
type FavoriteOutcome int

const (
	FavoriteAdded FavoriteOutcome = iota + 1
	FavoriteAlreadyExists
)

func (o FavoriteOutcome) String() string {
	switch o {
	case FavoriteAdded:
		return "added"
	case FavoriteAlreadyExists:
		return "already_exists"
	default:
		return "unknown"
	}
}

// FavoriteFact is a favorite joined with its fact.
type FavoriteFact struct {
	ID       uint   `json:"id"`
	FactID   uint   `json:"fact_id"`
	FactText string `json:"fact_text"`
	Category string `json:"category"`
}

type favoriteStore interface {
	database.FavoriteDB
	GetUserByID(ctx context.Context, id uint) (*database.User, error)
	GetFactByID(ctx context.Context, id uint) (*database.Fact, error)
}

// FavoriteManager handles the favorites of users.
type FavoriteManager struct {
	db favoriteStore
}

func NewFavoriteManager(db favoriteStore) *FavoriteManager {
	return &FavoriteManager{db: db}
}

// Add bookmarks a fact for a user. Adding an existing pair is not an error,
// it returns the existing favorite with FavoriteAlreadyExists.
func (m *FavoriteManager) Add(ctx context.Context, userID, factID uint) (*database.Favorite, FavoriteOutcome, error) {
	if userID == 0 || factID == 0 {
		return nil, 0, validationError("User ID and Fact ID are required!", nil)
	}

	if _, err := m.db.GetUserByID(ctx, userID); err != nil {
		return nil, 0, lookupError(err, "User not found", "Failed to add favorite")
	}
	if _, err := m.db.GetFactByID(ctx, factID); err != nil {
		return nil, 0, lookupError(err, "Fact not found", "Failed to add favorite")
	}

	favorite, created, err := m.db.AddFavorite(ctx, userID, factID)
	if err != nil {
		return nil, 0, storeError("Failed to add favorite", err)
	}
	if !created {
		return favorite, FavoriteAlreadyExists, nil
	}

	log.Debug("Added favorite", "user_id", userID, "fact_id", factID)
	return favorite, FavoriteAdded, nil
}

// List returns the favorites of a user. Favorites of deleted facts are skipped.
func (m *FavoriteManager) List(ctx context.Context, userID uint) ([]FavoriteFact, error) {
	if userID == 0 {
		return nil, validationError("User ID is required!", nil)
	}

	favorites, err := m.db.GetFavoritesByUser(ctx, userID)
	if err != nil {
		return nil, storeError("Failed to list favorites", err)
	}

	return lo.FilterMap(favorites, func(f database.Favorite, _ int) (FavoriteFact, bool) {
		if f.Fact.ID == 0 {
			return FavoriteFact{}, false
		}
		return FavoriteFact{
			ID:       f.ID,
			FactID:   f.FactID,
			FactText: f.Fact.Content,
			Category: f.Fact.Category,
		}, true
	}), nil
}

func (m *FavoriteManager) Remove(ctx context.Context, id uint) error {
	if err := m.db.DeleteFavorite(ctx, id); err != nil {
		return lookupError(err, "Favorite not found", "Failed to remove favorite")
	}
	return nil
}

// PruneOrphans deletes favorites whose fact no longer exists.
func (m *FavoriteManager) PruneOrphans(ctx context.Context) (int64, error) {
	n, err := m.db.DeleteOrphanedFavorites(ctx)
	if err != nil {
		return 0, storeError("Failed to prune favorites", err)
	}
	if n > 0 {
		log.Info("Pruned orphaned favorites", "count", n)
	}
	return n, nil
}
