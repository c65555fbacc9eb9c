package engine

import (
	"context"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/funfacts/internal/cache"
	"github.com/jon4hz/funfacts/internal/database"
	"github.com/samber/lo"
)

// NewFact is the input of a fact submission.
type NewFact struct {
	Content  string `json:"content" validate:"required"`
	Category string `json:"category" validate:"required"`
	// UserID optionally references the submitting user.
	UserID *uint `json:"user_id" validate:"omitnil,gt=0"`
}

// FactUpdate is a partial fact update. A nil field is left untouched.
type FactUpdate struct {
	Content  *string `json:"content" validate:"omitnil,min=1"`
	Category *string `json:"category" validate:"omitnil,min=1"`
}

func (u FactUpdate) empty() bool {
	return u.Content == nil && u.Category == nil
}

type factStore interface {
	database.FactDB
	GetUserByID(ctx context.Context, id uint) (*database.User, error)
}

// FactManager handles fact records and random selection.
type FactManager struct {
	db         factStore
	categories *cache.CategoryCache
	// intn returns a number in [0, n)
	intn func(n int) int
}

// NewFactManager creates a FactManager. categories may be nil.
func NewFactManager(db factStore, categories *cache.CategoryCache) *FactManager {
	return &FactManager{
		db:         db,
		categories: categories,
		intn:       rand.IntN,
	}
}

// Add stores a new fact. A referenced user must exist.
func (m *FactManager) Add(ctx context.Context, input NewFact) (*database.Fact, error) {
	if err := validateInput(input, "Content and Category are required!"); err != nil {
		return nil, err
	}

	if input.UserID != nil {
		if _, err := m.db.GetUserByID(ctx, *input.UserID); err != nil {
			return nil, lookupError(err, "User not found", "Failed to add fact")
		}
	}

	fact := &database.Fact{
		Content:  input.Content,
		Category: input.Category,
		UserID:   input.UserID,
	}
	if err := m.db.CreateFact(ctx, fact); err != nil {
		return nil, storeError("Failed to add fact", err)
	}
	m.categories.Invalidate(ctx)

	log.Debug("Added fact", "id", fact.ID, "category", fact.Category)
	return fact, nil
}

func (m *FactManager) List(ctx context.Context) ([]database.Fact, error) {
	facts, err := m.db.GetFacts(ctx)
	if err != nil {
		return nil, storeError("Failed to list facts", err)
	}
	return facts, nil
}

func (m *FactManager) Get(ctx context.Context, id uint) (*database.Fact, error) {
	fact, err := m.db.GetFactByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Fact not found", "Failed to get fact")
	}
	return fact, nil
}

func (m *FactManager) Update(ctx context.Context, id uint, input FactUpdate) (*database.Fact, error) {
	if input.empty() {
		return nil, validationError("Nothing to update", nil)
	}
	if err := validateInput(input, "Content and Category must not be empty"); err != nil {
		return nil, err
	}

	fact, err := m.db.UpdateFact(ctx, id, database.FactUpdates{
		Content:  input.Content,
		Category: input.Category,
	})
	if err != nil {
		return nil, lookupError(err, "Fact not found", "Failed to update fact")
	}
	m.categories.Invalidate(ctx)
	return fact, nil
}

// Delete removes a fact. Favorites pointing at it are left for PruneOrphans.
func (m *FactManager) Delete(ctx context.Context, id uint) error {
	if err := m.db.DeleteFact(ctx, id); err != nil {
		return lookupError(err, "Fact not found", "Failed to delete fact")
	}
	m.categories.Invalidate(ctx)
	log.Info("Deleted fact", "id", id)
	return nil
}

// Random returns a uniformly chosen fact of the category, or of all facts
// when category is empty. The candidates are read from the store on every call.
func (m *FactManager) Random(ctx context.Context, category string) (*database.Fact, error) {
	facts, err := m.db.GetFactsByCategory(ctx, category)
	if err != nil {
		return nil, storeError("Failed to get facts", err)
	}
	if len(facts) == 0 {
		return nil, notFoundError("No facts found")
	}

	fact := lo.SampleBy(facts, m.intn)
	return &fact, nil
}

// Categories returns the number of facts per category.
func (m *FactManager) Categories(ctx context.Context) ([]database.CategoryCount, error) {
	if counts, ok := m.categories.Get(ctx); ok {
		return counts, nil
	}

	counts, err := m.db.GetCategoryCounts(ctx)
	if err != nil {
		return nil, storeError("Failed to get categories", err)
	}
	if counts == nil {
		counts = []database.CategoryCount{}
	}
	m.categories.Set(ctx, counts)
	return counts, nil
}
