package mock

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jon4hz/funfacts/internal/database"
	"gorm.io/gorm"
)

var _ database.DB = (*MockDB)(nil)

// MockDB is a mock implementation of database.DB for testing.
type MockDB struct {
	mu sync.RWMutex

	users      map[uint]*database.User
	nextUserID uint

	facts      map[uint]*database.Fact
	nextFactID uint

	favorites      map[uint]*database.Favorite
	nextFavoriteID uint

	// Error simulation
	CreateUserError              error
	GetUsersError                error
	GetUserByIDError             error
	GetUserByEmailError          error
	UpdateUserError              error
	DeleteUserError              error
	CreateFactError              error
	GetFactsError                error
	GetFactByIDError             error
	GetFactsByCategoryError      error
	UpdateFactError              error
	DeleteFactError              error
	GetCategoryCountsError       error
	AddFavoriteError             error
	GetFavoritesByUserError      error
	DeleteFavoriteError          error
	DeleteOrphanedFavoritesError error
	GetStatsError                error

	// Call counters
	GetFactsByCategoryCalls int
	GetCategoryCountsCalls  int
}

// NewMockDB creates a new MockDB instance.
func NewMockDB() *MockDB {
	m := &MockDB{}
	m.Reset()
	return m
}

// Reset clears all data and errors from the mock database.
func (m *MockDB) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.users = make(map[uint]*database.User)
	m.nextUserID = 1
	m.facts = make(map[uint]*database.Fact)
	m.nextFactID = 1
	m.favorites = make(map[uint]*database.Favorite)
	m.nextFavoriteID = 1

	m.CreateUserError = nil
	m.GetUsersError = nil
	m.GetUserByIDError = nil
	m.GetUserByEmailError = nil
	m.UpdateUserError = nil
	m.DeleteUserError = nil
	m.CreateFactError = nil
	m.GetFactsError = nil
	m.GetFactByIDError = nil
	m.GetFactsByCategoryError = nil
	m.UpdateFactError = nil
	m.DeleteFactError = nil
	m.GetCategoryCountsError = nil
	m.AddFavoriteError = nil
	m.GetFavoritesByUserError = nil
	m.DeleteFavoriteError = nil
	m.DeleteOrphanedFavoritesError = nil
	m.GetStatsError = nil

	m.GetFactsByCategoryCalls = 0
	m.GetCategoryCountsCalls = 0
}

func (m *MockDB) Close() error { return nil }

// User operations

func (m *MockDB) CreateUser(ctx context.Context, user *database.User) error {
	if m.CreateUserError != nil {
		return m.CreateUserError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	user.ID = m.nextUserID
	m.nextUserID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *MockDB) GetUsers(ctx context.Context) ([]database.User, error) {
	if m.GetUsersError != nil {
		return nil, m.GetUsersError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]database.User, 0, len(m.users))
	for _, id := range sortedKeys(m.users) {
		users = append(users, *m.users[id])
	}
	return users, nil
}

func (m *MockDB) GetUserByID(ctx context.Context, id uint) (*database.User, error) {
	if m.GetUserByIDError != nil {
		return nil, m.GetUserByIDError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	u := *user
	return &u, nil
}

func (m *MockDB) GetUserByEmail(ctx context.Context, email string) (*database.User, error) {
	if m.GetUserByEmailError != nil {
		return nil, m.GetUserByEmailError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, id := range sortedKeys(m.users) {
		if m.users[id].Email == email {
			u := *m.users[id]
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockDB) UpdateUser(ctx context.Context, id uint, updates database.UserUpdates) (*database.User, error) {
	if m.UpdateUserError != nil {
		return nil, m.UpdateUserError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if updates.Username != nil {
		user.Username = *updates.Username
	}
	if updates.Email != nil {
		user.Email = *updates.Email
	}
	if updates.PasswordHash != nil {
		user.PasswordHash = *updates.PasswordHash
	}
	user.UpdatedAt = time.Now()

	u := *user
	return &u, nil
}

func (m *MockDB) DeleteUser(ctx context.Context, id uint) error {
	if m.DeleteUserError != nil {
		return m.DeleteUserError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.users, id)
	return nil
}

// Fact operations

func (m *MockDB) CreateFact(ctx context.Context, fact *database.Fact) error {
	if m.CreateFactError != nil {
		return m.CreateFactError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	fact.ID = m.nextFactID
	m.nextFactID++
	fact.CreatedAt = time.Now()
	fact.UpdatedAt = fact.CreatedAt

	stored := *fact
	m.facts[fact.ID] = &stored
	return nil
}

func (m *MockDB) GetFacts(ctx context.Context) ([]database.Fact, error) {
	if m.GetFactsError != nil {
		return nil, m.GetFactsError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	facts := make([]database.Fact, 0, len(m.facts))
	for _, id := range sortedKeys(m.facts) {
		facts = append(facts, *m.facts[id])
	}
	return facts, nil
}

func (m *MockDB) GetFactByID(ctx context.Context, id uint) (*database.Fact, error) {
	if m.GetFactByIDError != nil {
		return nil, m.GetFactByIDError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	fact, ok := m.facts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	f := *fact
	return &f, nil
}

func (m *MockDB) GetFactsByCategory(ctx context.Context, category string) ([]database.Fact, error) {
	m.mu.Lock()
	m.GetFactsByCategoryCalls++
	m.mu.Unlock()

	if m.GetFactsByCategoryError != nil {
		return nil, m.GetFactsByCategoryError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	facts := make([]database.Fact, 0)
	for _, id := range sortedKeys(m.facts) {
		if category == "" || m.facts[id].Category == category {
			facts = append(facts, *m.facts[id])
		}
	}
	return facts, nil
}

func (m *MockDB) UpdateFact(ctx context.Context, id uint, updates database.FactUpdates) (*database.Fact, error) {
	if m.UpdateFactError != nil {
		return nil, m.UpdateFactError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	fact, ok := m.facts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if updates.Content != nil {
		fact.Content = *updates.Content
	}
	if updates.Category != nil {
		fact.Category = *updates.Category
	}
	fact.UpdatedAt = time.Now()

	f := *fact
	return &f, nil
}

func (m *MockDB) DeleteFact(ctx context.Context, id uint) error {
	if m.DeleteFactError != nil {
		return m.DeleteFactError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.facts[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.facts, id)
	return nil
}

func (m *MockDB) GetCategoryCounts(ctx context.Context) ([]database.CategoryCount, error) {
	m.mu.Lock()
	m.GetCategoryCountsCalls++
	m.mu.Unlock()

	if m.GetCategoryCountsError != nil {
		return nil, m.GetCategoryCountsError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[string]int64)
	for _, fact := range m.facts {
		counts[fact.Category]++
	}
	result := make([]database.CategoryCount, 0, len(counts))
	for category, count := range counts {
		result = append(result, database.CategoryCount{Category: category, Count: count})
	}
	slices.SortFunc(result, func(a, b database.CategoryCount) int { return strings.Compare(a.Category, b.Category) })
	return result, nil
}

// Favorite operations

func (m *MockDB) AddFavorite(ctx context.Context, userID, factID uint) (*database.Favorite, bool, error) {
	if m.AddFavoriteError != nil {
		return nil, false, m.AddFavoriteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, favorite := range m.favorites {
		if favorite.UserID == userID && favorite.FactID == factID {
			f := *favorite
			return &f, false, nil
		}
	}

	favorite := &database.Favorite{
		ID:        m.nextFavoriteID,
		UserID:    userID,
		FactID:    factID,
		CreatedAt: time.Now(),
	}
	m.nextFavoriteID++
	m.favorites[favorite.ID] = favorite

	f := *favorite
	return &f, true, nil
}

func (m *MockDB) GetFavoritesByUser(ctx context.Context, userID uint) ([]database.Favorite, error) {
	if m.GetFavoritesByUserError != nil {
		return nil, m.GetFavoritesByUserError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	favorites := make([]database.Favorite, 0)
	for _, id := range sortedKeys(m.favorites) {
		favorite := *m.favorites[id]
		if favorite.UserID != userID {
			continue
		}
		if fact, ok := m.facts[favorite.FactID]; ok {
			favorite.Fact = *fact
		}
		favorites = append(favorites, favorite)
	}
	return favorites, nil
}

func (m *MockDB) DeleteFavorite(ctx context.Context, id uint) error {
	if m.DeleteFavoriteError != nil {
		return m.DeleteFavoriteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.favorites[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.favorites, id)
	return nil
}

func (m *MockDB) DeleteOrphanedFavorites(ctx context.Context) (int64, error) {
	if m.DeleteOrphanedFavoritesError != nil {
		return 0, m.DeleteOrphanedFavoritesError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var deleted int64
	for id, favorite := range m.favorites {
		if _, ok := m.facts[favorite.FactID]; !ok {
			delete(m.favorites, id)
			deleted++
		}
	}
	return deleted, nil
}

// Stats

func (m *MockDB) GetStats(ctx context.Context) (*database.Stats, error) {
	if m.GetStatsError != nil {
		return nil, m.GetStatsError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := &database.Stats{
		Users:     int64(len(m.users)),
		Facts:     int64(len(m.facts)),
		Favorites: int64(len(m.favorites)),
	}
	categories := make(map[string]struct{})
	for _, fact := range m.facts {
		categories[fact.Category] = struct{}{}
		if stats.LastFactDate == nil || fact.CreatedAt.After(*stats.LastFactDate) {
			created := fact.CreatedAt
			stats.LastFactDate = &created
		}
	}
	stats.Categories = int64(len(categories))
	return stats, nil
}

// Helper methods for testing

// FavoriteCount returns the number of stored favorites for a (user, fact) pair.
func (m *MockDB) FavoriteCount(userID, factID uint) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, favorite := range m.favorites {
		if favorite.UserID == userID && favorite.FactID == factID {
			count++
		}
	}
	return count
}

func sortedKeys[T any](items map[uint]T) []uint {
	keys := make([]uint, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
