package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/jon4hz/funfacts/internal/cache"
	"github.com/jon4hz/funfacts/internal/config"
	"github.com/jon4hz/funfacts/internal/database"
	"github.com/jon4hz/funfacts/internal/database/mock"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type FactManagerTestSuite struct {
	suite.Suite
	db      *mock.MockDB
	manager *FactManager
	ctx     context.Context
}

func (s *FactManagerTestSuite) SetupTest() {
	s.db = mock.NewMockDB()
	categories, err := cache.NewCategoryCache(&config.CacheConfig{Type: config.CacheTypeMemory, TTL: 60})
	s.Require().NoError(err)
	s.manager = NewFactManager(s.db, categories)
	s.ctx = context.Background()
}

func (s *FactManagerTestSuite) add(content, category string) *database.Fact {
	fact, err := s.manager.Add(s.ctx, NewFact{Content: content, Category: category})
	s.Require().NoError(err)
	return fact
}

func (s *FactManagerTestSuite) TestAdd() {
	fact := s.add("Honey never spoils", "food")
	s.NotZero(fact.ID)

	facts, err := s.manager.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(facts, 1)
	s.Equal(fact.ID, facts[0].ID)
	s.Equal("Honey never spoils", facts[0].Content)

	other := s.add("Honey never spoils", "food")
	s.NotEqual(fact.ID, other.ID, "every add gets a fresh id")
}

func (s *FactManagerTestSuite) TestAdd_Validation() {
	_, err := s.manager.Add(s.ctx, NewFact{Category: "food"})
	s.ErrorIs(err, ErrValidation)
	s.Equal("Content and Category are required!", Message(err))

	_, err = s.manager.Add(s.ctx, NewFact{Content: "Honey never spoils"})
	s.ErrorIs(err, ErrValidation)

	facts, err := s.manager.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(facts)
}

func (s *FactManagerTestSuite) TestAdd_WithUser() {
	_, err := s.manager.Add(s.ctx, NewFact{Content: "Honey never spoils", Category: "food", UserID: lo.ToPtr(uint(7))})
	s.ErrorIs(err, ErrNotFound)
	s.Equal("User not found", Message(err))

	user := &database.User{Username: "alice", Email: "a@x.com", PasswordHash: "x"}
	s.Require().NoError(s.db.CreateUser(s.ctx, user))

	fact, err := s.manager.Add(s.ctx, NewFact{Content: "Honey never spoils", Category: "food", UserID: &user.ID})
	s.Require().NoError(err)
	s.Require().NotNil(fact.UserID)
	s.Equal(user.ID, *fact.UserID)
}

func (s *FactManagerTestSuite) TestRandom_OctopusScenario() {
	s.add("Octopi have three hearts", "biology")

	fact, err := s.manager.Random(s.ctx, "biology")
	s.Require().NoError(err)
	s.Equal("Octopi have three hearts", fact.Content)
}

func (s *FactManagerTestSuite) TestRandom_FiltersCategory() {
	s.add("Octopi have three hearts", "biology")
	s.add("Bananas are berries", "biology")
	s.add("Venus spins backwards", "space")

	for range 50 {
		fact, err := s.manager.Random(s.ctx, "biology")
		s.Require().NoError(err)
		s.Equal("biology", fact.Category)
	}
}

func (s *FactManagerTestSuite) TestRandom_NotFound() {
	_, err := s.manager.Random(s.ctx, "")
	s.ErrorIs(err, ErrNotFound)
	s.Equal("No facts found", Message(err))

	s.add("Venus spins backwards", "space")
	_, err = s.manager.Random(s.ctx, "history")
	s.ErrorIs(err, ErrNotFound)
}

func (s *FactManagerTestSuite) TestRandom_InjectedSource() {
	s.add("a", "x")
	s.add("b", "y")
	s.add("c", "x")

	s.manager.intn = func(n int) int { return n - 1 }
	fact, err := s.manager.Random(s.ctx, "")
	s.Require().NoError(err)
	s.Equal("c", fact.Content)

	fact, err = s.manager.Random(s.ctx, "x")
	s.Require().NoError(err)
	s.Equal("c", fact.Content)
}

func (s *FactManagerTestSuite) TestRandom_Uniform() {
	contents := []string{"a", "b", "c", "d"}
	for i, c := range contents {
		s.add(c, []string{"x", "y"}[i%2])
	}

	const trials = 4000
	seen := make(map[string]int)
	for range trials {
		fact, err := s.manager.Random(s.ctx, "")
		s.Require().NoError(err)
		seen[fact.Content]++
	}

	s.Len(seen, len(contents))
	expected := trials / len(contents)
	for _, c := range contents {
		s.InDelta(expected, seen[c], float64(expected)*0.2, "content %s drawn %d times", c, seen[c])
	}
}

func (s *FactManagerTestSuite) TestRandom_RefetchesEveryCall() {
	s.add("Venus spins backwards", "space")

	_, err := s.manager.Random(s.ctx, "space")
	s.Require().NoError(err)
	_, err = s.manager.Random(s.ctx, "space")
	s.Require().NoError(err)
	s.Equal(2, s.db.GetFactsByCategoryCalls)

	s.db.GetFactsByCategoryError = errors.New("connection refused")
	_, err = s.manager.Random(s.ctx, "space")
	s.ErrorIs(err, ErrStore)
}

func (s *FactManagerTestSuite) TestUpdate() {
	fact := s.add("Venus spins backwards", "space")

	updated, err := s.manager.Update(s.ctx, fact.ID, FactUpdate{Category: lo.ToPtr("astronomy")})
	s.Require().NoError(err)
	s.Equal("Venus spins backwards", updated.Content)
	s.Equal("astronomy", updated.Category)

	_, err = s.manager.Update(s.ctx, fact.ID, FactUpdate{})
	s.ErrorIs(err, ErrValidation)

	_, err = s.manager.Update(s.ctx, fact.ID, FactUpdate{Content: lo.ToPtr("")})
	s.ErrorIs(err, ErrValidation)
	s.Equal("content: Must not be empty", Message(err))

	_, err = s.manager.Update(s.ctx, 999, FactUpdate{Content: lo.ToPtr("x")})
	s.ErrorIs(err, ErrNotFound)
	s.Equal("Fact not found", Message(err))
}

func (s *FactManagerTestSuite) TestDelete() {
	fact := s.add("Venus spins backwards", "space")

	s.NoError(s.manager.Delete(s.ctx, fact.ID))
	err := s.manager.Delete(s.ctx, fact.ID)
	s.ErrorIs(err, ErrNotFound)

	_, err = s.manager.Get(s.ctx, fact.ID)
	s.ErrorIs(err, ErrNotFound)
}

func (s *FactManagerTestSuite) TestCategories_CachedAndInvalidated() {
	s.add("Octopi have three hearts", "biology")

	counts, err := s.manager.Categories(s.ctx)
	s.Require().NoError(err)
	s.Equal([]database.CategoryCount{{Category: "biology", Count: 1}}, counts)

	_, err = s.manager.Categories(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, s.db.GetCategoryCountsCalls, "second call is served from cache")

	fact := s.add("Venus spins backwards", "space")
	counts, err = s.manager.Categories(s.ctx)
	s.Require().NoError(err)
	s.Len(counts, 2)
	s.Equal(2, s.db.GetCategoryCountsCalls)

	_, err = s.manager.Update(s.ctx, fact.ID, FactUpdate{Category: lo.ToPtr("biology")})
	s.Require().NoError(err)
	counts, err = s.manager.Categories(s.ctx)
	s.Require().NoError(err)
	s.Equal([]database.CategoryCount{{Category: "biology", Count: 2}}, counts)

	s.Require().NoError(s.manager.Delete(s.ctx, fact.ID))
	counts, err = s.manager.Categories(s.ctx)
	s.Require().NoError(err)
	s.Equal([]database.CategoryCount{{Category: "biology", Count: 1}}, counts)
}

func (s *FactManagerTestSuite) TestCategories_WithoutCache() {
	manager := NewFactManager(s.db, nil)

	counts, err := manager.Categories(s.ctx)
	s.Require().NoError(err)
	s.NotNil(counts)
	s.Empty(counts)

	s.db.GetCategoryCountsError = errors.New("boom")
	_, err = manager.Categories(s.ctx)
	s.ErrorIs(err, ErrStore)
}

func TestFactManagerTestSuite(t *testing.T) {
	suite.Run(t, new(FactManagerTestSuite))
}
