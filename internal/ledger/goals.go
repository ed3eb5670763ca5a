package ledger

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"orcamento/internal/core"
)

// GoalSet holds at most one income goal and at most one expense goal per
// category.
type GoalSet struct {
	mu      sync.Mutex
	catalog core.Catalog
	goals   []core.Goal
}

func NewGoalSet(catalog core.Catalog) *GoalSet {
	return &GoalSet{catalog: catalog}
}

// AddGoal validates the input and stores it. The duplicate check and the
// insert happen under the same lock.
func (s *GoalSet) AddGoal(in core.NewGoal) (core.Goal, error) {
	if err := in.Validate(s.catalog); err != nil {
		return core.Goal{}, err
	}
	g := core.Goal{
		ID:     uuid.NewString(),
		Kind:   in.Kind,
		Amount: in.Amount,
		Period: core.Monthly,
	}
	if in.Kind == core.Expense {
		g.Category = strings.TrimSpace(in.Category)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.goals {
		if existing.Kind != g.Kind {
			continue
		}
		if g.Kind == core.Income {
			return core.Goal{}, fmt.Errorf("income goal: %w", core.ErrDuplicateGoal)
		}
		if existing.Category == g.Category {
			return core.Goal{}, fmt.Errorf("expense goal for %q: %w", g.Category, core.ErrDuplicateGoal)
		}
	}
	s.goals = append(s.goals, g)
	return g, nil
}

// RemoveGoal deletes the goal with the given id and returns it.
func (s *GoalSet) RemoveGoal(id string) (core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, g := range s.goals {
		if g.ID == id {
			s.goals = append(s.goals[:i:i], s.goals[i+1:]...)
			return g, nil
		}
	}
	return core.Goal{}, fmt.Errorf("goal %q: %w", id, core.ErrNotFound)
}

// ListGoals returns a snapshot in insertion order.
func (s *GoalSet) ListGoals() []core.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Goal(nil), s.goals...)
}

func (s *GoalSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.goals)
}
