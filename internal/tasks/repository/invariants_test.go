package repository

import (
	"fmt"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/zjrosen/taskboard/internal/tasks/domain"
)

// ============================================================================
// Property-Based Tests for Repository Invariants
// ============================================================================

// TestProperty_IDsAreMonotonicInsertionOrder verifies that accepted tasks get
// a strictly increasing id sequence starting at 1, matching insertion order.
func TestProperty_IDsAreMonotonicInsertionOrder(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		repo := NewMemoryTaskRepository()

		numAdds := rapid.IntRange(1, 30).Draw(t, "numAdds")
		accepted := 0
		for i := 0; i < numAdds; i++ {
			// Draw from a small name pool so duplicates actually happen.
			name := fmt.Sprintf("task-%d", rapid.IntRange(1, 10).Draw(t, fmt.Sprintf("name-%d", i)))
			stored, err := repo.Add(domain.NewTask(name, "d"))
			if err != nil {
				continue
			}
			accepted++
			if stored.ID != int64(accepted) {
				t.Fatalf("task %d accepted with id %d, expected %d", i, stored.ID, accepted)
			}
		}

		all, err := repo.ListByStatus(domain.ListFilter{})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		for i, task := range all {
			if task.ID != int64(i+1) {
				t.Errorf("position %d holds id %d, expected %d", i, task.ID, i+1)
			}
		}
	})
}

// TestProperty_NamesAreUniqueCaseInsensitive verifies that no two stored
// tasks ever share a case-folded name, whatever mix of adds and renames runs.
func TestProperty_NamesAreUniqueCaseInsensitive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		repo := NewMemoryTaskRepository()

		numOps := rapid.IntRange(1, 40).Draw(t, "numOps")
		for i := 0; i < numOps; i++ {
			n := rapid.IntRange(1, 8).Draw(t, fmt.Sprintf("n-%d", i))
			name := fmt.Sprintf("Task-%d", n)
			if rapid.Bool().Draw(t, fmt.Sprintf("upper-%d", i)) {
				name = strings.ToUpper(name)
			}

			if rapid.Bool().Draw(t, fmt.Sprintf("rename-%d", i)) && repo.Count() > 0 {
				id := int64(rapid.IntRange(1, repo.Count()).Draw(t, fmt.Sprintf("id-%d", i)))
				task, err := repo.FindByID(id)
				if err != nil {
					t.Fatalf("find failed: %v", err)
				}
				task.Name = name
				_ = repo.Update(task)
			} else {
				_, _ = repo.Add(domain.NewTask(name, ""))
			}
		}

		all, err := repo.ListByStatus(domain.ListFilter{})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		seen := make(map[string]int64)
		for _, task := range all {
			folded := strings.ToLower(task.Name)
			if prev, ok := seen[folded]; ok {
				t.Errorf("name %q stored twice (ids %d and %d)", task.Name, prev, task.ID)
			}
			seen[folded] = task.ID

			// Every stored task stays reachable through the name index.
			found, err := repo.FindByName(task.Name)
			if err != nil {
				t.Errorf("task %d (%q) unreachable by name: %v", task.ID, task.Name, err)
			} else if found.ID != task.ID {
				t.Errorf("name %q resolves to id %d, expected %d", task.Name, found.ID, task.ID)
			}
		}
	})
}

// TestProperty_LifecycleOnlyMovesForward verifies that random transition
// attempts never drive a task backward or let it skip doing.
func TestProperty_LifecycleOnlyMovesForward(t *testing.T) {
	rank := map[domain.Status]int{
		domain.StatusTodo:  0,
		domain.StatusDoing: 1,
		domain.StatusDone:  2,
	}

	rapid.Check(t, func(t *rapid.T) {
		repo := NewMemoryTaskRepository()

		numTasks := rapid.IntRange(1, 5).Draw(t, "numTasks")
		for i := 1; i <= numTasks; i++ {
			_, err := repo.Add(domain.NewTask(fmt.Sprintf("task-%d", i), ""))
			if err != nil {
				t.Fatalf("seed add failed: %v", err)
			}
		}

		last := make(map[int64]domain.Status)
		numOps := rapid.IntRange(1, 50).Draw(t, "numOps")
		for i := 0; i < numOps; i++ {
			id := int64(rapid.IntRange(1, numTasks).Draw(t, fmt.Sprintf("id-%d", i)))
			if rapid.Bool().Draw(t, fmt.Sprintf("toDone-%d", i)) {
				_ = repo.MoveToDone(id)
			} else {
				_ = repo.MoveToDoing(id)
			}

			task, err := repo.FindByID(id)
			if err != nil {
				t.Fatalf("find failed: %v", err)
			}
			if prev, ok := last[id]; ok {
				if rank[task.Status] < rank[prev] {
					t.Errorf("task %d moved backward: %s -> %s", id, prev, task.Status)
				}
				if prev == domain.StatusTodo && task.Status == domain.StatusDone {
					t.Errorf("task %d skipped doing", id)
				}
			}
			last[id] = task.Status
		}
	})
}
