package memstore

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"taskpulse/internal/core/domain"
	"taskpulse/internal/core/ports"
)

// Store keeps every owner's tasks in memory. Each owner's set has its own
// mutex so one owner's transaction never stalls another's, and all task
// state handed out is cloned.
type Store struct {
	mu     sync.Mutex
	owners map[string]*ownerSet
	nextID atomic.Uint64
}

type ownerSet struct {
	mu    sync.Mutex
	tasks map[uint64]domain.Task
	order []uint64
}

var _ ports.TaskStore = (*Store)(nil)

func New() *Store {
	return &Store{owners: make(map[string]*ownerSet)}
}

func (s *Store) ownerSet(ownerID string, create bool) *ownerSet {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.owners[ownerID]
	if !ok && create {
		set = &ownerSet{tasks: make(map[uint64]domain.Task)}
		s.owners[ownerID] = set
	}
	return set
}

func (s *Store) Get(ctx context.Context, ownerID string, taskID uint64) (domain.Task, error) {
	set := s.ownerSet(ownerID, false)
	if set == nil {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	set.mu.Lock()
	defer set.mu.Unlock()
	return set.get(taskID)
}

func (s *Store) List(ctx context.Context, ownerID string) ([]domain.Task, error) {
	set := s.ownerSet(ownerID, false)
	if set == nil {
		return []domain.Task{}, nil
	}
	set.mu.Lock()
	defer set.mu.Unlock()
	return set.list(), nil
}

func (s *Store) Insert(ctx context.Context, task domain.Task) (domain.Task, error) {
	set := s.ownerSet(task.OwnerID, true)
	set.mu.Lock()
	defer set.mu.Unlock()
	return set.insert(task, s.nextID.Add(1)), nil
}

func (s *Store) Update(ctx context.Context, task domain.Task) (domain.Task, error) {
	set := s.ownerSet(task.OwnerID, false)
	if set == nil {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	set.mu.Lock()
	defer set.mu.Unlock()
	return set.update(task)
}

func (s *Store) Delete(ctx context.Context, ownerID string, taskID uint64) (bool, error) {
	set := s.ownerSet(ownerID, false)
	if set == nil {
		return false, nil
	}
	set.mu.Lock()
	defer set.mu.Unlock()
	return set.delete(taskID), nil
}

func (s *Store) Owners(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owners := make([]string, 0, len(s.owners))
	for ownerID, set := range s.owners {
		set.mu.Lock()
		empty := len(set.tasks) == 0
		set.mu.Unlock()
		if !empty {
			owners = append(owners, ownerID)
		}
	}
	sort.Strings(owners)
	return owners, nil
}

// InTx holds the owner's lock for the duration of fn, so fn's reads and
// writes form one critical section. fn must only do in-memory work.
func (s *Store) InTx(ctx context.Context, ownerID string, fn func(ports.TaskStore) error) error {
	set := s.ownerSet(ownerID, true)
	set.mu.Lock()
	defer set.mu.Unlock()
	return fn(&txView{store: s, ownerID: ownerID, set: set})
}

// txView is the store as seen from inside InTx: same operations, no
// locking, pinned to one owner.
type txView struct {
	store   *Store
	ownerID string
	set     *ownerSet
}

var _ ports.TaskStore = (*txView)(nil)

func (v *txView) Get(ctx context.Context, ownerID string, taskID uint64) (domain.Task, error) {
	if ownerID != v.ownerID {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return v.set.get(taskID)
}

func (v *txView) List(ctx context.Context, ownerID string) ([]domain.Task, error) {
	if ownerID != v.ownerID {
		return []domain.Task{}, nil
	}
	return v.set.list(), nil
}

func (v *txView) Insert(ctx context.Context, task domain.Task) (domain.Task, error) {
	return v.set.insert(task, v.store.nextID.Add(1)), nil
}

func (v *txView) Update(ctx context.Context, task domain.Task) (domain.Task, error) {
	return v.set.update(task)
}

func (v *txView) Delete(ctx context.Context, ownerID string, taskID uint64) (bool, error) {
	if ownerID != v.ownerID {
		return false, nil
	}
	return v.set.delete(taskID), nil
}

func (v *txView) Owners(ctx context.Context) ([]string, error) {
	return []string{v.ownerID}, nil
}

func (v *txView) InTx(ctx context.Context, ownerID string, fn func(ports.TaskStore) error) error {
	return fn(v)
}

func (o *ownerSet) get(taskID uint64) (domain.Task, error) {
	task, ok := o.tasks[taskID]
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return task.Clone(), nil
}

func (o *ownerSet) list() []domain.Task {
	tasks := make([]domain.Task, 0, len(o.order))
	for _, id := range o.order {
		if task, ok := o.tasks[id]; ok {
			tasks = append(tasks, task.Clone())
		}
	}
	return tasks
}

func (o *ownerSet) insert(task domain.Task, id uint64) domain.Task {
	task.ID = id
	o.tasks[id] = task.Clone()
	o.order = append(o.order, id)
	return task
}

func (o *ownerSet) update(task domain.Task) (domain.Task, error) {
	if _, ok := o.tasks[task.ID]; !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	o.tasks[task.ID] = task.Clone()
	return task, nil
}

func (o *ownerSet) delete(taskID uint64) bool {
	if _, ok := o.tasks[taskID]; !ok {
		return false
	}
	delete(o.tasks, taskID)
	for i, id := range o.order {
		if id == taskID {
			o.order = append(o.order[:i], o.order[i+1:]...)
			break
		}
	}
	return true
}
