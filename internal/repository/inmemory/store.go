package inmemory

import (
	"context"
	"sync"

	"taskboard/internal/logger"
	"taskboard/internal/models/category"
	"taskboard/internal/models/task"
	repo "taskboard/internal/repository"
	"taskboard/internal/seed"
)

// Store держит обе коллекции в одном объекте: сервисы задач и категорий
// работают с одним и тем же набором задач
type Store struct {
	mtx        *sync.RWMutex
	tasks      []task.Task
	categories []category.Category
}

func NewStore(ds seed.Dataset) *Store {
	s := &Store{
		mtx:        &sync.RWMutex{},
		tasks:      make([]task.Task, 0, len(ds.Tasks)),
		categories: make([]category.Category, 0, len(ds.Categories)),
	}
	for _, t := range ds.Tasks {
		s.tasks = append(s.tasks, t.Clone())
	}
	s.categories = append(s.categories, ds.Categories...)
	return s
}

func NewEmptyStore() *Store {
	return NewStore(seed.Dataset{})
}

func (s *Store) HealthCheck(ctx context.Context) error {
	logger.Debug("Repository: Хранилище в памяти доступно")
	return nil
}

// Tasks

func (s *Store) ListTasks(ctx context.Context) ([]task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return task.CloneAll(s.tasks), nil
}

func (s *Store) GetTask(ctx context.Context, id int64) (task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	ind := s.taskIndex(id)
	if ind == -1 {
		return task.Task{}, repo.ErrNotFound
	}
	return s.tasks[ind].Clone(), nil
}

func (s *Store) CreateTask(ctx context.Context, taskToCreate task.Task) (task.Task, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	var maxID int64
	for _, t := range s.tasks {
		maxID = max(maxID, t.ID)
	}

	taskToCreate = taskToCreate.Clone()
	taskToCreate.ID = maxID + 1
	s.tasks = append(s.tasks, taskToCreate)

	return taskToCreate.Clone(), nil
}

func (s *Store) UpdateTask(ctx context.Context, id int64, apply func(*task.Task) error) (task.Task, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	ind := s.taskIndex(id)
	if ind == -1 {
		return task.Task{}, repo.ErrNotFound
	}

	updated := s.tasks[ind].Clone()
	if err := apply(&updated); err != nil {
		return task.Task{}, err
	}
	updated.ID = id
	s.tasks[ind] = updated

	return updated.Clone(), nil
}

func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	ind := s.taskIndex(id)
	if ind == -1 {
		return repo.ErrNotFound
	}
	s.tasks = append(s.tasks[:ind], s.tasks[ind+1:]...)
	return nil
}

func (s *Store) taskIndex(id int64) int {
	for ind, t := range s.tasks {
		if t.ID == id {
			return ind
		}
	}
	return -1
}

// Categories

func (s *Store) ListCategories(ctx context.Context) ([]category.Category, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := make([]category.Category, len(s.categories))
	copy(res, s.categories)
	return res, nil
}

func (s *Store) GetCategory(ctx context.Context, id int64) (category.Category, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	ind := s.categoryIndex(id)
	if ind == -1 {
		return category.Category{}, repo.ErrNotFound
	}
	return s.categories[ind], nil
}

func (s *Store) CreateCategory(ctx context.Context, categoryToCreate category.Category) (category.Category, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	var maxID int64
	for _, c := range s.categories {
		maxID = max(maxID, c.ID)
	}

	categoryToCreate.ID = maxID + 1
	s.categories = append(s.categories, categoryToCreate)
	return categoryToCreate, nil
}

func (s *Store) UpdateCategory(ctx context.Context, id int64, apply func(*category.Category) error) (category.Category, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	ind := s.categoryIndex(id)
	if ind == -1 {
		return category.Category{}, repo.ErrNotFound
	}

	updated := s.categories[ind]
	if err := apply(&updated); err != nil {
		return category.Category{}, err
	}
	updated.ID = id
	s.categories[ind] = updated

	return updated, nil
}

// DeleteCategory отказывает, если на категорию ссылается хоть одна задача,
// включая выполненные
func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	ind := s.categoryIndex(id)
	if ind == -1 {
		return repo.ErrNotFound
	}

	for _, t := range s.tasks {
		if t.InCategory(id) {
			return repo.ErrHasTasks
		}
	}

	s.categories = append(s.categories[:ind], s.categories[ind+1:]...)
	return nil
}

// ActiveTaskCounts считает невыполненные задачи по категориям
func (s *Store) ActiveTaskCounts(ctx context.Context) (map[int64]int, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	counts := make(map[int64]int)
	for _, t := range s.tasks {
		if t.CategoryID == nil || t.Completed {
			continue
		}
		counts[*t.CategoryID]++
	}
	return counts, nil
}

func (s *Store) categoryIndex(id int64) int {
	for ind, c := range s.categories {
		if c.ID == id {
			return ind
		}
	}
	return -1
}
