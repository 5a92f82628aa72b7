package store

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taskflow-app/taskflow/internal/models"
	"github.com/taskflow-app/taskflow/internal/storage"
)

// TaskInput carries raw form values for creating or editing a task.
// Everything except the title is optional: due date, priority and
// category are normalized to defaults rather than rejected.
type TaskInput struct {
	Title       string `validate:"required"`
	Description string
	DueDate     string
	ProjectID   string
	Priority    string
	Category    string
}

// TaskStore owns the task collection, newest first. Every mutation is
// mirrored to the record store before the call returns, and the
// registered change callback receives the post-mutation snapshot.
type TaskStore struct {
	mu       sync.Mutex
	db       *storage.DB
	log      *slog.Logger
	tasks    []models.Task
	onChange func([]models.Task)
}

// NewTaskStore loads the persisted task collection, seeding it on
// first run
func NewTaskStore(db *storage.DB, log *slog.Logger) (*TaskStore, error) {
	tasks, err := loadOrSeed(db, keyTasks, seedTasks)
	if err != nil {
		return nil, err
	}

	log.Debug("tasks loaded", "count", len(tasks))
	return &TaskStore{db: db, log: log, tasks: tasks}, nil
}

// OnChange registers the callback invoked with the current task
// sequence after every mutation of the collection
func (s *TaskStore) OnChange(fn func([]models.Task)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// List returns the tasks, most recently created first
func (s *TaskStore) List() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Get returns the task with the given id
func (s *TaskStore) Get(id string) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.findLocked(id); i >= 0 {
		return s.tasks[i], true
	}
	return models.Task{}, false
}

// Add validates and normalizes the input, prepends the new task to the
// collection and persists. A validation failure performs zero writes.
func (s *TaskStore) Add(in TaskInput) (models.Task, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validate.Struct(in); err != nil {
		return models.Task{}, &ValidationError{Field: "title"}
	}

	t := models.Task{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: strings.TrimSpace(in.Description),
		Completed:   false,
		CreatedAt:   time.Now().UTC(),
		DueDate:     models.ParseDueDate(in.DueDate),
		ProjectID:   strings.TrimSpace(in.ProjectID),
		Priority:    models.NormalizePriority(in.Priority),
		Category:    models.NormalizeCategory(in.Category),
	}

	s.mu.Lock()
	s.tasks = append([]models.Task{t}, s.tasks...)
	err := s.persistLocked()
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.log.Debug("task added", "id", t.ID, "title", t.Title)
	s.notify(snapshot)
	return t, err
}

// Update replaces the task matching id by full-record substitution in
// place, re-normalizing the input exactly as Add does. Id, creation
// time, completion state and position are preserved. Silently ignored
// when the id is not found.
func (s *TaskStore) Update(id string, in TaskInput) error {
	in.Title = strings.TrimSpace(in.Title)
	if err := validate.Struct(in); err != nil {
		return &ValidationError{Field: "title"}
	}

	s.mu.Lock()
	i := s.findLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}

	cur := s.tasks[i]
	s.tasks[i] = models.Task{
		ID:          cur.ID,
		Title:       in.Title,
		Description: strings.TrimSpace(in.Description),
		Completed:   cur.Completed,
		CreatedAt:   cur.CreatedAt,
		DueDate:     models.ParseDueDate(in.DueDate),
		ProjectID:   strings.TrimSpace(in.ProjectID),
		Priority:    models.NormalizePriority(in.Priority),
		Category:    models.NormalizeCategory(in.Category),
	}
	err := s.persistLocked()
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.log.Debug("task updated", "id", id)
	s.notify(snapshot)
	return err
}

// ToggleCompletion flips the completed flag on the matching task,
// leaving every other field untouched. Silently ignored when the id is
// not found.
func (s *TaskStore) ToggleCompletion(id string) error {
	s.mu.Lock()
	i := s.findLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}

	s.tasks[i].Completed = !s.tasks[i].Completed
	err := s.persistLocked()
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.log.Debug("task toggled", "id", id)
	s.notify(snapshot)
	return err
}

// Remove deletes the task with the given id. Silently ignored when the
// id is not found.
func (s *TaskStore) Remove(id string) error {
	s.mu.Lock()
	i := s.findLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}

	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	err := s.persistLocked()
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.log.Debug("task removed", "id", id)
	s.notify(snapshot)
	return err
}

func (s *TaskStore) findLocked(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *TaskStore) snapshotLocked() []models.Task {
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// persistLocked mirrors the collection to durable storage. On failure
// the in-memory state stands and the error is surfaced so the caller
// can warn that changes may not survive a reload.
func (s *TaskStore) persistLocked() error {
	if err := persist(s.db, keyTasks, s.tasks); err != nil {
		s.log.Error("persist tasks", "error", err)
		return err
	}
	return nil
}

func (s *TaskStore) notify(snapshot []models.Task) {
	s.mu.Lock()
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn(snapshot)
	}
}
