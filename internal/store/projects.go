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

// ProjectInput carries raw form values for creating or editing a project
type ProjectInput struct {
	Name        string `validate:"required"`
	Description string
	Color       string
}

// NewProject builds a project from raw form input, assigning a fresh id
func NewProject(in ProjectInput) (models.Project, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := validate.Struct(in); err != nil {
		return models.Project{}, &ValidationError{Field: "name"}
	}

	return models.Project{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Color:       models.NormalizeColor(in.Color),
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// ProjectStore owns the project collection, in insertion order (oldest
// first). Every mutation is mirrored to the record store before the
// call returns.
type ProjectStore struct {
	mu       sync.Mutex
	db       *storage.DB
	log      *slog.Logger
	projects []models.Project
	index    map[string]int // id -> position in projects
}

// NewProjectStore loads the persisted project collection, seeding it on
// first run
func NewProjectStore(db *storage.DB, log *slog.Logger) (*ProjectStore, error) {
	projects, err := loadOrSeed(db, keyProjects, seedProjects)
	if err != nil {
		return nil, err
	}

	s := &ProjectStore{db: db, log: log, projects: projects}
	s.reindex()
	log.Debug("projects loaded", "count", len(projects))
	return s, nil
}

func (s *ProjectStore) reindex() {
	s.index = make(map[string]int, len(s.projects))
	for i, p := range s.projects {
		s.index[p.ID] = i
	}
}

// List returns the projects in insertion order
func (s *ProjectStore) List() []models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// Get returns the project with the given id
func (s *ProjectStore) Get(id string) (models.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return models.Project{}, false
	}
	return s.projects[i], true
}

// Add appends a project to the collection. The caller supplies the id;
// a collision is rejected with ErrDuplicateID before anything mutates.
func (s *ProjectStore) Add(p models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[p.ID]; exists {
		return ErrDuplicateID
	}

	s.projects = append(s.projects, p)
	s.index[p.ID] = len(s.projects) - 1
	s.log.Debug("project added", "id", p.ID, "name", p.Name)
	return s.persistLocked()
}

// Update replaces the project matching p.ID in place. Silently ignored
// when the id is not found.
func (s *ProjectStore) Update(p models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[p.ID]
	if !ok {
		return nil
	}

	s.projects[i] = p
	s.log.Debug("project updated", "id", p.ID)
	return s.persistLocked()
}

// Remove deletes the project with the given id if present. The task
// collection is never touched: tasks referencing the project keep
// their now-dangling reference.
func (s *ProjectStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return nil
	}

	s.projects = append(s.projects[:i], s.projects[i+1:]...)
	s.reindex()
	s.log.Debug("project removed", "id", id)
	return s.persistLocked()
}

func (s *ProjectStore) persistLocked() error {
	if err := persist(s.db, keyProjects, s.projects); err != nil {
		s.log.Error("persist projects", "error", err)
		return err
	}
	return nil
}
