package service

import (
	"errors"

	"github.com/coursekit/coursekit/internal/course"
	"github.com/coursekit/coursekit/internal/course/repository"
)

var (
	ErrNotFound = errors.New("not found")
)

// ValidationError carries the ordered violations of a rejected body.
type ValidationError struct {
	Violations []course.Violation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	return e.Violations[0].Message
}

// Service defines the course operations used by the handler layer.
type Service interface {
	List() ([]course.Course, error)
	Get(id int) (course.Course, error)
	Create(body map[string]any) (course.Course, error)
	Update(id int, body map[string]any) (course.Course, error)
	Delete(id int) (course.Course, error)
}

// NewMemoryService returns a Service backed by an in-memory repository
// seeded with the given courses.
func NewMemoryService(seed ...course.Course) Service {
	return &memoryService{repo: repository.NewMemoryRepo(seed...)}
}

// NewService wraps an existing repository, which lets callers share it with
// readiness checks.
func NewService(repo *repository.MemoryRepo) Service {
	return &memoryService{repo: repo}
}

type memoryService struct {
	repo *repository.MemoryRepo
}

func (m *memoryService) List() ([]course.Course, error) {
	return m.repo.List()
}

func (m *memoryService) Get(id int) (course.Course, error) {
	c, err := m.repo.Get(id)
	if err != nil {
		return course.Course{}, mapErr(err)
	}
	return c, nil
}

func (m *memoryService) Create(body map[string]any) (course.Course, error) {
	res := course.Validate(body)
	if !res.OK() {
		return course.Course{}, &ValidationError{Violations: res.Violations}
	}
	return m.repo.Create(res.Input.Name)
}

// Update checks existence before validating, so an unknown id wins over a
// bad body.
func (m *memoryService) Update(id int, body map[string]any) (course.Course, error) {
	if _, err := m.repo.Get(id); err != nil {
		return course.Course{}, mapErr(err)
	}
	res := course.Validate(body)
	if !res.OK() {
		return course.Course{}, &ValidationError{Violations: res.Violations}
	}
	c, err := m.repo.Update(id, res.Input.Name)
	if err != nil {
		return course.Course{}, mapErr(err)
	}
	return c, nil
}

func (m *memoryService) Delete(id int) (course.Course, error) {
	c, err := m.repo.Delete(id)
	if err != nil {
		return course.Course{}, mapErr(err)
	}
	return c, nil
}

func mapErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
