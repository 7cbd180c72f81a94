package repository

import (
	"errors"
	"sync"

	"github.com/coursekit/coursekit/internal/course"
)

var (
	ErrNotFound = errors.New("course not found")
)

// MemoryRepo keeps courses in process memory, in insertion order.
// IDs come from a counter that only moves forward, so an id freed by Delete
// is never handed out again.
type MemoryRepo struct {
	mu     sync.RWMutex
	order  []int
	store  map[int]*course.Course
	nextID int
}

func NewMemoryRepo(seed ...course.Course) *MemoryRepo {
	m := &MemoryRepo{store: make(map[int]*course.Course), nextID: 1}
	for _, c := range seed {
		if _, dup := m.store[c.ID]; dup {
			continue
		}
		cp := c
		m.store[c.ID] = &cp
		m.order = append(m.order, c.ID)
		if c.ID >= m.nextID {
			m.nextID = c.ID + 1
		}
	}
	return m
}

// DefaultCourses is the seed data the service starts with.
func DefaultCourses() []course.Course {
	return []course.Course{
		{ID: 1, Name: "course1"},
		{ID: 2, Name: "course2"},
	}
}

func (m *MemoryRepo) Create(name string) (course.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := &course.Course{ID: m.nextID, Name: name}
	m.nextID++
	m.store[c.ID] = c
	m.order = append(m.order, c.ID)
	return *c, nil
}

func (m *MemoryRepo) Get(id int) (course.Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.store[id]; ok {
		return *c, nil
	}
	return course.Course{}, ErrNotFound
}

func (m *MemoryRepo) List() ([]course.Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]course.Course, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.store[id])
	}
	return out, nil
}

func (m *MemoryRepo) Update(id int, name string) (course.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.store[id]
	if !ok {
		return course.Course{}, ErrNotFound
	}
	c.Name = name
	return *c, nil
}

// Delete removes the course and returns the value it held.
func (m *MemoryRepo) Delete(id int) (course.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.store[id]
	if !ok {
		return course.Course{}, ErrNotFound
	}
	delete(m.store, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return *c, nil
}

// Len returns the number of stored courses.
func (m *MemoryRepo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order)
}
