package state

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"lectern/internal/model"
	"lectern/internal/notesapi"
)

// Validation failures are caught before any network call.
var (
	ErrEmptyName  = errors.New("name must not be empty")
	ErrEmptyTitle = errors.New("title must not be empty")
)

// Snapshot is a self-contained copy of the store for the UI to render.
type Snapshot struct {
	Courses  []model.Course
	Subjects []model.Subject
	Contents []model.Content

	CurrentCourse  *model.Course
	CurrentSubject *model.Subject

	DarkMode bool

	// Loading reports whether at least one operation is in flight. With
	// overlapping operations it carries no per-operation meaning.
	Loading bool

	// LastError is the user-facing message of the most recent failure.
	// All operations share this one slot; a later failure overwrites it.
	LastError string
}

// Store coordinates the collections, the selection pointers, and the
// operations that keep them in sync with the backend.
type Store struct {
	api notesapi.Service
	now func() time.Time

	mu       sync.RWMutex
	courses  []model.Course
	subjects []model.Subject
	contents []model.Content

	currentCourse  *model.Course
	currentSubject *model.Subject
	darkMode       bool

	inFlight int
	lastErr  string
}

// New builds a Store backed by the given gateway.
func New(api notesapi.Service) *Store {
	return &Store{api: api, now: time.Now}
}

// Snapshot returns an independent copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Courses:        cloneCourses(s.courses),
		Subjects:       cloneSubjects(s.subjects),
		Contents:       cloneContents(s.contents),
		CurrentCourse:  cloneCoursePtr(s.currentCourse),
		CurrentSubject: cloneSubjectPtr(s.currentSubject),
		DarkMode:       s.darkMode,
		Loading:        s.inFlight > 0,
		LastError:      s.lastErr,
	}
}

// FetchCourses replaces the course collection with the server's list.
func (s *Store) FetchCourses(ctx context.Context) error {
	s.begin()
	defer s.end()

	recs, err := s.api.ListCourses(ctx, "")
	if err != nil {
		return s.fail("Failed to fetch courses", "fetch courses", err)
	}
	courses := model.CoursesFromRecords(recs, s.now())

	s.mu.Lock()
	s.courses = courses
	s.refreshCurrentCourseLocked()
	s.mu.Unlock()
	return nil
}

// FetchSubjects replaces the subject collection with the server's list,
// scoped to a course when courseID is non-empty.
func (s *Store) FetchSubjects(ctx context.Context, courseID string) error {
	s.begin()
	defer s.end()

	recs, err := s.api.ListSubjects(ctx, "", courseID)
	if err != nil {
		return s.fail("Failed to fetch subjects", "fetch subjects", err)
	}
	subjects := model.SubjectsFromRecords(recs, s.now())

	s.mu.Lock()
	s.subjects = subjects
	s.refreshCurrentSubjectLocked()
	s.mu.Unlock()
	return nil
}

// FetchContents replaces the content collection with the server's list,
// scoped to a subject when subjectID is non-empty.
func (s *Store) FetchContents(ctx context.Context, subjectID string) error {
	s.begin()
	defer s.end()

	recs, err := s.api.ListContents(ctx, "", subjectID)
	if err != nil {
		return s.fail("Failed to fetch contents", "fetch contents", err)
	}
	contents := model.ContentsFromRecords(recs, s.now())

	s.mu.Lock()
	s.contents = contents
	s.mu.Unlock()
	return nil
}

// CreateCourse submits a new course and re-fetches the course list.
func (s *Store) CreateCourse(ctx context.Context, name string, image *notesapi.Attachment) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	s.begin()
	defer s.end()

	if _, err := s.api.CreateCourse(ctx, name, image); err != nil {
		return s.fail("Failed to create course", "create course", err)
	}
	return s.FetchCourses(ctx)
}

// CreateSubject submits a new subject and re-fetches the subjects of its
// course, so the caller observes the write it just made.
func (s *Store) CreateSubject(ctx context.Context, name, courseID string, image *notesapi.Attachment) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	s.begin()
	defer s.end()

	if _, err := s.api.CreateSubject(ctx, name, courseID, image); err != nil {
		return s.fail("Failed to create subject", "create subject", err)
	}
	return s.FetchSubjects(ctx, courseID)
}

// CreateContent submits a new content item and re-fetches the contents
// of its subject.
func (s *Store) CreateContent(ctx context.Context, form notesapi.ContentForm) error {
	form.Title = strings.TrimSpace(form.Title)
	if form.Title == "" {
		return ErrEmptyTitle
	}

	s.begin()
	defer s.end()

	if _, err := s.api.CreateContent(ctx, form); err != nil {
		return s.fail("Failed to create content", "create content", err)
	}
	return s.FetchContents(ctx, form.SubjectID)
}

// UpdateContent replaces a content item and re-fetches the contents of
// its subject.
func (s *Store) UpdateContent(ctx context.Context, id string, form notesapi.ContentForm) error {
	form.Title = strings.TrimSpace(form.Title)
	if form.Title == "" {
		return ErrEmptyTitle
	}

	s.begin()
	defer s.end()

	if _, err := s.api.UpdateContent(ctx, id, form); err != nil {
		return s.fail("Failed to update content", "update content", err)
	}
	return s.FetchContents(ctx, form.SubjectID)
}

// DeleteCourse removes a course remotely, drops it from the local
// collection, and clears the selection if it pointed at the course.
// Subjects previously fetched for the course are left alone; only a
// later subject fetch reflects whatever the server cascaded.
func (s *Store) DeleteCourse(ctx context.Context, id string) error {
	s.begin()
	defer s.end()

	if _, err := s.api.DeleteCourse(ctx, id); err != nil {
		return s.fail("Failed to delete course", "delete course", err)
	}

	s.mu.Lock()
	s.courses = removeCourse(s.courses, id)
	if s.currentCourse != nil && s.currentCourse.ID == id {
		s.currentCourse = nil
	}
	s.mu.Unlock()
	return nil
}

// DeleteSubject removes a subject remotely and locally, clearing the
// selection if it pointed at the subject.
func (s *Store) DeleteSubject(ctx context.Context, id string) error {
	s.begin()
	defer s.end()

	if _, err := s.api.DeleteSubject(ctx, id); err != nil {
		return s.fail("Failed to delete subject", "delete subject", err)
	}

	s.mu.Lock()
	s.subjects = removeSubject(s.subjects, id)
	if s.currentSubject != nil && s.currentSubject.ID == id {
		s.currentSubject = nil
	}
	s.mu.Unlock()
	return nil
}

// DeleteContent removes a content item remotely and locally.
func (s *Store) DeleteContent(ctx context.Context, id string) error {
	s.begin()
	defer s.end()

	if _, err := s.api.DeleteContent(ctx, id); err != nil {
		return s.fail("Failed to delete content", "delete content", err)
	}

	s.mu.Lock()
	s.contents = removeContent(s.contents, id)
	s.mu.Unlock()
	return nil
}

// SetCurrentCourse records the navigated-to course. A nil value clears
// the selection. The store keeps its own copy.
func (s *Store) SetCurrentCourse(course *model.Course) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentCourse = cloneCoursePtr(course)
}

// SetCurrentSubject records the navigated-to subject. A nil value clears
// the selection.
func (s *Store) SetCurrentSubject(subject *model.Subject) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentSubject = cloneSubjectPtr(subject)
}

// ToggleDarkMode flips the dark-mode flag and returns the new value. It
// has no network effect.
func (s *Store) ToggleDarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.darkMode = !s.darkMode
	return s.darkMode
}

// SetDarkMode seeds the flag from persisted preferences.
func (s *Store) SetDarkMode(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.darkMode = on
}

func (s *Store) begin() {
	s.mu.Lock()
	s.inFlight++
	s.lastErr = ""
	s.mu.Unlock()
}

func (s *Store) end() {
	s.mu.Lock()
	s.inFlight--
	s.mu.Unlock()
}

// fail records the user-facing message and returns the wrapped cause for
// the caller to react to.
func (s *Store) fail(userMsg, op string, err error) error {
	s.mu.Lock()
	s.lastErr = userMsg
	s.mu.Unlock()
	return fmt.Errorf("%s: %w", op, err)
}

// refreshCurrentCourseLocked re-resolves the selection against the fresh
// collection so the pointer never holds a stale value.
func (s *Store) refreshCurrentCourseLocked() {
	if s.currentCourse == nil {
		return
	}
	for i := range s.courses {
		if s.courses[i].ID == s.currentCourse.ID {
			course := s.courses[i]
			s.currentCourse = &course
			return
		}
	}
}

func (s *Store) refreshCurrentSubjectLocked() {
	if s.currentSubject == nil {
		return
	}
	for i := range s.subjects {
		if s.subjects[i].ID == s.currentSubject.ID {
			subject := s.subjects[i]
			s.currentSubject = &subject
			return
		}
	}
}

func removeCourse(courses []model.Course, id string) []model.Course {
	out := courses[:0]
	for _, c := range courses {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

func removeSubject(subjects []model.Subject, id string) []model.Subject {
	out := subjects[:0]
	for _, sub := range subjects {
		if sub.ID != id {
			out = append(out, sub)
		}
	}
	return out
}

func removeContent(contents []model.Content, id string) []model.Content {
	out := contents[:0]
	for _, c := range contents {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

func cloneCourses(courses []model.Course) []model.Course {
	if len(courses) == 0 {
		return nil
	}
	dup := make([]model.Course, len(courses))
	copy(dup, courses)
	return dup
}

func cloneSubjects(subjects []model.Subject) []model.Subject {
	if len(subjects) == 0 {
		return nil
	}
	dup := make([]model.Subject, len(subjects))
	copy(dup, subjects)
	return dup
}

func cloneContents(contents []model.Content) []model.Content {
	if len(contents) == 0 {
		return nil
	}
	dup := make([]model.Content, len(contents))
	copy(dup, contents)
	return dup
}

func cloneCoursePtr(course *model.Course) *model.Course {
	if course == nil {
		return nil
	}
	dup := *course
	return &dup
}

func cloneSubjectPtr(subject *model.Subject) *model.Subject {
	if subject == nil {
		return nil
	}
	dup := *subject
	return &dup
}
