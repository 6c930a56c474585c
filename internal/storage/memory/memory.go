// Package memory provides an in-memory implementation of the
// storage.Storage interface.
//
// It exists for two reasons: unit tests run against it without a
// MongoDB instance, and the server can be started storage-free for
// local experiments (MONGO_URI=memory). Semantics deliberately mirror
// the mongodb backend: absent lookups return (nil, nil), relationship
// arrays behave as sets, and every returned record is a copy so callers
// can never mutate the store through a result.
package memory

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jcondehz/course-graph-api/internal/types"
)

// Store is the in-memory implementation of storage.Storage. Safe for
// concurrent use; a single RWMutex guards all three maps, which stands
// in for the per-document atomicity of a real store.
type Store struct {
	mu       sync.RWMutex
	students map[primitive.ObjectID]types.Student
	teachers map[primitive.ObjectID]types.Teacher
	courses  map[primitive.ObjectID]types.Course
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		students: make(map[primitive.ObjectID]types.Student),
		teachers: make(map[primitive.ObjectID]types.Teacher),
		courses:  make(map[primitive.ObjectID]types.Course),
	}
}

// cloneIDs copies a relationship array so the caller and the store
// never share backing memory.
func cloneIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, len(ids))
	copy(out, ids)
	return out
}

// addToSet appends id only if absent, mirroring $addToSet.
func addToSet(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

// pull removes every occurrence of id, mirroring $pull.
func pull(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

func cloneStudent(s types.Student) types.Student {
	s.EnrolledCourses = cloneIDs(s.EnrolledCourses)
	return s
}

func cloneTeacher(t types.Teacher) types.Teacher {
	t.CoursesTaught = cloneIDs(t.CoursesTaught)
	return t
}

func cloneCourse(c types.Course) types.Course {
	c.Students = cloneIDs(c.Students)
	if c.TeacherID != nil {
		id := *c.TeacherID
		c.TeacherID = &id
	}
	return c
}

// ─────────────────────────────────────────────────────────────────────────────
// Students
// ─────────────────────────────────────────────────────────────────────────────

func (s *Store) InsertStudent(_ context.Context, name, email string) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := primitive.NewObjectID()
	s.students[id] = types.Student{
		ID:              id,
		Name:            name,
		Email:           email,
		EnrolledCourses: []primitive.ObjectID{},
	}
	return id, nil
}

func (s *Store) GetStudentByID(_ context.Context, id primitive.ObjectID) (*types.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	student, ok := s.students[id]
	if !ok {
		return nil, nil
	}
	student = cloneStudent(student)
	return &student, nil
}

func (s *Store) GetStudents(_ context.Context) ([]types.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Student, 0, len(s.students))
	for _, student := range s.students {
		out = append(out, cloneStudent(student))
	}
	return out, nil
}

func (s *Store) GetStudentsByIDs(_ context.Context, ids []primitive.ObjectID) ([]types.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Student, 0, len(ids))
	for _, id := range ids {
		if student, ok := s.students[id]; ok {
			out = append(out, cloneStudent(student))
		}
	}
	return out, nil
}

func (s *Store) UpdateStudentFields(_ context.Context, id primitive.ObjectID, patch types.StudentPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	student, ok := s.students[id]
	if !ok {
		return nil // matched nothing, same as an updateOne miss
	}
	if patch.Name != nil {
		student.Name = *patch.Name
	}
	if patch.Email != nil {
		student.Email = *patch.Email
	}
	s.students[id] = student
	return nil
}

func (s *Store) DeleteStudentByID(_ context.Context, id primitive.ObjectID) (*types.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	student, ok := s.students[id]
	if !ok {
		return nil, nil
	}
	delete(s.students, id)
	student = cloneStudent(student)
	return &student, nil
}

func (s *Store) AddCourseToStudent(_ context.Context, studentID, courseID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	student, ok := s.students[studentID]
	if !ok {
		return nil
	}
	student.EnrolledCourses = addToSet(student.EnrolledCourses, courseID)
	s.students[studentID] = student
	return nil
}

func (s *Store) RemoveCourseFromStudent(_ context.Context, studentID, courseID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	student, ok := s.students[studentID]
	if !ok {
		return nil
	}
	student.EnrolledCourses = pull(student.EnrolledCourses, courseID)
	s.students[studentID] = student
	return nil
}

func (s *Store) RemoveCourseFromStudents(_ context.Context, courseID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, student := range s.students {
		student.EnrolledCourses = pull(student.EnrolledCourses, courseID)
		s.students[id] = student
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Teachers
// ─────────────────────────────────────────────────────────────────────────────

func (s *Store) InsertTeacher(_ context.Context, name, email string) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := primitive.NewObjectID()
	s.teachers[id] = types.Teacher{
		ID:            id,
		Name:          name,
		Email:         email,
		CoursesTaught: []primitive.ObjectID{},
	}
	return id, nil
}

func (s *Store) GetTeacherByID(_ context.Context, id primitive.ObjectID) (*types.Teacher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	teacher, ok := s.teachers[id]
	if !ok {
		return nil, nil
	}
	teacher = cloneTeacher(teacher)
	return &teacher, nil
}

func (s *Store) GetTeachers(_ context.Context) ([]types.Teacher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Teacher, 0, len(s.teachers))
	for _, teacher := range s.teachers {
		out = append(out, cloneTeacher(teacher))
	}
	return out, nil
}

func (s *Store) UpdateTeacherFields(_ context.Context, id primitive.ObjectID, patch types.TeacherPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	teacher, ok := s.teachers[id]
	if !ok {
		return nil
	}
	if patch.Name != nil {
		teacher.Name = *patch.Name
	}
	if patch.Email != nil {
		teacher.Email = *patch.Email
	}
	s.teachers[id] = teacher
	return nil
}

func (s *Store) DeleteTeacherByID(_ context.Context, id primitive.ObjectID) (*types.Teacher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	teacher, ok := s.teachers[id]
	if !ok {
		return nil, nil
	}
	delete(s.teachers, id)
	teacher = cloneTeacher(teacher)
	return &teacher, nil
}

func (s *Store) AddCourseToTeacher(_ context.Context, teacherID, courseID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	teacher, ok := s.teachers[teacherID]
	if !ok {
		return nil
	}
	teacher.CoursesTaught = addToSet(teacher.CoursesTaught, courseID)
	s.teachers[teacherID] = teacher
	return nil
}

func (s *Store) RemoveCourseFromTeacher(_ context.Context, teacherID, courseID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	teacher, ok := s.teachers[teacherID]
	if !ok {
		return nil
	}
	teacher.CoursesTaught = pull(teacher.CoursesTaught, courseID)
	s.teachers[teacherID] = teacher
	return nil
}

func (s *Store) RemoveCourseFromTeachers(_ context.Context, courseID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, teacher := range s.teachers {
		teacher.CoursesTaught = pull(teacher.CoursesTaught, courseID)
		s.teachers[id] = teacher
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Courses
// ─────────────────────────────────────────────────────────────────────────────

func (s *Store) InsertCourse(_ context.Context, title, description string, teacherID primitive.ObjectID) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := primitive.NewObjectID()
	tid := teacherID
	s.courses[id] = types.Course{
		ID:          id,
		Title:       title,
		Description: description,
		TeacherID:   &tid,
		Students:    []primitive.ObjectID{},
	}
	return id, nil
}

func (s *Store) GetCourseByID(_ context.Context, id primitive.ObjectID) (*types.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	course, ok := s.courses[id]
	if !ok {
		return nil, nil
	}
	course = cloneCourse(course)
	return &course, nil
}

func (s *Store) GetCourses(_ context.Context) ([]types.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Course, 0, len(s.courses))
	for _, course := range s.courses {
		out = append(out, cloneCourse(course))
	}
	return out, nil
}

func (s *Store) GetCoursesByIDs(_ context.Context, ids []primitive.ObjectID) ([]types.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Course, 0, len(ids))
	for _, id := range ids {
		if course, ok := s.courses[id]; ok {
			out = append(out, cloneCourse(course))
		}
	}
	return out, nil
}

func (s *Store) UpdateCourseFields(_ context.Context, id primitive.ObjectID, patch types.CoursePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	course, ok := s.courses[id]
	if !ok {
		return nil
	}
	if patch.Title != nil {
		course.Title = *patch.Title
	}
	if patch.Description != nil {
		course.Description = *patch.Description
	}
	if patch.TeacherID != nil {
		tid := *patch.TeacherID
		course.TeacherID = &tid
	}
	s.courses[id] = course
	return nil
}

func (s *Store) DeleteCourseByID(_ context.Context, id primitive.ObjectID) (*types.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	course, ok := s.courses[id]
	if !ok {
		return nil, nil
	}
	delete(s.courses, id)
	course = cloneCourse(course)
	return &course, nil
}

func (s *Store) AddStudentToCourse(_ context.Context, courseID, studentID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	course, ok := s.courses[courseID]
	if !ok {
		return nil
	}
	course.Students = addToSet(course.Students, studentID)
	s.courses[courseID] = course
	return nil
}

func (s *Store) RemoveStudentFromCourse(_ context.Context, courseID, studentID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	course, ok := s.courses[courseID]
	if !ok {
		return nil
	}
	course.Students = pull(course.Students, studentID)
	s.courses[courseID] = course
	return nil
}

func (s *Store) RemoveStudentFromCourses(_ context.Context, studentID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, course := range s.courses {
		course.Students = pull(course.Students, studentID)
		s.courses[id] = course
	}
	return nil
}

func (s *Store) ClearTeacherFromCourses(_ context.Context, teacherID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, course := range s.courses {
		if course.TeacherID != nil && *course.TeacherID == teacherID {
			course.TeacherID = nil
			s.courses[id] = course
		}
	}
	return nil
}
