// Package storage defines the Storage interface — a contract that any
// database backend must satisfy to work with this application.
//
// WHY AN INTERFACE?
// ─────────────────
// Resolvers (the GraphQL layer) should not know or care which database
// they are talking to. By depending only on this interface:
//
//   - Switching databases = implement the interface for the new DB,
//     change one line in main.go. Zero resolver changes.
//
//   - Writing tests = pass the in-memory backend. No running MongoDB
//     needed for unit tests.
//
// METHOD GRANULARITY
// ──────────────────
// Every method corresponds to exactly ONE store operation (one findOne,
// one updateMany, ...). The mutation protocol in internal/graph is a
// sequence of 1–3 of these calls with no transaction around them, and
// keeping the methods this small keeps that sequence — and its
// partial-failure window — visible at the call site instead of buried
// inside a backend.
package storage

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jcondehz/course-graph-api/internal/types"
)

// Storage is the database contract. Lookups that match nothing return
// (nil, nil) — "absent" is a valid result, not an error. List methods
// return an empty non-nil slice when the collection is empty.
type Storage interface {
	// ── students ─────────────────────────────────────────────────────

	// InsertStudent creates a student with an empty enrolledCourses
	// array and returns the store-assigned id.
	InsertStudent(ctx context.Context, name, email string) (primitive.ObjectID, error)

	GetStudentByID(ctx context.Context, id primitive.ObjectID) (*types.Student, error)

	GetStudents(ctx context.Context) ([]types.Student, error)

	// GetStudentsByIDs returns the students whose id is in ids, in the
	// store's natural order. Ids with no matching record are skipped.
	GetStudentsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]types.Student, error)

	// UpdateStudentFields applies the non-nil fields of patch. An empty
	// patch is a no-op, not an error.
	UpdateStudentFields(ctx context.Context, id primitive.ObjectID, patch types.StudentPatch) error

	// DeleteStudentByID removes the record and returns it, or (nil, nil)
	// if nothing matched.
	DeleteStudentByID(ctx context.Context, id primitive.ObjectID) (*types.Student, error)

	// AddCourseToStudent adds courseID to the student's enrolledCourses
	// as a set member: adding an id already present changes nothing.
	AddCourseToStudent(ctx context.Context, studentID, courseID primitive.ObjectID) error

	// RemoveCourseFromStudent removes courseID from the student's
	// enrolledCourses. Removing an absent id is a no-op.
	RemoveCourseFromStudent(ctx context.Context, studentID, courseID primitive.ObjectID) error

	// RemoveCourseFromStudents removes courseID from every student's
	// enrolledCourses (delete-course cascade).
	RemoveCourseFromStudents(ctx context.Context, courseID primitive.ObjectID) error

	// ── teachers ─────────────────────────────────────────────────────

	InsertTeacher(ctx context.Context, name, email string) (primitive.ObjectID, error)

	GetTeacherByID(ctx context.Context, id primitive.ObjectID) (*types.Teacher, error)

	GetTeachers(ctx context.Context) ([]types.Teacher, error)

	UpdateTeacherFields(ctx context.Context, id primitive.ObjectID, patch types.TeacherPatch) error

	DeleteTeacherByID(ctx context.Context, id primitive.ObjectID) (*types.Teacher, error)

	AddCourseToTeacher(ctx context.Context, teacherID, courseID primitive.ObjectID) error

	RemoveCourseFromTeacher(ctx context.Context, teacherID, courseID primitive.ObjectID) error

	// RemoveCourseFromTeachers removes courseID from every teacher's
	// coursesTaught (delete-course cascade).
	RemoveCourseFromTeachers(ctx context.Context, courseID primitive.ObjectID) error

	// ── courses ──────────────────────────────────────────────────────

	// InsertCourse creates a course with the given teacher reference and
	// an empty students array.
	InsertCourse(ctx context.Context, title, description string, teacherID primitive.ObjectID) (primitive.ObjectID, error)

	GetCourseByID(ctx context.Context, id primitive.ObjectID) (*types.Course, error)

	GetCourses(ctx context.Context) ([]types.Course, error)

	GetCoursesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]types.Course, error)

	UpdateCourseFields(ctx context.Context, id primitive.ObjectID, patch types.CoursePatch) error

	DeleteCourseByID(ctx context.Context, id primitive.ObjectID) (*types.Course, error)

	AddStudentToCourse(ctx context.Context, courseID, studentID primitive.ObjectID) error

	RemoveStudentFromCourse(ctx context.Context, courseID, studentID primitive.ObjectID) error

	// RemoveStudentFromCourses removes studentID from every course's
	// students array (delete-student cascade).
	RemoveStudentFromCourses(ctx context.Context, studentID primitive.ObjectID) error

	// ClearTeacherFromCourses nulls teacher_id on every course that
	// references teacherID (delete-teacher cascade). The courses remain.
	ClearTeacherFromCourses(ctx context.Context, teacherID primitive.ObjectID) error
}
