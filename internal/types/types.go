// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// resolvers, storage, and utils can all import types without depending
// on each other.
//
// Each entity exists in two representations:
//
//  1. The STORAGE form, defined here: relationships are arrays of
//     ObjectIDs exactly as they sit in the database (bson:"..." tags
//     control the document field names).
//
//  2. The WIRE form, produced by the GraphQL layer: the id becomes a
//     hex string and relationship fields are resolved into full
//     objects on demand. The wire form is never stored.
package types

import "go.mongodb.org/mongo-driver/bson/primitive"

// Student is the storage form of a student record.
//
// EnrolledCourses holds the ids of the courses the student is enrolled
// in. Every id in it must be mirrored by the course's Students array —
// the mutation protocol in internal/graph is the only code allowed to
// touch either side.
type Student struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty"   json:"id"`
	Name            string               `bson:"name"            json:"name"`
	Email           string               `bson:"email"           json:"email"`
	EnrolledCourses []primitive.ObjectID `bson:"enrolledCourses" json:"-"`
}

// Teacher is the storage form of a teacher record.
// CoursesTaught mirrors Course.TeacherID the same way EnrolledCourses
// mirrors Course.Students.
type Teacher struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name          string               `bson:"name"          json:"name"`
	Email         string               `bson:"email"         json:"email"`
	CoursesTaught []primitive.ObjectID `bson:"coursesTaught" json:"-"`
}

// Course is the storage form of a course record.
//
// TeacherID is a pointer because it is nullable: deleting a teacher
// nulls it out on every course they taught, but the course itself
// lives on.
type Course struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title       string               `bson:"title"         json:"title"`
	Description string               `bson:"description"   json:"description"`
	TeacherID   *primitive.ObjectID  `bson:"teacher_id"    json:"-"`
	Students    []primitive.ObjectID `bson:"students"      json:"-"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Mutation inputs. The validate:"..." tags are checked by
// go-playground/validator before any store call is made, so a bad
// payload never reaches the database.
// ─────────────────────────────────────────────────────────────────────────────

// CreateStudentInput carries the arguments of the createStudent mutation.
type CreateStudentInput struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
}

// CreateTeacherInput carries the arguments of the createTeacher mutation.
type CreateTeacherInput struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
}

// CreateCourseInput carries the arguments of the createCourse mutation.
// TeacherID is the wire (hex) form; the resolver decodes it and checks
// the teacher actually exists before inserting anything.
type CreateCourseInput struct {
	Title       string `validate:"required"`
	Description string `validate:"required"`
	TeacherID   string `validate:"required"`
}

// UpdateStudentInput carries the optional arguments of updateStudent.
// A nil pointer means "leave the field alone" — partial update, not
// null-out.
type UpdateStudentInput struct {
	Name  *string `validate:"omitempty,min=1"`
	Email *string `validate:"omitempty,email"`
}

// UpdateTeacherInput carries the optional arguments of updateTeacher.
type UpdateTeacherInput struct {
	Name  *string `validate:"omitempty,min=1"`
	Email *string `validate:"omitempty,email"`
}

// UpdateCourseInput carries the optional arguments of updateCourse.
type UpdateCourseInput struct {
	Title       *string `validate:"omitempty,min=1"`
	Description *string `validate:"omitempty,min=1"`
	TeacherID   *string `validate:"omitempty"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Storage patches. These are the decoded, storage-level counterparts of
// the update inputs: only non-nil fields are written ($set semantics).
// ─────────────────────────────────────────────────────────────────────────────

// StudentPatch is a partial update of a student record.
type StudentPatch struct {
	Name  *string
	Email *string
}

// TeacherPatch is a partial update of a teacher record.
type TeacherPatch struct {
	Name  *string
	Email *string
}

// CoursePatch is a partial update of a course record. TeacherID here is
// already decoded; nil means "leave the current teacher in place".
type CoursePatch struct {
	Title       *string
	Description *string
	TeacherID   *primitive.ObjectID
}
