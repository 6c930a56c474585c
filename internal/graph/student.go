// Student operations: queries, mutations, and the enrolledCourses
// relationship resolver. Mirrors course.go and teacher.go in structure:
// decode arguments first, then issue the store calls in order.

package graph

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jcondehz/course-graph-api/internal/ident"
	"github.com/jcondehz/course-graph-api/internal/types"
	"github.com/jcondehz/course-graph-api/internal/utils/validation"
)

// Students returns every student, in the store's natural order.
func (r *Resolver) Students(ctx context.Context) ([]types.Student, error) {
	return r.store.GetStudents(ctx)
}

// Student looks one student up by wire id. A malformed id is an error;
// a well-formed id with no record is (nil, nil).
func (r *Resolver) Student(ctx context.Context, id string) (*types.Student, error) {
	studentID, err := ident.Decode(id)
	if err != nil {
		return nil, err
	}
	return r.store.GetStudentByID(ctx, studentID)
}

// CreateStudent inserts a new student with no enrolments.
func (r *Resolver) CreateStudent(ctx context.Context, in types.CreateStudentInput) (*types.Student, error) {
	r.log.Info("creating a student", slog.String("email", in.Email))

	if err := r.validate.Struct(in); err != nil {
		return nil, validation.Error(err)
	}

	id, err := r.store.InsertStudent(ctx, in.Name, in.Email)
	if err != nil {
		return nil, err
	}

	return &types.Student{
		ID:              id,
		Name:            in.Name,
		Email:           in.Email,
		EnrolledCourses: []primitive.ObjectID{},
	}, nil
}

// UpdateStudent applies the supplied fields only; omitted fields keep
// their stored values. Returns the refreshed record, or (nil, nil) when
// no record matched.
func (r *Resolver) UpdateStudent(ctx context.Context, id string, in types.UpdateStudentInput) (*types.Student, error) {
	r.log.Info("updating a student", slog.String("id", id))

	studentID, err := ident.Decode(id)
	if err != nil {
		return nil, err
	}
	if err := r.validate.Struct(in); err != nil {
		return nil, validation.Error(err)
	}

	patch := types.StudentPatch{Name: in.Name, Email: in.Email}
	if err := r.store.UpdateStudentFields(ctx, studentID, patch); err != nil {
		return nil, err
	}

	return r.store.GetStudentByID(ctx, studentID)
}

// DeleteStudent removes the student and then scrubs the student's id
// out of every course's students array, so no course is left holding a
// dangling back-reference. Reports whether a record was deleted.
func (r *Resolver) DeleteStudent(ctx context.Context, id string) (bool, error) {
	r.log.Info("deleting a student", slog.String("id", id))

	studentID, err := ident.Decode(id)
	if err != nil {
		return false, err
	}

	deleted, err := r.store.DeleteStudentByID(ctx, studentID)
	if err != nil {
		return false, err
	}
	if deleted == nil {
		return false, nil
	}

	if err := r.store.RemoveStudentFromCourses(ctx, studentID); err != nil {
		return false, err
	}
	return true, nil
}

// EnrolledCourses resolves a student's course list lazily. An empty
// enrolment set short-circuits to an empty slice without a store call.
func (r *Resolver) EnrolledCourses(ctx context.Context, student *types.Student) ([]types.Course, error) {
	if len(student.EnrolledCourses) == 0 {
		return []types.Course{}, nil
	}
	return r.store.GetCoursesByIDs(ctx, student.EnrolledCourses)
}
