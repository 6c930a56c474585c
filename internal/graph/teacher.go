// Teacher operations. See student.go for the shared shape.

package graph

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jcondehz/course-graph-api/internal/ident"
	"github.com/jcondehz/course-graph-api/internal/types"
	"github.com/jcondehz/course-graph-api/internal/utils/validation"
)

// Teachers returns every teacher, in the store's natural order.
func (r *Resolver) Teachers(ctx context.Context) ([]types.Teacher, error) {
	return r.store.GetTeachers(ctx)
}

// Teacher looks one teacher up by wire id.
func (r *Resolver) Teacher(ctx context.Context, id string) (*types.Teacher, error) {
	teacherID, err := ident.Decode(id)
	if err != nil {
		return nil, err
	}
	return r.store.GetTeacherByID(ctx, teacherID)
}

// CreateTeacher inserts a new teacher with no courses.
func (r *Resolver) CreateTeacher(ctx context.Context, in types.CreateTeacherInput) (*types.Teacher, error) {
	r.log.Info("creating a teacher", slog.String("email", in.Email))

	if err := r.validate.Struct(in); err != nil {
		return nil, validation.Error(err)
	}

	id, err := r.store.InsertTeacher(ctx, in.Name, in.Email)
	if err != nil {
		return nil, err
	}

	return &types.Teacher{
		ID:            id,
		Name:          in.Name,
		Email:         in.Email,
		CoursesTaught: []primitive.ObjectID{},
	}, nil
}

// UpdateTeacher applies the supplied fields only; returns (nil, nil)
// when no record matched.
func (r *Resolver) UpdateTeacher(ctx context.Context, id string, in types.UpdateTeacherInput) (*types.Teacher, error) {
	r.log.Info("updating a teacher", slog.String("id", id))

	teacherID, err := ident.Decode(id)
	if err != nil {
		return nil, err
	}
	if err := r.validate.Struct(in); err != nil {
		return nil, validation.Error(err)
	}

	patch := types.TeacherPatch{Name: in.Name, Email: in.Email}
	if err := r.store.UpdateTeacherFields(ctx, teacherID, patch); err != nil {
		return nil, err
	}

	return r.store.GetTeacherByID(ctx, teacherID)
}

// DeleteTeacher removes the teacher and nulls teacher_id on every
// course they taught. The courses themselves survive — a course exists
// independently of its teacher.
func (r *Resolver) DeleteTeacher(ctx context.Context, id string) (bool, error) {
	r.log.Info("deleting a teacher", slog.String("id", id))

	teacherID, err := ident.Decode(id)
	if err != nil {
		return false, err
	}

	deleted, err := r.store.DeleteTeacherByID(ctx, teacherID)
	if err != nil {
		return false, err
	}
	if deleted == nil {
		return false, nil
	}

	if err := r.store.ClearTeacherFromCourses(ctx, teacherID); err != nil {
		return false, err
	}
	return true, nil
}

// CoursesTaught resolves a teacher's course list lazily.
func (r *Resolver) CoursesTaught(ctx context.Context, teacher *types.Teacher) ([]types.Course, error) {
	if len(teacher.CoursesTaught) == 0 {
		return []types.Course{}, nil
	}
	return r.store.GetCoursesByIDs(ctx, teacher.CoursesTaught)
}
