// Course operations, including the two relationship-linking mutations
// (enroll / remove). Courses carry both ends of the denormalised model:
// the nullable teacher reference and the student back-reference array.

package graph

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jcondehz/course-graph-api/internal/ident"
	"github.com/jcondehz/course-graph-api/internal/types"
	"github.com/jcondehz/course-graph-api/internal/utils/validation"
)

// Courses returns every course, in the store's natural order.
func (r *Resolver) Courses(ctx context.Context) ([]types.Course, error) {
	return r.store.GetCourses(ctx)
}

// Course looks one course up by wire id.
func (r *Resolver) Course(ctx context.Context, id string) (*types.Course, error) {
	courseID, err := ident.Decode(id)
	if err != nil {
		return nil, err
	}
	return r.store.GetCourseByID(ctx, courseID)
}

// CreateCourse inserts a course for an existing teacher. The teacher
// must exist — a well-formed id that matches nothing aborts with
// ErrReferenceNotFound before anything is inserted. The new course id
// is then added to the teacher's coursesTaught so both sides of the
// relationship agree from the start.
func (r *Resolver) CreateCourse(ctx context.Context, in types.CreateCourseInput) (*types.Course, error) {
	r.log.Info("creating a course", slog.String("title", in.Title))

	if err := r.validate.Struct(in); err != nil {
		return nil, validation.Error(err)
	}

	teacherID, err := ident.Decode(in.TeacherID)
	if err != nil {
		return nil, err
	}
	teacher, err := r.store.GetTeacherByID(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	if teacher == nil {
		return nil, fmt.Errorf("teacher %s: %w", in.TeacherID, ErrReferenceNotFound)
	}

	id, err := r.store.InsertCourse(ctx, in.Title, in.Description, teacherID)
	if err != nil {
		return nil, err
	}
	if err := r.store.AddCourseToTeacher(ctx, teacherID, id); err != nil {
		return nil, err
	}

	return &types.Course{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		TeacherID:   &teacherID,
		Students:    []primitive.ObjectID{},
	}, nil
}

// UpdateCourse applies the supplied fields only. When teacher_id is
// supplied the new teacher must exist, and the coursesTaught
// back-reference moves with it: pulled from the old teacher, added to
// the new one. Returns (nil, nil) when no course matched.
func (r *Resolver) UpdateCourse(ctx context.Context, id string, in types.UpdateCourseInput) (*types.Course, error) {
	r.log.Info("updating a course", slog.String("id", id))

	courseID, err := ident.Decode(id)
	if err != nil {
		return nil, err
	}
	if err := r.validate.Struct(in); err != nil {
		return nil, validation.Error(err)
	}

	patch := types.CoursePatch{Title: in.Title, Description: in.Description}

	if in.TeacherID != nil {
		newTeacherID, err := ident.Decode(*in.TeacherID)
		if err != nil {
			return nil, err
		}
		teacher, err := r.store.GetTeacherByID(ctx, newTeacherID)
		if err != nil {
			return nil, err
		}
		if teacher == nil {
			return nil, fmt.Errorf("teacher %s: %w", *in.TeacherID, ErrReferenceNotFound)
		}

		current, err := r.store.GetCourseByID(ctx, courseID)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, nil
		}

		if current.TeacherID == nil || *current.TeacherID != newTeacherID {
			if current.TeacherID != nil {
				if err := r.store.RemoveCourseFromTeacher(ctx, *current.TeacherID, courseID); err != nil {
					return nil, err
				}
			}
			if err := r.store.AddCourseToTeacher(ctx, newTeacherID, courseID); err != nil {
				return nil, err
			}
		}
		patch.TeacherID = &newTeacherID
	}

	if err := r.store.UpdateCourseFields(ctx, courseID, patch); err != nil {
		return nil, err
	}

	return r.store.GetCourseByID(ctx, courseID)
}

// DeleteCourse removes the course and scrubs its id out of every
// teacher's coursesTaught and every student's enrolledCourses. Reports
// whether a record was deleted.
func (r *Resolver) DeleteCourse(ctx context.Context, id string) (bool, error) {
	r.log.Info("deleting a course", slog.String("id", id))

	courseID, err := ident.Decode(id)
	if err != nil {
		return false, err
	}

	deleted, err := r.store.DeleteCourseByID(ctx, courseID)
	if err != nil {
		return false, err
	}
	if deleted == nil {
		return false, nil
	}

	if err := r.store.RemoveCourseFromTeachers(ctx, courseID); err != nil {
		return false, err
	}
	if err := r.store.RemoveCourseFromStudents(ctx, courseID); err != nil {
		return false, err
	}
	return true, nil
}

// EnrollStudentInCourse links a student and a course on both sides.
// A missing student or course yields (nil, nil), not an error. An
// already-enrolled student makes the call a no-op returning the course
// unchanged; the membership test compares stored ObjectID values, and
// the $addToSet writes behind AddCourseToStudent/AddStudentToCourse
// keep even a racing double-enroll from duplicating entries.
func (r *Resolver) EnrollStudentInCourse(ctx context.Context, studentID, courseID string) (*types.Course, error) {
	r.log.Info("enrolling student in course",
		slog.String("studentId", studentID),
		slog.String("courseId", courseID),
	)

	sid, err := ident.Decode(studentID)
	if err != nil {
		return nil, err
	}
	cid, err := ident.Decode(courseID)
	if err != nil {
		return nil, err
	}

	student, err := r.store.GetStudentByID(ctx, sid)
	if err != nil {
		return nil, err
	}
	course, err := r.store.GetCourseByID(ctx, cid)
	if err != nil {
		return nil, err
	}
	if student == nil || course == nil {
		return nil, nil
	}

	for _, enrolled := range course.Students {
		if enrolled == sid {
			return course, nil
		}
	}

	if err := r.store.AddCourseToStudent(ctx, sid, cid); err != nil {
		return nil, err
	}
	if err := r.store.AddStudentToCourse(ctx, cid, sid); err != nil {
		return nil, err
	}

	return r.store.GetCourseByID(ctx, cid)
}

// RemoveStudentFromCourse unlinks a student and a course on both sides.
// Removal is attempted unconditionally — unlinking a student who was
// never enrolled is a no-op, not an error. A missing student or course
// yields (nil, nil).
func (r *Resolver) RemoveStudentFromCourse(ctx context.Context, studentID, courseID string) (*types.Course, error) {
	r.log.Info("removing student from course",
		slog.String("studentId", studentID),
		slog.String("courseId", courseID),
	)

	sid, err := ident.Decode(studentID)
	if err != nil {
		return nil, err
	}
	cid, err := ident.Decode(courseID)
	if err != nil {
		return nil, err
	}

	student, err := r.store.GetStudentByID(ctx, sid)
	if err != nil {
		return nil, err
	}
	course, err := r.store.GetCourseByID(ctx, cid)
	if err != nil {
		return nil, err
	}
	if student == nil || course == nil {
		return nil, nil
	}

	if err := r.store.RemoveStudentFromCourse(ctx, cid, sid); err != nil {
		return nil, err
	}
	if err := r.store.RemoveCourseFromStudent(ctx, sid, cid); err != nil {
		return nil, err
	}

	return r.store.GetCourseByID(ctx, cid)
}

// CourseTeacher resolves a course's teacher lazily. A null reference
// returns null without a store call; a dangling reference (teacher
// since deleted) is tolerated and also resolves to null.
func (r *Resolver) CourseTeacher(ctx context.Context, course *types.Course) (*types.Teacher, error) {
	if course.TeacherID == nil {
		return nil, nil
	}
	return r.store.GetTeacherByID(ctx, *course.TeacherID)
}

// CourseStudents resolves a course's enrolled students lazily.
func (r *Resolver) CourseStudents(ctx context.Context, course *types.Course) ([]types.Student, error) {
	if len(course.Students) == 0 {
		return []types.Student{}, nil
	}
	return r.store.GetStudentsByIDs(ctx, course.Students)
}
