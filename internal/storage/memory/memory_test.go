package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jcondehz/course-graph-api/internal/types"
)

func TestInsertAndGetStudent(t *testing.T) {
	ctx := context.Background()
	store := New()

	id, err := store.InsertStudent(ctx, "Bob", "bob@x.io")
	require.NoError(t, err)
	require.NotEqual(t, primitive.NilObjectID, id)

	student, err := store.GetStudentByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, student)
	assert.Equal(t, "Bob", student.Name)
	assert.Equal(t, "bob@x.io", student.Email)
	assert.Empty(t, student.EnrolledCourses)
}

func TestGetMissingStudentIsAbsentNotError(t *testing.T) {
	ctx := context.Background()
	store := New()

	student, err := store.GetStudentByID(ctx, primitive.NewObjectID())
	require.NoError(t, err)
	assert.Nil(t, student)
}

func TestGetStudentsByIDsSkipsMissing(t *testing.T) {
	ctx := context.Background()
	store := New()

	id1, err := store.InsertStudent(ctx, "Bob", "bob@x.io")
	require.NoError(t, err)
	id2, err := store.InsertStudent(ctx, "Eve", "eve@x.io")
	require.NoError(t, err)

	students, err := store.GetStudentsByIDs(ctx, []primitive.ObjectID{id1, primitive.NewObjectID(), id2})
	require.NoError(t, err)
	assert.Len(t, students, 2)

	students, err = store.GetStudentsByIDs(ctx, nil)
	require.NoError(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students)
}

func TestUpdateStudentFieldsIsPartial(t *testing.T) {
	ctx := context.Background()
	store := New()

	id, err := store.InsertStudent(ctx, "Bob", "bob@x.io")
	require.NoError(t, err)

	name := "Robert"
	require.NoError(t, store.UpdateStudentFields(ctx, id, types.StudentPatch{Name: &name}))

	student, err := store.GetStudentByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Robert", student.Name)
	assert.Equal(t, "bob@x.io", student.Email, "omitted field must keep its value")

	// empty patch leaves the record untouched
	require.NoError(t, store.UpdateStudentFields(ctx, id, types.StudentPatch{}))
	unchanged, err := store.GetStudentByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, *student, *unchanged)
}

func TestDeleteStudentReturnsRecordOnce(t *testing.T) {
	ctx := context.Background()
	store := New()

	id, err := store.InsertStudent(ctx, "Bob", "bob@x.io")
	require.NoError(t, err)

	deleted, err := store.DeleteStudentByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, "Bob", deleted.Name)

	again, err := store.DeleteStudentByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, again)
}

func TestAddCourseToStudentBehavesAsSet(t *testing.T) {
	ctx := context.Background()
	store := New()

	sid, err := store.InsertStudent(ctx, "Bob", "bob@x.io")
	require.NoError(t, err)
	cid := primitive.NewObjectID()

	require.NoError(t, store.AddCourseToStudent(ctx, sid, cid))
	require.NoError(t, store.AddCourseToStudent(ctx, sid, cid))

	student, err := store.GetStudentByID(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{cid}, student.EnrolledCourses)
}

func TestRemoveCourseFromStudents(t *testing.T) {
	ctx := context.Background()
	store := New()

	cid := primitive.NewObjectID()
	other := primitive.NewObjectID()

	sid1, err := store.InsertStudent(ctx, "Bob", "bob@x.io")
	require.NoError(t, err)
	sid2, err := store.InsertStudent(ctx, "Eve", "eve@x.io")
	require.NoError(t, err)

	require.NoError(t, store.AddCourseToStudent(ctx, sid1, cid))
	require.NoError(t, store.AddCourseToStudent(ctx, sid2, cid))
	require.NoError(t, store.AddCourseToStudent(ctx, sid2, other))

	require.NoError(t, store.RemoveCourseFromStudents(ctx, cid))

	s1, err := store.GetStudentByID(ctx, sid1)
	require.NoError(t, err)
	assert.Empty(t, s1.EnrolledCourses)

	s2, err := store.GetStudentByID(ctx, sid2)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{other}, s2.EnrolledCourses)
}

func TestClearTeacherFromCourses(t *testing.T) {
	ctx := context.Background()
	store := New()

	tid, err := store.InsertTeacher(ctx, "Ada", "ada@x.io")
	require.NoError(t, err)
	otherTid, err := store.InsertTeacher(ctx, "Alan", "alan@x.io")
	require.NoError(t, err)

	cid1, err := store.InsertCourse(ctx, "CS101", "intro", tid)
	require.NoError(t, err)
	cid2, err := store.InsertCourse(ctx, "CS201", "advanced", otherTid)
	require.NoError(t, err)

	require.NoError(t, store.ClearTeacherFromCourses(ctx, tid))

	c1, err := store.GetCourseByID(ctx, cid1)
	require.NoError(t, err)
	assert.Nil(t, c1.TeacherID)

	c2, err := store.GetCourseByID(ctx, cid2)
	require.NoError(t, err)
	require.NotNil(t, c2.TeacherID)
	assert.Equal(t, otherTid, *c2.TeacherID)
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	ctx := context.Background()
	store := New()

	sid, err := store.InsertStudent(ctx, "Bob", "bob@x.io")
	require.NoError(t, err)
	require.NoError(t, store.AddCourseToStudent(ctx, sid, primitive.NewObjectID()))

	student, err := store.GetStudentByID(ctx, sid)
	require.NoError(t, err)

	// Mutating the returned record must not leak into the store.
	student.Name = "Mallory"
	student.EnrolledCourses[0] = primitive.NewObjectID()

	fresh, err := store.GetStudentByID(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, "Bob", fresh.Name)
	assert.NotEqual(t, student.EnrolledCourses[0], fresh.EnrolledCourses[0])
}
