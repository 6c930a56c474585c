// Package mongodb provides the MongoDB-backed implementation of the
// storage.Storage interface using the official mongo-driver.
//
// Each entity kind lives in its own collection. Relationship arrays are
// updated with $addToSet / $pull so every relationship write is
// idempotent — repeating a half-applied cascade converges instead of
// duplicating entries. A single update to a single document is atomic;
// nothing here spans documents atomically (see internal/graph).
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jcondehz/course-graph-api/internal/types"
)

// Collection names within the database.
const (
	studentsCollection = "students"
	teachersCollection = "teachers"
	coursesCollection  = "courses"
)

// Store is the concrete implementation of storage.Storage. A single
// *Store is safe for concurrent use; the driver manages pooling
// internally.
type Store struct {
	students *mongo.Collection
	teachers *mongo.Collection
	courses  *mongo.Collection
}

// New returns a Store bound to the three entity collections of db.
// MongoDB creates collections lazily, so there is no setup step.
func New(db *mongo.Database) *Store {
	return &Store{
		students: db.Collection(studentsCollection),
		teachers: db.Collection(teachersCollection),
		courses:  db.Collection(coursesCollection),
	}
}

// insertedID pulls the assigned ObjectID out of an insert result.
func insertedID(res *mongo.InsertOneResult) (primitive.ObjectID, error) {
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Students
// ─────────────────────────────────────────────────────────────────────────────

func (s *Store) InsertStudent(ctx context.Context, name, email string) (primitive.ObjectID, error) {
	res, err := s.students.InsertOne(ctx, bson.M{
		"name":            name,
		"email":           email,
		"enrolledCourses": []primitive.ObjectID{},
	})
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("InsertStudent: %w", err)
	}
	id, err := insertedID(res)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("InsertStudent: %w", err)
	}
	return id, nil
}

func (s *Store) GetStudentByID(ctx context.Context, id primitive.ObjectID) (*types.Student, error) {
	var student types.Student
	err := s.students.FindOne(ctx, bson.M{"_id": id}).Decode(&student)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil // absent, not an error
	}
	if err != nil {
		return nil, fmt.Errorf("GetStudentByID: %w", err)
	}
	return &student, nil
}

func (s *Store) GetStudents(ctx context.Context) ([]types.Student, error) {
	cursor, err := s.students.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("GetStudents: %w", err)
	}
	students := make([]types.Student, 0)
	if err := cursor.All(ctx, &students); err != nil {
		return nil, fmt.Errorf("GetStudents: decode: %w", err)
	}
	return students, nil
}

func (s *Store) GetStudentsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]types.Student, error) {
	if len(ids) == 0 {
		return []types.Student{}, nil
	}
	cursor, err := s.students.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("GetStudentsByIDs: %w", err)
	}
	students := make([]types.Student, 0, len(ids))
	if err := cursor.All(ctx, &students); err != nil {
		return nil, fmt.Errorf("GetStudentsByIDs: decode: %w", err)
	}
	return students, nil
}

func (s *Store) UpdateStudentFields(ctx context.Context, id primitive.ObjectID, patch types.StudentPatch) error {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if len(set) == 0 {
		return nil // nothing to change
	}
	_, err := s.students.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("UpdateStudentFields: %w", err)
	}
	return nil
}

func (s *Store) DeleteStudentByID(ctx context.Context, id primitive.ObjectID) (*types.Student, error) {
	var student types.Student
	err := s.students.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&student)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("DeleteStudentByID: %w", err)
	}
	return &student, nil
}

func (s *Store) AddCourseToStudent(ctx context.Context, studentID, courseID primitive.ObjectID) error {
	_, err := s.students.UpdateOne(ctx,
		bson.M{"_id": studentID},
		bson.M{"$addToSet": bson.M{"enrolledCourses": courseID}},
	)
	if err != nil {
		return fmt.Errorf("AddCourseToStudent: %w", err)
	}
	return nil
}

func (s *Store) RemoveCourseFromStudent(ctx context.Context, studentID, courseID primitive.ObjectID) error {
	_, err := s.students.UpdateOne(ctx,
		bson.M{"_id": studentID},
		bson.M{"$pull": bson.M{"enrolledCourses": courseID}},
	)
	if err != nil {
		return fmt.Errorf("RemoveCourseFromStudent: %w", err)
	}
	return nil
}

func (s *Store) RemoveCourseFromStudents(ctx context.Context, courseID primitive.ObjectID) error {
	_, err := s.students.UpdateMany(ctx,
		bson.M{"enrolledCourses": courseID},
		bson.M{"$pull": bson.M{"enrolledCourses": courseID}},
	)
	if err != nil {
		return fmt.Errorf("RemoveCourseFromStudents: %w", err)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Teachers
// ─────────────────────────────────────────────────────────────────────────────

func (s *Store) InsertTeacher(ctx context.Context, name, email string) (primitive.ObjectID, error) {
	res, err := s.teachers.InsertOne(ctx, bson.M{
		"name":          name,
		"email":         email,
		"coursesTaught": []primitive.ObjectID{},
	})
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("InsertTeacher: %w", err)
	}
	id, err := insertedID(res)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("InsertTeacher: %w", err)
	}
	return id, nil
}

func (s *Store) GetTeacherByID(ctx context.Context, id primitive.ObjectID) (*types.Teacher, error) {
	var teacher types.Teacher
	err := s.teachers.FindOne(ctx, bson.M{"_id": id}).Decode(&teacher)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetTeacherByID: %w", err)
	}
	return &teacher, nil
}

func (s *Store) GetTeachers(ctx context.Context) ([]types.Teacher, error) {
	cursor, err := s.teachers.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("GetTeachers: %w", err)
	}
	teachers := make([]types.Teacher, 0)
	if err := cursor.All(ctx, &teachers); err != nil {
		return nil, fmt.Errorf("GetTeachers: decode: %w", err)
	}
	return teachers, nil
}

func (s *Store) UpdateTeacherFields(ctx context.Context, id primitive.ObjectID, patch types.TeacherPatch) error {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if len(set) == 0 {
		return nil
	}
	_, err := s.teachers.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("UpdateTeacherFields: %w", err)
	}
	return nil
}

func (s *Store) DeleteTeacherByID(ctx context.Context, id primitive.ObjectID) (*types.Teacher, error) {
	var teacher types.Teacher
	err := s.teachers.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&teacher)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("DeleteTeacherByID: %w", err)
	}
	return &teacher, nil
}

func (s *Store) AddCourseToTeacher(ctx context.Context, teacherID, courseID primitive.ObjectID) error {
	_, err := s.teachers.UpdateOne(ctx,
		bson.M{"_id": teacherID},
		bson.M{"$addToSet": bson.M{"coursesTaught": courseID}},
	)
	if err != nil {
		return fmt.Errorf("AddCourseToTeacher: %w", err)
	}
	return nil
}

func (s *Store) RemoveCourseFromTeacher(ctx context.Context, teacherID, courseID primitive.ObjectID) error {
	_, err := s.teachers.UpdateOne(ctx,
		bson.M{"_id": teacherID},
		bson.M{"$pull": bson.M{"coursesTaught": courseID}},
	)
	if err != nil {
		return fmt.Errorf("RemoveCourseFromTeacher: %w", err)
	}
	return nil
}

func (s *Store) RemoveCourseFromTeachers(ctx context.Context, courseID primitive.ObjectID) error {
	_, err := s.teachers.UpdateMany(ctx,
		bson.M{"coursesTaught": courseID},
		bson.M{"$pull": bson.M{"coursesTaught": courseID}},
	)
	if err != nil {
		return fmt.Errorf("RemoveCourseFromTeachers: %w", err)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Courses
// ─────────────────────────────────────────────────────────────────────────────

func (s *Store) InsertCourse(ctx context.Context, title, description string, teacherID primitive.ObjectID) (primitive.ObjectID, error) {
	res, err := s.courses.InsertOne(ctx, bson.M{
		"title":       title,
		"description": description,
		"teacher_id":  teacherID,
		"students":    []primitive.ObjectID{},
	})
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("InsertCourse: %w", err)
	}
	id, err := insertedID(res)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("InsertCourse: %w", err)
	}
	return id, nil
}

func (s *Store) GetCourseByID(ctx context.Context, id primitive.ObjectID) (*types.Course, error) {
	var course types.Course
	err := s.courses.FindOne(ctx, bson.M{"_id": id}).Decode(&course)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetCourseByID: %w", err)
	}
	return &course, nil
}

func (s *Store) GetCourses(ctx context.Context) ([]types.Course, error) {
	cursor, err := s.courses.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("GetCourses: %w", err)
	}
	courses := make([]types.Course, 0)
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, fmt.Errorf("GetCourses: decode: %w", err)
	}
	return courses, nil
}

func (s *Store) GetCoursesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]types.Course, error) {
	if len(ids) == 0 {
		return []types.Course{}, nil
	}
	cursor, err := s.courses.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("GetCoursesByIDs: %w", err)
	}
	courses := make([]types.Course, 0, len(ids))
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, fmt.Errorf("GetCoursesByIDs: decode: %w", err)
	}
	return courses, nil
}

func (s *Store) UpdateCourseFields(ctx context.Context, id primitive.ObjectID, patch types.CoursePatch) error {
	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.TeacherID != nil {
		set["teacher_id"] = *patch.TeacherID
	}
	if len(set) == 0 {
		return nil
	}
	_, err := s.courses.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("UpdateCourseFields: %w", err)
	}
	return nil
}

func (s *Store) DeleteCourseByID(ctx context.Context, id primitive.ObjectID) (*types.Course, error) {
	var course types.Course
	err := s.courses.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&course)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("DeleteCourseByID: %w", err)
	}
	return &course, nil
}

func (s *Store) AddStudentToCourse(ctx context.Context, courseID, studentID primitive.ObjectID) error {
	_, err := s.courses.UpdateOne(ctx,
		bson.M{"_id": courseID},
		bson.M{"$addToSet": bson.M{"students": studentID}},
	)
	if err != nil {
		return fmt.Errorf("AddStudentToCourse: %w", err)
	}
	return nil
}

func (s *Store) RemoveStudentFromCourse(ctx context.Context, courseID, studentID primitive.ObjectID) error {
	_, err := s.courses.UpdateOne(ctx,
		bson.M{"_id": courseID},
		bson.M{"$pull": bson.M{"students": studentID}},
	)
	if err != nil {
		return fmt.Errorf("RemoveStudentFromCourse: %w", err)
	}
	return nil
}

func (s *Store) RemoveStudentFromCourses(ctx context.Context, studentID primitive.ObjectID) error {
	_, err := s.courses.UpdateMany(ctx,
		bson.M{"students": studentID},
		bson.M{"$pull": bson.M{"students": studentID}},
	)
	if err != nil {
		return fmt.Errorf("RemoveStudentFromCourses: %w", err)
	}
	return nil
}

func (s *Store) ClearTeacherFromCourses(ctx context.Context, teacherID primitive.ObjectID) error {
	_, err := s.courses.UpdateMany(ctx,
		bson.M{"teacher_id": teacherID},
		bson.M{"$set": bson.M{"teacher_id": nil}},
	)
	if err != nil {
		return fmt.Errorf("ClearTeacherFromCourses: %w", err)
	}
	return nil
}
