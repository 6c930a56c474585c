// GraphQL schema construction. The engine (graphql-go) is handed a
// schema plus a resolver map and owns parsing, validation, and
// dispatch; everything here is a thin adapter from ResolveParams to the
// typed Resolver methods.
//
// The adapters also normalise two things the engine cares about:
//
//   - Sources: every object value passed to field resolvers is a
//     *types.X pointer, so list results are converted from value
//     slices before returning.
//
//   - Nulls: a nil *types.X is returned as an untyped nil so the
//     engine sees a real GraphQL null instead of a typed nil pointer.

package graph

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/jcondehz/course-graph-api/internal/ident"
	"github.com/jcondehz/course-graph-api/internal/types"
)

// NewSchema builds the executable schema over r.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	studentType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Student",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					student, err := studentSource(p)
					if err != nil {
						return nil, err
					}
					return ident.Encode(student.ID), nil
				},
			},
			"name":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	teacherType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Teacher",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					teacher, err := teacherSource(p)
					if err != nil {
						return nil, err
					}
					return ident.Encode(teacher.ID), nil
				},
			},
			"name":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	courseType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Course",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					course, err := courseSource(p)
					if err != nil {
						return nil, err
					}
					return ident.Encode(course.ID), nil
				},
			},
			"title":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	// The relationship fields form cycles (Student -> Course -> Student,
	// Course -> Teacher -> Course), so they are attached after all three
	// object types exist.
	studentType.AddFieldConfig("enrolledCourses", &graphql.Field{
		Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(courseType))),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			student, err := studentSource(p)
			if err != nil {
				return nil, err
			}
			courses, err := r.EnrolledCourses(p.Context, student)
			if err != nil {
				return nil, err
			}
			return coursePtrs(courses), nil
		},
	})

	teacherType.AddFieldConfig("coursesTaught", &graphql.Field{
		Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(courseType))),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			teacher, err := teacherSource(p)
			if err != nil {
				return nil, err
			}
			courses, err := r.CoursesTaught(p.Context, teacher)
			if err != nil {
				return nil, err
			}
			return coursePtrs(courses), nil
		},
	})

	courseType.AddFieldConfig("teacher_id", &graphql.Field{
		Type: teacherType, // nullable: the teacher may be deleted
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			course, err := courseSource(p)
			if err != nil {
				return nil, err
			}
			teacher, err := r.CourseTeacher(p.Context, course)
			if err != nil {
				return nil, err
			}
			if teacher == nil {
				return nil, nil
			}
			return teacher, nil
		},
	})

	courseType.AddFieldConfig("students", &graphql.Field{
		Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(studentType))),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			course, err := courseSource(p)
			if err != nil {
				return nil, err
			}
			students, err := r.CourseStudents(p.Context, course)
			if err != nil {
				return nil, err
			}
			return studentPtrs(students), nil
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"students": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(studentType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					students, err := r.Students(p.Context)
					if err != nil {
						return nil, err
					}
					return studentPtrs(students), nil
				},
			},
			"student": &graphql.Field{
				Type: studentType,
				Args: idArg(),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					student, err := r.Student(p.Context, stringArg(p, "id"))
					if err != nil {
						return nil, err
					}
					if student == nil {
						return nil, nil
					}
					return student, nil
				},
			},
			"teachers": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(teacherType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					teachers, err := r.Teachers(p.Context)
					if err != nil {
						return nil, err
					}
					return teacherPtrs(teachers), nil
				},
			},
			"teacher": &graphql.Field{
				Type: teacherType,
				Args: idArg(),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					teacher, err := r.Teacher(p.Context, stringArg(p, "id"))
					if err != nil {
						return nil, err
					}
					if teacher == nil {
						return nil, nil
					}
					return teacher, nil
				},
			},
			"courses": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(courseType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					courses, err := r.Courses(p.Context)
					if err != nil {
						return nil, err
					}
					return coursePtrs(courses), nil
				},
			},
			"course": &graphql.Field{
				Type: courseType,
				Args: idArg(),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					course, err := r.Course(p.Context, stringArg(p, "id"))
					if err != nil {
						return nil, err
					}
					if course == nil {
						return nil, nil
					}
					return course, nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createStudent": &graphql.Field{
				Type: graphql.NewNonNull(studentType),
				Args: graphql.FieldConfigArgument{
					"name":  requiredString(),
					"email": requiredString(),
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.CreateStudent(p.Context, types.CreateStudentInput{
						Name:  stringArg(p, "name"),
						Email: stringArg(p, "email"),
					})
				},
			},
			"createTeacher": &graphql.Field{
				Type: graphql.NewNonNull(teacherType),
				Args: graphql.FieldConfigArgument{
					"name":  requiredString(),
					"email": requiredString(),
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.CreateTeacher(p.Context, types.CreateTeacherInput{
						Name:  stringArg(p, "name"),
						Email: stringArg(p, "email"),
					})
				},
			},
			"createCourse": &graphql.Field{
				Type: graphql.NewNonNull(courseType),
				Args: graphql.FieldConfigArgument{
					"title":       requiredString(),
					"description": requiredString(),
					"teacher_id":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.CreateCourse(p.Context, types.CreateCourseInput{
						Title:       stringArg(p, "title"),
						Description: stringArg(p, "description"),
						TeacherID:   stringArg(p, "teacher_id"),
					})
				},
			},
			"updateStudent": &graphql.Field{
				Type: studentType,
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"name":  optionalString(),
					"email": optionalString(),
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					student, err := r.UpdateStudent(p.Context, stringArg(p, "id"), types.UpdateStudentInput{
						Name:  optionalStringArg(p, "name"),
						Email: optionalStringArg(p, "email"),
					})
					if err != nil {
						return nil, err
					}
					if student == nil {
						return nil, nil
					}
					return student, nil
				},
			},
			"updateTeacher": &graphql.Field{
				Type: teacherType,
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"name":  optionalString(),
					"email": optionalString(),
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					teacher, err := r.UpdateTeacher(p.Context, stringArg(p, "id"), types.UpdateTeacherInput{
						Name:  optionalStringArg(p, "name"),
						Email: optionalStringArg(p, "email"),
					})
					if err != nil {
						return nil, err
					}
					if teacher == nil {
						return nil, nil
					}
					return teacher, nil
				},
			},
			"updateCourse": &graphql.Field{
				Type: courseType,
				Args: graphql.FieldConfigArgument{
					"id":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"title":       optionalString(),
					"description": optionalString(),
					"teacher_id":  &graphql.ArgumentConfig{Type: graphql.ID},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					course, err := r.UpdateCourse(p.Context, stringArg(p, "id"), types.UpdateCourseInput{
						Title:       optionalStringArg(p, "title"),
						Description: optionalStringArg(p, "description"),
						TeacherID:   optionalStringArg(p, "teacher_id"),
					})
					if err != nil {
						return nil, err
					}
					if course == nil {
						return nil, nil
					}
					return course, nil
				},
			},
			"deleteStudent": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: idArg(),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.DeleteStudent(p.Context, stringArg(p, "id"))
				},
			},
			"deleteTeacher": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: idArg(),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.DeleteTeacher(p.Context, stringArg(p, "id"))
				},
			},
			"deleteCourse": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: idArg(),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.DeleteCourse(p.Context, stringArg(p, "id"))
				},
			},
			"enrollStudentInCourse": &graphql.Field{
				Type: courseType,
				Args: graphql.FieldConfigArgument{
					"studentId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"courseId":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					course, err := r.EnrollStudentInCourse(p.Context,
						stringArg(p, "studentId"), stringArg(p, "courseId"))
					if err != nil {
						return nil, err
					}
					if course == nil {
						return nil, nil
					}
					return course, nil
				},
			},
			"removeStudentFromCourse": &graphql.Field{
				Type: courseType,
				Args: graphql.FieldConfigArgument{
					"studentId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"courseId":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					course, err := r.RemoveStudentFromCourse(p.Context,
						stringArg(p, "studentId"), stringArg(p, "courseId"))
					if err != nil {
						return nil, err
					}
					if course == nil {
						return nil, nil
					}
					return course, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

// ─────────────────────────────────────────────────────────────────────────────
// Argument and source helpers
// ─────────────────────────────────────────────────────────────────────────────

func idArg() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
	}
}

func requiredString() *graphql.ArgumentConfig {
	return &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)}
}

func optionalString() *graphql.ArgumentConfig {
	return &graphql.ArgumentConfig{Type: graphql.String}
}

// stringArg reads a required string/ID argument. A missing or non-string
// value yields "" — for id arguments that fails identifier decoding,
// which is the right request-level error.
func stringArg(p graphql.ResolveParams, name string) string {
	value, _ := p.Args[name].(string)
	return value
}

// optionalStringArg reads an optional argument, nil when omitted.
func optionalStringArg(p graphql.ResolveParams, name string) *string {
	if value, ok := p.Args[name].(string); ok {
		return &value
	}
	return nil
}

func studentSource(p graphql.ResolveParams) (*types.Student, error) {
	student, ok := p.Source.(*types.Student)
	if !ok || student == nil {
		return nil, fmt.Errorf("unexpected source %T for Student field", p.Source)
	}
	return student, nil
}

func teacherSource(p graphql.ResolveParams) (*types.Teacher, error) {
	teacher, ok := p.Source.(*types.Teacher)
	if !ok || teacher == nil {
		return nil, fmt.Errorf("unexpected source %T for Teacher field", p.Source)
	}
	return teacher, nil
}

func courseSource(p graphql.ResolveParams) (*types.Course, error) {
	course, ok := p.Source.(*types.Course)
	if !ok || course == nil {
		return nil, fmt.Errorf("unexpected source %T for Course field", p.Source)
	}
	return course, nil
}

func studentPtrs(students []types.Student) []*types.Student {
	out := make([]*types.Student, len(students))
	for i := range students {
		out[i] = &students[i]
	}
	return out
}

func teacherPtrs(teachers []types.Teacher) []*types.Teacher {
	out := make([]*types.Teacher, len(teachers))
	for i := range teachers {
		out[i] = &teachers[i]
	}
	return out
}

func coursePtrs(courses []types.Course) []*types.Course {
	out := make([]*types.Course, len(courses))
	for i := range courses {
		out[i] = &courses[i]
	}
	return out
}
