package graph

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jcondehz/course-graph-api/internal/storage/memory"
)

func newTestSchema(t *testing.T) graphql.Schema {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	schema, err := NewSchema(NewResolver(memory.New(), log))
	require.NoError(t, err)
	return schema
}

// execute runs a request through the engine and fails the test on any
// GraphQL error.
func execute(t *testing.T, schema graphql.Schema, query string, vars map[string]interface{}) map[string]interface{} {
	t.Helper()
	result := graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  query,
		VariableValues: vars,
		Context:        context.Background(),
	})
	require.Empty(t, result.Errors, "unexpected errors: %v", result.Errors)
	data, ok := result.Data.(map[string]interface{})
	require.True(t, ok, "unexpected data shape %T", result.Data)
	return data
}

func field(t *testing.T, data map[string]interface{}, name string) map[string]interface{} {
	t.Helper()
	obj, ok := data[name].(map[string]interface{})
	require.True(t, ok, "field %s: unexpected shape %T", name, data[name])
	return obj
}

// TestEnrollmentLifecycle drives the full scenario through the engine:
// create a teacher, a course, and a student; enroll; verify on both
// sides of the relationship; unenroll; verify again.
func TestEnrollmentLifecycle(t *testing.T) {
	schema := newTestSchema(t)

	data := execute(t, schema, `mutation {
		createTeacher(name: "Ada", email: "ada@x.io") { id name }
	}`, nil)
	teacherID := field(t, data, "createTeacher")["id"].(string)

	data = execute(t, schema, `mutation($tid: ID!) {
		createCourse(title: "CS101", description: "intro", teacher_id: $tid) {
			id
			title
			teacher_id { id name }
		}
	}`, map[string]interface{}{"tid": teacherID})
	course := field(t, data, "createCourse")
	courseID := course["id"].(string)
	assert.Equal(t, "Ada", course["teacher_id"].(map[string]interface{})["name"])

	data = execute(t, schema, `mutation {
		createStudent(name: "Bob", email: "bob@x.io") { id email }
	}`, nil)
	studentID := field(t, data, "createStudent")["id"].(string)

	data = execute(t, schema, `mutation($sid: ID!, $cid: ID!) {
		enrollStudentInCourse(studentId: $sid, courseId: $cid) {
			id
			students { id name }
		}
	}`, map[string]interface{}{"sid": studentID, "cid": courseID})
	students := field(t, data, "enrollStudentInCourse")["students"].([]interface{})
	require.Len(t, students, 1)
	assert.Equal(t, studentID, students[0].(map[string]interface{})["id"])

	// Both sides must agree: the student's enrolledCourses shows CS101.
	data = execute(t, schema, `query($sid: ID!) {
		student(id: $sid) { enrolledCourses { id title } }
	}`, map[string]interface{}{"sid": studentID})
	enrolled := field(t, data, "student")["enrolledCourses"].([]interface{})
	require.Len(t, enrolled, 1)
	assert.Equal(t, "CS101", enrolled[0].(map[string]interface{})["title"])

	data = execute(t, schema, `mutation($sid: ID!, $cid: ID!) {
		removeStudentFromCourse(studentId: $sid, courseId: $cid) {
			students { id }
		}
	}`, map[string]interface{}{"sid": studentID, "cid": courseID})
	students = field(t, data, "removeStudentFromCourse")["students"].([]interface{})
	assert.Empty(t, students)

	data = execute(t, schema, `query($cid: ID!) {
		course(id: $cid) { students { id } }
	}`, map[string]interface{}{"cid": courseID})
	assert.Empty(t, field(t, data, "course")["students"].([]interface{}))
}

func TestQueryWithUnknownIDReturnsNull(t *testing.T) {
	schema := newTestSchema(t)

	result := graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: `query($id: ID!) { student(id: $id) { id } }`,
		VariableValues: map[string]interface{}{
			"id": primitive.NewObjectID().Hex(),
		},
		Context: context.Background(),
	})
	require.Empty(t, result.Errors)
	data := result.Data.(map[string]interface{})
	assert.Nil(t, data["student"])
}

func TestQueryWithMalformedIDIsRequestError(t *testing.T) {
	schema := newTestSchema(t)

	result := graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: `{ student(id: "not-a-real-id-format") { id } }`,
		Context:       context.Background(),
	})
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0].Message, "invalid identifier")
}

func TestDeleteTeacherNullsCourseTeacherOnTheWire(t *testing.T) {
	schema := newTestSchema(t)

	data := execute(t, schema, `mutation {
		createTeacher(name: "Ada", email: "ada@x.io") { id }
	}`, nil)
	teacherID := field(t, data, "createTeacher")["id"].(string)

	data = execute(t, schema, `mutation($tid: ID!) {
		createCourse(title: "CS101", description: "intro", teacher_id: $tid) { id }
	}`, map[string]interface{}{"tid": teacherID})
	courseID := field(t, data, "createCourse")["id"].(string)

	data = execute(t, schema, `mutation($tid: ID!) {
		deleteTeacher(id: $tid)
	}`, map[string]interface{}{"tid": teacherID})
	assert.Equal(t, true, data["deleteTeacher"])

	data = execute(t, schema, `query($cid: ID!) {
		course(id: $cid) { title teacher_id { id } }
	}`, map[string]interface{}{"cid": courseID})
	course := field(t, data, "course")
	assert.Equal(t, "CS101", course["title"])
	assert.Nil(t, course["teacher_id"])
}

// TestHTTPEndpoint pushes one request through the real HTTP handler to
// make sure the wiring in main (handler config + schema) holds up.
func TestHTTPEndpoint(t *testing.T) {
	schema := newTestSchema(t)
	h := handler.New(&handler.Config{Schema: &schema})

	body := strings.NewReader(`{"query": "{ students { id name } }"}`)
	req := httptest.NewRequest(http.MethodPost, "/graphql", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Students []interface{} `json:"students"`
		} `json:"data"`
		Errors []interface{} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Errors)
	assert.NotNil(t, resp.Data.Students)
}
