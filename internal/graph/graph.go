// Package graph implements the GraphQL surface of the course-management
// API: the read-only queries, the mutation protocol, and the lazy
// relationship resolvers.
//
// MUTATION PROTOCOL
// ─────────────────
// The relationship arrays are denormalised on both sides (a student's
// enrolledCourses mirrors each course's students; a teacher's
// coursesTaught mirrors each course's teacher_id) and are kept in sync
// by hand: every mutation that touches a relationship updates both
// sides in the same logical operation. There is NO transaction around
// the 1–3 store calls a mutation issues — if a later call fails after
// an earlier one succeeded, the data is left partially updated and the
// caller only sees the error. Every relationship write is idempotent
// ($addToSet / $pull semantics), so repeating the failed mutation
// converges back to a consistent state instead of compounding the
// damage.
//
// RELATIONSHIP RESOLUTION
// ───────────────────────
// Relationship fields are resolved per parent, on demand, when the
// query asks for them — the classic N+1 pattern. That is a deliberate
// simplicity trade-off for this service's scale; batching parents into
// a single $in lookup would be the production optimisation.
package graph

import (
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/jcondehz/course-graph-api/internal/storage"
)

// ErrReferenceNotFound marks a mutation argument that decoded into a
// well-formed identifier but matched no record — e.g. creating a course
// for a teacher that does not exist. Match it with errors.Is.
var ErrReferenceNotFound = errors.New("referenced entity not found")

// Resolver holds everything the operations need: the storage handle and
// the logger, both injected once at startup. Nothing in this package
// reaches for globals — main constructs one Resolver and the schema
// closes over it.
type Resolver struct {
	store    storage.Storage
	log      *slog.Logger
	validate *validator.Validate
}

// NewResolver wires a Resolver to its dependencies.
func NewResolver(store storage.Storage, log *slog.Logger) *Resolver {
	return &Resolver{
		store:    store,
		log:      log,
		validate: validator.New(),
	}
}
