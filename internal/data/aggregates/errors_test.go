package aggregates

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainagg "github.com/crewlearn/crewlearn-backend/internal/domain/aggregates"
)

func TestMapErrorTaggedErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want domainagg.ErrorCode
	}{
		{"validation", ValidationError("bad input"), domainagg.CodeValidation},
		{"invariant", InvariantError("rule broken"), domainagg.CodeInvariantViolation},
		{"conflict", ConflictError("duplicate"), domainagg.CodeConflict},
		{"precondition", PreconditionError("limit reached"), domainagg.CodePreconditionFailed},
		{"not found", gorm.ErrRecordNotFound, domainagg.CodeNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := MapError("test.op", tc.err)
			if got := domainagg.CodeOf(mapped); got != tc.want {
				t.Fatalf("code: want=%q got=%q", tc.want, got)
			}
		})
	}
}

func TestMapErrorPgUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "uq_module_course_order"}
	mapped := MapError("test.op", pgErr)
	if !domainagg.IsCode(mapped, domainagg.CodeConflict) {
		t.Fatalf("want conflict, got %v", mapped)
	}
}

func TestMapErrorPgForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503"}
	mapped := MapError("test.op", pgErr)
	if !domainagg.IsCode(mapped, domainagg.CodePreconditionFailed) {
		t.Fatalf("want precondition_failed, got %v", mapped)
	}
}

func TestMapErrorPassesThroughAggregateError(t *testing.T) {
	orig := domainagg.NewError(domainagg.CodeNotFound, "test.op", "missing", nil)
	mapped := MapError("other.op", orig)
	if !errors.Is(mapped, orig) && mapped != orig {
		t.Fatalf("want original error preserved, got %v", mapped)
	}
}

func TestMapErrorNil(t *testing.T) {
	if got := MapError("test.op", nil); got != nil {
		t.Fatalf("want nil, got %v", got)
	}
}
