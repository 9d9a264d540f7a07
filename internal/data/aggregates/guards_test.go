package aggregates

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestRequireSameTenantMessage(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	if err := RequireSameTenant("Module", owner, "course", owner); err != nil {
		t.Fatalf("matching tenants: %v", err)
	}

	err := RequireSameTenant("Module", owner, "course", other)
	if err == nil {
		t.Fatal("mismatched tenants: want error")
	}
	if !errors.Is(err, ErrInvariant) {
		t.Fatalf("want invariant error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Module tenant must match course tenant.") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestRequireExactlyOne(t *testing.T) {
	id := uuid.New()

	cases := []struct {
		name   string
		course *uuid.UUID
		path   *uuid.UUID
		wantOK bool
	}{
		{"course only", &id, nil, true},
		{"path only", nil, &id, true},
		{"neither", nil, nil, false},
		{"both", &id, &id, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := RequireExactlyOne("Enrollment", map[string]*uuid.UUID{
				"course": tc.course,
				"path":   tc.path,
			}, "course", "path")
			if tc.wantOK && err != nil {
				t.Fatalf("want ok, got %v", err)
			}
			if !tc.wantOK {
				if err == nil {
					t.Fatal("want error")
				}
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("want validation error, got %v", err)
				}
				if !strings.Contains(err.Error(), "Enrollment must have exactly one of course or path.") {
					t.Fatalf("unexpected message: %v", err)
				}
			}
		})
	}
}

func TestRequirePercentBounds(t *testing.T) {
	if err := RequirePercent("percent", 0); err != nil {
		t.Fatalf("0: %v", err)
	}
	if err := RequirePercent("percent", 100); err != nil {
		t.Fatalf("100: %v", err)
	}
	if err := RequirePercent("percent", 101); err == nil {
		t.Fatal("101: want error")
	}
	if err := RequirePercent("percent", -1); err == nil {
		t.Fatal("-1: want error")
	}
}

func TestRequireStatusAllowed(t *testing.T) {
	if err := RequireStatusAllowed("draft", "draft", "published"); err != nil {
		t.Fatalf("allowed: %v", err)
	}
	if err := RequireStatusAllowed("archived", "draft", "published"); err == nil {
		t.Fatal("disallowed: want error")
	}
}
