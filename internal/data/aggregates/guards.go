package aggregates

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// RequireSameTenant validates that a related row belongs to the owning
// tenant. The message follows the shape "<Owner> tenant must match
// <related> tenant." so callers surface consistent wording.
func RequireSameTenant(owner string, ownerTenant uuid.UUID, related string, relatedTenant uuid.UUID) error {
	if ownerTenant == uuid.Nil {
		return ValidationError(fmt.Sprintf("%s tenant is required", owner))
	}
	if relatedTenant != ownerTenant {
		return InvariantError(fmt.Sprintf("%s tenant must match %s tenant.", owner, related))
	}
	return nil
}

// RequireExactlyOne validates an exactly-one-of rule over nullable
// references. Keys name the references in the error message.
func RequireExactlyOne(owner string, refs map[string]*uuid.UUID, keys ...string) error {
	set := 0
	for _, k := range keys {
		if id, ok := refs[k]; ok && id != nil && *id != uuid.Nil {
			set++
		}
	}
	if set != 1 {
		return ValidationError(fmt.Sprintf("%s must have exactly one of %s.", owner, strings.Join(keys, " or ")))
	}
	return nil
}

// RequirePercent validates a 0..100 bound.
func RequirePercent(field string, value int) error {
	if value < 0 || value > 100 {
		return ValidationError(fmt.Sprintf("%s must be between 0 and 100.", field))
	}
	return nil
}

// RequireOrder validates a positive ordering value.
func RequireOrder(field string, value int) error {
	if value < 1 {
		return ValidationError(fmt.Sprintf("%s must be >= 1", field))
	}
	return nil
}

// RequireStatusAllowed validates current status against allowed values.
func RequireStatusAllowed(current string, allowed ...string) error {
	current = strings.TrimSpace(current)
	if len(allowed) == 0 {
		return ValidationError("allowed statuses cannot be empty")
	}
	for _, s := range allowed {
		if strings.EqualFold(current, strings.TrimSpace(s)) {
			return nil
		}
	}
	return ConflictError("status transition not allowed")
}
