package requestdata

import (
	"context"

	"github.com/google/uuid"
)

var requestDataKey = struct{}{}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	val := ctx.Value(requestDataKey)
	if rd, ok := val.(*RequestData); ok {
		return rd
	}
	return nil
}

// RequestData is the authenticated identity attached to a request.
// TenantID is Nil for platform admins operating outside a tenant.
type RequestData struct {
	TokenString   string
	UserID        uuid.UUID
	TenantID      uuid.UUID
	IsTenantAdmin bool
}
