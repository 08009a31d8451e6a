package requestdata

import (
	"context"

	"github.com/google/uuid"
)

type requestDataKeyType struct{}

var requestDataKey = requestDataKeyType{}

// RequestData carries the authenticated caller through the request context.
// The middleware fills it from the verified token; handlers and services only
// ever read it.
type RequestData struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey).(*RequestData); ok {
		return rd
	}
	return nil
}
