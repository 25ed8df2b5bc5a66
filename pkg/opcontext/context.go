package opcontext

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type KeyContext string

var (
	keyOperation KeyContext = "operation"
	keyUserID    KeyContext = "user_id"
	keyRequestID KeyContext = "request_id"
	keyStartTime KeyContext = "start_time"
)

// DefaultTimeout bounds a single request-scoped operation
const DefaultTimeout = 30 * time.Second

// Metadata holds metadata of an operation
type Metadata struct {
	Operation string
	UserID    uuid.UUID
	RequestID string
	StartTime time.Time
}

// Begin derives an operation context carrying metadata and a timeout
func Begin(parentCtx context.Context, operation string, userID uuid.UUID, requestID string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parentCtx, DefaultTimeout)

	ctx = context.WithValue(ctx, keyOperation, operation)
	ctx = context.WithValue(ctx, keyUserID, userID)
	ctx = context.WithValue(ctx, keyRequestID, requestID)
	ctx = context.WithValue(ctx, keyStartTime, time.Now())

	return ctx, cancel
}

// GetOperation extracts the operation name from context
func GetOperation(ctx context.Context) (string, bool) {
	op, ok := ctx.Value(keyOperation).(string)
	return op, ok
}

// GetUserID extracts the caller from context
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(keyUserID).(uuid.UUID)
	return id, ok
}

// GetRequestID extracts the request id from context
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(keyRequestID).(string)
	return id, ok
}

// GetStartTime extracts the start time from context
func GetStartTime(ctx context.Context) (time.Time, bool) {
	t, ok := ctx.Value(keyStartTime).(time.Time)
	return t, ok
}

// GetMetadata extracts all operation metadata from context
func GetMetadata(ctx context.Context) *Metadata {
	op, _ := GetOperation(ctx)
	userID, _ := GetUserID(ctx)
	requestID, _ := GetRequestID(ctx)
	start, _ := GetStartTime(ctx)

	return &Metadata{
		Operation: op,
		UserID:    userID,
		RequestID: requestID,
		StartTime: start,
	}
}

// Fields returns the metadata as zap fields. Missing values are skipped.
func Fields(ctx context.Context) []zap.Field {
	meta := GetMetadata(ctx)
	fields := make([]zap.Field, 0, 4)
	if meta.Operation != "" {
		fields = append(fields, zap.String("operation", meta.Operation))
	}
	if meta.UserID != uuid.Nil {
		fields = append(fields, zap.String("user_id", meta.UserID.String()))
	}
	if meta.RequestID != "" {
		fields = append(fields, zap.String("request_id", meta.RequestID))
	}
	if !meta.StartTime.IsZero() {
		fields = append(fields, zap.Duration("elapsed", time.Since(meta.StartTime)))
	}
	return fields
}
