package delete_blocked_slot

import "context"

type BlockedSlotService interface {
	Delete(ctx context.Context, blockID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
