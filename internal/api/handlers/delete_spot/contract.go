package delete_spot

import (
	"context"
)

type SpotService interface {
	Delete(ctx context.Context, number int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
