package scheduler

import "errors"

var (
	ErrInvalidSpec = errors.New("scheduler: invalid cron spec")
)
