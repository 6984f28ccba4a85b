package handler

import (
	"context"
	"go-card-bank/common"
	"io"
	"time"
)

// Command is a single console menu action.
type Command func(ctx context.Context) *common.AppError

func ErrorHandlingMiddleware(out io.Writer, next Command) Command {
	return func(ctx context.Context) *common.AppError {
		if err := next(ctx); err != nil {
			err.Send(out)
			return err
		}
		return nil
	}
}

// CommandRecorder receives one observation per handled command.
type CommandRecorder interface {
	RecordCommand(command, outcome string, duration time.Duration)
}

// InstrumentMiddleware reports the outcome of next to rec: "ok" or the
// kind of the returned error.
func InstrumentMiddleware(rec CommandRecorder, name string, next Command) Command {
	return func(ctx context.Context) *common.AppError {
		start := time.Now()
		err := next(ctx)
		outcome := "ok"
		if err != nil {
			outcome = string(err.Kind)
		}
		rec.RecordCommand(name, outcome, time.Since(start))
		return err
	}
}
