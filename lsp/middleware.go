package lsp

import (
	"fmt"
	"runtime/debug"

	"bennypowers.dev/cssval/internal/log"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// method wraps a request handler with logging and panic recovery. It
// returns the bare function type so it fits the protocol.Handler fields.
func method[P, R any](name string, handler func(*glsp.Context, P) (R, error)) func(*glsp.Context, P) (R, error) {
	return func(ctx *glsp.Context, params P) (result R, err error) {
		defer recoverHandler(ctx, name, &err)
		log.Debug("%s started", name)
		result, err = handler(ctx, params)
		if err != nil {
			logError(ctx, "%s: %v", name, err)
			var zero R
			return zero, fmt.Errorf("%s: %w", name, err)
		}
		log.Debug("%s completed", name)
		return result, nil
	}
}

// notify wraps a notification handler
func notify[P any](name string, handler func(*glsp.Context, P) error) func(*glsp.Context, P) error {
	return func(ctx *glsp.Context, params P) (err error) {
		defer recoverHandler(ctx, name, &err)
		log.Debug("%s started", name)
		if err = handler(ctx, params); err != nil {
			logError(ctx, "%s: %v", name, err)
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	}
}

// noParam wraps a handler without params, like shutdown
func noParam(name string, handler func(*glsp.Context) error) func(*glsp.Context) error {
	return func(ctx *glsp.Context) (err error) {
		defer recoverHandler(ctx, name, &err)
		log.Debug("%s started", name)
		if err = handler(ctx); err != nil {
			logError(ctx, "%s: %v", name, err)
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	}
}

func recoverHandler(ctx *glsp.Context, name string, err *error) {
	if r := recover(); r != nil {
		log.Error("panic in %s: %v\n%s", name, r, debug.Stack())
		logError(ctx, "internal error in %s: %v", name, r)
		*err = fmt.Errorf("internal error in %s", name)
	}
}

// logError logs to stderr and, when connected, to the client's output
// window
func logError(ctx *glsp.Context, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	log.Error("%s", message)
	if ctx != nil && ctx.Notify != nil {
		ctx.Notify(protocol.ServerWindowLogMessage, &protocol.LogMessageParams{
			Type:    protocol.MessageTypeError,
			Message: message,
		})
	}
}
