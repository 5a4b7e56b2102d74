package claudesdk

import (
	"context"
	"fmt"
)

// WithClient manages client lifecycle with automatic cleanup.
//
// This helper creates a client, connects it with the provided options, executes the
// callback function, and ensures proper cleanup via Disconnect when done.
//
// The callback receives a connected Client that is ready for use.
// If the callback returns an error, it is returned to the caller.
// If Disconnect fails, a warning is logged but does not override the callback's error.
//
// Example usage:
//
//	err := claudesdk.WithClient(ctx, func(c claudesdk.Client) error {
//	    if err := c.Send(ctx, "Hello"); err != nil {
//	        return err
//	    }
//	    for msg, err := range c.ReceiveResponse(ctx) {
//	        if err != nil {
//	            return err
//	        }
//	        // process message...
//	    }
//	    return nil
//	},
//	    claudesdk.WithTransport(transport),
//	    claudesdk.WithLogger(log),
//	)
func WithClient(ctx context.Context, fn func(Client) error, opts ...Option) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	options := applyOptions(opts)

	log := options.Logger
	if log == nil {
		log = NopLogger()
	}

	client := NewClient(opts...)
	if err := client.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect client: %w", err)
	}

	defer func() {
		// The caller's context may already be done; disconnect regardless.
		if err := client.Disconnect(context.WithoutCancel(ctx)); err != nil {
			log.Warn("failed to disconnect client", "error", err)
		}
	}()

	return fn(client)
}
