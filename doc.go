// Package claudesdk provides a stateful client for a long-lived conversational
// process, such as the Claude CLI running in stream-json mode.
//
// The client exchanges messages with the process over a single ordered duplex
// channel, keeps per-session bookkeeping of what it has sent, and can interrupt
// the current turn through an out-of-band control request that the process
// acknowledges.
//
// # Basic Usage
//
// Supply a Transport, connect, send a prompt, and read the turn:
//
//	transport := claudesdk.NewStdioTransport(dial)
//
//	client := claudesdk.NewClient(claudesdk.WithTransport(transport))
//	defer client.Disconnect(ctx)
//
//	if err := client.Connect(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := client.Send(ctx, "What is 2+2?"); err != nil {
//	    log.Fatal(err)
//	}
//
//	for msg, err := range client.ReceiveResponse(ctx) {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(msg.MessageType())
//	}
//
// Or let WithClient manage the lifecycle:
//
//	err := claudesdk.WithClient(ctx, func(c claudesdk.Client) error {
//	    return c.Send(ctx, "Hello")
//	}, claudesdk.WithTransport(transport))
//
// # Receiving
//
// Inbound messages are relayed to whichever ReceiveMessages iteration started
// last. While nobody is receiving they are buffered, and the next iteration
// yields the buffered messages first, in arrival order. Messages an iteration
// leaves unread are kept for the next one, so nothing is lost between turns.
//
// # Sessions
//
// Send and SendToolResult take an optional session id. The client counts the
// messages sent per session; ListSessions and SessionInfo report them until
// Disconnect.
//
// # Interrupts
//
// Interrupt sends a control request and waits for the matching acknowledgment,
// bounded by WithInterruptTimeout. Waiting never holds up message delivery.
//
// # Settings File
//
// Interrupt timeout, default session and log level can also come from YAML:
//
//	settings, err := claudesdk.LoadSettings("client.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := claudesdk.NewClient(claudesdk.WithSettings(settings), claudesdk.WithTransport(transport))
//
// # Logging
//
// For detailed operation tracking, use WithLogger:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
//	client := claudesdk.NewClient(
//	    claudesdk.WithTransport(transport),
//	    claudesdk.WithLogger(logger),
//	)
//
// # Error Handling
//
// The SDK provides typed errors for different failure scenarios:
//
//	if err := client.Interrupt(ctx); err != nil {
//	    if timeoutErr, ok := errors.AsType[*claudesdk.TimeoutError](err); ok {
//	        log.Printf("no acknowledgment within %s", timeoutErr.Timeout)
//	    }
//	    if errors.Is(err, claudesdk.ErrInvalidState) {
//	        log.Print("not connected")
//	    }
//	}
//
// A fatal error on the inbound stream is yielded to the current receiver and
// moves the client to StateError; Connect again to recover.
package claudesdk
