package claudesdk

import (
	"context"
	"fmt"
	"iter"
)

// PromptsFromSlice creates a prompt sequence from a slice.
// This is useful for sending a fixed set of prompts with SendAll.
func PromptsFromSlice(prompts []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, prompt := range prompts {
			if !yield(prompt) {
				return
			}
		}
	}
}

// PromptsFromChannel creates a prompt sequence from a channel.
// This is useful for prompts produced over time.
// The sequence completes when the channel is closed.
func PromptsFromChannel(ch <-chan string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for prompt := range ch {
			if !yield(prompt) {
				return
			}
		}
	}
}

// SendAll sends every prompt of the sequence, in order, to one session.
//
// It stops at the first failed send or when ctx is done, returning the error.
// Optional sessionID defaults to the client's default session.
func SendAll(ctx context.Context, client Client, prompts iter.Seq[string], sessionID ...string) error {
	sent := 0

	for prompt := range prompts {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := client.Send(ctx, prompt, sessionID...); err != nil {
			return fmt.Errorf("send prompt %d: %w", sent+1, err)
		}

		sent++
	}

	return nil
}
