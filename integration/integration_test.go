//go:build integration

package integration

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"

	claudesdk "github.com/wagiedev/claude-session-sdk-go"
)

// agentArgs runs the Claude CLI as a line-delimited JSON conversational process.
var agentArgs = []string{
	"--print",
	"--input-format", "stream-json",
	"--output-format", "stream-json",
	"--verbose",
	"--model", "haiku",
}

// processOutput reaps the process when its output is closed.
type processOutput struct {
	io.ReadCloser
	cmd *exec.Cmd
}

func (p processOutput) Close() error {
	err := p.ReadCloser.Close()
	_ = p.cmd.Wait()

	return err
}

// newCLIClient returns a client over a Claude CLI process, skipping the test
// if the CLI is not installed.
func newCLIClient(t *testing.T, opts ...claudesdk.Option) claudesdk.Client {
	t.Helper()

	cliPath, err := exec.LookPath("claude")
	if err != nil {
		t.Skip("Claude CLI not installed")
	}

	dial := func(ctx context.Context) (io.ReadCloser, io.WriteCloser, error) {
		//nolint:gosec // G204: test launches the CLI found on PATH
		cmd := exec.CommandContext(ctx, cliPath, agentArgs...)
		cmd.Stderr = os.Stderr

		stdin, err := cmd.StdinPipe()
		if err != nil {
			return nil, nil, fmt.Errorf("stdin pipe: %w", err)
		}

		stdout, err := cmd.StdoutPipe()
		if err != nil {
			return nil, nil, fmt.Errorf("stdout pipe: %w", err)
		}

		if err := cmd.Start(); err != nil {
			return nil, nil, fmt.Errorf("start CLI: %w", err)
		}

		return processOutput{ReadCloser: stdout, cmd: cmd}, stdin, nil
	}

	client := claudesdk.NewClient(append([]claudesdk.Option{
		claudesdk.WithTransport(claudesdk.NewStdioTransport(dial)),
	}, opts...)...)

	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	return client
}

// assistantText concatenates the text blocks of an assistant message.
func assistantText(msg claudesdk.Message) string {
	body, _ := msg["message"].(map[string]any)
	blocks, _ := body["content"].([]any)

	var text strings.Builder

	for _, b := range blocks {
		block, _ := b.(map[string]any)
		if s, ok := block["text"].(string); ok {
			text.WriteString(s)
		}
	}

	return text.String()
}

// contains42 checks if a string contains "42" in various formats.
func contains42(s string) bool {
	lower := strings.ToLower(s)

	return strings.Contains(lower, "42") ||
		strings.Contains(lower, "forty-two") ||
		strings.Contains(lower, "forty two")
}
