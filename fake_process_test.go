package claudesdk

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"testing"
)

// fakeProcess plays the conversational process on the far side of a stdio transport.
//
// Every user turn is answered with an assistant message echoing the prompt and a
// result message. Interrupts are acknowledged when ackInterrupts is set. A prompt
// of "garbage" is answered with a line that is not JSON.
type fakeProcess struct {
	ackInterrupts bool

	mu       sync.Mutex
	received []map[string]any
	dials    int
}

// newFakeTransport returns a stdio transport wired to a fresh fake process per dial.
func newFakeTransport(t *testing.T, ackInterrupts bool) (Transport, *fakeProcess) {
	t.Helper()

	p := &fakeProcess{ackInterrupts: ackInterrupts}

	transport := NewStdioTransport(func(_ context.Context) (io.ReadCloser, io.WriteCloser, error) {
		clientRead, processWrite := io.Pipe()
		processRead, clientWrite := io.Pipe()

		p.mu.Lock()
		p.dials++
		p.mu.Unlock()

		go p.serve(processRead, processWrite)

		return clientRead, clientWrite, nil
	})

	return transport, p
}

func (p *fakeProcess) serve(in io.ReadCloser, out io.WriteCloser) {
	defer in.Close()
	defer out.Close()

	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		var line map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &line); err != nil {
			return
		}

		p.mu.Lock()
		p.received = append(p.received, line)
		p.mu.Unlock()

		var replies []string

		switch line["type"] {
		case "control_request":
			if p.ackInterrupts {
				replies = append(replies, fmt.Sprintf(
					`{"type":"control_response","response":{"subtype":"success","request_id":%q}}`,
					line["request_id"],
				))
			}

		case "user":
			sessionID, _ := line["session_id"].(string)
			turn, _ := line["message"].(map[string]any)
			prompt, _ := turn["content"].(string)

			if prompt == "garbage" {
				replies = append(replies, "{garbage")

				break
			}

			echo, _ := json.Marshal(prompt)
			replies = append(replies,
				fmt.Sprintf(`{"type":"assistant","session_id":%q,"echo":%s}`, sessionID, echo),
				fmt.Sprintf(`{"type":"result","session_id":%q}`, sessionID),
			)
		}

		for _, reply := range replies {
			if _, err := io.WriteString(out, reply+"\n"); err != nil {
				return
			}
		}
	}
}

func (p *fakeProcess) lines() []map[string]any {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]map[string]any(nil), p.received...)
}

func (p *fakeProcess) dialCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.dials
}
