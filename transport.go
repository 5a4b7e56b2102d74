package claudesdk

import (
	"github.com/wagiedev/claude-session-sdk-go/internal/config"
	"github.com/wagiedev/claude-session-sdk-go/internal/stdio"
)

// Transport defines the interface to the conversational process.
// Implement this to provide custom transports for testing, mocking,
// or alternative communication methods.
//
// NewStdioTransport provides a line-delimited JSON implementation over
// any byte stream.
type Transport = config.Transport

// StdioDialFunc opens the duplex byte stream used by a stdio transport.
// The reader carries inbound lines, the writer outbound ones.
type StdioDialFunc = stdio.DialFunc

// NewStdioTransport creates a transport that exchanges line-delimited JSON over
// the stream returned by dial. Only WithLogger is honoured among opts.
//
// Example wiring a child process:
//
//	transport := claudesdk.NewStdioTransport(func(ctx context.Context) (io.ReadCloser, io.WriteCloser, error) {
//	    cmd := exec.CommandContext(ctx, "my-agent", "--stream-json")
//	    stdin, err := cmd.StdinPipe()
//	    if err != nil {
//	        return nil, nil, err
//	    }
//	    stdout, err := cmd.StdoutPipe()
//	    if err != nil {
//	        return nil, nil, err
//	    }
//	    return stdout, stdin, cmd.Start()
//	})
func NewStdioTransport(dial StdioDialFunc, opts ...Option) Transport {
	return stdio.New(applyOptions(opts).Logger, dial)
}
