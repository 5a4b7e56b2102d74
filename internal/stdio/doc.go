// Package stdio provides a line-delimited JSON transport over a duplex byte stream.
//
// The transport does not launch anything itself: a DialFunc supplies the reader and
// writer (a child process's stdout and stdin, a socket, a pipe pair in tests). Every
// inbound line is one JSON object. Control responses are routed to a dedicated
// channel so that waiting for an acknowledgment never competes with the message
// stream.
package stdio
