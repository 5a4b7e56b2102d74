// Package relay bridges a transport's continuous inbound message stream to
// on-demand consumers.
//
// A Relay routes every inbound message to exactly one destination: the
// currently attached consumer, or an internal buffer when no consumer is
// attached or the attached one has gone away. Attaching a consumer first hands
// it the whole buffer, in order, then installs it for live delivery, so a
// consumer always sees buffered messages before newer ones.
//
// Messages are never dropped: when a consumer stops iterating, whatever was
// queued for it and not yet yielded goes back to the front of the buffer for
// the next consumer. A fatal stream error that arrives with nobody attached is
// likewise held and handed to the next consumer after the buffered messages.
//
// Each connection drains its stream in a Pass. Starting a pass takes delivery
// over from any older pass, which then stops without touching the consumer.
package relay
