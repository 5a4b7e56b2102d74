// Package session tracks the logical conversation threads of a client.
//
// A session is created lazily the first time a message is sent under its id
// and only carries message-count bookkeeping. The registry has no eviction
// policy: sessions live until the client disconnects, which clears it.
package session
