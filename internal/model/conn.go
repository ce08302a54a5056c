package model

import "sync"

// Conn is the part of a websocket connection a game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// SyncConn serializes writes to a Conn. A websocket connection supports one
// concurrent writer, while state broadcasts and error replies are written
// from different goroutines.
type SyncConn struct {
	mu   sync.Mutex
	conn Conn
}

// NewSyncConn wraps conn, returning conn itself when it is already a
// SyncConn so every writer shares one lock.
func NewSyncConn(conn Conn) *SyncConn {
	if sc, ok := conn.(*SyncConn); ok {
		return sc
	}
	return &SyncConn{conn: conn}
}

func (c *SyncConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *SyncConn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(messageType, data)
}

// Close does not wait for a pending write; closing unblocks it.
func (c *SyncConn) Close() error {
	return c.conn.Close()
}

// wraps reports whether c is conn or wraps it.
func (c *SyncConn) wraps(conn Conn) bool {
	return Conn(c) == conn || c.conn == conn
}
