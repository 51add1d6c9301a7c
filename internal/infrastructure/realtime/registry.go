package realtime

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
)

// Registry tracks live observer connections and the rooms they joined. Every
// read and write of the connection and room maps goes through mu; no method
// performs network I/O while holding it.
type Registry struct {
	mu     sync.RWMutex
	conns  map[string]*Connection
	rooms  map[string]map[string]*Connection
	buffer int
	logger *zap.Logger
}

// NewRegistry creates an empty registry. buffer is the outbound queue size of
// each connection.
func NewRegistry(buffer int, logger *zap.Logger) *Registry {
	return &Registry{
		conns:  make(map[string]*Connection),
		rooms:  make(map[string]map[string]*Connection),
		buffer: buffer,
		logger: logger,
	}
}

// Register creates a connection under id, or under a fresh uuid when id is
// empty. A connection already registered under the same id is replaced and closed.
func (r *Registry) Register(id string) *Connection {
	if id == "" {
		id = uuid.NewString()
	}
	conn := newConnection(id, r.buffer)

	r.mu.Lock()
	old := r.conns[id]
	if old != nil {
		r.purgeLocked(old)
	}
	r.conns[id] = conn
	r.mu.Unlock()

	if old != nil {
		old.Close()
		r.logger.Info("realtime.connection.replaced", zap.String("connection_id", id))
	}
	r.logger.Debug("realtime.connection.registered", zap.String("connection_id", id))
	return conn
}

// Deregister removes the connection and purges it from every room. Unknown ids
// are ignored.
func (r *Registry) Deregister(id string) {
	r.mu.Lock()
	conn, ok := r.conns[id]
	if ok {
		r.purgeLocked(conn)
	}
	r.mu.Unlock()

	if ok {
		conn.Close()
		r.logger.Debug("realtime.connection.deregistered", zap.String("connection_id", id))
	}
}

// remove deregisters conn only if it is still the connection registered under
// its id, so a replaced connection cannot evict its successor.
func (r *Registry) remove(conn *Connection) {
	r.mu.Lock()
	current, ok := r.conns[conn.id]
	owned := ok && current == conn
	if owned {
		r.purgeLocked(conn)
	}
	r.mu.Unlock()

	conn.Close()
	if owned {
		r.logger.Debug("realtime.connection.deregistered", zap.String("connection_id", conn.id))
	}
}

// Join adds the connection to room. A connection that is already closed but not
// yet removed counts as unknown.
func (r *Registry) Join(id, room string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.conns[id]
	if !ok || conn.Closed() {
		return fmt.Errorf("join %s: %w", room, entities.ErrUnknownConnection)
	}
	members, ok := r.rooms[room]
	if !ok {
		members = make(map[string]*Connection)
		r.rooms[room] = members
	}
	members[id] = conn
	conn.rooms[room] = struct{}{}
	return nil
}

// Leave removes the connection from room. Leaving a room the connection is not
// in is a no-op; the room is dropped once its last member leaves.
func (r *Registry) Leave(id, room string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.conns[id]
	if !ok {
		return fmt.Errorf("leave %s: %w", room, entities.ErrUnknownConnection)
	}
	r.leaveLocked(conn, room)
	return nil
}

// Get returns the connection registered under id
func (r *Registry) Get(id string) (*Connection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conn, ok := r.conns[id]
	return conn, ok
}

// Members returns the connections in room at call time
func (r *Registry) Members(room string) []*Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := r.rooms[room]
	out := make([]*Connection, 0, len(members))
	for _, c := range members {
		out = append(out, c)
	}
	return out
}

// Connections returns every registered connection at call time
func (r *Registry) Connections() []*Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Connection, 0, len(r.conns))
	for _, c := range r.conns {
		out = append(out, c)
	}
	return out
}

// RoomsOf lists the rooms a connection belongs to, sorted
func (r *Registry) RoomsOf(id string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conn, ok := r.conns[id]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(conn.rooms))
	for room := range conn.rooms {
		out = append(out, room)
	}
	sort.Strings(out)
	return out
}

// Count returns the number of registered connections
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// RoomCount returns the number of non-empty rooms
func (r *Registry) RoomCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

func (r *Registry) purgeLocked(conn *Connection) {
	for room := range conn.rooms {
		r.leaveLocked(conn, room)
	}
	delete(r.conns, conn.id)
}

func (r *Registry) leaveLocked(conn *Connection, room string) {
	delete(conn.rooms, room)
	members, ok := r.rooms[room]
	if !ok {
		return
	}
	if current, ok := members[conn.id]; ok && current == conn {
		delete(members, conn.id)
	}
	if len(members) == 0 {
		delete(r.rooms, room)
	}
}
