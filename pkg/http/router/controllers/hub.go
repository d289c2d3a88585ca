package controllers

import (
	"encoding/json"
	"io"
	"net"
	"sort"
	"sync"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/lintang-b-s/Voronoix/pkg/engine"
)

type User struct {
	io   sync.Mutex
	conn io.ReadWriteCloser

	id  uint
	hub *Hub
}

// Listen consumes client frames until the connection fails. only control frames are expected,
// data frames from the client are ignored.
func (u *User) Listen() error {
	for {
		h, r, err := wsutil.NextReader(u.conn, ws.StateServerSide)
		if err != nil {
			return err
		}
		if h.OpCode.IsControl() {
			u.io.Lock()
			err = wsutil.ControlFrameHandler(u.conn, ws.StateServerSide)(h, r)
			u.io.Unlock()
			if err != nil {
				return err
			}
			continue
		}
		if _, err := io.Copy(io.Discard, r); err != nil {
			return err
		}
	}
}

func (u *User) write(x interface{}) error {
	w := wsutil.NewWriter(u.conn, ws.StateServerSide, ws.OpText)
	encoder := json.NewEncoder(w)

	u.io.Lock()
	defer u.io.Unlock()

	if err := encoder.Encode(x); err != nil {
		return err
	}

	return w.Flush()
}

func (u *User) ID() uint {
	return u.id
}

// Hub set of websocket subscribers that receive a summary of every finished pass.
type Hub struct {
	mu  sync.RWMutex
	seq uint
	us  []*User
	ns  map[uint]*User
}

func NewHub() *Hub {
	return &Hub{
		ns: make(map[uint]*User),
		us: make([]*User, 0),
	}
}

func (h *Hub) Register(conn net.Conn) *User {
	user := &User{
		hub:  h,
		conn: conn,
	}

	h.mu.Lock()
	user.id = h.seq
	h.ns[user.id] = user
	h.us = append(h.us, user)

	h.seq++
	h.mu.Unlock()

	return user
}

func (h *Hub) Remove(user *User) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.ns[user.id]; !ok {
		return
	}
	delete(h.ns, user.id)

	i := sort.Search(len(h.us), func(i int) bool {
		return h.us[i].id >= user.id
	})

	newUs := make([]*User, len(h.us)-1)
	copy(newUs[:i], h.us[:i])
	copy(newUs[i:], h.us[i+1:])
	h.us = newUs
	_ = user.conn.Close()
}

func (h *Hub) Size() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.us)
}

func (h *Hub) RemoveAllUser() {
	h.mu.RLock()
	users := make([]*User, len(h.us))
	copy(users, h.us)
	h.mu.RUnlock()

	for _, user := range users {
		h.Remove(user)
	}
}

// Broadcast sends x to every user. users whose write fails are dropped.
func (h *Hub) Broadcast(x interface{}) {
	h.mu.RLock()
	users := make([]*User, len(h.us))
	copy(users, h.us)
	h.mu.RUnlock()

	for _, user := range users {
		if err := user.write(x); err != nil {
			h.Remove(user)
		}
	}
}

// PassListener engine.PassListener pushing each pass summary to the hub.
func (h *Hub) PassListener() engine.PassListener {
	return func(res engine.PassResult) {
		h.Broadcast(envelope{"data": NewPassResponse(res)})
	}
}
