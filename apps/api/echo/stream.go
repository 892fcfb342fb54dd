package echoapi

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/warsha/core"
	"github.com/trezcool/warsha/core/playback"
)

type (
	// streamPeer is one WebSocket subscriber to a session's state stream.
	// send is never closed; done signals teardown so a concurrent broadcast
	// can never hit a closed channel.
	streamPeer struct {
		sessionID string
		send      chan playback.Event
		done      chan struct{}
	}

	// streamHub fans session state transitions out to the shell's
	// overlay renderers. Slow subscribers drop events rather than
	// stalling the emitting session.
	streamHub struct {
		mu       sync.RWMutex
		peers    map[string]map[*streamPeer]struct{} // sessionID -> set of peers
		upgrader websocket.Upgrader
		logger   core.Logger
	}
)

func newStreamHub(logger core.Logger) *streamHub {
	return &streamHub{
		peers:  make(map[string]map[*streamPeer]struct{}),
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// register adds a peer to a session stream and returns an idempotent cleanup
// function.
func (h *streamHub) register(sessionID string) (*streamPeer, func()) {
	p := &streamPeer{
		sessionID: sessionID,
		send:      make(chan playback.Event, 16),
		done:      make(chan struct{}),
	}
	h.mu.Lock()
	if h.peers[sessionID] == nil {
		h.peers[sessionID] = make(map[*streamPeer]struct{})
	}
	h.peers[sessionID][p] = struct{}{}
	h.mu.Unlock()

	cleanup := func() {
		h.mu.Lock()
		if m, ok := h.peers[sessionID]; ok {
			if _, ok := m[p]; ok {
				delete(m, p)
				close(p.done)
				if len(m) == 0 {
					delete(h.peers, sessionID)
				}
			}
		}
		h.mu.Unlock()
	}
	return p, cleanup
}

// broadcast delivers a session event to its subscribers. Wired as the
// playback.Manager notify hook; must never block or panic.
func (h *streamHub) broadcast(evt playback.Event) {
	h.mu.RLock()
	m, ok := h.peers[evt.SessionID]
	if !ok {
		h.mu.RUnlock()
		return
	}
	// copy peers so we don't hold the lock while sending
	peers := make([]*streamPeer, 0, len(m))
	for p := range m {
		peers = append(peers, p)
	}
	h.mu.RUnlock()

	for _, p := range peers {
		select {
		case p.send <- evt:
		case <-p.done: // peer tore down after the snapshot
		default:
			h.logger.Warn("stream subscriber buffer full, dropping event", map[string]interface{}{"session_id": evt.SessionID})
		}
	}
}

// stream upgrades the request and streams the session's state transitions
// until either side goes away.
func (api *playbackApi) stream(ctx echo.Context) error {
	id := ctx.Param("id")
	if _, ok := api.mgr.Get(id); !ok {
		return errHttpNotFound
	}

	conn, err := api.hub.upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		return errors.Wrap(err, "upgrading to websocket")
	}
	defer conn.Close()

	peer, cleanup := api.hub.register(id)
	defer cleanup()

	// reader: we expect nothing from the shell; unblocks on close
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cleanup()
				return
			}
		}
	}()

	for {
		select {
		case evt := <-peer.send:
			if err := conn.WriteJSON(evt); err != nil {
				return nil
			}
		case <-peer.done:
			return nil
		}
	}
}
