package llm

import (
	"fmt"
	"sync"
)

// Gateway is an immutable snapshot of the configured backends. Credential
// changes produce a new snapshot instead of mutating clients in place.
type Gateway struct {
	clients map[Backend]Client
}

// NewGateway builds a snapshot from the clients that could be constructed.
// A backend with no configured credential is simply absent.
func NewGateway(clients map[Backend]Client) *Gateway {
	copied := make(map[Backend]Client, len(clients))
	for backend, client := range clients {
		if client != nil {
			copied[backend] = client
		}
	}
	return &Gateway{clients: copied}
}

// ClientFor returns the client for the chosen backend, or an error when the
// backend's credential is not configured.
func (g *Gateway) ClientFor(backend Backend) (Client, error) {
	if g == nil {
		return nil, fmt.Errorf("%s API is not available", backend.DisplayName())
	}
	client, ok := g.clients[backend]
	if !ok {
		return nil, fmt.Errorf("%s API is not available", backend.DisplayName())
	}
	return client, nil
}

// Available reports whether the backend has a configured client.
func (g *Gateway) Available(backend Backend) bool {
	if g == nil {
		return false
	}
	_, ok := g.clients[backend]
	return ok
}

// BackendStatus describes one backend's availability.
type BackendStatus struct {
	Backend   Backend `json:"backend"`
	Name      string  `json:"name"`
	Available bool    `json:"available"`
}

// Status reports availability for both backends in a fixed order.
func (g *Gateway) Status() []BackendStatus {
	out := make([]BackendStatus, 0, 2)
	for _, backend := range []Backend{BackendGemini, BackendOpenRouter} {
		out = append(out, BackendStatus{
			Backend:   backend,
			Name:      backend.DisplayName(),
			Available: g.Available(backend),
		})
	}
	return out
}

// Holder hands out the current gateway snapshot and lets the credential-save
// path swap in a fresh one without restarting the process.
type Holder struct {
	mu sync.RWMutex
	gw *Gateway
}

// NewHolder creates a holder seeded with the given snapshot.
func NewHolder(gw *Gateway) *Holder {
	return &Holder{gw: gw}
}

// Current returns the active gateway snapshot.
func (h *Holder) Current() *Gateway {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.gw
}

// Swap replaces the active snapshot.
func (h *Holder) Swap(gw *Gateway) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.gw = gw
}
