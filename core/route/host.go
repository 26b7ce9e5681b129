package route

import (
	"context"
	"sync"

	"github.com/trezcool/agenda/core"
	"github.com/trezcool/agenda/core/session"
)

type (
	// Mounter renders Destination subtrees. Implementations live in the UI.
	Mounter interface {
		Mount(d Destination)
		Unmount(d Destination)
	}

	// Source is a session a Host follows; *session.Manager is one.
	Source interface {
		Current() *session.Identity
		Subscribe() (<-chan session.Event, func())
	}
)

// Host keeps exactly one Destination mounted: the one selected for the current session.
// Mounting a Destination always unmounts the previous one first, so no subtree state survives a role change.
type Host struct {
	src     Source
	mounter Mounter
	logger  core.Logger

	mu      sync.Mutex
	mounted *Destination
}

func NewHost(src Source, mounter Mounter, logger core.Logger) *Host {
	return &Host{src: src, mounter: mounter, logger: logger}
}

// Run mounts the Destination of the current session, then re-selects on every session change.
// It blocks until ctx is done or the session is closed, and unmounts before returning.
func (h *Host) Run(ctx context.Context) error {
	events, unsubscribe := h.src.Subscribe() // subscribe first: no change is missed
	defer unsubscribe()
	defer h.unmount()

	h.show(Select(h.src.Current()))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			h.show(Select(ev.Identity))
		}
	}
}

// Mounted returns the Destination currently mounted, if any.
func (h *Host) Mounted() (Destination, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.mounted == nil {
		return Unauthenticated, false
	}
	return *h.mounted, true
}

func (h *Host) show(d Destination) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.mounted != nil {
		if *h.mounted == d {
			return
		}
		h.mounter.Unmount(*h.mounted)
	}
	h.mounter.Mount(d)
	h.mounted = &d
	h.logger.Debug("destination mounted", map[string]interface{}{"destination": d.String()})
}

func (h *Host) unmount() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.mounted != nil {
		h.mounter.Unmount(*h.mounted)
		h.mounted = nil
	}
}
