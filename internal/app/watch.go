package app

import "sync"

// watchHub fans game-state snapshots out to per-session subscribers.
type watchHub struct {
	mu          sync.Mutex
	subscribers map[string]map[chan StateView]struct{}
}

func newWatchHub() *watchHub {
	return &watchHub{subscribers: make(map[string]map[chan StateView]struct{})}
}

func (h *watchHub) subscribe(key string) (chan StateView, func()) {
	ch := make(chan StateView, 8)

	h.mu.Lock()
	subs, ok := h.subscribers[key]
	if !ok {
		subs = make(map[chan StateView]struct{})
		h.subscribers[key] = subs
	}
	subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if subs, ok := h.subscribers[key]; ok {
			if _, ok := subs[ch]; ok {
				delete(subs, ch)
				close(ch)
			}
			if len(subs) == 0 {
				delete(h.subscribers, key)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

func (h *watchHub) broadcast(key string, view StateView) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribers[key] {
		select {
		case ch <- view:
		default:
			// Drop the stale snapshot so a slow watcher never blocks play.
			select {
			case <-ch:
			default:
			}
			ch <- view
		}
	}
}
