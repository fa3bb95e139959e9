package converter

import "sync"

// Holder keeps the current converter for its owner. Each converter is
// offered with the sequence number of the fetch that produced it, and an
// offer older than the stored one is dropped.
type Holder struct {
	mu      sync.RWMutex
	current *Converter
	seq     uint64
}

func NewHolder() *Holder {
	return &Holder{}
}

// Offer stores conv unless a converter from a newer fetch is already held.
// It reports whether conv was stored.
func (h *Holder) Offer(seq uint64, conv *Converter) bool {
	if conv == nil {
		return false
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current != nil && seq <= h.seq {
		return false
	}
	h.current, h.seq = conv, seq
	return true
}

func (h *Holder) Current() (*Converter, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current, h.current != nil
}

// Seq returns the sequence number of the held converter, 0 when empty.
func (h *Holder) Seq() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.seq
}
