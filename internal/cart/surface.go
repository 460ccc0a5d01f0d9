package cart

import "sync"

// DisplayHub is a Surface whose display mounts and unmounts at runtime.
// Mounting replaces the previous display wholesale; unmounting only
// clears the slot when the caller still owns it, so a stale unmount
// from a replaced display cannot evict its successor.
type DisplayHub struct {
	mu      sync.RWMutex
	display Display
}

func NewDisplayHub() *DisplayHub {
	return &DisplayHub{}
}

func (h *DisplayHub) Badge() Display {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.display
}

// Mount installs the display and returns its unmount function.
func (h *DisplayHub) Mount(display Display) func() {
	h.mu.Lock()
	h.display = display
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		if h.display == display {
			h.display = nil
		}
		h.mu.Unlock()
	}
}

// BadgeState is a plain in-memory Display. It doubles as the snapshot
// handed to read-side consumers.
type BadgeState struct {
	mu          sync.Mutex
	text        string
	visible     bool
	highlighted bool
	onChange    func()
}

// NewBadgeState builds a display; onChange fires after every mutation
// and may be nil.
func NewBadgeState(onChange func()) *BadgeState {
	return &BadgeState{onChange: onChange}
}

func (b *BadgeState) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}

func (b *BadgeState) SetText(text string) {
	b.mu.Lock()
	b.text = text
	b.mu.Unlock()
	b.changed()
}

func (b *BadgeState) SetVisible(visible bool) {
	b.mu.Lock()
	same := b.visible == visible
	b.visible = visible
	b.mu.Unlock()
	if !same {
		b.changed()
	}
}

func (b *BadgeState) Visible() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.visible
}

func (b *BadgeState) Highlight() {
	b.mu.Lock()
	b.highlighted = true
	b.mu.Unlock()
	b.changed()
}

func (b *BadgeState) ClearHighlight() {
	b.mu.Lock()
	same := !b.highlighted
	b.highlighted = false
	b.mu.Unlock()
	if !same {
		b.changed()
	}
}

func (b *BadgeState) Highlighted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.highlighted
}

func (b *BadgeState) changed() {
	if b.onChange != nil {
		b.onChange()
	}
}
