package rendercache

import "sync"

// MirrorEntry is what the legacy display surface shows.
type MirrorEntry struct {
	Speaker string
	Text    string
}

// Notifier is told about every change of the display surface. shown is
// false if the surface has been cleared. It is called without the mirror's
// lock held and may call back into the mirror.
type Notifier func(entry MirrorEntry, shown bool)

// Mirror is the legacy single-line display surface.
type Mirror struct {
	mx      sync.Mutex
	current MirrorEntry
	shown   bool
	notify  Notifier
}

// NewMirror creates an empty display surface. notify may be nil.
func NewMirror(notify Notifier) *Mirror {
	return &Mirror{notify: notify}
}

// Show puts an entry on the surface. Notification happens only if the
// entry differs from the current one. Show reports whether it did change
// the surface.
func (m *Mirror) Show(e MirrorEntry) bool {
	m.mx.Lock()
	if m.shown && m.current == e {
		m.mx.Unlock()
		return false
	}
	m.current, m.shown = e, true
	m.mx.Unlock()
	if m.notify != nil {
		m.notify(e, true)
	}
	return true
}

// Clear removes the current entry if its text equals matching. An empty
// matching text clears the surface unconditionally.
func (m *Mirror) Clear(matching string) bool {
	m.mx.Lock()
	if matching != "" && !(m.shown && m.current.Text == matching) {
		m.mx.Unlock()
		return false
	}
	m.current, m.shown = MirrorEntry{}, false
	m.mx.Unlock()
	if m.notify != nil {
		m.notify(MirrorEntry{}, false)
	}
	return true
}

// Current returns the entry on the surface, if any.
func (m *Mirror) Current() (MirrorEntry, bool) {
	m.mx.Lock()
	defer m.mx.Unlock()
	return m.current, m.shown
}
