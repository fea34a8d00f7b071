package rendercache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMirror(t *testing.T) {
	var notes []MirrorEntry
	m := NewMirror(func(e MirrorEntry, shown bool) {
		notes = append(notes, e)
	})
	e := MirrorEntry{Speaker: "Lydia", Text: "I am sworn to carry your burdens."}
	assert.True(t, m.Show(e))
	assert.False(t, m.Show(e), "no change, no notification")
	assert.Len(t, notes, 1)
	cur, ok := m.Current()
	assert.True(t, ok)
	assert.Equal(t, e, cur)
	//
	assert.False(t, m.Clear("something else"))
	assert.True(t, m.Clear(e.Text))
	_, ok = m.Current()
	assert.False(t, ok)
	assert.False(t, m.Clear(e.Text), "nothing shown")
	assert.True(t, m.Clear(""), "empty text clears unconditionally")
	assert.Len(t, notes, 3)
	//
	c := New(testIndex(), testConfig(false), nil, m)
	m.Show(e)
	c.InvalidateDisplaySurfaceEntry(e.Text)
	_, ok = m.Current()
	assert.False(t, ok)
}

func TestNotifierMayReadMirror(t *testing.T) {
	var m *Mirror
	var seen []MirrorEntry
	m = NewMirror(func(MirrorEntry, bool) {
		cur, _ := m.Current()
		seen = append(seen, cur)
	})
	done := make(chan struct{})
	go func() {
		m.Show(MirrorEntry{Speaker: "Guard", Text: "Let me guess..."})
		m.Clear("")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("notifier blocked on the mirror")
	}
	assert.Equal(t, []MirrorEntry{{Speaker: "Guard", Text: "Let me guess..."}, {}}, seen)
}
