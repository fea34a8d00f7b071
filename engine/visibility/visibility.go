package visibility

import (
	"github.com/npillmayer/subtitles/engine/slot"
)

// Classification is the result of a visibility test.
type Classification int8

const (
	Offscreen Classification = iota
	Obscured
	Visible
)

func (c Classification) String() string {
	switch c {
	case Offscreen:
		return "offscreen"
	case Obscured:
		return "obscured"
	case Visible:
		return "visible"
	}
	return "?"
}

// Subject is the speaker of a subtitle, as far as visibility is concerned.
type Subject interface {
	IsViewer() bool             // the player
	FadeAlpha() (float32, bool) // fade state, if the actor has one
	IsDead() bool
	VoiceTimer() float32 // fades out the voice of dead actors
}

// Oracle classifies the visibility of a subject, e.g. by ray casting.
type Oracle interface {
	ClassifyVisibility(Subject) Classification
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func(Subject) Classification

// ClassifyVisibility is part of interface Oracle.
func (f OracleFunc) ClassifyVisibility(s Subject) Classification {
	return f(s)
}

// Params are the settings the alpha computation depends on.
type Params struct {
	ObscuredAlpha float32 // alpha factor for obscured speakers
	NearSq        float32 // squared distance where fading starts
	FarSq         float32 // squared distance where subtitles vanish
	RequireLOS    bool    // if false, obscured speakers count as visible
}

// Engine classifies slots and computes their alpha.
type Engine struct {
	Oracle Oracle
	Params Params
}

// Classify updates the Offscreen and Obscured flags of a slot. The player's
// own subtitles are never classified and keep both flags cleared.
func (e *Engine) Classify(s *slot.Slot, subj Subject) Classification {
	s.Header.Set(slot.Offscreen|slot.Obscured, false)
	if subj.IsViewer() {
		return Visible
	}
	c := e.Oracle.ClassifyVisibility(subj)
	switch c {
	case Offscreen:
		s.Header.Set(slot.Offscreen, true)
	case Obscured:
		if !e.Params.RequireLOS {
			return Visible
		}
		s.Header.Set(slot.Obscured, true)
	}
	tracer().Debugf("subtitle %q is %s", s.Text, c)
	return c
}

// UpdateAlpha computes the alpha of a slot and stores it in its header.
//
// The obscured factor applies on top of any of the following, of which at
// most one is used: the distance fade beyond the near distance, the fade
// state of the speaker, or the voice timer of a dead speaker.
func (e *Engine) UpdateAlpha(s *slot.Slot, subj Subject) float32 {
	alpha := float32(1)
	if s.Header.Is(slot.Obscured) {
		alpha *= e.Params.ObscuredAlpha
	}
	if s.DistanceSq > e.Params.NearSq {
		alpha *= DistanceFade(s.DistanceSq, e.Params.NearSq, e.Params.FarSq)
	} else if fade, ok := subj.FadeAlpha(); ok && fade < 1 {
		alpha *= fade
	} else if subj.IsDead() && subj.VoiceTimer() < 1 {
		alpha *= subj.VoiceTimer()
	}
	s.Header.SetAlpha(alpha)
	return alpha
}

// DistanceFade is the alpha multiplier for a squared distance: 1 up to
// near, 0 from far on, with a cubic fall-off in between.
func DistanceFade(dSq, nearSq, farSq float32) float32 {
	if dSq <= nearSq {
		return 1
	}
	if dSq >= farSq || farSq <= nearSq {
		return 0
	}
	t := (dSq - nearSq) / (farSq - nearSq)
	return 1 - t*t*t
}

// IsBeyondRange is true if a slot is too far away to be shown. Forced
// subtitles are never out of range.
func (e *Engine) IsBeyondRange(s *slot.Slot) bool {
	return s.Priority != slot.Force && s.DistanceSq > e.Params.FarSq
}
