package openrealm

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// AnimationClip names a clip present in a GLTF asset's animation list,
// along with playback parameters set by scene content.
type AnimationClip struct {
	Name     string
	Loop     bool
	Speed    float64
	Weight   float64
}

// AnimationPlayer drives one entity's active clip set, using a gween
// tween to crossfade Weight when a new clip is requested rather than
// snapping instantly (a hard cut reads as a pop on looping locomotion
// clips).
type AnimationPlayer struct {
	Active  *AnimationClip
	fadeOut *AnimationClip
	fadeTween *gween.Tween
}

// crossfadeDuration is how long an outgoing clip's weight takes to reach
// zero when a new clip takes over.
const crossfadeDuration = 0.2

// Play switches the player to clip, starting a crossfade of the
// previously active clip's weight down to zero over crossfadeDuration
// seconds using an ease-out curve, matching how locomotion blends read
// most naturally (fast initial fade, gentle settle).
func (p *AnimationPlayer) Play(clip *AnimationClip) {
	if p.Active == clip {
		return
	}
	p.fadeOut = p.Active
	p.Active = clip
	if p.fadeOut != nil {
		p.fadeTween = gween.New(1, 0, crossfadeDuration, ease.OutCubic)
	}
}

// Update advances the crossfade tween by dt seconds, updating
// p.fadeOut's weight and clearing it once the fade completes.
func (p *AnimationPlayer) Update(dt float64) {
	if p.fadeTween == nil || p.fadeOut == nil {
		return
	}
	w, done := p.fadeTween.Update(float32(dt))
	p.fadeOut.Weight = float64(w)
	if done {
		p.fadeOut = nil
		p.fadeTween = nil
	}
}
