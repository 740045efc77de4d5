package model

// KeyframeKind discriminates what property an animation channel drives.
type KeyframeKind int

const (
	// KeyframeTranslation animates the node translation.
	KeyframeTranslation KeyframeKind = iota

	// KeyframeOther marks channels the renderer does not evaluate
	// (rotations, scales, morph weights). They load but never sample.
	KeyframeOther
)

// Keyframes holds the per-channel animation values.
type Keyframes struct {
	// Kind selects which field is populated.
	Kind KeyframeKind

	// Translations holds one translation per timestamp when Kind is
	// KeyframeTranslation.
	Translations [][3]float32
}

// AnimationClip is one named animation with its keyframe channel.
type AnimationClip struct {
	// Name is the clip identifier from the source file.
	Name string

	// Timestamps are the keyframe times in seconds, ascending.
	Timestamps []float32

	// Keyframes holds the values matched to Timestamps by index.
	Keyframes Keyframes
}

// SampleTranslation evaluates the clip at time t using step sampling: the
// value of the latest keyframe with a timestamp at or before t. Times before
// the first keyframe return the first value; times past the end return the
// last.
//
// Parameters:
//   - t: sample time in seconds
//
// Returns:
//   - [3]float32: the sampled translation
//   - bool: false if the clip has no translation keyframes
func (c *AnimationClip) SampleTranslation(t float32) ([3]float32, bool) {
	if c.Keyframes.Kind != KeyframeTranslation || len(c.Timestamps) == 0 {
		return [3]float32{}, false
	}
	if len(c.Keyframes.Translations) < len(c.Timestamps) {
		return [3]float32{}, false
	}

	current := 0
	for i, ts := range c.Timestamps {
		if ts <= t {
			current = i
		}
	}
	return c.Keyframes.Translations[current], true
}

// Duration returns the timestamp of the last keyframe, or zero for an empty
// clip.
//
// Returns:
//   - float32: clip length in seconds
func (c *AnimationClip) Duration() float32 {
	if len(c.Timestamps) == 0 {
		return 0
	}
	return c.Timestamps[len(c.Timestamps)-1]
}
