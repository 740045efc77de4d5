package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func clip() AnimationClip {
	return AnimationClip{
		Name:       "wave",
		Timestamps: []float32{0, 1, 2},
		Keyframes: Keyframes{
			Kind:         KeyframeTranslation,
			Translations: [][3]float32{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}},
		},
	}
}

func TestSampleTranslationStepSampling(t *testing.T) {
	c := clip()

	cases := []struct {
		t    float32
		want [3]float32
	}{
		{-0.5, [3]float32{0, 0, 0}}, // before first keyframe
		{0, [3]float32{0, 0, 0}},    // exact hit
		{0.99, [3]float32{0, 0, 0}},
		{1, [3]float32{1, 0, 0}}, // boundary belongs to the later keyframe
		{1.5, [3]float32{1, 0, 0}},
		{2, [3]float32{2, 0, 0}},
		{10, [3]float32{2, 0, 0}}, // past the end clamps to last
	}
	for _, tc := range cases {
		got, ok := c.SampleTranslation(tc.t)
		assert.True(t, ok)
		assert.Equal(t, tc.want, got, "t=%v", tc.t)
	}
}

func TestSampleTranslationOtherKind(t *testing.T) {
	c := clip()
	c.Keyframes.Kind = KeyframeOther

	_, ok := c.SampleTranslation(1)
	assert.False(t, ok)
}

func TestSampleTranslationEmptyClip(t *testing.T) {
	var c AnimationClip
	_, ok := c.SampleTranslation(0)
	assert.False(t, ok)
	assert.Zero(t, c.Duration())
}

func TestDuration(t *testing.T) {
	c := clip()
	assert.Equal(t, float32(2), c.Duration())
}
