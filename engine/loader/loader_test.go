package loader

import (
	"testing"

	"github.com/mjolnir-gfx/mjolnir/common"
	"github.com/stretchr/testify/assert"
)

func TestClampStagingPassesThroughSmallImages(t *testing.T) {
	staging := common.TextureStagingData{Pixels: make([]byte, 2*2*4), Width: 2, Height: 2}

	got := clampStaging(staging, 4)
	assert.Equal(t, staging, got)
}

func TestClampStagingDownscalesPreservingAspect(t *testing.T) {
	wide := common.TextureStagingData{Pixels: make([]byte, 8*4*4), Width: 8, Height: 4}
	got := clampStaging(wide, 4)
	assert.Equal(t, uint32(4), got.Width)
	assert.Equal(t, uint32(2), got.Height)
	assert.Len(t, got.Pixels, 4*2*4)

	tall := common.TextureStagingData{Pixels: make([]byte, 2*8*4), Width: 2, Height: 8}
	got = clampStaging(tall, 4)
	assert.Equal(t, uint32(1), got.Width)
	assert.Equal(t, uint32(4), got.Height)
}
