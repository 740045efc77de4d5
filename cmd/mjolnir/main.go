package main

import (
	"context"
	"flag"

	"github.com/chewxy/math32"
	"github.com/mjolnir-gfx/mjolnir/common"
	"github.com/mjolnir-gfx/mjolnir/engine"
	"github.com/mjolnir-gfx/mjolnir/engine/config"
	"github.com/mjolnir-gfx/mjolnir/engine/core"
	"github.com/mjolnir-gfx/mjolnir/engine/instance"
	"github.com/mjolnir-gfx/mjolnir/engine/loader"
	"github.com/mjolnir-gfx/mjolnir/engine/model"
	"github.com/mjolnir-gfx/mjolnir/engine/node"
	"github.com/mjolnir-gfx/mjolnir/engine/particle"
	"github.com/mjolnir-gfx/mjolnir/engine/texture"
	"github.com/mjolnir-gfx/mjolnir/engine/window"
)

const (
	// gridSide is the number of cubes per row in the demo grid.
	gridSide = 10

	// gridSpacing is the distance between neighboring cubes.
	gridSpacing = 3.0

	// floorScale is the half-extent of the ground plane.
	floorScale = 25.0
)

// sceneModels are the assets prefetched before the frame loop starts.
var sceneModels = []string{"cube.obj"}

func main() {
	configPath := flag.String("config", "engine.toml", "path to the engine configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		core.LogFatal("failed to load config: %v", err)
	}
	core.SetLogLevel(cfg.LogLevel)

	win := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
	)

	state := engine.NewState(win, cfg)
	defer state.Release()

	var src loader.Source
	switch cfg.Assets.Source {
	case config.SourceRemote:
		src = loader.NewHTTPSource(cfg.Assets.BaseURL)
	default:
		src = loader.NewFileSource(cfg.Assets.Root)
	}
	assets := loader.NewLoader(src, state.Device(), state.Queue())

	models, err := assets.LoadModels(context.Background(), sceneModels)
	if err != nil {
		core.LogFatal("failed to load scene assets: %v", err)
	}
	cube := models[0]

	buildScene(state, cfg, cube)

	core.LogInfo("starting %s (%dx%d)", cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
	if err := state.Run(); err != nil {
		core.LogFatal("rendering stopped: %v", err)
	}
}

// buildScene populates the demo scene: a cube grid, a ground plane, and one
// particle system. Node 0 doubles as the light marker model.
func buildScene(state *engine.State, cfg config.Config, cube *model.Model) {
	// Grid of instanced cubes, each tilted by a quaternion derived from its
	// position so the instancing path is visibly exercised.
	grid := node.NewNode(0, cube)
	grid.Instances = gridInstances()
	grid.Locals.Color = [4]float32{1, 1, 1, 1}
	state.AddNode(grid)

	white, err := whiteTexture(state)
	if err != nil {
		core.LogFatal("failed to create placeholder texture: %v", err)
	}

	floor, err := model.NewPlane(state.Device(), state.Queue(), floorScale, white)
	if err != nil {
		core.LogFatal("failed to build ground plane: %v", err)
	}
	ground := node.NewNode(1, floor)
	ground.Locals.Position = [4]float32{0, -2, 0, 0}
	ground.Locals.Color = [4]float32{0.4, 0.45, 0.5, 1}
	// The plane is modeled in the XY plane facing +Z; lay it flat.
	ground.Instances[0].Rotation = common.QuatFromAxisAngle(1, 0, 0, -math32.Pi/2)
	state.AddNode(ground)

	if cfg.Scene.ParticleCount > 0 {
		spark := node.NewNode(0, cube)
		spark.Locals.Color = [4]float32{1, 0.8, 0.3, 1}
		spark.Instances = make([]instance.Instance, cfg.Scene.ParticleCount)
		for i := range spark.Instances {
			spark.Instances[i] = instance.NewInstance()
		}
		system, err := particle.NewSystem(state.Device(), state.Queue(), spark)
		if err != nil {
			core.LogFatal("failed to create particle system: %v", err)
		}
		state.AddParticleSystem(system)
	}
}

// gridInstances lays out the cube grid centered on the origin.
func gridInstances() []instance.Instance {
	instances := make([]instance.Instance, 0, gridSide*gridSide)
	half := float32(gridSide-1) / 2

	for row := 0; row < gridSide; row++ {
		for col := 0; col < gridSide; col++ {
			x := (float32(col) - half) * gridSpacing
			z := (float32(row) - half) * gridSpacing

			inst := instance.NewInstance()
			inst.Position = [3]float32{x, 0, z}

			// Tilt each cube around its own position vector; the cube at the
			// origin gets a fixed tilt so no two look identical.
			if x == 0 && z == 0 {
				inst.Rotation = common.QuatFromAxisAngle(0, 0, 1, math32.Pi/4)
			} else {
				mag := math32.Sqrt(x*x + z*z)
				inst.Rotation = common.QuatFromAxisAngle(x/mag, 0, z/mag, math32.Pi/4)
			}
			instances = append(instances, inst)
		}
	}
	return instances
}

// whiteTexture uploads a 1x1 white diffuse for untextured materials.
func whiteTexture(state *engine.State) (*texture.Texture, error) {
	return texture.FromStagingData(state.Device(), state.Queue(), common.TextureStagingData{
		Pixels: []byte{255, 255, 255, 255},
		Width:  1,
		Height: 1,
	}, "White Texture")
}
