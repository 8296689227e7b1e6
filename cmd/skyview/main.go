package main

import (
	"flag"
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/skysim/internal/fallback"
	"github.com/appengine-ltd/skysim/internal/sky"
	"github.com/appengine-ltd/skysim/internal/sound"
	"github.com/appengine-ltd/skysim/internal/world"
)

const (
	screenWidth  = 960
	screenHeight = 540
	horizonY     = 400
)

// skyview renders the simulation output directly: sky and fog gradients,
// the sun disc, both moons, and the thunder tint. It is a viewer for the
// result bundle, not a scene renderer. Number keys force weather changes in
// the current region, tab teleports between regions.
func main() {
	var (
		seed      int64
		region    string
		timescale float64
	)
	flag.Int64Var(&seed, "seed", 42, "simulation seed")
	flag.StringVar(&region, "region", "ashlands", "starting region")
	flag.Float64Var(&timescale, "timescale", 600, "game seconds per real second")
	flag.Parse()

	sim := world.NewSim(region)
	sim.Timescale = timescale
	manager := sky.NewWeatherManager(sim, sound.NewLogger(), sky.NewSeededDice(seed),
		fallback.Defaults(), sky.BuiltinRegions(), sky.DefaultConfig())
	regions := manager.RegionIDs()
	regionIndex := 0

	rl.InitWindow(screenWidth, screenHeight, "skyview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		dt := float64(rl.GetFrameTime())
		sim.Tick(dt)
		manager.Update(dt, false)

		if key := rl.GetKeyPressed(); key >= rl.KeyZero && key <= rl.KeyNine {
			manager.ChangeWeather(sim.PlayerRegion(), sky.WeatherID(key-rl.KeyZero))
		}
		if rl.IsKeyPressed(rl.KeyTab) {
			regionIndex = (regionIndex + 1) % len(regions)
			sim.SetRegion(regions[regionIndex])
			manager.PlayerTeleported()
		}

		result := manager.Result()
		primary, secondary := manager.MoonStates()

		rl.BeginDrawing()
		rl.DrawRectangleGradientV(0, 0, screenWidth, horizonY, toRL(result.SkyColor, 1), toRL(result.FogColor, 1))
		drawMoon(primary, 60, result.SkyColor)
		drawMoon(secondary, 30, result.SkyColor)
		if manager.SunEnabled() {
			drawSun(manager.SunDirection(), result.SunDiscColor)
		}
		// ground lit by the ambient term, fog layered over it
		rl.DrawRectangle(0, horizonY, screenWidth, screenHeight-horizonY, toRL(result.AmbientColor, 1))
		fogAlpha := math.Min(1, result.FogDepth/3)
		rl.DrawRectangle(0, horizonY-40, screenWidth, 40, toRL(result.FogColor, fogAlpha*0.6))

		drawHUD(sim, manager)
		rl.EndDrawing()
	}
}

func drawSun(direction sky.Vec3, disc sky.Color) {
	x := float32(screenWidth/2) + float32(direction.X)*420
	y := float32(horizonY) + float32(direction.Z)*360
	rl.DrawCircle(int32(x), int32(y), 26, toRL(disc, disc.A))
}

func drawMoon(state sky.MoonState, offset float64, skyColor sky.Color) {
	if state.Alpha <= 0 {
		return
	}
	theta := state.Rotation * math.Pi / 180
	x := screenWidth/2 - math.Cos(theta)*(380-offset) + state.AxisOffset
	y := float64(horizonY) - math.Sin(theta)*(330-offset)

	surface := sky.Color{R: 0.82, G: 0.8, B: 0.76}
	disk := skyColor.Blend(surface, state.ShadowBlend)
	rl.DrawCircle(int32(x), int32(y), 14, toRL(disk, state.Alpha))
}

func drawHUD(sim *world.Sim, manager *sky.WeatherManager) {
	ts := sim.Timestamp()
	line := fmt.Sprintf("day %d  %05.2fh  %s  [%s]", ts.Day, ts.Hour, manager.CurrentWeather(), sim.PlayerRegion())
	if manager.NextWeather().IsValid() {
		line += fmt.Sprintf("  -> %s %.0f%%", manager.NextWeather(), (1-manager.TransitionFactor())*100)
	}
	rl.DrawText(line, 10, 10, 20, rl.RayWhite)
	rl.DrawText("0-9 force weather, tab next region", 10, screenHeight-26, 16, rl.Gray)
}

// toRL clamps a simulation color (thunder tints can exceed 1) into an
// 8-bit raylib color with the given alpha.
func toRL(c sky.Color, alpha float64) rl.Color {
	channel := func(v float64) uint8 {
		v = math.Max(0, math.Min(1, v))
		return uint8(v * 255)
	}
	return rl.NewColor(channel(c.R), channel(c.G), channel(c.B), channel(math.Max(0, math.Min(1, alpha))))
}
