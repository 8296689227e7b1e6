package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/appengine-ltd/skysim/internal/console"
	"github.com/appengine-ltd/skysim/internal/fallback"
	"github.com/appengine-ltd/skysim/internal/sky"
	"github.com/appengine-ltd/skysim/internal/sound"
	"github.com/appengine-ltd/skysim/internal/world"
)

// version and commit are injected at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	var (
		showVersion  bool
		seed         int64
		region       string
		timescale    float64
		tickSeconds  float64
		fallbackPath string
		regionsPath  string
	)

	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Int64Var(&seed, "seed", 0, "simulation seed (0 picks one)")
	flag.StringVar(&region, "region", "grasslands", "starting region")
	flag.Float64Var(&timescale, "timescale", 30, "game seconds per real second")
	flag.Float64Var(&tickSeconds, "tick", 1, "real seconds simulated per console command")
	flag.StringVar(&fallbackPath, "fallback", "", "fallback YAML overriding the built-in table")
	flag.StringVar(&regionsPath, "regions", "", "regions YAML replacing the built-in set")
	flag.Parse()

	if showVersion {
		fmt.Printf("skysim %s (%s)\n", version, commit)
		return
	}

	table, regionDefs, err := loadData(fallbackPath, regionsPath)
	if err != nil {
		log.Fatalf("load data: %v", err)
	}

	if seed == 0 {
		seed = int64(os.Getpid())
	}

	sim := world.NewSim(region)
	sim.Timescale = timescale
	sounds := sound.NewLogger()
	manager := sky.NewWeatherManager(sim, sounds, sky.NewSeededDice(seed), table, regionDefs, sky.DefaultConfig())

	ctx := console.Context{
		Regions:  manager.RegionIDs(),
		Weathers: sky.WeatherNames(),
	}

	fmt.Printf("skysim %s | seed %d, region %s. Type help for commands.\n", version, seed, region)

	step := func() {
		sim.Tick(tickSeconds)
		manager.Update(tickSeconds, false)
	}
	step()
	printStatus(sim, manager)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		cmd, err := console.Parse(ctx, scanner.Text())
		if err != nil {
			fmt.Println(err)
			continue
		}
		if cmd.Verb == "quit" {
			return
		}
		dispatch(cmd, sim, manager)
		step()
		if cmd.Verb != "help" && cmd.Verb != "moons" {
			printStatus(sim, manager)
		}
	}
}

func loadData(fallbackPath, regionsPath string) (*fallback.Table, []sky.RegionDefinition, error) {
	table := fallback.Defaults()
	if fallbackPath != "" {
		loaded, err := fallback.Load(fallbackPath)
		if err != nil {
			return nil, nil, err
		}
		table = loaded
	}

	regionDefs := sky.BuiltinRegions()
	if regionsPath != "" {
		loaded, err := fallback.LoadRegions(regionsPath)
		if err != nil {
			return nil, nil, err
		}
		regionDefs = loaded
	}
	return table, regionDefs, nil
}

func dispatch(cmd console.Command, sim *world.Sim, manager *sky.WeatherManager) {
	switch cmd.Verb {
	case "weather":
		manager.ChangeWeather(cmd.Args[0], weatherIDByName(cmd.Args[1]))

	case "region":
		chances := make([]int, 0, len(cmd.Args)-1)
		for _, raw := range cmd.Args[1:] {
			c, _ := strconv.Atoi(raw)
			chances = append(chances, c)
		}
		manager.ModRegion(cmd.Args[0], chances)

	case "wait":
		hours, _ := strconv.ParseFloat(cmd.Args[0], 64)
		sim.AdvanceHours(hours)
		manager.AdvanceTime(hours, false)
		fmt.Printf("Waited %.1f hours.\n", hours)

	case "advance":
		hours, _ := strconv.ParseFloat(cmd.Args[0], 64)
		sim.AdvanceHours(hours)
		manager.AdvanceTime(hours, true)

	case "teleport":
		sim.SetRegion(cmd.Args[0])
		sim.SetExterior(true)
		manager.PlayerTeleported()
		fmt.Printf("Arrived in %s.\n", cmd.Args[0])

	case "indoors":
		sim.SetExterior(false)

	case "outdoors":
		sim.SetExterior(true)

	case "moons":
		primary, secondary := manager.MoonStates()
		fmt.Printf("primary:   angle=%.1f phase=%d shadow=%.2f alpha=%.2f\n",
			primary.Rotation, primary.Phase, primary.ShadowBlend, primary.Alpha)
		fmt.Printf("secondary: angle=%.1f phase=%d shadow=%.2f alpha=%.2f\n",
			secondary.Rotation, secondary.Phase, secondary.ShadowBlend, secondary.Alpha)

	case "save":
		if err := saveState(cmd.Args[0], manager); err != nil {
			fmt.Println(err)
		}

	case "load":
		if err := loadState(cmd.Args[0], manager); err != nil {
			fmt.Println(err)
		}

	case "reset":
		manager.Clear()

	case "help":
		for _, line := range console.Usage() {
			fmt.Println("  " + line)
		}

	case "status":
		// printed after the step
	}
}

func weatherIDByName(name string) sky.WeatherID {
	for i, candidate := range sky.WeatherNames() {
		if strings.EqualFold(candidate, name) {
			return sky.WeatherID(i)
		}
	}
	return sky.WeatherNone
}

func saveState(path string, manager *sky.WeatherManager) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	defer f.Close()
	if err := sky.EncodeState(f, manager.Snapshot()); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	fmt.Printf("Saved to %s.\n", path)
	return nil
}

func loadState(path string, manager *sky.WeatherManager) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	defer f.Close()
	state, err := sky.DecodeState(f)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	if !manager.Restore(state) {
		fmt.Println("Save predates the supported format; starting fresh instead.")
	}
	return nil
}

func printStatus(sim *world.Sim, manager *sky.WeatherManager) {
	ts := sim.Timestamp()
	result := manager.Result()

	line := fmt.Sprintf("Day %d %05.2fh | %s", ts.Day, ts.Hour, manager.CurrentWeather())
	if manager.NextWeather().IsValid() {
		line += fmt.Sprintf(" -> %s (%.0f%%)", manager.NextWeather(), (1-manager.TransitionFactor())*100)
		if manager.QueuedWeather().IsValid() {
			line += fmt.Sprintf(" [queued %s]", manager.QueuedWeather())
		}
	}
	if !manager.SkyEnabled() {
		fmt.Println(line + " | indoors")
		return
	}
	line += fmt.Sprintf(" | wind %.2f fog %.2f", result.WindSpeed, result.FogDepth)
	if result.IsStorm {
		d := manager.StormDirection()
		line += fmt.Sprintf(" | storm(%.2f,%.2f)", d.X, d.Y)
	}
	if result.Night {
		line += " | night"
	}
	fmt.Println(line)
}
