// Package console parses debug-console input for the weather simulator.
// Verbs, region ids and weather names are all matched fuzzily, so "wether
// ashlnds thunder" still resolves. Parsing never executes anything; it
// yields a normalized Command for the caller to dispatch.
package console

import (
	"fmt"
	"strconv"
	"strings"
)

// Context carries the vocabularies arguments resolve against.
type Context struct {
	Regions  []string
	Weathers []string
}

// Command is a parsed console line. Args are normalized (lowercased,
// fuzzily resolved against the context where the verb expects it).
type Command struct {
	Verb string
	Args []string
}

type verbDef struct {
	canonical string
	aliases   []string
	minArgs   int
	usage     string
}

var verbs = []verbDef{
	{canonical: "weather", aliases: []string{"cw", "changeweather", "set"}, minArgs: 2, usage: "weather <region> <type>"},
	{canonical: "region", aliases: []string{"modregion", "chances"}, minArgs: 2, usage: "region <region> <c0> .. <c9>"},
	{canonical: "wait", aliases: []string{"sleep", "rest"}, minArgs: 1, usage: "wait <hours>"},
	{canonical: "advance", aliases: []string{"tick"}, minArgs: 1, usage: "advance <hours>"},
	{canonical: "teleport", aliases: []string{"travel", "tp"}, minArgs: 1, usage: "teleport <region>"},
	{canonical: "indoors", aliases: []string{"inside"}, minArgs: 0, usage: "indoors"},
	{canonical: "outdoors", aliases: []string{"outside"}, minArgs: 0, usage: "outdoors"},
	{canonical: "status", aliases: []string{"st", "info"}, minArgs: 0, usage: "status"},
	{canonical: "moons", aliases: []string{"moon"}, minArgs: 0, usage: "moons"},
	{canonical: "save", aliases: nil, minArgs: 1, usage: "save <path>"},
	{canonical: "load", aliases: nil, minArgs: 1, usage: "load <path>"},
	{canonical: "reset", aliases: []string{"clear"}, minArgs: 0, usage: "reset"},
	{canonical: "help", aliases: []string{"h", "?"}, minArgs: 0, usage: "help"},
	{canonical: "quit", aliases: []string{"exit", "q"}, minArgs: 0, usage: "quit"},
}

// Usage returns one usage line per command, for help output.
func Usage() []string {
	lines := make([]string, 0, len(verbs))
	for _, v := range verbs {
		lines = append(lines, v.usage)
	}
	return lines
}

// Parse resolves a raw input line into a Command. Unresolvable verbs or
// arguments come back as errors carrying a suggestion where one exists.
func Parse(ctx Context, raw string) (Command, error) {
	tokens := strings.Fields(strings.ToLower(strings.TrimSpace(raw)))
	if len(tokens) == 0 {
		return Command{}, fmt.Errorf("empty command")
	}

	def, score := matchVerb(tokens[0])
	if def == nil {
		return Command{}, fmt.Errorf("unknown command %q; try help", tokens[0])
	}
	if score < exactScore {
		// A loose verb match with garbage arguments is more likely a typo
		// of something else entirely; keep the bar a little higher.
		if score < fuzzyVerbFloor {
			return Command{}, fmt.Errorf("unknown command %q; did you mean %q?", tokens[0], def.canonical)
		}
	}

	args := tokens[1:]
	if len(args) < def.minArgs {
		return Command{}, fmt.Errorf("usage: %s", def.usage)
	}

	cmd := Command{Verb: def.canonical, Args: args}
	switch def.canonical {
	case "weather":
		region, err := resolveName(args[0], ctx.Regions, "region")
		if err != nil {
			return Command{}, err
		}
		weather, err := resolveName(strings.Join(args[1:], " "), ctx.Weathers, "weather type")
		if err != nil {
			return Command{}, err
		}
		cmd.Args = []string{region, weather}
	case "region":
		region, err := resolveName(args[0], ctx.Regions, "region")
		if err != nil {
			return Command{}, err
		}
		for _, c := range args[1:] {
			if _, err := strconv.Atoi(c); err != nil {
				return Command{}, fmt.Errorf("chance %q is not a number", c)
			}
		}
		cmd.Args = append([]string{region}, args[1:]...)
	case "teleport":
		region, err := resolveName(strings.Join(args, " "), ctx.Regions, "region")
		if err != nil {
			return Command{}, err
		}
		cmd.Args = []string{region}
	case "wait", "advance":
		if _, err := strconv.ParseFloat(args[0], 64); err != nil {
			return Command{}, fmt.Errorf("%s wants a number of hours, got %q", def.canonical, args[0])
		}
	}

	return cmd, nil
}
