// Command outbreak runs an agent-based epidemic simulation.
//
// Usage:
//
//	outbreak run --config outbreak.yaml
//	outbreak batch --steps 1600 --seed 7
//	outbreak validate --config outbreak.yaml
package main

import (
	"fmt"
	"runtime/debug"

	"github.com/alecthomas/kong"
)

// CLI defines the command-line interface.
type CLI struct {
	Run      RunCmd      `cmd:"" default:"1" help:"Run the simulation in a window."`
	Batch    BatchCmd    `cmd:"" help:"Run headless for a fixed number of steps and write reports."`
	Validate ValidateCmd `cmd:"" help:"Validate a configuration file."`
	Version  VersionCmd  `cmd:"" help:"Show version information."`

	Config    string  `short:"c" help:"Path to config file." type:"path"`
	LogLevel  string  `help:"Log level (trace, debug, info, warn, error)."`
	LogFormat string  `help:"Log format (console or json)."`
	Seed      *uint64 `help:"Random seed; overrides the config file and OUTBREAK_SEED."`
}

// VersionCmd shows version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	version := "dev"
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "(devel)" && info.Main.Version != "" {
			version = info.Main.Version
		}
	}
	fmt.Printf("outbreak version %s\n", version)
	return nil
}

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("outbreak"),
		kong.Description("Agent-based SIR/SIRD epidemic simulation."),
		kong.UsageOnError(),
	)
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}
