// Package cli implements the command line surface of flightd: an
// interactive TUI for a running daemon and an offline trajectory simulator.
package cli

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"
)

// Handle parses os.Args and runs any subcommand. When a subcommand ran, the
// process exits here; a plain invocation returns so the daemon can start.
func Handle() {
	shouldExit := true
	cmd := &cli.Command{
		Commands: []*cli.Command{
			{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "Send commands to an active flightd instance",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					interactive()
					return nil
				},
			},
			{
				Name:    "simulate",
				Aliases: []string{"s"},
				Usage:   "Run the trajectory generator offline against a single waypoint and print the setpoints as JSON lines",
				Flags: []cli.Flag{
					&cli.Float64Flag{
						Category: "Waypoint",
						Name:     "target-x",
						Usage:    "Sets the target north position in meters",
						Value:    10,
					},
					&cli.Float64Flag{
						Category: "Waypoint",
						Name:     "target-y",
						Usage:    "Sets the target east position in meters",
						Value:    0,
					},
					&cli.Float64Flag{
						Category: "Waypoint",
						Name:     "target-z",
						Usage:    "Sets the target down position in meters, negative is up",
						Value:    -5,
					},
					&cli.Float64Flag{
						Category: "Waypoint",
						Name:     "acceptance-radius",
						Usage:    "Sets the waypoint acceptance radius in meters",
						Value:    1,
					},
					&cli.Float64Flag{
						Category: "Profile",
						Name:     "cruise",
						Usage:    "Sets the cruise speed in meters per second, 0 uses the configured default",
						Value:    0,
					},
					&cli.Float64Flag{
						Category: "Profile",
						Name:     "rate",
						Usage:    "Sets the cycle rate in hertz",
						Value:    50,
					},
					&cli.Float64Flag{
						Category: "Profile",
						Name:     "duration",
						Usage:    "Sets the simulated time in seconds",
						Value:    20,
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return simulate(simulationSettings{
						TargetX:          cmd.Float64("target-x"),
						TargetY:          cmd.Float64("target-y"),
						TargetZ:          cmd.Float64("target-z"),
						AcceptanceRadius: cmd.Float64("acceptance-radius"),
						CruiseSpeed:      cmd.Float64("cruise"),
						Rate:             cmd.Float64("rate"),
						Duration:         cmd.Float64("duration"),
					})
				},
			},
		},
		Name:  "Flightd",
		Usage: "Start an instance of flightd",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			shouldExit = false
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}

	if shouldExit {
		os.Exit(0)
	}
}
