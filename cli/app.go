// Package cli contains the camhal command line application.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	// Global flags.
	generalFlagConfig = "config"
	generalFlagDebug  = "debug"

	// Register access flags.
	registerFlagRegWidth  = "reg-width"
	registerFlagDataWidth = "data-width"

	detectFlagHost = "host"
)

var registerFlags = []cli.Flag{
	&cli.IntFlag{
		Name:  registerFlagRegWidth,
		Value: 2,
		Usage: "register address width in bytes (1 or 2)",
	},
	&cli.IntFlag{
		Name:  registerFlagDataWidth,
		Value: 1,
		Usage: "register data width in bytes (1 or 2)",
	},
}

var app = &cli.App{
	Name:            "camhal",
	Usage:           "inspect camera SoC hardware through the HAL",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    generalFlagConfig,
			Aliases: []string{"c"},
			Value:   defaultConfigPath,
			Usage:   "load configuration from `FILE`",
		},
		&cli.BoolFlag{
			Name:    generalFlagDebug,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging",
		},
	},
	Commands: []*cli.Command{
		{
			Name:  "detect",
			Usage: "identify the SoC and print a hardware report",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  detectFlagHost,
					Usage: "include operating system facts in the report",
				},
			},
			Action: DetectAction,
		},
		{
			Name:   "ram",
			Usage:  "print media and total RAM",
			Action: RAMAction,
		},
		{
			Name:   "temp",
			Usage:  "print the SoC temperature",
			Action: TempAction,
		},
		{
			Name:   "sensor",
			Usage:  "probe the sensor bus for known image sensors",
			Action: SensorAction,
		},
		{
			Name:      "i2cget",
			Usage:     "read one sensor register",
			ArgsUsage: "<addr> <reg>",
			Flags:     registerFlags,
			Action:    I2CGetAction,
		},
		{
			Name:      "i2cset",
			Usage:     "send a register write frame; the frame carries the register address only",
			ArgsUsage: "<addr> <reg>",
			Flags:     registerFlags,
			Action:    I2CSetAction,
		},
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
