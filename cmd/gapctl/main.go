package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/currantlabs/blegap/adv"
	"github.com/currantlabs/blegap/gap"
	"github.com/currantlabs/blegap/linux"
	"github.com/currantlabs/blegap/linux/bluez"
)

var (
	dispatcher *gap.Dispatcher
	task       *gap.Task
	events     = make(chan gap.Event, 64)
)

func main() {
	app := cli.NewApp()

	app.Name = "gapctl"
	app.Usage = "Drive BLE advertising and scanning"
	app.Version = "0.0.1"
	app.Action = cli.ShowAppHelp
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "backend, b", Value: "hci", Usage: "controller backend (hci / bluez)"},
		cli.IntFlag{Name: "device", Value: -1, Usage: "HCI device id, -1 for the first available"},
		cli.StringFlag{Name: "adapter", Value: "hci0", Usage: "BlueZ adapter"},
		cli.StringFlag{Name: "name, n", Value: "Gopher", Usage: "device name"},
		cli.IntFlag{Name: "pool", Value: 256, Usage: "advertising buffer budget in bytes, 0 for unbounded"},
	}

	app.Commands = []cli.Command{
		{
			Name:    "scan",
			Aliases: []string{"s"},
			Usage:   "Scan for advertising devices",
			Action:  scan,
			Flags: []cli.Flag{
				cli.UintFlag{Name: "duration, d", Value: 5, Usage: "duration in seconds"},
				cli.BoolFlag{Name: "active", Usage: "request scan responses"},
				cli.UintFlag{Name: "interval", Value: 0x0010, Usage: "scan interval, N * 0.625 msec"},
				cli.UintFlag{Name: "window", Value: 0x0010, Usage: "scan window, N * 0.625 msec"},
			},
		},
		{
			Name:    "adv",
			Aliases: []string{"a"},
			Usage:   "Advertise name, service UUIDs and manufacturer data",
			Action:  advertise,
			Flags: []cli.Flag{
				cli.DurationFlag{Name: "duration, d", Value: time.Second * 5, Usage: "duration"},
				cli.StringSliceFlag{Name: "uuid, u", Usage: "service UUID, may be repeated"},
				cli.StringFlag{Name: "manu, m", Usage: "manufacturer data in hex, company id first"},
				cli.StringFlag{Name: "svcdata", Usage: "service data in hex, 16-bit UUID first"},
				cli.UintFlag{Name: "appearance", Usage: "appearance"},
				cli.UintFlag{Name: "interval", Value: 0x00A0, Usage: "advertising interval, N * 0.625 msec"},
				cli.BoolFlag{Name: "nonconn", Usage: "non-connectable"},
			},
		},
		{
			Name:   "privacy",
			Usage:  "Turn controller address resolution on or off",
			Action: privacy,
			Flags: []cli.Flag{
				cli.BoolTFlag{Name: "enable", Usage: "enable"},
			},
		},
		{
			Name:      "randaddr",
			Usage:     "Set the random address",
			ArgsUsage: "<addr>",
			Action:    randAddr,
		},
		{
			Name:    "shell",
			Aliases: []string{"sh"},
			Usage:   "Entering interactive mode",
			Action:  func(c *cli.Context) error { shell(app); return nil },
		},
	}

	app.Before = setup
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func setup(c *cli.Context) error {
	if dispatcher != nil {
		return nil
	}
	fmt.Printf("Initializing %s backend ...\n", c.String("backend"))
	var ctrl gap.Controller
	switch c.String("backend") {
	case "hci":
		d, err := linux.Open(c.Int("device"), linux.OptDeviceName(c.String("name")), linux.OptFilterDuplicates(true))
		if err != nil {
			return errors.Wrap(err, "can't open hci device")
		}
		ctrl = d
	case "bluez":
		a, err := bluez.Open(c.String("adapter"))
		if err != nil {
			return errors.Wrap(err, "can't open bluez adapter")
		}
		a.SetDeviceName(c.String("name"))
		ctrl = a
	default:
		return errors.Errorf("unknown backend %q", c.String("backend"))
	}

	task = gap.NewTask(64)
	go task.Loop()
	d, err := gap.NewDispatcher(ctrl,
		gap.OptPool(adv.NewPool(c.Int("pool"))),
		gap.OptTask(task),
		gap.OptHandler(gap.HandlerFunc(func(e gap.Event) { events <- e })),
	)
	if err != nil {
		return errors.Wrap(err, "can't create dispatcher")
	}
	dispatcher = d
	return nil
}

func shell(app *cli.App) {
	reader := bufio.NewReader(os.Stdin)
	sigs := make(chan os.Signal, 1)
	go func() {
		for range sigs {
			fmt.Printf("\n(type quit or q to exit)\n")
		}
	}()
	defer close(sigs)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	for {
		fmt.Print("gapctl > ")
		text, _ := reader.ReadString('\n')
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if text == "quit" || text == "q" {
			break
		}
		if err := app.Run(append(os.Args[:1], strings.Split(text, " ")...)); err != nil {
			fmt.Printf("%s\n", err)
		}
	}
	signal.Stop(sigs)
}
