package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"golang.org/x/net/context"

	ble "github.com/currantlabs/blegap"
	"github.com/currantlabs/blegap/adv"
	"github.com/currantlabs/blegap/gap"
)

func scan(c *cli.Context) error {
	d := c.Uint("duration")
	p := gap.ScanParams{
		Type:     gap.ScanPassive,
		Interval: uint16(c.Uint("interval")),
		Window:   uint16(c.Uint("window")),
	}
	if c.Bool("active") {
		p.Type = gap.ScanActive
	}
	if err := dispatcher.Post(gap.SetScanParams{Params: p}); err != nil {
		return err
	}
	if err := dispatcher.Post(gap.StartScan{Duration: uint32(d)}); err != nil {
		return err
	}

	// Leave some slack for the controller to report the end of the scan.
	ctx := withSigHandler(context.WithTimeout(context.Background(), time.Duration(d+1)*time.Second))
	for {
		select {
		case e := <-events:
			printEvent(e)
			if r, ok := e.(gap.ScanResult); ok {
				if _, ok := r.Result.(gap.InquiryComplete); ok {
					return nil
				}
			}
		case <-ctx.Done():
			dispatcher.Post(gap.StopScan{})
			return chkErr(ctx.Err())
		}
	}
}

func advertise(c *cli.Context) error {
	ct := adv.Content{
		IncludeTxPower: true,
		Flags:          adv.FlagGeneralDiscoverable | adv.FlagLEOnly,
		Appearance:     uint16(c.Uint("appearance")),
	}
	var uu []ble.UUID
	for _, s := range c.StringSlice("uuid") {
		u, err := ble.Parse(s)
		if err != nil {
			return errors.Wrapf(err, "can't parse uuid %q", s)
		}
		uu = append(uu, u)
		if n := ble.Name(u); n != "" {
			fmt.Printf("Service %s: %s\n", ble.Reduce(u), n)
		}
	}
	ct.ServiceUUIDs = adv.PackUUIDs(uu...)

	var err error
	if s := c.String("manu"); s != "" {
		if ct.ManufacturerData, err = hex.DecodeString(s); err != nil {
			return errors.Wrap(err, "can't parse manufacturer data")
		}
	}
	if s := c.String("svcdata"); s != "" {
		if ct.ServiceData, err = hex.DecodeString(s); err != nil {
			return errors.Wrap(err, "can't parse service data")
		}
	}
	if err := dispatcher.Post(gap.ConfigAdvData{Content: ct}); err != nil {
		return err
	}
	if err := dispatcher.Post(gap.ConfigAdvData{Content: adv.Content{ScanResponse: true, IncludeName: true}}); err != nil {
		return err
	}

	p := gap.DefaultAdvParams
	p.IntervalMin = uint16(c.Uint("interval"))
	p.IntervalMax = p.IntervalMin
	if c.Bool("nonconn") {
		p.Type = gap.AdvNonconnInd
	}
	if err := dispatcher.Post(gap.StartAdv{Params: p}); err != nil {
		return err
	}
	fmt.Printf("Advertising for %s...\n", c.Duration("duration"))

	ctx := withSigHandler(context.WithTimeout(context.Background(), c.Duration("duration")))
	for {
		select {
		case e := <-events:
			printEvent(e)
		case <-ctx.Done():
			dispatcher.Post(gap.StopAdv{})
			return chkErr(ctx.Err())
		}
	}
}

func privacy(c *cli.Context) error {
	return dispatcher.Post(gap.ConfigLocalPrivacy{Enable: c.BoolT("enable")})
}

func randAddr(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("expect one address")
	}
	a, err := ble.NewAddr(c.Args().First())
	if err != nil {
		return err
	}
	return dispatcher.Post(gap.SetRandAddr{Addr: a})
}

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
	seenColor = color.New(color.FgCyan)
)

func printStatus(what string, s gap.Status) {
	c := okColor
	if s != gap.StatusSuccess {
		c = failColor
	}
	c.Printf("%s: %s\n", what, s)
}

func printEvent(e gap.Event) {
	switch e := e.(type) {
	case gap.AdvDataSetComplete:
		printStatus("adv data set", e.Status)
	case gap.ScanRspSetComplete:
		printStatus("scan rsp set", e.Status)
	case gap.ScanParamSetComplete:
		printStatus("scan params set", e.Status)
	case gap.ScanResult:
		switch r := e.Result.(type) {
		case gap.InquiryResult:
			seenColor.Printf("[%s]", r.Addr)
			fmt.Printf(" T:%d RSSI: %3d Flags: 0x%02X\n", r.AddrType, r.RSSI, r.Flag)
		case gap.InquiryComplete:
			fmt.Printf("scan done, %d device(s)\n", r.NumResponses)
		}
	}
}

func withSigHandler(ctx context.Context, cancel func()) context.Context {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigs:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigs)
	}()
	return ctx
}

func chkErr(err error) error {
	switch errors.Cause(err) {
	case context.DeadlineExceeded:
		// Sleep briefly so the stop request reaches the controller.
		time.Sleep(100 * time.Millisecond)
		return nil
	case context.Canceled:
		fmt.Printf("canceled\n")
		return nil
	}
	return err
}
