//
// main.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Command psi runs the private set intersection protocol.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/markkurossi/psi/env"
	"github.com/markkurossi/psi/p2p"
	"github.com/markkurossi/psi/psi"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	demoSenderSet   = []string{"apple", "banana", "cherry", "date"}
	demoReceiverSet = []string{"cherry", "date", "elderberry", "fig"}
)

var configFlag = &cli.StringFlag{
	Name:  "config",
	Usage: "read configuration from the TOML `FILE`",
}

var setFlag = &cli.StringFlag{
	Name:  "set",
	Usage: "read the input set from `FILE`, one item per line",
}

var addrFlag = &cli.StringFlag{
	Name:  "addr",
	Usage: "protocol `ADDRESS`",
	Value: DefaultAddr,
}

var verboseFlag = &cli.BoolFlag{
	Name:  "verbose",
	Usage: "log at the debug level",
}

var timingFlag = &cli.BoolFlag{
	Name:  "timing",
	Usage: "print protocol timing report",
}

var workersFlag = &cli.IntFlag{
	Name:  "workers",
	Usage: "number of worker goroutines, 0 for one per CPU",
}

var countFlag = &cli.IntFlag{
	Name:  "count",
	Usage: "number of receivers to serve, 0 for unlimited",
}

var senderSetFlag = &cli.StringFlag{
	Name:  "sender-set",
	Usage: "read the demo sender set from `FILE`",
}

var receiverSetFlag = &cli.StringFlag{
	Name:  "receiver-set",
	Usage: "read the demo receiver set from `FILE`",
}

func main() {
	app := &cli.App{
		Name:  "psi",
		Usage: "private set intersection",
		Flags: []cli.Flag{configFlag, verboseFlag, timingFlag, workersFlag},
		Commands: []*cli.Command{
			{
				Name:   "demo",
				Usage:  "run both parties in-process",
				Flags:  []cli.Flag{senderSetFlag, receiverSetFlag},
				Action: demoCmd,
			},
			{
				Name:   "sender",
				Usage:  "serve receivers as the sender",
				Flags:  []cli.Flag{setFlag, addrFlag, countFlag},
				Action: senderCmd,
			},
			{
				Name:   "receiver",
				Usage:  "connect to the sender and print the intersection",
				Flags:  []cli.Flag{setFlag, addrFlag},
				Action: receiverCmd,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "psi: %s\n", err)
		os.Exit(1)
	}
}

// setup reads the configuration and applies the command line flags.
func setup(c *cli.Context) (*Config, *zap.Logger, error) {
	config, err := loadConfig(c.String(configFlag.Name))
	if err != nil {
		return nil, nil, err
	}
	if c.IsSet(verboseFlag.Name) {
		config.Verbose = c.Bool(verboseFlag.Name)
	}
	if c.IsSet(timingFlag.Name) {
		config.Timing = c.Bool(timingFlag.Name)
	}
	if c.IsSet(workersFlag.Name) {
		config.Workers = c.Int(workersFlag.Name)
	}
	if c.IsSet(addrFlag.Name) {
		config.Addr = c.String(addrFlag.Name)
	}
	if c.IsSet(setFlag.Name) {
		config.Set = c.String(setFlag.Name)
	}
	if c.IsSet(countFlag.Name) {
		config.Count = c.Int(countFlag.Name)
	}
	if c.IsSet(senderSetFlag.Name) {
		config.SenderSet = c.String(senderSetFlag.Name)
	}
	if c.IsSet(receiverSetFlag.Name) {
		config.ReceiverSet = c.String(receiverSetFlag.Name)
	}
	return config, newLogger(config.Verbose), nil
}

func inputSet(path string, def []string) ([]string, error) {
	if len(path) == 0 {
		if def == nil {
			return nil, errors.New("no input set")
		}
		return def, nil
	}
	return readSetFile(path)
}

func printResult(w io.Writer, result []string) {
	for _, item := range result {
		fmt.Fprintln(w, item)
	}
}

func demoCmd(c *cli.Context) error {
	config, logger, err := setup(c)
	if err != nil {
		return err
	}
	defer logger.Sync()

	x, err := inputSet(config.SenderSet, demoSenderSet)
	if err != nil {
		return err
	}
	y, err := inputSet(config.ReceiverSet, demoReceiverSet)
	if err != nil {
		return err
	}
	logger.Info("running demo",
		zap.Int("sender", len(x)), zap.Int("receiver", len(y)))

	result, timing, stats, err := runDemo(config.Env(logger), x, y)
	if err != nil {
		return err
	}
	printResult(c.App.Writer, result)
	if config.Timing {
		timing.Print(c.App.Writer, stats)
	}
	return nil
}

func senderCmd(c *cli.Context) error {
	config, logger, err := setup(c)
	if err != nil {
		return err
	}
	defer logger.Sync()

	items, err := inputSet(config.Set, nil)
	if err != nil {
		return err
	}
	server, err := p2p.Listen(config.Addr, logger)
	if err != nil {
		return err
	}
	defer server.Close()

	logger.Info("listening",
		zap.Stringer("addr", server.Addr()), zap.Int("items", len(items)))

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	err = server.Serve(ctx, config.Count, func(conn *p2p.Conn) error {
		var timing *psi.Timing
		if config.Timing {
			timing = psi.NewTiming()
		}
		sender := psi.NewSender(config.Env(logger), items)
		if err := psi.RunSender(conn, sender, timing); err != nil {
			return err
		}
		timing.Print(c.App.Writer, conn.Stats)
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func receiverCmd(c *cli.Context) error {
	config, logger, err := setup(c)
	if err != nil {
		return err
	}
	defer logger.Sync()

	items, err := inputSet(config.Set, nil)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	conn, err := p2p.Dial(ctx, config.Addr, time.Second, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	var timing *psi.Timing
	if config.Timing {
		timing = psi.NewTiming()
	}
	receiver := psi.NewReceiver(config.Env(logger), items)
	result, err := psi.RunReceiver(conn, receiver, timing)
	if err != nil {
		return err
	}
	printResult(c.App.Writer, result)
	timing.Print(c.App.Writer, conn.Stats)

	return nil
}

// runDemo runs both protocol parties over an in-memory pipe and
// returns the intersection with the receiver's timing and I/O
// statistics. Each party closes its end when it is done so a failing
// party unblocks its peer.
func runDemo(config *env.Config, x, y []string) (
	[]string, *psi.Timing, p2p.IOStats, error) {

	sc, rc := p2p.Pipe()
	timing := psi.NewTiming()

	var result []string
	var g errgroup.Group
	g.Go(func() error {
		err := psi.RunSender(sc, psi.NewSender(config, x), nil)
		if cerr := sc.Close(); err == nil {
			err = cerr
		}
		return err
	})
	g.Go(func() error {
		var err error
		result, err = psi.RunReceiver(rc, psi.NewReceiver(config, y), timing)
		if cerr := rc.Close(); err == nil {
			err = cerr
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, rc.Stats, err
	}
	return result, timing, rc.Stats, nil
}
