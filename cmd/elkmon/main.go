// Command elkmon is a thin demo harness: dial a panel, print every
// entity change as it's promoted to the default handler, and arm (away)
// the area given by -arm-area, if any. Out of scope per the core
// library's spec, kept minimal; adapted from cmd/iecat's dial-and-print
// shape rather than a CLI framework of its own.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/BioSehnsucht/pyelk"
	"github.com/BioSehnsucht/pyelk/msg"
)

var CmdLog = log.New(os.Stderr, filepath.Base(os.Args[0])+": ", 0)

var (
	hostFlag     = flag.String("host", "", "Panel transport URL (socket://host:port) or serial device path.")
	rateFlag     = flag.Float64("ratelimit", 10, "Outbound frames per second.")
	snapshotFlag = flag.String("snapshot", "pyelk_snapshot.json", "Fast-load snapshot file path.")
	armFlag      = flag.Int("arm-area", 0, "Arm this area (away) on start, 0 to skip.")
	armCodeFlag  = flag.String("arm-code", "", "User code for -arm-area.")
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	if *hostFlag == "" {
		CmdLog.Fatal("-host is required")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		CmdLog.Fatal(err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := pyelk.Config{
		Host:         *hostFlag,
		RateLimit:    *rateFlag,
		FastLoad:     true,
		FastLoadFile: *snapshotFlag,
	}

	p, err := pyelk.Open(ctx, cfg, logger, func(v interface{}) {
		fmt.Printf("%+v\n", v)
	})
	if err != nil {
		CmdLog.Fatal(err)
	}
	defer p.Close()

	if *armFlag > 0 {
		if err := p.Arm(*armFlag, msg.ArmAway, *armCodeFlag); err != nil {
			CmdLog.Print("arm failed: ", err)
		}
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	sig := <-signals
	CmdLog.Printf("got signal %s, shutting down", sig)
}
