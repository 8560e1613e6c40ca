//
//   date  : 2024-03-02
//   author: rqlin
//

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/thecodeteam/goodbye"

	"github.com/rqlin/oneping"
	"github.com/rqlin/oneping/internal"
)

var VERSION = "0.1-dev"

var logger = internal.GetLogger()

func main() {
	version := flag.Bool("version", false, "Get version info")
	debug := flag.Bool("debug", false, "Print debug info")
	config := flag.String("config", "", "config file")
	flag.Parse()

	if *version {
		fmt.Printf("Version: %s\n", VERSION)
		os.Exit(1)
	}

	internal.InitLogger(*debug)

	var source interface{} = []byte{}
	if *config != "" {
		logger.Infof("using config file: %v", *config)
		source = *config
	}

	cfg, err := oneping.ParseConfig(source)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(2)
	}

	if !*debug && cfg.General.LogLevel != "" {
		if err := internal.SetLogLevel(cfg.General.LogLevel); err != nil {
			logger.Warningf("invalid log-level %q: %v", cfg.General.LogLevel, err)
		}
	}

	// destination on the command line overrides the config file
	if dest := flag.Arg(0); dest != "" {
		cfg.Core.Dest = dest
	}

	one, err := oneping.FromConfig(cfg)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(3)
	}

	// close the socket on signal: the receive has no deadline, this is
	// the only way out of a read that never completes
	ctx := context.Background()
	goodbye.Notify(ctx)
	goodbye.Register(func(ctx context.Context, s os.Signal) {
		logger.Infof("closing raw socket, please wait...")
		one.Close()
	})

	err = one.Serve()
	one.Close()
	if err != nil {
		os.Exit(3)
	}
}
