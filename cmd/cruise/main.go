//go:build !android

package main

import (
	"fmt"
	"os"

	"cruise/internal/drive"
	"cruise/internal/game"
	"cruise/internal/logging"
)

func main() {
	opts, err := drive.ParseOptions(os.Args[1:], os.LookupEnv)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cruise:", err)
		os.Exit(2)
	}

	logger, closeLog := logging.Open(opts.LogPath, !opts.Debug)
	logger.Infof("main", "assets=%s cycle=%v seed=%d", opts.AssetDir, opts.Cycle, opts.Seed)

	err = game.RunDesktop(opts, logger)
	if err != nil {
		logger.Errorf("main", "%v", err)
		if opts.LogPath != "" {
			fmt.Fprintln(os.Stderr, "cruise:", err)
		}
	}
	closeLog()
	if err != nil {
		os.Exit(1)
	}
}
