//go:build android

package main

import (
	"os"

	"cruise/internal/drive"
	"cruise/internal/game"
	"cruise/internal/logging"
)

func main() {
	opts, err := drive.ParseOptions(nil, os.LookupEnv)
	logger, closeLog := logging.Open(opts.LogPath, !opts.Debug)
	defer closeLog()
	if err != nil {
		logger.Errorf("main", "%v", err)
		return
	}
	game.RunAndroid(opts, logger)
}
