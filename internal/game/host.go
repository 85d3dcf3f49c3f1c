package game

import "time"

// textCacheLimit bounds the rasterised HUD strings kept by either host.
const textCacheLimit = 64

// wallSeconds drives the day/night cycle, which follows the wall clock
// rather than frame count.
func wallSeconds() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}
