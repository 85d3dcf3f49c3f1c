package drive

import "math"

// Window defaults.
const (
	WindowWidth  = 1280
	WindowHeight = 720
)

// Speed is measured in road pixels advanced per frame.
// One pixel is 0.1 m and the loop targets 60 frames per second.
const (
	MinSpeed     = 1
	InitialSpeed = 4
	TopSpeedKmh  = 400
	KmhPerUnit   = 0.1 * 60 * 3.6
)

// MaxSpeed is the scroll speed that reads as TopSpeedKmh (19).
var MaxSpeed = int(math.Round(TopSpeedKmh / KmhPerUnit))

// Car sprite placement (screen pixels).
const (
	CarWidth   = 400
	CarHeight  = 160
	CarOverlap = 60 // wheels sink this far into the road band
)

// Road band and background layout.
const (
	RoadBandFraction = 0.2
	BackgroundDrop   = 300
	MinControlStep   = 10
	ControlFraction  = 0.015
)

// Day/night cycle.
const (
	DayNightDuration = 60.0 // seconds per full cycle
	NightStart       = 0.5
	ArcRadiusFrac    = 0.4
	ArcCenterYFrac   = 0.18
)

// Star field.
const (
	StarCount     = 80
	StarMaxY      = 0.5
	StarMinRadius = 0.5
	StarRadiusVar = 1.2
	StarTwinkleHz = 2.0
)

// HUD placement.
const (
	HUDTextX    = 32
	HUDTextY    = 48
	HUDFontSize = 28
	HUDStroke   = 4
	HUDLineGap  = 40
)

// Asset file names, resolved against the asset directory.
const (
	RoadAsset       = "track.png"
	CarAsset        = "car-unscreen.gif"
	BackgroundAsset = "bgimg.png"
	AmbientAsset    = "bgmusic.wav"
	AccelAsset      = "sound.mp3"
)

// Audio levels.
const (
	AmbientVolume = 0.5
	AccelVolume   = 0.7
)
