package parameter

// Streak Geometry
const (
	// StreakLengthMin is the shortest streak, in cells (inclusive)
	StreakLengthMin = 3

	// StreakLengthMax is the longest streak, in cells (inclusive)
	StreakLengthMax = 15

	// StreakSpeedMin is the slowest fall speed, in rows per tick
	StreakSpeedMin = 0.5

	// StreakSpeedMax is the fastest fall speed, in rows per tick; brightness is normalized against it
	StreakSpeedMax = 1.5
)

// Brightness Curve
// brightness = Floor + fraction * Gain * (speed / StreakSpeedMax) * SpeedWeight
const (
	// BrightnessFloor keeps the tail from going fully black
	BrightnessFloor = 0.1

	// BrightnessGain scales the tail-to-head ramp
	BrightnessGain = 0.7

	// BrightnessSpeedWeight scales how much a fast streak brightens
	BrightnessSpeedWeight = 0.8
)

// Color
const (
	// Hue is the shared streak hue in degrees (green)
	Hue = 120.0

	// Saturation is the HSL saturation of every streak cell
	Saturation = 1.0
)

// Spawning
const (
	// SpawnColumns is the number of columns per additional streak spawned each frame
	// A frame spawns 1..max(1, width/SpawnColumns) streaks
	SpawnColumns = 30

	// InitialFieldCapacity preallocates the streak slice
	InitialFieldCapacity = 256
)

// Glyphs is the alphanumeric set streak characters are drawn from
const Glyphs = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
