// Package rain simulates and paints the falling streaks.
//
// A Streak is a vertical run of glyphs in one column whose leading edge moves
// down by Speed rows every tick. Y is the exclusive leading edge, so a streak
// covers rows [floor(Y)-Length, floor(Y)). A new streak starts at Y = 0,
// entirely above the screen, and expires once its tail reaches the bottom.
//
// A Field owns the live streaks. Field.Update paints every streak into a
// Surface inside one SyncUpdate, then advances and filters them, so the
// screen never shows a half-drawn frame and the simulation advances exactly
// once per update whether or not painting succeeded.
//
// Glyphs are not stored. Each streak keeps the seed of its own generator and
// replays it from the tail on every render, so the character at a given tail
// distance never changes while the streak falls.
package rain
