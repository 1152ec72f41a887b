package world

import "errors"

var (
	// ErrGenerationFailed is returned when a generator exhausts its retry caps
	// without reaching the required coverage or room count. Retrying with a
	// new seed or relaxed parameters may succeed.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrStrandedRoom reports that corridor selection ran out of candidates
	// before every room was connected. The dungeon is still usable.
	ErrStrandedRoom = errors.New("stranded room")
)
