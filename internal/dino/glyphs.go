package dino

import "github.com/vovakirdan/lcd-dino/internal/core"

// Character-generator slots and ROM codes used on the panel.
const (
	SlotAvatarCrashed   = 1
	SlotObstacleCrashed = 2
	SlotAvatar          = 3

	// ObstacleCode is the built-in ROM character used as the obstacle
	// (the yen sign on HD44780 A00 character sets).
	ObstacleCode byte = 0x5C
	// DebrisCode replaces the crashed avatar after the crash frame.
	DebrisCode byte = '*'
)

// Glyph names, used by front-ends to pick a terminal rune for each slot.
const (
	GlyphAvatar          = "avatar"
	GlyphAvatarCrashed   = "avatar-crashed"
	GlyphObstacleCrashed = "obstacle-crashed"
)

// AvatarGlyph is the running avatar.
var AvatarGlyph = core.Glyph{
	Name: GlyphAvatar,
	Rows: [core.GlyphRows]uint8{
		0b00011,
		0b00010,
		0b00011,
		0b00110,
		0b10110,
		0b11110,
		0b00100,
		0b00010,
	},
}

// AvatarCrashedGlyph is the avatar after hitting the obstacle.
var AvatarCrashedGlyph = core.Glyph{
	Name: GlyphAvatarCrashed,
	Rows: [core.GlyphRows]uint8{
		0b00011,
		0b00011,
		0b00011,
		0b00110,
		0b10111,
		0b11110,
		0b00100,
		0b00010,
	},
}

// ObstacleCrashedGlyph is the knocked-over obstacle.
var ObstacleCrashedGlyph = core.Glyph{
	Name: GlyphObstacleCrashed,
	Rows: [core.GlyphRows]uint8{
		0b00100,
		0b01000,
		0b11100,
		0b10000,
		0b11100,
		0b10000,
		0b10000,
		0b10000,
	},
}

type glyphSlot struct {
	slot  int
	glyph core.Glyph
}

// bootGlyphs lists the uploads done once at power-on.
var bootGlyphs = []glyphSlot{
	{SlotAvatar, AvatarGlyph},
	{SlotAvatarCrashed, AvatarCrashedGlyph},
	{SlotObstacleCrashed, ObstacleCrashedGlyph},
}
