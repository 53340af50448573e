// Package mt implements the high-level Minetest protocol:
// typed commands, their wire encoding and Peers exchanging them over rudp.
package mt

type Node struct {
	Param0         Content
	Param1, Param2 uint8
}

type Content uint16

const (
	Unknown Content = 125
	Air     Content = 126
	Ignore  Content = 127
)

// A Group is a named rating, such as "cracky" 3 or "level" 2.
type Group struct {
	Name   string
	Rating int16
}

// A Field is a named formspec field value.
type Field struct {
	Name string

	// Sent as a long string.
	Value string
}

// CompressionModes is a bitmask of supported compression algorithms.
type CompressionModes uint16

// A Texture is a texture string such as "default_dirt.png^[crack:1:2".
type Texture string
