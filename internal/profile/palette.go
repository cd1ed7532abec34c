package profile

import "image/color"

// PaletteSize is the number of distinct series colours before they repeat.
const PaletteSize = 6

var palette = [PaletteSize]color.NRGBA{
	{R: 0xff, A: 0xff},
	{G: 0xff, A: 0xff},
	{B: 0xff, A: 0xff},
	{R: 0xff, G: 0xff, A: 0xff},
	{R: 0xff, B: 0xff, A: 0xff},
	{G: 0xff, B: 0xff, A: 0xff},
}

// ChannelFor returns the palette channel for a series index.
func ChannelFor(seriesIndex int) int {
	c := seriesIndex % PaletteSize
	if c < 0 {
		c += PaletteSize
	}
	return c
}

// ChannelColor returns the stroke colour for a palette channel.
func ChannelColor(channel int) color.NRGBA {
	return palette[ChannelFor(channel)]
}
