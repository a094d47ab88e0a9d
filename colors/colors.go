package colors

// package colors contains functions to quickly and easily generate slides3d.Color instances by name (i.e. "White()", "Sand()", "Mustard()", etc).

import "github.com/solarlune/slides3d"

// Transparent generates a slides3d.Color instance of the provided name.
func Transparent() slides3d.Color {
	return slides3d.NewColor(0, 0, 0, 0)
}

// White generates a slides3d.Color instance of the provided name.
func White() slides3d.Color {
	return slides3d.NewColor(1, 1, 1, 1)
}

// Black generates a slides3d.Color instance of the provided name.
func Black() slides3d.Color {
	return slides3d.NewColor(0, 0, 0, 1)
}

// Gray generates a slides3d.Color instance of the provided name.
func Gray() slides3d.Color {
	return slides3d.NewColor(0.5, 0.5, 0.5, 1)
}

// LightGray generates a slides3d.Color instance of the provided name.
func LightGray() slides3d.Color {
	return slides3d.NewColor(0.8, 0.8, 0.8, 1)
}

// DarkGray generates a slides3d.Color instance of the provided name.
func DarkGray() slides3d.Color {
	return slides3d.NewColor(0.2, 0.2, 0.2, 1)
}

// Red generates a slides3d.Color instance of the provided name.
func Red() slides3d.Color {
	return slides3d.NewColor(1, 0, 0, 1)
}

// Sand is the default fallback color of instances (#cec298).
func Sand() slides3d.Color {
	return slides3d.NewColor(0.807, 0.760, 0.596, 1)
}

// Mustard is the default background color (#9d7f00).
func Mustard() slides3d.Color {
	return slides3d.NewColor(0.615, 0.498, 0, 1)
}
