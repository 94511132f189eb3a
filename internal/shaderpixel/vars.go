package shaderpixel

var (
	Debug    = false // set to true for verbose debug output
	PNG      = false // set to true to save a 16-bit PNG sequence instead of a single PNG/GIF
	GIF      = false // set to true to save an animated GIF of all frames
	Progress = true  // set to false to silence [PROGRESS] lines
	// Compile time checks to ensure that the program interface is implemented by all built-in programs
	_ Program = (*Solar)(nil)
	_ Program = (*Mountain)(nil)
	_ Program = (*Mandelbox)(nil)
	_ Program = (*Menger)(nil)
	_ Program = (*Mandelbrot)(nil)
	_ Program = (*Cat)(nil)
	_ Field   = FieldFunc(nil)
)
