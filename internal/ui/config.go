package ui

// Config contains window/input related settings.
type Config struct {
	Title string // window title
	Scale int    // integer upscaling factor
	// Later: fullscreen, aspect correction, key mapping, etc.
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "hp45"
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
}
