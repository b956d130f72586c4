package machine

// Config contains settings that affect emulation behavior.
type Config struct {
	Variant       string // "mono" or "color"
	CharGenROM    []byte // optional character generator dump
	OptCharGenROM []byte // optional alternate-font generator dump
	Quiet         bool   // drop controller log messages (useful in tests)
}
