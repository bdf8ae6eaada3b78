package encode

// EncodeOption configures binary encoding.
type EncodeOption func(*encConfig)

type encConfig struct {
	compression Compression
}

func newEncConfig(opts []EncodeOption) *encConfig {
	cfg := &encConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithCompression selects the compression framing for Encode. Decode
// needs no option; it sniffs the framing.
func WithCompression(c Compression) EncodeOption {
	return func(cfg *encConfig) { cfg.compression = c }
}

// TextOption configures the text rendering.
type TextOption func(*textConfig)

type textConfig struct {
	indent int
	colors *Colors
}

func newTextConfig(opts []TextOption) *textConfig {
	cfg := &textConfig{indent: 2}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Indent sets spaces per nesting level (default 2).
func Indent(n int) TextOption {
	return func(cfg *textConfig) { cfg.indent = n }
}

// WithColors enables ANSI-colored rendering.
func WithColors(c *Colors) TextOption {
	return func(cfg *textConfig) { cfg.colors = c }
}
