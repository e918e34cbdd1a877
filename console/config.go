package console

import textio "github.com/libcmp/ccl-sub001"

// Unbuffered requests a buffer capacity of zero. A zero capacity in Config
// means "use the default".
const Unbuffered = -1

// Config holds configuration settings for a console Context
type Config struct {
	InputBuffer    int    `yaml:"input_buffer"`    // stdin buffer capacity, 0 for the default, Unbuffered for none
	OutputBuffer   int    `yaml:"output_buffer"`   // stdout buffer capacity, 0 for the default, Unbuffered for none
	ErrorBuffer    int    `yaml:"error_buffer"`    // stderr buffer capacity, 0 for the default (unbuffered)
	Encoding       string `yaml:"encoding"`        // default encoding name for all three streams, see textio.LookupEncoding
	InputEncoding  string `yaml:"input_encoding"`  // stdin encoding, empty for Encoding
	OutputEncoding string `yaml:"output_encoding"` // stdout encoding, empty for Encoding
	DetectBOM      bool   `yaml:"detect_bom"`      // consume a byte order mark at the start of stdin
	WriteBOM       bool   `yaml:"write_bom"`       // emit a byte order mark before the first write to stdout
}

// DefaultConfig returns the configuration used if none is provided
func DefaultConfig() *Config {
	return &Config{
		InputBuffer:  textio.BUFFER_SIZE,
		OutputBuffer: textio.BUFFER_SIZE,
		ErrorBuffer:  0,
		Encoding:     "utf-8",
	}
}

// mergeConfig takes a provided config and replaces any values not set with the defaults
func mergeConfig(c *Config) *Config {
	d := DefaultConfig()
	if c == nil {
		return d
	}
	merged := *c
	merged.InputBuffer = bufferSize(merged.InputBuffer, d.InputBuffer)
	merged.OutputBuffer = bufferSize(merged.OutputBuffer, d.OutputBuffer)
	merged.ErrorBuffer = bufferSize(merged.ErrorBuffer, d.ErrorBuffer)
	if merged.Encoding == "" {
		merged.Encoding = d.Encoding
	}
	if merged.InputEncoding == "" {
		merged.InputEncoding = merged.Encoding
	}
	if merged.OutputEncoding == "" {
		merged.OutputEncoding = merged.Encoding
	}
	return &merged
}

func bufferSize(n, def int) int {
	switch {
	case n == 0:
		return def
	case n < 0:
		return 0
	}
	return n
}
