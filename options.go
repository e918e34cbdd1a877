package textio

type options struct {
	writeBOM  bool
	detectBOM bool
}

// Option configures a Reader or Writer.
type Option func(*options)

// WithBOM makes a Writer emit a byte order mark before its first write when
// the output is at offset 0.
func WithBOM() Option {
	return func(o *options) { o.writeBOM = true }
}

// WithBOMDetection lets a Reader adopt the byte order of a UTF-16 or UTF-32
// byte order mark in the opposite order at offset 0, consuming the mark. A
// mark in the configured order is consumed with or without this option.
func WithBOMDetection() Option {
	return func(o *options) { o.detectBOM = true }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
