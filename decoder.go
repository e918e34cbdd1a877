package textio

import "fmt"

type decodeState uint8

const (
	stateStart decodeState = iota
	stateCollecting
	stateEmit
	stateError
)

// Unit is any integer type usable as a code unit.
type Unit interface {
	~uint8 | ~uint16 | ~uint32
}

// Decoder decodes a single code point from a sequence of code units fed one
// at a time. It starts in the Start state, moves to Collecting while a
// multi-unit sequence is incomplete, and ends in Emit or Error. A rule
// violation abandons the whole attempt: no partial code point is produced.
//
// The zero Decoder decodes UTF-8.
type Decoder struct {
	form      Form
	state     decodeState
	remaining int
	units     int
	acc       rune
	min       rune
	err       error
}

// NewDecoder returns a Decoder for form.
func NewDecoder(form Form) *Decoder {
	return &Decoder{form: form}
}

// Reset prepares d for a new code point, optionally switching forms.
func (d *Decoder) Reset(form Form) {
	*d = Decoder{form: form}
}

// Feed consumes one code unit. It returns done once a code point is
// complete; Rune then holds it. After done or an error, Feed must not be
// called again before Reset.
func (d *Decoder) Feed(unit uint32) (done bool, err error) {
	switch d.state {
	case stateEmit, stateError:
		panic("textio: Decoder.Feed called after completion without Reset")
	case stateStart:
		d.units = 1
		switch d.form {
		case UTF8:
			d.start8(unit)
		case UTF16:
			d.start16(unit)
		default:
			d.start32(unit)
		}
	default:
		d.units++
		if d.form == UTF8 {
			d.continue8(unit)
		} else {
			d.continue16(unit)
		}
	}
	return d.state == stateEmit, d.err
}

func (d *Decoder) start8(unit uint32) {
	b := byte(unit)
	switch {
	case b < 0x80:
		d.emit(rune(b))
	case b&0xE0 == 0xC0:
		d.collect(rune(b&0x1F), 1, 0x80)
	case b&0xF0 == 0xE0:
		d.collect(rune(b&0x0F), 2, 0x800)
	case b&0xF8 == 0xF0:
		d.collect(rune(b&0x07), 3, 0x10000)
	default:
		d.fail(fmt.Errorf("%w: unexpected leading byte 0x%02x", ErrInvalidEncoding, b))
	}
}

func (d *Decoder) continue8(unit uint32) {
	b := byte(unit)
	if b&0xC0 != 0x80 {
		d.fail(fmt.Errorf("%w: expected continuation byte, got 0x%02x", ErrInvalidEncoding, b))
		return
	}
	d.acc = d.acc<<6 | rune(b&0x3F)
	d.remaining--
	if d.remaining > 0 {
		return
	}
	switch {
	case d.acc < d.min:
		d.fail(fmt.Errorf("%w: overlong %d-byte sequence for U+%04X", ErrInvalidEncoding, d.units, d.acc))
	case !ValidRune(d.acc):
		d.fail(fmt.Errorf("%w: U+%04X", ErrInvalidCodePoint, d.acc))
	default:
		d.emit(d.acc)
	}
}

func (d *Decoder) start16(unit uint32) {
	u := rune(uint16(unit))
	switch {
	case isLeadSurrogate(u):
		d.collect(u, 1, 0)
	case isTrailSurrogate(u):
		d.fail(fmt.Errorf("%w: unpaired trailing surrogate 0x%04X", ErrInvalidEncoding, u))
	default:
		d.emit(u)
	}
}

func (d *Decoder) continue16(unit uint32) {
	u := rune(uint16(unit))
	if !isTrailSurrogate(u) {
		d.fail(fmt.Errorf("%w: leading surrogate 0x%04X followed by 0x%04X", ErrInvalidEncoding, d.acc, u))
		return
	}
	d.remaining = 0
	d.emit(combineSurrogates(d.acc, u))
}

func (d *Decoder) start32(unit uint32) {
	if unit > MaxRune || !ValidRune(rune(unit)) {
		d.fail(fmt.Errorf("%w: 0x%08X", ErrInvalidCodePoint, unit))
		return
	}
	d.emit(rune(unit))
}

func (d *Decoder) collect(acc rune, remaining int, min rune) {
	d.state = stateCollecting
	d.acc = acc
	d.remaining = remaining
	d.min = min
}

func (d *Decoder) emit(r rune) {
	d.state = stateEmit
	d.acc = r
}

func (d *Decoder) fail(err error) {
	d.state = stateError
	d.err = err
}

// Rune returns the decoded code point once Feed reported done.
func (d *Decoder) Rune() rune {
	if d.state != stateEmit {
		return RuneError
	}
	return d.acc
}

// Units returns the number of code units fed for the current code point.
func (d *Decoder) Units() int { return d.units }

// Remaining returns how many more units the current sequence needs.
func (d *Decoder) Remaining() int { return d.remaining }

// Pending reports whether a sequence has begun but is not yet complete.
func (d *Decoder) Pending() bool { return d.state == stateCollecting }

// Err returns the error that moved d into the Error state.
func (d *Decoder) Err() error { return d.err }

// truncated reports an incomplete sequence at the end of the input.
func (d *Decoder) truncated() error {
	return fmt.Errorf("%w: sequence truncated after %d of %d units", ErrInvalidEncoding, d.units, d.units+d.remaining)
}

// decodeUnits drives a Decoder over units and returns the first code point
// and the number of units it took.
func decodeUnits[U Unit](form Form, units []U) (rune, int, error) {
	if len(units) == 0 {
		return RuneError, 0, fmt.Errorf("%w: empty input", ErrInvalidEncoding)
	}
	d := Decoder{form: form}
	for i, u := range units {
		done, err := d.Feed(uint32(u))
		if err != nil {
			return RuneError, 0, err
		}
		if done {
			return d.Rune(), i + 1, nil
		}
	}
	return RuneError, 0, d.truncated()
}
