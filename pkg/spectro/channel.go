package spectro

import(
	"fmt"
)

// A Channel is one arm of the spectrograph. There are exactly two; any
// other CCD name is rejected when parsed.
type Channel int

const(
	Blue Channel = iota + 1
	Red
)

var Channels = []Channel{Blue, Red}

func (c Channel)String() string {
	switch c {
	case Blue: return "Blue"
	case Red:  return "Red"
	default:   return fmt.Sprintf("Channel(%d)", int(c))
	}
}

// ParseChannel maps the CCD header value onto a Channel. Matching is exact,
// the same spelling the lamp filenames and CCD cards use.
func ParseChannel(s string) (Channel, error) {
	switch s {
	case "Blue": return Blue, nil
	case "Red":  return Red, nil
	}
	return 0, fmt.Errorf("%w: %q (want one of %v)", ErrUnsupportedChannel, s, Channels)
}
