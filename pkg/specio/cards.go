package specio

import(
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/astrogo/fitsio"

	"github.com/abworrall/arclamp/pkg/spectro"
)

// Header values come back from fitsio typed by how they were written
// (ints for "60", floats for "6781.93", strings for quoted values), so
// these helpers coerce them into what the caller needs.

func cardString(h *fitsio.Header, key string) (string, error) {
	c := h.Get(key)
	if c == nil {
		return "", fmt.Errorf("%w: %s", spectro.ErrMissingKeyword, key)
	}
	switch v := c.Value.(type) {
	case string: return strings.TrimSpace(v), nil
	default:     return fmt.Sprintf("%v", v), nil
	}
}

func cardInt(h *fitsio.Header, key string) (int, error) {
	c := h.Get(key)
	if c == nil {
		return 0, fmt.Errorf("%w: %s", spectro.ErrMissingKeyword, key)
	}
	switch v := c.Value.(type) {
	case int:      return v, nil
	case int64:    return int(v), nil
	case *big.Int: return int(v.Int64()), nil
	case float64:  return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("card %s: %q is not an integer", key, v)
		}
		return n, nil
	}
	return 0, fmt.Errorf("card %s: unexpected value %v (%T)", key, c.Value, c.Value)
}

func cardFloat(h *fitsio.Header, key string) (float64, error) {
	c := h.Get(key)
	if c == nil {
		return 0, fmt.Errorf("%w: %s", spectro.ErrMissingKeyword, key)
	}
	switch v := c.Value.(type) {
	case float64:  return v, nil
	case float32:  return float64(v), nil
	case int:      return float64(v), nil
	case int64:    return float64(v), nil
	case *big.Int: return float64(v.Int64()), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("card %s: %q is not a number", key, v)
		}
		return f, nil
	}
	return 0, fmt.Errorf("card %s: unexpected value %v (%T)", key, c.Value, c.Value)
}

// cardFloatOr returns def when the card is absent.
func cardFloatOr(h *fitsio.Header, key string, def float64) (float64, error) {
	if h.Get(key) == nil {
		return def, nil
	}
	return cardFloat(h, key)
}
