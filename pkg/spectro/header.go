package spectro

// Header keywords for the lamp info, as written by the spatial summation
// stage and read by the later stages.
const(
	KeyBrand    = "BRAND"
	KeyLamp     = "LAMP"
	KeyCCD      = "CCD"
	KeyExptime  = "EXPTIME"
	KeyID       = "ID"
)

// A Card is one header keyword carried along with a spectrum. Values are
// whatever the file held: string, int, float64, bool ...
type Card struct {
	Name    string
	Value   interface{}
	Comment string
}

// Cards are the header cards describing the lamp, in header order.
func (li LampInfo)Cards() []Card {
	return []Card{
		{Name: KeyBrand,   Value: li.Brand,           Comment: "lamp manufacturer"},
		{Name: KeyLamp,    Value: li.Lamp,            Comment: "lamp type"},
		{Name: KeyCCD,     Value: li.CCD,             Comment: "spectrograph arm"},
		{Name: KeyExptime, Value: li.ExposureSeconds, Comment: "exposure time [s]"},
		{Name: KeyID,      Value: li.ID,              Comment: "frame id"},
	}
}

// cardValue is the current value of a lamp keyword, and false for any
// other keyword.
func (li LampInfo)cardValue(name string) (interface{}, bool) {
	switch name {
	case KeyBrand:   return li.Brand, true
	case KeyLamp:    return li.Lamp, true
	case KeyCCD:     return li.CCD, true
	case KeyExptime: return li.ExposureSeconds, true
	case KeyID:      return li.ID, true
	}
	return nil, false
}

// HeaderCards is the spectrum's header in order, with the lamp keywords
// holding the current Lamp values. A lamp keyword missing from Header
// stays missing.
func (s Spectrum)HeaderCards() []Card {
	out := make([]Card, len(s.Header))
	for i, c := range s.Header {
		if v, ok := s.Lamp.cardValue(c.Name); ok {
			c.Value = v
		}
		out[i] = c
	}
	return out
}
