package ir

// Sequence represents a CREATE SEQUENCE. Width is the integer family
// bit-width (16, 32, or 64) driving the type-max/type-min defaults
// computed by the parser (spec §4.3.1).
type Sequence struct {
	Namespace string
	Name      string
	Width     int // 16, 32 or 64
	Start     int64
	Increment int64
	Min       int64
	Max       int64
	Cache     int64
	Cycle     bool

	// OwnedByTable/Column back-reference a serial column, or are empty
	// for a standalone sequence.
	OwnedByTable  string
	OwnedByColumn string

	Owner  string
	Grants []*Grant
}

// TypeBounds returns the min/max representable by the sequence's
// declared integer width, used to compute ascending/descending
// defaults per spec §4.3.1.
func TypeBounds(width int) (min, max int64) {
	switch width {
	case 16:
		return -32768, 32767
	case 32:
		return -2147483648, 2147483647
	default:
		return -9223372036854775808, 9223372036854775807
	}
}

// ApplySequenceDefaults fills in Min/Max/Cache/Start following the
// database's own default-computation rules, so that introspecting a
// sequence and parsing its equivalent `CREATE SEQUENCE` text yield
// identical Sequence values (spec §4.3.1, testable property P1/P2).
func ApplySequenceDefaults(s *Sequence, startExplicit, minExplicit, maxExplicit bool) {
	if s.Increment == 0 {
		s.Increment = 1
	}
	ascending := s.Increment > 0
	typeMin, typeMax := TypeBounds(s.Width)

	if !minExplicit {
		if ascending {
			s.Min = 1
		} else {
			s.Min = typeMin
		}
	}
	if !maxExplicit {
		if ascending {
			s.Max = typeMax
		} else {
			s.Max = -1
		}
	}
	if s.Cache == 0 {
		s.Cache = 1
	}
	if !startExplicit {
		if ascending {
			s.Start = s.Min
		} else {
			s.Start = s.Max
		}
	}
}
