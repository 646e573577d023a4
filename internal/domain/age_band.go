package domain

// AgeBand buckets users into the coarse age groups the content is written
// for. Generated content is tuned to the requester's band, so the set of
// members is closed; unknown values coming back from the AI endpoint are
// clamped to a known member before use.
type AgeBand string

// Known age bands, youngest to oldest.
const (
	AgeBandEarly AgeBand = "5-8"
	AgeBandElem  AgeBand = "9-12"
	AgeBandTeen  AgeBand = "13-17"
	AgeBandAdult AgeBand = "adult"
)

// IsValid reports whether the band is a known member.
func (b AgeBand) IsValid() bool {
	switch b {
	case AgeBandEarly, AgeBandElem, AgeBandTeen, AgeBandAdult:
		return true
	default:
		return false
	}
}

// ClampAgeBand coerces an arbitrary string to a known age band,
// defaulting to AgeBandElem when the value is not recognized.
func ClampAgeBand(s string) AgeBand {
	b := AgeBand(s)
	if b.IsValid() {
		return b
	}
	return AgeBandElem
}

// AgeBandForAge maps an age in years to its band. Ages below the youngest
// band map to AgeBandEarly; ages 18 and up map to AgeBandAdult.
func AgeBandForAge(age int) AgeBand {
	switch {
	case age <= 8:
		return AgeBandEarly
	case age <= 12:
		return AgeBandElem
	case age <= 17:
		return AgeBandTeen
	default:
		return AgeBandAdult
	}
}
