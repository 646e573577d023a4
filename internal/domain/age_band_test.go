package domain

import "testing"

func TestAgeBandIsValid(t *testing.T) {
	for _, band := range []AgeBand{AgeBandEarly, AgeBandElem, AgeBandTeen, AgeBandAdult} {
		if !band.IsValid() {
			t.Errorf("Expected %s to be valid", band)
		}
	}
	if AgeBand("18-99").IsValid() {
		t.Error("Expected unknown band to be invalid")
	}
}

func TestClampAgeBand(t *testing.T) {
	if got := ClampAgeBand("13-17"); got != AgeBandTeen {
		t.Errorf("Expected %s, got %s", AgeBandTeen, got)
	}
	if got := ClampAgeBand("toddler"); got != AgeBandElem {
		t.Errorf("Expected unknown values to clamp to %s, got %s", AgeBandElem, got)
	}
	if got := ClampAgeBand(""); got != AgeBandElem {
		t.Errorf("Expected empty value to clamp to %s, got %s", AgeBandElem, got)
	}
}

func TestAgeBandForAge(t *testing.T) {
	tests := []struct {
		age  int
		want AgeBand
	}{
		{3, AgeBandEarly},
		{8, AgeBandEarly},
		{9, AgeBandElem},
		{12, AgeBandElem},
		{13, AgeBandTeen},
		{17, AgeBandTeen},
		{18, AgeBandAdult},
		{45, AgeBandAdult},
	}

	for _, tc := range tests {
		if got := AgeBandForAge(tc.age); got != tc.want {
			t.Errorf("AgeBandForAge(%d) = %s, want %s", tc.age, got, tc.want)
		}
	}
}
