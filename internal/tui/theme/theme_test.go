package theme

import "testing"

func TestByNameFallsBack(t *testing.T) {
	if got := ByName("tokyo-night").Name; got != "tokyo-night" {
		t.Fatalf("ByName(tokyo-night) = %q", got)
	}
	if got := ByName("solarized").Name; got != FlexokiDark.Name {
		t.Fatalf("ByName(unknown) = %q, want %q", got, FlexokiDark.Name)
	}
}

func TestNamesAndValid(t *testing.T) {
	names := Names()
	if len(names) != len(All) {
		t.Fatalf("Names() = %v", names)
	}
	for _, n := range names {
		if !Valid(n) {
			t.Fatalf("Valid(%q) = false", n)
		}
	}
	if Valid("") {
		t.Fatal("Valid(\"\") = true")
	}
}

func TestEveryThemeHasSeries(t *testing.T) {
	for _, th := range All {
		if len(th.Series) == 0 {
			t.Fatalf("%s has no chart series", th.Name)
		}
		if th.Gain != th.Green || th.Loss != th.Red {
			t.Fatalf("%s change colors = %v/%v", th.Name, th.Gain, th.Loss)
		}
	}
}
