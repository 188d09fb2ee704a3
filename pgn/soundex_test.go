package pgn

import "testing"

func TestSoundexEmptyName(t *testing.T) {
	if got := Soundex(""); got != "" {
		t.Errorf("Soundex(\"\") = %q, want \"\"", got)
	}
}

func TestSoundexPadsToSixCharacters(t *testing.T) {
	if got := Soundex("Li"); len(got) != 6 {
		t.Errorf("Soundex(%q) = %q, want length 6", "Li", got)
	}
}

func TestSoundexCaseInsensitive(t *testing.T) {
	if got, want := Soundex("robert"), Soundex("ROBERT"); got != want {
		t.Errorf("Soundex(%q) = %q, Soundex(%q) = %q, want equal", "robert", got, "ROBERT", want)
	}
}

func TestSoundexIgnoresNonLetters(t *testing.T) {
	if got, want := Soundex("O'Brien"), Soundex("OBrien"); got != want {
		t.Errorf("Soundex(%q) = %q, Soundex(%q) = %q, want equal", "O'Brien", got, "OBrien", want)
	}
}

func TestSoundexMatchesSimilarSoundingNames(t *testing.T) {
	if got, want := Soundex("Smith"), Soundex("Smyth"); got != want {
		t.Errorf("Soundex(%q) = %q, Soundex(%q) = %q, want equal", "Smith", got, "Smyth", want)
	}
}

func TestSoundexMatch(t *testing.T) {
	if !SoundexMatch("Smith", "Smyth") {
		t.Errorf("SoundexMatch(%q, %q) = false, want true", "Smith", "Smyth")
	}
	if SoundexMatch("Karpov", "Kasparov") {
		t.Errorf("SoundexMatch(%q, %q) = true, want false", "Karpov", "Kasparov")
	}
}
