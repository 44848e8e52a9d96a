package index

import (
	"reflect"
	"testing"
)

func TestTokenizeLowercasesAndSplits(t *testing.T) {
	got := Tokenize("Formation Presets: The 4-3-3 Setup!")
	want := []string{"formation", "presets", "the", "setup"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenizeDropsShortTokens(t *testing.T) {
	got := Tokenize("go to an UI ab abc")
	want := []string{"abc"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenizeKeepsDuplicatesAndInflections(t *testing.T) {
	// No stemming, no stop-word removal: "player" and "players" are
	// distinct terms, and repeats survive.
	got := Tokenize("player players the player")
	want := []string{"player", "players", "the", "player"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenizeEmpty(t *testing.T) {
	if got := Tokenize(""); len(got) != 0 {
		t.Errorf("Tokenize(\"\") = %v, want empty", got)
	}
	if got := Tokenize("a an to"); len(got) != 0 {
		t.Errorf("Tokenize(short words) = %v, want empty", got)
	}
}

func TestTokenizeUnique(t *testing.T) {
	got := TokenizeUnique("squad Squad SQUAD formation squad")
	want := []string{"squad", "formation"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TokenizeUnique() = %v, want %v", got, want)
	}
}
