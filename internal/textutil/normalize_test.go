package textutil_test

import (
	"testing"

	"albumlink/internal/textutil"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"lowercases", "Butterfly EFFECT", "butterflyeffect"},
		{"strips whitespace", "  첫 번째  앨범 ", "첫번째앨범"},
		{"strips brackets", "Love (Remastered) [Deluxe]", "loveremastereddeluxe"},
		{"strips braces and separators", "{Live}-ver_2", "livever2"},
		{"folds full width", "ＢＴＳ　Ｌｏｖｅ", "btslove"},
		{"keeps hangul", "가수A 앨범B", "가수a앨범b"},
		{"keeps punctuation outside the strip set", "Don't Stop!", "don'tstop!"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := textutil.Normalize(tc.input); got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"가수A - 앨범B (Inst.)",
		"  [EP] Spring _ Again  ",
		"ＦｕｌｌＷｉｄｔｈ",
		"plain",
	}
	for _, input := range inputs {
		once := textutil.Normalize(input)
		twice := textutil.Normalize(once)
		if once != twice {
			t.Fatalf("Normalize not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestContainsNormalized(t *testing.T) {
	if !textutil.ContainsNormalized("<td>가수A - 앨범 B (Deluxe)</td>", "앨범B") {
		t.Fatal("expected normalized containment to match")
	}
	if textutil.ContainsNormalized("anything at all", "") {
		t.Fatal("empty needle must never match")
	}
	if textutil.ContainsNormalized("다른 가수", "앨범B") {
		t.Fatal("unrelated haystack must not match")
	}
}

func TestMutualContains(t *testing.T) {
	if !textutil.MutualContains("앨범B", "앨범B (Deluxe Edition)") {
		t.Fatal("expected containment in either direction to match")
	}
	if !textutil.MutualContains("가수A 앨범B", "앨범B") {
		t.Fatal("expected reverse containment to match")
	}
	if textutil.MutualContains("", "앨범B") {
		t.Fatal("empty side must not match")
	}
}
