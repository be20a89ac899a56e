package types

import "testing"

func TestLocalizedTextResolve(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		text LocalizedText
		want string
	}{
		{name: "english preferred", text: LocalizedText{En: "Shirt", Ta: "சட்டை"}, want: "Shirt"},
		{name: "tamil fallback", text: LocalizedText{Ta: "சட்டை"}, want: "சட்டை"},
		{name: "placeholder when empty", text: LocalizedText{}, want: FallbackProductName},
		{name: "whitespace is empty", text: LocalizedText{En: "  "}, want: FallbackProductName},
	}

	for _, tc := range cases {
		if got := tc.text.Resolve(); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestLocalizedTextIsEmpty(t *testing.T) {
	t.Parallel()

	if !(LocalizedText{}).IsEmpty() {
		t.Fatal("zero value should be empty")
	}
	if (LocalizedText{Ta: "துணி"}).IsEmpty() {
		t.Fatal("tamil-only text should not be empty")
	}
}
