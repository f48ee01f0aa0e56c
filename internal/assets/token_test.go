package assets

import "testing"

func TestCleanField(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text untouched",
			input:    "A clean caption",
			expected: "A clean caption",
		},
		{
			name:     "whitespace trimmed",
			input:    "  padded caption  ",
			expected: "padded caption",
		},
		{
			name:     "stray double-colon suffix truncated",
			input:    "real caption::garbage after",
			expected: "real caption",
		},
		{
			name:     "leading and trailing colon runs stripped",
			input:    ":::caption:::",
			expected: "caption",
		},
		{
			name:     "truncation then colon strip",
			input:    " caption: ::noise",
			expected: "caption",
		},
		{
			name:     "interleaved colon and whitespace runs stripped",
			input:    " : caption : ",
			expected: "caption",
		},
		{
			name:     "colon noise only collapses to empty",
			input:    " :: ",
			expected: "",
		},
		{
			name:     "empty stays empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanField(tt.input)
			if got != tt.expected {
				t.Errorf("CleanField(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTokenConstructors(t *testing.T) {
	got := ImageToken("https://example.com/a.png", "Title", "Caption")
	want := "__IMAGE::https://example.com/a.png::Title::Caption__"
	if got != want {
		t.Errorf("ImageToken() = %q, want %q", got, want)
	}

	got = VideoToken("https://example.com/v.mp4", "Demo", "Walkthrough")
	want = "__VIDEO::https://example.com/v.mp4::Demo::Walkthrough__"
	if got != want {
		t.Errorf("VideoToken() = %q, want %q", got, want)
	}
}
