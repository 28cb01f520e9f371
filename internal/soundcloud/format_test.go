package soundcloud

import "testing"

func TestFormatTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"with becomes w/", "Night Drive with Someone", "Night Drive w/ Someone"},
		{"uppercase WITH", "Night Drive WITH Someone", "Night Drive w/ Someone"},
		{"with inside a word is kept", "Without You", "Without You"},
		{"feat becomes ft", "Song feat Bob", "Song ft Bob"},
		{"feat with dot followed by space keeps the dot", "Song (feat. Bob)", "Song (ft. Bob)"},
		{"feat dot glued to next word", "Song feat.Bob", "Song ftBob"},
		{"featuring becomes ft", "Song featuring Bob", "Song ft Bob"},
		{"Featuring mixed case", "Song Featuring Bob", "Song ft Bob"},
		{"feature is not a match", "Feature Presentation", "Feature Presentation"},
		{"repeated spaces collapse", "Song   with    Bob", "Song w/ Bob"},
		{"trims outer whitespace", "  Song  ", "Song"},
		{"no change needed", "Plain Title", "Plain Title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTitle(tt.input); got != tt.want {
				t.Errorf("FormatTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitArtistTitle(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantArtist string
		wantTitle  string
		wantOK     bool
	}{
		{"simple", "Artist - Title", "Artist", "Title", true},
		{"first separator wins", "A - B - C", "A", "B - C", true},
		{"extra whitespace", "Artist   -   Title", "Artist", "Title", true},
		{"hyphen without spaces", "Jay-Z Song", "", "", false},
		{"no separator", "Just A Title", "", "", false},
		{"empty artist", " - Title", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			artist, title, ok := SplitArtistTitle(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("SplitArtistTitle(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if artist != tt.wantArtist || title != tt.wantTitle {
				t.Errorf("SplitArtistTitle(%q) = (%q, %q), want (%q, %q)",
					tt.input, artist, title, tt.wantArtist, tt.wantTitle)
			}
		})
	}
}

func TestCollapseSpaces(t *testing.T) {
	if got := CollapseSpaces("  a   b c  "); got != "a b c" {
		t.Errorf("CollapseSpaces() = %q, want %q", got, "a b c")
	}
}
