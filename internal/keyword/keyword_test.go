package keyword

import "testing"

func TestMatch(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		wantEditorial int
		wantOpinion   int
	}{
		{
			name:          "no matches",
			text:          "local sports results and weather forecast",
			wantEditorial: 0,
			wantOpinion:   0,
		},
		{
			name:          "editorial terms case-insensitive",
			text:          "EDITORIAL\nLetters to the Editor\nour view on the budget",
			wantEditorial: 3,
			wantOpinion:   0,
		},
		{
			name:          "opinion terms",
			text:          "Opinion: an op-ed by our columnist",
			wantEditorial: 0,
			wantOpinion:   3,
		},
		{
			name:          "mixed sections",
			text:          "Editorial and Opinion pages, with commentary",
			wantEditorial: 1,
			wantOpinion:   2,
		},
		{
			name:          "repeated term counts each occurrence",
			text:          "opinion opinion opinion",
			wantEditorial: 0,
			wantOpinion:   3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(tt.text)
			if got.Editorial != tt.wantEditorial {
				t.Errorf("Match(%q).Editorial = %d, want %d", tt.text, got.Editorial, tt.wantEditorial)
			}
			if got.Opinion != tt.wantOpinion {
				t.Errorf("Match(%q).Opinion = %d, want %d", tt.text, got.Opinion, tt.wantOpinion)
			}
		})
	}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"editorial beats opinion on tie", "editorial opinion", "editorial"},
		{"editorial majority", "editorial, our view, plus one opinion", "editorial"},
		{"opinion only", "an op-ed from a guest column", "opinion"},
		{"opinion majority", "opinion op-ed commentary editorial", "opinion"},
		{"no signal", "classified ads and crossword", "other"},
		{"empty page", "", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.text); got != tt.want {
				t.Errorf("Decide(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
