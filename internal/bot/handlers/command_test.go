package handlers

import (
	"testing"

	"github.com/go-telegram/bot/models"
)

func TestSplitCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text        string
		wantName    string
		wantMention string
		wantOK      bool
	}{
		{text: "/start", wantName: "start", wantOK: true},
		{text: "/START", wantName: "start", wantOK: true},
		{text: "/start@GemBot", wantName: "start", wantMention: "GemBot", wantOK: true},
		{text: "/help и ещё текст", wantName: "help", wantOK: true},
		{text: "  /start", wantName: "start", wantOK: true},
		{text: "привет", wantOK: false},
		{text: "", wantOK: false},
		{text: "   ", wantOK: false},
		{text: "/", wantOK: false},
		{text: "/@GemBot", wantOK: false},
		{text: "текст /start", wantOK: false},
	}

	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			name, mention, ok := splitCommand(tc.text)
			if ok != tc.wantOK {
				t.Fatalf("splitCommand(%q) ok = %v, want %v", tc.text, ok, tc.wantOK)
			}
			if !ok {
				return
			}
			if name != tc.wantName || mention != tc.wantMention {
				t.Errorf("splitCommand(%q) = (%q, %q), want (%q, %q)",
					tc.text, name, mention, tc.wantName, tc.wantMention)
			}
		})
	}
}

func TestMatchCommand(t *testing.T) {
	t.Parallel()

	deps := newTestDeps(&fakeStore{}, &fakeGemini{})
	match := MatchCommand(deps, "start")

	tests := []struct {
		name   string
		update *models.Update
		want   bool
	}{
		{name: "plain command", update: textUpdate(1, "Иван", "/start"), want: true},
		{name: "uppercase command", update: textUpdate(1, "Иван", "/START"), want: true},
		{name: "mention of this bot", update: textUpdate(1, "Иван", "/start@gembot"), want: true},
		{name: "mention with different case", update: textUpdate(1, "Иван", "/start@GemBot"), want: true},
		{name: "mention of another bot", update: textUpdate(1, "Иван", "/start@otherbot"), want: false},
		{name: "different command", update: textUpdate(1, "Иван", "/help"), want: false},
		{name: "command with longer name", update: textUpdate(1, "Иван", "/startx"), want: false},
		{name: "plain text", update: textUpdate(1, "Иван", "старт"), want: false},
		{name: "empty text", update: textUpdate(1, "Иван", ""), want: false},
		{name: "no message", update: &models.Update{ID: 1}, want: false},
		{name: "nil update", update: nil, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := match(tc.update); got != tc.want {
				t.Errorf("match() = %v, want %v", got, tc.want)
			}
		})
	}
}
