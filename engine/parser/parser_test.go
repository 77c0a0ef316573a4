package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nathoo/dragonsquest/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  types.Command
	}{
		// Empty / whitespace
		{
			name:  "empty string",
			input: "",
			want:  types.Command{Kind: types.CommandEmpty},
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  types.Command{Kind: types.CommandEmpty},
		},

		// Menu numbers
		{
			name:  "single digit",
			input: "1",
			want:  types.Command{Kind: types.CommandChoice, Choice: 1},
		},
		{
			name:  "padded digit",
			input: "  3 ",
			want:  types.Command{Kind: types.CommandChoice, Choice: 3},
		},
		{
			name:  "zero",
			input: "0",
			want:  types.Command{Kind: types.CommandChoice, Choice: 0},
		},
		{
			name:  "overflowing number",
			input: "99999999999999999999999",
			want:  types.Command{Kind: types.CommandChoice, Choice: 0},
		},
		{
			name:  "negative is not a number",
			input: "-1",
			want:  types.Command{Kind: types.CommandWord, Word: "-1"},
		},

		// Inventory / quit, case-insensitive
		{
			name:  "i",
			input: "i",
			want:  types.Command{Kind: types.CommandInventory},
		},
		{
			name:  "I",
			input: "I",
			want:  types.Command{Kind: types.CommandInventory},
		},
		{
			name:  "inventory",
			input: "Inventory",
			want:  types.Command{Kind: types.CommandInventory},
		},
		{
			name:  "q",
			input: "q",
			want:  types.Command{Kind: types.CommandQuit},
		},
		{
			name:  "Q",
			input: "Q",
			want:  types.Command{Kind: types.CommandQuit},
		},
		{
			name:  "quit",
			input: "quit",
			want:  types.Command{Kind: types.CommandQuit},
		},
		{
			name:  "help",
			input: "?",
			want:  types.Command{Kind: types.CommandHelp},
		},

		// Free text
		{
			name:  "destination name",
			input: "Forest",
			want:  types.Command{Kind: types.CommandWord, Word: "forest"},
		},
		{
			name:  "go prefix stripped",
			input: "go to the lake",
			want:  types.Command{Kind: types.CommandWord, Word: "the lake"},
		},
		{
			name:  "walk prefix stripped",
			input: "walk   dragon   lair",
			want:  types.Command{Kind: types.CommandWord, Word: "dragon lair"},
		},
		{
			name:  "nonsense",
			input: "xyzzy",
			want:  types.Command{Kind: types.CommandWord, Word: "xyzzy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.input))
		})
	}
}

func TestIndex(t *testing.T) {
	tests := []struct {
		input  string
		n      int
		want   int
		wantOK bool
	}{
		{"1", 3, 0, true},
		{"3", 3, 2, true},
		{" 2 ", 3, 1, true},
		{"4", 3, 0, false},
		{"0", 3, 0, false},
		{"", 3, 0, false},
		{"abc", 3, 0, false},
		{"-1", 3, 0, false},
		{"1", 0, 0, false},
		{"99999999999999999999999", 3, 0, false},
	}
	for _, tt := range tests {
		got, ok := Index(tt.input, tt.n)
		assert.Equal(t, tt.want, got, "Index(%q, %d)", tt.input, tt.n)
		assert.Equal(t, tt.wantOK, ok, "Index(%q, %d) ok", tt.input, tt.n)
	}
}
