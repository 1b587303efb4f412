package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRoman(t *testing.T) {
	for _, tc := range []struct {
		word string
		want uint64
	}{
		{"", 0},
		{"I", 1},
		{"IV", 4},
		{"V", 5},
		{"IX", 9},
		{"X", 10},
		{"XL", 40},
		{"XC", 90},
		{"C", 100},
		{"CMD", 1400},
		{"MMXXIV", 2024},
		{"IIII", 4},
		{"Xk", 10_000},
		{"XkIX", 10_009},
		{"MkDk", 1_500_000},
		{"Vk", 5},
		{"XIIq", 12},
		{"x", 0},
		{"hello", 0},
	} {
		t.Run(tc.word, func(t *testing.T) {
			assert.Equal(t, tc.want, fromRoman(tc.word))
		})
	}
}
