package main

import "strings"

// romanNumerals is ordered by descending value; a symbol that is a prefix of
// another sharing its first letter (C of CM) always comes after it.
//
// Upper case letters with a trailing "k" are thousands: Xk is 10,000.
var romanNumerals = [...]struct {
	symbol string
	value  uint64
}{
	{"Mk", 1_000_000},
	{"Dk", 500_000},
	{"Ck", 100_000},
	{"Lk", 50_000},
	{"Xk", 10_000},
	{"M", 1000},
	{"CM", 900},
	{"D", 500},
	{"CD", 400},
	{"C", 100},
	{"XC", 90},
	{"L", 50},
	{"XL", 40},
	{"X", 10},
	{"IX", 9},
	{"V", 5},
	{"IV", 4},
	{"I", 1},
}

// fromRoman sums the values of symbols greedily stripped from the front of
// word; it stops at the first character that starts no symbol, so "XIIq" is
// 12 and "hello" is 0.
func fromRoman(word string) (n uint64) {
	for word != "" {
		i := romanPrefix(word)
		if i < 0 {
			break
		}
		n += romanNumerals[i].value
		word = word[len(romanNumerals[i].symbol):]
	}
	return n
}

func romanPrefix(word string) int {
	for i, rn := range romanNumerals {
		if strings.HasPrefix(word, rn.symbol) {
			return i
		}
	}
	return -1
}
