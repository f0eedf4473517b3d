// Package kana holds the fixed table of basic kana used by the game.
package kana

import (
	"fmt"
	"strings"
)

// Count is the number of kana in the catalog.
const Count = 46

// Entry is one kana with its three written forms.
type Entry struct {
	Index    int
	Hiragana string
	Katakana string
	Romaji   string
}

var catalog = [Count]Entry{
	{0, "あ", "ア", "a"}, {1, "い", "イ", "i"}, {2, "う", "ウ", "u"}, {3, "え", "エ", "e"}, {4, "お", "オ", "o"},
	{5, "か", "カ", "ka"}, {6, "き", "キ", "ki"}, {7, "く", "ク", "ku"}, {8, "け", "ケ", "ke"}, {9, "こ", "コ", "ko"},
	{10, "さ", "サ", "sa"}, {11, "し", "シ", "shi"}, {12, "す", "ス", "su"}, {13, "せ", "セ", "se"}, {14, "そ", "ソ", "so"},
	{15, "た", "タ", "ta"}, {16, "ち", "チ", "chi"}, {17, "つ", "ツ", "tsu"}, {18, "て", "テ", "te"}, {19, "と", "ト", "to"},
	{20, "な", "ナ", "na"}, {21, "に", "ニ", "ni"}, {22, "ぬ", "ヌ", "nu"}, {23, "ね", "ネ", "ne"}, {24, "の", "ノ", "no"},
	{25, "は", "ハ", "ha"}, {26, "ひ", "ヒ", "hi"}, {27, "ふ", "フ", "fu"}, {28, "へ", "ヘ", "he"}, {29, "ほ", "ホ", "ho"},
	{30, "ま", "マ", "ma"}, {31, "み", "ミ", "mi"}, {32, "む", "ム", "mu"}, {33, "め", "メ", "me"}, {34, "も", "モ", "mo"},
	{35, "や", "ヤ", "ya"}, {36, "ゆ", "ユ", "yu"}, {37, "よ", "ヨ", "yo"},
	{38, "ら", "ラ", "ra"}, {39, "り", "リ", "ri"}, {40, "る", "ル", "ru"}, {41, "れ", "レ", "re"}, {42, "ろ", "ロ", "ro"},
	{43, "わ", "ワ", "wa"}, {44, "を", "ヲ", "wo"}, {45, "ん", "ン", "n"},
}

// All returns a copy of the catalog in index order.
func All() []Entry {
	out := make([]Entry, Count)
	copy(out, catalog[:])
	return out
}

// Lookup returns the entry for an index.
func Lookup(index int) (Entry, bool) {
	if index < 0 || index >= Count {
		return Entry{}, false
	}
	return catalog[index], true
}

// MustLookup returns the entry for an index and panics when it is out of range.
func MustLookup(index int) Entry {
	e, ok := Lookup(index)
	if !ok {
		panic("kana: index out of range")
	}
	return e
}

// Find resolves a hiragana, katakana or romaji form to its entry.
func Find(form string) (Entry, bool) {
	form = strings.TrimSpace(form)
	if form == "" {
		return Entry{}, false
	}
	lower := strings.ToLower(form)
	for _, e := range catalog {
		if e.Hiragana == form || e.Katakana == form || e.Romaji == lower {
			return e, true
		}
	}
	return Entry{}, false
}

// ParseList resolves a list of forms separated by spaces or commas, dropping
// repeats and keeping input order.
func ParseList(input string) ([]int, error) {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	out := make([]int, 0, len(fields))
	seen := map[int]bool{}
	for _, f := range fields {
		e, ok := Find(f)
		if !ok {
			return nil, fmt.Errorf("unknown kana %q", f)
		}
		if !seen[e.Index] {
			seen[e.Index] = true
			out = append(out, e.Index)
		}
	}
	return out, nil
}

// Label renders the entry as "あ/ア/a".
func (e Entry) Label() string {
	return e.Hiragana + "/" + e.Katakana + "/" + e.Romaji
}
