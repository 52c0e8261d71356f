package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tyler-smith/go-bip39"
	"github.com/tyler-smith/go-bip39/wordlists"
	lang "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

var errUnsupportedLanguage = errors.New("unsupported language")

// wordlist is a go-bip39 wordlist and the language tags that select it.
type wordlist struct {
	name  string
	tags  []lang.Tag
	words []string
}

var wordlistTable = []wordlist{
	{"english", []lang.Tag{lang.English, lang.AmericanEnglish, lang.BritishEnglish}, wordlists.English},
	{"chinese-simplified", []lang.Tag{lang.Chinese, lang.SimplifiedChinese}, wordlists.ChineseSimplified},
	{"chinese-traditional", []lang.Tag{lang.TraditionalChinese}, wordlists.ChineseTraditional},
	{"czech", []lang.Tag{lang.Czech}, wordlists.Czech},
	{"french", []lang.Tag{lang.French}, wordlists.French},
	{"italian", []lang.Tag{lang.Italian}, wordlists.Italian},
	{"japanese", []lang.Tag{lang.Japanese}, wordlists.Japanese},
	{"korean", []lang.Tag{lang.Korean}, wordlists.Korean},
	{"spanish", []lang.Tag{lang.Spanish, lang.EuropeanSpanish, lang.LatinAmericanSpanish}, wordlists.Spanish},
}

// setLanguage makes the wordlist for language the one go-bip39 uses.
// Phrases are NFKD normalized before the lookup, which is the form every
// go-bip39 wordlist is stored in.
func setLanguage(language string) error {
	wl, ok := findWordlist(language)
	if !ok {
		return fmt.Errorf("%w: %q (use a tag such as ja or one of %s)",
			errUnsupportedLanguage, language, strings.Join(wordlistNames(), ", "))
	}
	bip39.SetWordList(wl.words)
	log.Debug().Str("wordlist", wl.name).Msg("wordlist selected")
	return nil
}

// findWordlist accepts a wordlist name ("japanese"), an English language
// name ("Simplified Chinese") or a BCP 47 tag ("es-419", "zh-TW").
func findWordlist(language string) (*wordlist, bool) {
	key := sanitizeLang(language)
	names := display.English.Languages()

	var tags []lang.Tag
	var owners []*wordlist
	for i := range wordlistTable {
		wl := &wordlistTable[i]
		if wl.name == key {
			return wl, true
		}
		for _, t := range wl.tags {
			if sanitizeLang(names.Name(t)) == key {
				return wl, true
			}
			tags = append(tags, t)
			owners = append(owners, wl)
		}
	}

	tag, err := lang.Parse(key)
	if err != nil {
		return nil, false
	}
	for i, t := range tags {
		if t == tag {
			return owners[i], true
		}
	}

	// regional variants such as zh-TW or es-MX
	_, i, conf := lang.NewMatcher(tags).Match(tag)
	if conf < lang.High {
		return nil, false
	}
	return owners[i], true
}

func wordlistNames() []string {
	names := make([]string, len(wordlistTable))
	for i, wl := range wordlistTable {
		names[i] = wl.name
	}
	return names
}

func sanitizeLang(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}
