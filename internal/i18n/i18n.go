// Package i18n holds the German and English string tables of the directory
// and applies them to rendered documents.
package i18n

import (
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/text/language"

	"github.com/ziadkadry99/aidir/internal/dom"
)

// Language is a supported UI locale.
type Language string

const (
	German  Language = "de"
	English Language = "en"
)

// Default is the locale used when nothing else is known.
const Default = German

// Supported lists every locale with a string table.
var Supported = []Language{German, English}

// Parse maps s ("en", "de-AT", "EN_us") to a supported language.
func Parse(s string) (Language, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, "-_"); i > 0 {
		s = s[:i]
	}
	for _, l := range Supported {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

var matcher = language.NewMatcher([]language.Tag{language.German, language.English})

// Negotiate picks the best supported language for an Accept-Language header.
func Negotiate(acceptLanguage string, fallback Language) Language {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return fallback
	}
	return Supported[idx]
}

// Translator resolves keys against the active language and notifies
// subscribers when the language changes.
type Translator struct {
	mu     sync.RWMutex
	lang   Language
	nextID int
	subs   map[int]func(Language)
}

// New returns a translator set to lang (or Default if unsupported).
func New(lang Language) *Translator {
	if _, ok := tables[lang]; !ok {
		lang = Default
	}
	return &Translator{lang: lang, subs: make(map[int]func(Language))}
}

// Language returns the active language.
func (t *Translator) Language() Language {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lang
}

// T returns the string for key in the active language, falling back to
// English and finally to the key itself.
func (t *Translator) T(key string) string {
	return Lookup(t.Language(), key)
}

// Lookup resolves key in lang without a Translator.
func Lookup(lang Language, key string) string {
	if s, ok := tables[lang][key]; ok {
		return s
	}
	if s, ok := tables[English][key]; ok {
		return s
	}
	return key
}

// SetLanguage switches the active language. Subscribers are called
// synchronously, only when the language actually changes. It reports
// whether lang is supported.
func (t *Translator) SetLanguage(lang Language) bool {
	if _, ok := tables[lang]; !ok {
		return false
	}
	t.mu.Lock()
	if t.lang == lang {
		t.mu.Unlock()
		return true
	}
	t.lang = lang
	subs := make([]func(Language), 0, len(t.subs))
	for _, fn := range t.subs {
		subs = append(subs, fn)
	}
	t.mu.Unlock()

	for _, fn := range subs {
		fn(lang)
	}
	return true
}

// Subscribe registers fn for language changes and returns a function that
// removes it.
func (t *Translator) Subscribe(fn func(Language)) func() {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.subs[id] = fn
	t.mu.Unlock()
	return func() {
		t.mu.Lock()
		delete(t.subs, id)
		t.mu.Unlock()
	}
}

// Apply rewrites every localized element under root: text of
// [data-i18n], placeholder of [data-i18n-placeholder], aria-label of
// [data-i18n-aria], and the lang attribute of <html>. It returns the number
// of elements touched.
func (t *Translator) Apply(root *html.Node) int {
	lang := t.Language()
	n := 0
	for _, el := range dom.FindAll(root, func(*html.Node) bool { return true }) {
		touched := false
		if key, ok := dom.Attr(el, "data-i18n"); ok {
			dom.SetText(el, Lookup(lang, key))
			touched = true
		}
		if key, ok := dom.Attr(el, "data-i18n-placeholder"); ok {
			dom.SetAttr(el, "placeholder", Lookup(lang, key))
			touched = true
		}
		if key, ok := dom.Attr(el, "data-i18n-aria"); ok {
			dom.SetAttr(el, "aria-label", Lookup(lang, key))
			touched = true
		}
		if el.Data == "html" {
			dom.SetAttr(el, "lang", string(lang))
		}
		if touched {
			n++
		}
	}
	return n
}
