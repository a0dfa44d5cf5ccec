package translate

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/abadojack/whatlanggo"
	"github.com/deusflow/ainexus/internal/cache"
	"golang.org/x/text/language"
)

const (
	// MinLocalizeRunes: shorter text is returned unchanged.
	MinLocalizeRunes = 5
	// MaxTranslateRunes bounds the prefix submitted to a provider.
	MaxTranslateRunes = 800
)

// Localizer turns source-language text into the target display language.
type Localizer struct {
	capability *Capability
	dictionary *Dictionary
	memo       *cache.Memo
	locale     string
	targetLang whatlanggo.Lang
	timeout    time.Duration
}

// LocalizerOption configures a Localizer.
type LocalizerOption func(*Localizer)

func WithDictionary(d *Dictionary) LocalizerOption {
	return func(l *Localizer) { l.dictionary = d }
}

func WithMemo(m *cache.Memo) LocalizerOption {
	return func(l *Localizer) { l.memo = m }
}

// WithTimeout bounds each provider call.
func WithTimeout(d time.Duration) LocalizerOption {
	return func(l *Localizer) { l.timeout = d }
}

// NewLocalizer builds a Localizer for locale. capability may be nil, which
// means dictionary-only mode.
func NewLocalizer(capability *Capability, locale string, opts ...LocalizerOption) *Localizer {
	l := &Localizer{
		capability: capability,
		locale:     locale,
		targetLang: detectableLang(locale),
		timeout:    15 * time.Second,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Localize never fails: on any provider problem it falls back to dictionary
// substitution, and unmatched text passes through.
func (l *Localizer) Localize(ctx context.Context, text string) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < MinLocalizeRunes {
		return text
	}
	if l.alreadyTarget(text) {
		return text
	}

	key := cache.Key(l.locale, text)
	if l.memo != nil {
		if v, ok := l.memo.Get(key); ok {
			return v
		}
	}

	if l.capability.Available() {
		tctx, cancel := context.WithTimeout(ctx, l.timeout)
		out, _, err := l.capability.Translate(tctx, prefix(text, MaxTranslateRunes), l.locale)
		cancel()
		if err == nil {
			out = SanitizeAIText(out)
			if out != "" {
				if l.memo != nil {
					l.memo.Set(key, out)
				}
				return out
			}
		}
	}

	if l.dictionary != nil {
		return l.dictionary.Apply(text)
	}
	return text
}

func (l *Localizer) alreadyTarget(text string) bool {
	if l.targetLang == -1 {
		return false
	}
	info := whatlanggo.Detect(text)
	return info.IsReliable() && info.Lang == l.targetLang
}

func prefix(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

// detectableLang maps a BCP 47 tag onto the detector's language set; -1 when unknown.
func detectableLang(locale string) whatlanggo.Lang {
	tag, err := language.Parse(locale)
	if err != nil {
		return -1
	}
	base, _ := tag.Base()
	switch base.String() {
	case "zh":
		return whatlanggo.Cmn
	case "ja":
		return whatlanggo.Jpn
	case "ko":
		return whatlanggo.Kor
	case "en":
		return whatlanggo.Eng
	case "de":
		return whatlanggo.Deu
	case "fr":
		return whatlanggo.Fra
	case "es":
		return whatlanggo.Spa
	case "ru":
		return whatlanggo.Rus
	case "uk":
		return whatlanggo.Ukr
	}
	return -1
}
