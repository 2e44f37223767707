// Package i18n holds the user-facing message catalogs.
//
// Catalogs are TOML files embedded from locales/. English is the source
// language; any message missing from another catalog falls back to it.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Message IDs.
const (
	UsernameTooShort   = "UsernameTooShort"
	UsernameCase       = "UsernameCase"
	PasscodeTooShort   = "PasscodeTooShort"
	LoginTitle         = "LoginTitle"
	LoginSucceeded     = "LoginSucceeded"
	LoginMismatch      = "LoginMismatch"
	LoginRejected      = "LoginRejected"
	LanguageListTitle  = "LanguageListTitle"
	NoLanguagesMatch   = "NoLanguagesMatch"
	ErrorTitle         = "ErrorTitle"
	FetchNetwork       = "FetchNetwork"
	FetchRateLimited   = "FetchRateLimited"
	FetchStatus        = "FetchStatus"
	FetchDecode        = "FetchDecode"
	NoDescription      = "NoDescription"
	Loading            = "Loading"
	EmptyList          = "EmptyList"
	HintRepositoryList = "HintRepositoryList"
	HintLanguageList   = "HintLanguageList"
	HintRepository     = "HintRepository"
	HintLogin          = "HintLogin"
	HintAlert          = "HintAlert"
)

//go:embed locales/*.toml
var catalogs embed.FS

var (
	bundleOnce sync.Once
	bundle     *goi18n.Bundle
	bundleErr  error

	defaultMu        sync.RWMutex
	defaultLocalizer *Localizer
)

func loadBundle() (*goi18n.Bundle, error) {
	bundleOnce.Do(func() {
		b := goi18n.NewBundle(language.English)
		b.RegisterUnmarshalFunc("toml", toml.Unmarshal)

		files, err := fs.Glob(catalogs, "locales/*.toml")
		if err != nil {
			bundleErr = err
			return
		}
		for _, f := range files {
			if _, err := b.LoadMessageFileFS(catalogs, f); err != nil {
				bundleErr = fmt.Errorf("load %s: %w", f, err)
				return
			}
		}
		bundle = b
	})
	return bundle, bundleErr
}

// Localizer renders messages for one locale.
// A nil *Localizer renders through Default().
type Localizer struct {
	tag       language.Tag
	localizer *goi18n.Localizer
}

// New creates a Localizer for locale, a BCP 47 tag such as "en" or "zh-Hans".
func New(locale string) (*Localizer, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	b, err := loadBundle()
	if err != nil {
		return nil, err
	}
	return &Localizer{
		tag:       tag,
		localizer: goi18n.NewLocalizer(b, tag.String(), language.English.String()),
	}, nil
}

// Default returns the process-wide localizer, English unless SetDefault was called.
func Default() *Localizer {
	defaultMu.RLock()
	l := defaultLocalizer
	defaultMu.RUnlock()
	if l != nil {
		return l
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLocalizer == nil {
		en, err := New("en")
		if err != nil {
			// The English catalog is embedded; failing to load it is a build defect.
			panic(err)
		}
		defaultLocalizer = en
	}
	return defaultLocalizer
}

// SetDefault replaces the process-wide localizer.
func SetDefault(l *Localizer) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLocalizer = l
}

// Tag returns the locale the localizer was created for.
func (l *Localizer) Tag() language.Tag {
	if l == nil {
		return Default().tag
	}
	return l.tag
}

// T renders message id with optional template data. Unknown ids render as the
// id itself so a missing translation is visible rather than blank.
func (l *Localizer) T(id string, data ...map[string]any) string {
	if l == nil {
		l = Default()
	}
	cfg := &goi18n.LocalizeConfig{MessageID: id}
	if len(data) > 0 {
		cfg.TemplateData = data[0]
	}
	msg, err := l.localizer.Localize(cfg)
	if err != nil || msg == "" {
		return id
	}
	return msg
}
