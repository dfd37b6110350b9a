package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/agrilink/internal/client/state"
	"github.com/dmitrijs2005/agrilink/internal/common"
	"golang.org/x/text/language"
)

// SupportedLangs lists the locales the interface can be switched to, in the
// form they are stored.
var SupportedLangs = []string{"en", "tw"}

type LocaleService interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, lang string) (string, error)
}

type localeService struct {
	store   state.Locale
	matcher language.Matcher
}

func NewLocaleService(store state.Locale) LocaleService {
	tags := make([]language.Tag, 0, len(SupportedLangs))
	for _, l := range SupportedLangs {
		tags = append(tags, language.MustParse(l))
	}
	return &localeService{store: store, matcher: language.NewMatcher(tags)}
}

// Get returns the stored locale tag. Nothing stored, or a tag outside
// SupportedLangs, reads as state.DefaultLang.
func (s *localeService) Get(ctx context.Context) (string, error) {
	lang, err := s.store.GetLang(ctx)
	if err != nil {
		return "", err
	}
	if !slices.Contains(SupportedLangs, lang) {
		return state.DefaultLang, nil
	}
	return lang, nil
}

// Set matches lang against the supported locales and stores the result.
// Regional variants such as "en-GB" resolve to their base language.
func (s *localeService) Set(ctx context.Context, lang string) (string, error) {
	tag, err := language.Parse(strings.TrimSpace(lang))
	if err != nil {
		return "", unsupportedLang(lang)
	}

	_, idx, conf := s.matcher.Match(tag)
	if conf < language.High {
		return "", unsupportedLang(lang)
	}

	matched := SupportedLangs[idx]
	if err := s.store.SetLang(ctx, matched); err != nil {
		return "", fmt.Errorf("save locale: %w", err)
	}
	return matched, nil
}

func unsupportedLang(lang string) error {
	return &common.ValidationError{Fields: map[string]string{"lang": fmt.Sprintf("%q is not supported", lang)}}
}
