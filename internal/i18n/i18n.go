// File path: internal/i18n/i18n.go

// Package i18n resolves localized field variants with a deterministic
// fallback chain. Entities carry their translatable columns as a Fields map
// keyed "{base}_{lang}", optionally with a bare "{base}" legacy value.
package i18n

import "strings"

// DefaultLanguage is used when a request or session carries no language.
const DefaultLanguage = "en"

// SupportedLanguages lists the languages content rows may carry variants for.
var SupportedLanguages = []string{"en", "fr", "ar"}

// Fields holds the localized column values of a single entity, keyed by
// column name ("label_en", "label_fr", ... or bare "label").
type Fields map[string]string

// Get returns the raw column value, or "" when absent.
func (f Fields) Get(name string) string {
	if f == nil {
		return ""
	}
	return f[name]
}

// Resolver walks a fixed fallback chain of language codes, terminating in the
// bare field. Built once per deployment; the zero value is not usable.
type Resolver struct {
	fallback []string
}

// NewResolver builds a Resolver with the given fallback chain. The chain is
// consulted after the requested language, in order; the bare field is always
// the last resort. A nil chain yields the default chain fr, en.
func NewResolver(fallback []string) *Resolver {
	if len(fallback) == 0 {
		fallback = []string{"fr", "en"}
	}
	return &Resolver{fallback: append([]string(nil), fallback...)}
}

// Resolve returns the best available variant of base for lang: the requested
// language first, then the fallback chain, then the bare field. Absence of
// every variant yields "" rather than an error, so renderers can uniformly
// omit empty sections.
func (r *Resolver) Resolve(fields Fields, base, lang string) string {
	lang = strings.TrimSpace(strings.ToLower(lang))
	if lang == "" {
		lang = DefaultLanguage
	}
	if v := fields.Get(base + "_" + lang); v != "" {
		return v
	}
	for _, code := range r.fallback {
		if code == lang {
			continue
		}
		if v := fields.Get(base + "_" + code); v != "" {
			return v
		}
	}
	return fields.Get(base)
}

// Supported reports whether lang is one of the languages content rows carry.
func Supported(lang string) bool {
	for _, code := range SupportedLanguages {
		if code == lang {
			return true
		}
	}
	return false
}

// RTL reports whether lang renders right-to-left.
func RTL(lang string) bool {
	return lang == "ar"
}
