// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package translate localizes the messages reported by the assembler.
package translate

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	once    sync.Once
	printer atomic.Pointer[message.Printer]
)

// userLanguage picks the best match for the user's locales.
func userLanguage() language.Tag {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("a64asm: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	return message.MatchLanguage(locales...)
}

// SetLanguage replaces the printer with one for the given BCP 47 tag. It
// is safe to call while other goroutines format messages.
func SetLanguage(tag string) {
	p := message.NewPrinter(language.Make(tag))
	once.Do(func() { printer.Store(p) })
	printer.Store(p)
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	once.Do(func() {
		printer.Store(message.NewPrinter(userLanguage()))
	})
	return printer.Load().Sprintf(key, args...)
}
