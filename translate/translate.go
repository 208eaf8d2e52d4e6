// Package translate localizes the diagnostic text of the vcpu packages.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Fallback is the locale used when the host reports none.
const Fallback = "en-US"

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("vcpu: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{Fallback}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// SetLanguage replaces the printer with one for a specific language tag.
// Tests use it to pin message formatting.
func SetLanguage(tag language.Tag) {
	printer = message.NewPrinter(tag)
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
