// Package variant describes the named flavours of the typing test.
package variant

import (
	"fmt"
	"sort"
	"strings"

	"github.com/verte-zerg/monkeytui/internal/session"
)

// Default is the variant used when none is configured.
const Default = "classic"

// Variant bundles the session rules with the front-end features that differ
// between flavours.
type Variant struct {
	Name       string
	Policy     session.Policy
	ShowErrors bool
	TextMenu   bool
	Theme      string
}

var variants = map[string]Variant{
	"classic": {
		Name:       "classic",
		Policy:     session.Policy{Input: session.InputStrict, Completion: session.CompleteExact},
		ShowErrors: true,
		TextMenu:   true,
		Theme:      "classic",
	},
	"retro": {
		Name:   "retro",
		Policy: session.Policy{Input: session.InputFree, Completion: session.CompleteExact},
		Theme:  "retro",
	},
	"minimal": {
		Name:   "minimal",
		Policy: session.Policy{Input: session.InputFree, Completion: session.CompleteLength},
		Theme:  "minimal",
	},
}

// Lookup returns the variant with the given name.
func Lookup(name string) (Variant, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = Default
	}
	v, ok := variants[key]
	if !ok {
		return Variant{}, fmt.Errorf("unknown variant %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return v, nil
}

// Names lists the known variants in sorted order.
func Names() []string {
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
