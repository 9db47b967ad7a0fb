// Package edir is an enhanced attribute lister for Go values, the REPL's
// answer to an introspecting dir().
//
// It lists the attribute names reachable from a value via reflection
// (methods including the pointer receiver set, struct fields, string map
// keys) and filters them with globs:
//
//   - patterns containing the metacharacters '*', '?' or '[' match as globs,
//     with '[!...]' negating a character set;
//   - patterns without metacharacters match as substrings;
//   - a leading '!' reverses the sense of the match;
//   - a trailing '=' makes the match case-sensitive; matching is
//     case-insensitive (casefolded) by default.
package edir

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
)

var fold = cases.Fold()

// Lister lists attribute names of values. The zero value hides unexported
// names; set Unexported to include them by default. The flag is sticky
// across calls, mirroring interactive use where the preference is set once
// per session.
type Lister struct {
	// Unexported includes unexported field and key names in listings.
	Unexported bool

	// Meta additionally lists the attributes of the value's type
	// descriptor (the methods of reflect.Type).
	Meta bool
}

// New returns a Lister with the default settings.
func New() *Lister {
	return &Lister{}
}

// Names returns the sorted, de-duplicated attribute names of v.
func (l *Lister) Names(v any) []string {
	if v == nil {
		return []string{}
	}

	t := reflect.TypeOf(v)
	names := methodNames(t)

	// A value type may have pointer-receiver methods too.
	if t.Kind() != reflect.Pointer {
		names = append(names, methodNames(reflect.PointerTo(t))...)
	}

	elem := t
	for elem.Kind() == reflect.Pointer {
		elem = elem.Elem()
	}
	switch elem.Kind() {
	case reflect.Struct:
		for i := 0; i < elem.NumField(); i++ {
			names = append(names, elem.Field(i).Name)
		}
	case reflect.Map:
		if elem.Key().Kind() == reflect.String {
			rv := reflect.ValueOf(v)
			for rv.Kind() == reflect.Pointer && !rv.IsNil() {
				rv = rv.Elem()
			}
			if rv.Kind() == reflect.Map {
				for _, k := range rv.MapKeys() {
					names = append(names, k.String())
				}
			}
		}
	}

	if l.Meta {
		names = append(names, metaNames()...)
	}

	if !l.Unexported {
		names = lo.Filter(names, func(name string, _ int) bool {
			return isExported(name)
		})
	}

	names = lo.Uniq(names)
	sort.Strings(names)
	return names
}

// List returns the attribute names of v filtered by glob.
func (l *Lister) List(v any, glob string) ([]string, error) {
	return Match(l.Names(v), glob)
}

// Match filters names according to the glob rules described in the package
// documentation. An empty glob returns names unchanged.
func Match(names []string, glob string) ([]string, error) {
	if glob == "" {
		return names, nil
	}

	invert := strings.HasPrefix(glob, "!")
	if invert {
		glob = glob[1:]
	}
	caseSensitive := strings.HasSuffix(glob, "=")
	if caseSensitive {
		glob = glob[:len(glob)-1]
	}

	match, err := matcher(glob, caseSensitive)
	if err != nil {
		return nil, err
	}

	return lo.Filter(names, func(name string, _ int) bool {
		return match(name) != invert
	}), nil
}

func matcher(glob string, caseSensitive bool) (func(string) bool, error) {
	if !strings.ContainsAny(glob, "*?[") {
		// No metacharacters: substring match.
		if caseSensitive {
			return func(name string) bool {
				return strings.Contains(name, glob)
			}, nil
		}
		folded := fold.String(glob)
		return func(name string) bool {
			return strings.Contains(fold.String(name), folded)
		}, nil
	}

	expr := translate(glob)
	if !caseSensitive {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid glob %q: %w", glob, err)
	}
	return re.MatchString, nil
}

// translate converts a glob pattern to an anchored regular expression.
// Character classes pass through with '!' mapped to '^'.
func translate(glob string) string {
	var sb strings.Builder
	sb.WriteString(`^`)
	runes := []rune(glob)
	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; r {
		case '*':
			sb.WriteString(`.*`)
		case '?':
			sb.WriteString(`.`)
		case '[':
			j := i + 1
			if j < len(runes) && (runes[j] == '!' || runes[j] == '^') {
				j++
			}
			if j < len(runes) && runes[j] == ']' {
				j++
			}
			for j < len(runes) && runes[j] != ']' {
				j++
			}
			if j >= len(runes) {
				// Unterminated class: treat the bracket literally.
				sb.WriteString(`\[`)
				continue
			}
			class := string(runes[i+1 : j])
			if strings.HasPrefix(class, "!") {
				class = "^" + class[1:]
			}
			sb.WriteString("[" + class + "]")
			i = j
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	sb.WriteString(`$`)
	return sb.String()
}

func methodNames(t reflect.Type) []string {
	names := make([]string, 0, t.NumMethod())
	for i := 0; i < t.NumMethod(); i++ {
		names = append(names, t.Method(i).Name)
	}
	return names
}

func metaNames() []string {
	t := reflect.TypeOf((*reflect.Type)(nil)).Elem()
	return methodNames(t)
}

func isExported(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}
