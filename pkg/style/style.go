// Package style turns component style descriptions into scoped stylesheet
// text.
//
// A Style is a nested mapping: string-valued entries are declarations
// (camelCase property names are converted to kebab-case), mapping-valued
// entries are nested rules whose key is a selector relative to the scope:
//
//	Style{
//	    "backgroundColor": "red",
//	    "> span":          Style{"color": "blue"},
//	    "&:hover":         Style{"color": "white"},
//	}
//
// renders for class vs1 as
//
//	.vs1{background-color:red;}.vs1 > span{color:blue;}.vs1:hover{color:white;}
//
// Keys are emitted in sorted order so the output is deterministic.
package style

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/aymerick/douceur/css"
)

// Style is a scoped style description.
type Style map[string]any

// Injector receives generated stylesheet text. It is implemented by the
// host side, e.g. by appending a <style> element to the document.
type Injector interface {
	Inject(class, css string)
}

// Build converts st into a stylesheet scoped to the given class.
func Build(class string, st Style) *css.Stylesheet {
	sheet := &css.Stylesheet{}
	addRules(sheet, "."+class, st)
	return sheet
}

// Render returns the compact stylesheet text for st scoped to class.
func Render(class string, st Style) string {
	return Format(Build(class, st))
}

// Format serializes a stylesheet without whitespace between rules.
func Format(sheet *css.Stylesheet) string {
	var b strings.Builder
	for _, rule := range sheet.Rules {
		b.WriteString(strings.Join(rule.Selectors, ","))
		b.WriteString("{")
		for _, decl := range rule.Declarations {
			b.WriteString(decl.Property)
			b.WriteString(":")
			b.WriteString(decl.Value)
			if decl.Important {
				b.WriteString(" !important")
			}
			b.WriteString(";")
		}
		b.WriteString("}")
	}
	return b.String()
}

func addRules(sheet *css.Stylesheet, selector string, st Style) {
	keys := make([]string, 0, len(st))
	for k := range st {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rule := &css.Rule{Kind: css.QualifiedRule, Selectors: []string{selector}}
	var nested []string
	for _, k := range keys {
		switch st[k].(type) {
		case Style, map[string]any:
			nested = append(nested, k)
		default:
			rule.Declarations = append(rule.Declarations, declaration(k, st[k]))
		}
	}
	if len(rule.Declarations) > 0 {
		sheet.Rules = append(sheet.Rules, rule)
	}

	for _, k := range nested {
		var sub Style
		switch v := st[k].(type) {
		case Style:
			sub = v
		case map[string]any:
			sub = Style(v)
		}
		addRules(sheet, nestSelector(selector, k), sub)
	}
}

func declaration(name string, value any) *css.Declaration {
	v := fmt.Sprint(value)
	important := false
	if strings.HasSuffix(v, "!important") {
		important = true
		v = strings.TrimSpace(strings.TrimSuffix(v, "!important"))
	}
	return &css.Declaration{Property: Kebab(name), Value: v, Important: important}
}

// nestSelector resolves a nested key against its parent selector.
func nestSelector(parent, key string) string {
	key = strings.TrimSpace(key)
	switch {
	case strings.Contains(key, "&"):
		return strings.ReplaceAll(key, "&", parent)
	case strings.HasPrefix(key, ":"), strings.HasPrefix(key, "["), strings.HasPrefix(key, "."):
		return parent + key
	default:
		return parent + " " + key
	}
}

// Kebab converts a camelCase property name to kebab-case.
// Names that already contain dashes are returned unchanged.
func Kebab(name string) string {
	if strings.Contains(name, "-") {
		return name
	}
	var b strings.Builder
	for _, r := range name {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ClassGenerator hands out unique class names ("vs1", "vs2", ...).
type ClassGenerator struct {
	prefix  string
	counter uint32
	mu      sync.Mutex
}

// NewClassGenerator creates a generator using prefix.
func NewClassGenerator(prefix string) *ClassGenerator {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &ClassGenerator{prefix: prefix}
}

// Next returns the next class name.
func (g *ClassGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("%s%d", g.prefix, g.counter)
}

// DefaultPrefix is the class name prefix used when none is configured.
const DefaultPrefix = "vs"

// Sheet memoizes the class generated for each distinct style owner and
// injects its stylesheet text exactly once.
type Sheet struct {
	mu       sync.Mutex
	gen      *ClassGenerator
	injector Injector
	classes  map[any]string
}

// NewSheet creates a Sheet. A nil injector discards the generated text.
func NewSheet(prefix string, injector Injector) *Sheet {
	return &Sheet{
		gen:      NewClassGenerator(prefix),
		injector: injector,
		classes:  make(map[any]string),
	}
}

// Scope returns the class for owner, generating and injecting the
// stylesheet on first use. owner must be comparable.
func (s *Sheet) Scope(owner any, st Style) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if class, ok := s.classes[owner]; ok {
		return class
	}
	class := s.gen.Next()
	s.classes[owner] = class
	if s.injector != nil {
		s.injector.Inject(class, Render(class, st))
	}
	return class
}

// Len reports how many owners have been scoped.
func (s *Sheet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.classes)
}
