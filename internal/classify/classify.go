// Package classify maps source paths to extraction strategies.
package classify

import (
	"path/filepath"
	"strings"
)

// Strategy selects how units are extracted from a source.
type Strategy string

const (
	// Structured extraction walks a full parse tree.
	Structured Strategy = "structured"
	// Heuristic extraction scans lines for declaration boundaries.
	Heuristic Strategy = "heuristic"
)

// Language is a coarse language tag used for reporting and strategy choice.
type Language string

const (
	LangPython  Language = "python"
	LangJS      Language = "js"
	LangJava    Language = "java"
	LangGo      Language = "go"
	LangRust    Language = "rust"
	LangGeneric Language = "generic"
)

// languageTable maps lowercased file extensions to languages. Anything not
// listed is generic and extracted heuristically.
var languageTable = map[string]Language{
	".py":   LangPython,
	".js":   LangJS,
	".ts":   LangJS,
	".jsx":  LangJS,
	".tsx":  LangJS,
	".java": LangJava,
	".go":   LangGo,
	".rs":   LangRust,
}

// Classifier resolves paths to a language and strategy. Overrides from
// configuration take precedence over the static table.
type Classifier struct {
	overrides map[string]Language
}

// NewClassifier creates a classifier with optional extension overrides
// (keys with or without a leading dot, values are language tags).
func NewClassifier(overrides map[string]string) *Classifier {
	c := &Classifier{}
	if len(overrides) > 0 {
		c.overrides = make(map[string]Language, len(overrides))
		for ext, lang := range overrides {
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			c.overrides[strings.ToLower(ext)] = Language(strings.ToLower(lang))
		}
	}
	return c
}

// Language returns the language tag for a path.
func (c *Classifier) Language(path string) Language {
	ext := strings.ToLower(filepath.Ext(path))
	if c != nil && c.overrides != nil {
		if lang, ok := c.overrides[ext]; ok {
			return lang
		}
	}
	if lang, ok := languageTable[ext]; ok {
		return lang
	}
	return LangGeneric
}

// Strategy returns the extraction strategy for a path. Only the Python
// family gets accurate tree-based extraction; everything else falls back
// to the heuristic scanner.
func (c *Classifier) Strategy(path string) Strategy {
	if c.Language(path) == LangPython {
		return Structured
	}
	return Heuristic
}
