// Package yaml reads content briefs from YAML files.
//
// A brief file holds one or more YAML documents, each a mapping with the keys
// topic, target_audience, tone, keywords and optionally session_id. Keywords
// may be a comma-separated string or a list of strings.
package yaml

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/studio"
	yamlv3 "gopkg.in/yaml.v3"
)

// Entry is one brief read from a file.
type Entry struct {
	Path  string
	Index int // Position of the document within its file, from 0.
	Brief studio.Brief
}

type briefDoc struct {
	Topic          string   `yaml:"topic"`
	TargetAudience string   `yaml:"target_audience"`
	Tone           string   `yaml:"tone"`
	Keywords       keywords `yaml:"keywords"`
	SessionID      string   `yaml:"session_id"`
}

// keywords accepts either a scalar or a sequence of scalars.
type keywords string

func (k *keywords) UnmarshalYAML(node *yamlv3.Node) error {
	switch node.Kind {
	case yamlv3.ScalarNode:
		*k = keywords(node.Value)
		return nil
	case yamlv3.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*k = keywords(strings.Join(list, ", "))
		return nil
	default:
		return fmt.Errorf("line %d: keywords must be a string or a list of strings", node.Line)
	}
}

// Decode reads every brief document from r. Unknown keys are rejected and
// each brief must pass [studio.Brief.Validate].
func Decode(r io.Reader) ([]studio.Brief, error) {
	dec := yamlv3.NewDecoder(r)
	dec.KnownFields(true)
	var briefs []studio.Brief
	for i := 0; ; i++ {
		var doc briefDoc
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		b := studio.Brief{
			Topic:          strings.TrimSpace(doc.Topic),
			TargetAudience: strings.TrimSpace(doc.TargetAudience),
			Tone:           strings.TrimSpace(doc.Tone),
			Keywords:       strings.TrimSpace(string(doc.Keywords)),
			SessionID:      strings.TrimSpace(doc.SessionID),
		}
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		briefs = append(briefs, b)
	}
	if len(briefs) == 0 {
		return nil, fmt.Errorf("no brief documents: %w", studio.ErrValidation)
	}
	return briefs, nil
}

// LoadFile reads every brief in the file at path.
func LoadFile(path string) ([]studio.Brief, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	defer f.Close()
	briefs, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("yaml: %s: %w", path, err)
	}
	return briefs, nil
}

// Glob returns the files matching pattern in lexical order. Patterns support
// ** for recursive matching. A pattern without glob syntax names one file.
func Glob(pattern string) ([]string, error) {
	if pattern == "" {
		return nil, fmt.Errorf("yaml: pattern is required: %w", studio.ErrValidation)
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("yaml: invalid glob pattern %q: %w", pattern, studio.ErrValidation)
	}
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("yaml: match %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("yaml: no files match %q", pattern)
	}
	sort.Strings(matches)
	return matches, nil
}

// Load reads the briefs of every file matching pattern, in file order and
// then document order.
func Load(pattern string) ([]Entry, error) {
	paths, err := Glob(pattern)
	if err != nil {
		return nil, err
	}
	var entries []Entry
	for _, p := range paths {
		briefs, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		for i, b := range briefs {
			entries = append(entries, Entry{Path: p, Index: i, Brief: b})
		}
	}
	return entries, nil
}
