// Package parser reads rule reminder documents: markdown with a YAML
// frontmatter block naming the reminder and the event that triggers it.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Document struct {
	Frontmatter map[string]any
	Title       string
	Trigger     string
	Tags        []string
	Body        string
	SourceFile  string
}

var (
	ErrNoFrontmatter  = errors.New("no frontmatter found")
	ErrInvalidYAML    = errors.New("invalid YAML in frontmatter")
	ErrMissingTitle   = errors.New("frontmatter missing required 'title' field")
	ErrMissingTrigger = errors.New("frontmatter missing required 'trigger' field")
)

func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	doc.SourceFile = path
	return doc, nil
}

func Parse(content []byte) (*Document, error) {
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	trimmed := bytes.TrimLeft(content, "\ufeff\n\t ")
	if !bytes.HasPrefix(trimmed, []byte("---\n")) {
		return nil, ErrNoFrontmatter
	}

	rest := trimmed[len("---\n"):]
	end := bytes.Index(rest, []byte("---\n"))
	if end == -1 {
		return nil, ErrNoFrontmatter
	}

	var frontmatter map[string]any
	if err := yaml.Unmarshal(rest[:end], &frontmatter); err != nil {
		return nil, ErrInvalidYAML
	}

	title, ok := frontmatter["title"].(string)
	if !ok || strings.TrimSpace(title) == "" {
		return nil, ErrMissingTitle
	}

	trigger, ok := frontmatter["trigger"].(string)
	if !ok || strings.TrimSpace(trigger) == "" {
		return nil, ErrMissingTrigger
	}

	tags, err := parseTags(frontmatter["tags"])
	if err != nil {
		return nil, err
	}

	return &Document{
		Frontmatter: frontmatter,
		Title:       strings.TrimSpace(title),
		Trigger:     strings.ToLower(strings.TrimSpace(trigger)),
		Tags:        tags,
		Body:        strings.TrimSpace(string(rest[end+len("---\n"):])),
	}, nil
}

func parseTags(value any) ([]string, error) {
	if value == nil {
		return nil, nil
	}
	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		return []string{v}, nil
	case []any:
		tags := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("tags must be strings")
			}
			if strings.TrimSpace(s) == "" {
				continue
			}
			tags = append(tags, s)
		}
		if len(tags) == 0 {
			return nil, nil
		}
		return tags, nil
	default:
		return nil, fmt.Errorf("tags must be string or list of strings")
	}
}
