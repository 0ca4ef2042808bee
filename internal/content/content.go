// Package content loads the text shown by the intro and the main page.
// A default document is embedded; hosts may point at their own YAML file.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultYAML []byte

var ErrInvalid = errors.New("invalid content")

type Content struct {
	Site          Site    `yaml:"site"`
	Intro         Intro   `yaml:"intro"`
	EventsSection Section `yaml:"events_section"`
	Events        []Event `yaml:"events"`
	JudgesSection Section `yaml:"judges_section"`
	Judges        []Judge `yaml:"judges"`
	Notice        Notice  `yaml:"notice"`
	Footer        Footer  `yaml:"footer"`
}

type Site struct {
	Title     string `yaml:"title"`
	ShortName string `yaml:"short_name"`
	Dates     string `yaml:"dates"`
	Location  string `yaml:"location"`
	Tagline   string `yaml:"tagline"`
	CTA       string `yaml:"cta"`
}

// Intro is the splash overlay text.
type Intro struct {
	Title   string   `yaml:"title"`
	Status  string   `yaml:"status"`
	Events  []string `yaml:"events"`
	Caption string   `yaml:"caption"`
}

type Section struct {
	Badge   string `yaml:"badge"`
	Heading string `yaml:"heading"`
	Blurb   string `yaml:"blurb"`
}

type Event struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	Badge       string `yaml:"badge"`
	AIAllowed   bool   `yaml:"ai_allowed"`
	RegisterURL string `yaml:"register_url"`
}

type Judge struct {
	Name        string `yaml:"name"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Links       []Link `yaml:"links"`
}

type Link struct {
	Kind string `yaml:"kind"`
	URL  string `yaml:"url"`
}

type Notice struct {
	Heading string `yaml:"heading"`
	Body    string `yaml:"body"`
}

type Footer struct {
	Blurb     string   `yaml:"blurb"`
	Links     []string `yaml:"links"`
	Facts     []string `yaml:"facts"`
	Copyright string   `yaml:"copyright"`
}

// Default returns the embedded document.
func Default() *Content {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded content: %v", err))
	}
	return c
}

// Load reads and validates the document at path. An empty path yields the
// embedded default.
func Load(path string) (*Content, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func Parse(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate requires a site title and an absolute http(s) register link on
// every event.
func (c *Content) Validate() error {
	if c.Site.Title == "" {
		return fmt.Errorf("%w: missing site title", ErrInvalid)
	}
	for i, e := range c.Events {
		if e.Title == "" {
			return fmt.Errorf("%w: event %d has no title", ErrInvalid, i)
		}
		u, err := url.Parse(e.RegisterURL)
		if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: event %q register url %q", ErrInvalid, e.Title, e.RegisterURL)
		}
	}
	return nil
}
