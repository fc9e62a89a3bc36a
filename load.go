package siteconf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// LoadOption configures a single Load or Parse call.
type LoadOption func(*loader)

type loader struct {
	file    string
	profile string
	useEnv  bool
	environ map[string]string
	assets  AssetChecker
}

// WithFile reads the site definition from a YAML file instead of Default().
func WithFile(path string) LoadOption {
	return func(l *loader) {
		l.file = path
	}
}

// WithProfile overlays the named entry of the file's profiles section.
// An empty name selects no profile.
func WithProfile(name string) LoadOption {
	return func(l *loader) {
		l.profile = name
	}
}

// WithEnvironment applies SITE_* overrides taken from environ only. A nil
// map means no overrides; use WithOSEnvironment for the process environment.
func WithEnvironment(environ map[string]string) LoadOption {
	if environ == nil {
		environ = map[string]string{}
	}
	return func(l *loader) {
		l.useEnv = true
		l.environ = environ
	}
}

// WithOSEnvironment applies SITE_* overrides from the process environment.
func WithOSEnvironment() LoadOption {
	return func(l *loader) {
		l.useEnv = true
		l.environ = nil
	}
}

// WithAssets verifies ogImage and introAudio.src against a static-asset root.
func WithAssets(a AssetChecker) LoadOption {
	return func(l *loader) {
		l.assets = a
	}
}

// document is the on-disk layout: the site fields plus optional overlays.
type document struct {
	SiteConfig `yaml:",inline"`
	Profiles   map[string]yaml.Node `yaml:"profiles,omitempty"`
}

// Load resolves and validates the site configuration. Without options it
// returns the validated Default().
func Load(opts ...LoadOption) (SiteConfig, error) {
	l := newLoader(opts)
	if l.file == "" {
		if l.profile != "" {
			return SiteConfig{}, fmt.Errorf("siteconf: profile %q: %w", l.profile, ErrUnknownProfile)
		}
		return l.finish(Default())
	}
	data, err := os.ReadFile(l.file)
	if err != nil {
		return SiteConfig{}, fmt.Errorf("siteconf: read config: %w", err)
	}
	return l.parse(data, l.file)
}

// Parse is Load for an in-memory YAML document. WithFile is ignored.
func Parse(data []byte, opts ...LoadOption) (SiteConfig, error) {
	return newLoader(opts).parse(data, "<input>")
}

func newLoader(opts []LoadOption) *loader {
	l := &loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *loader) parse(data []byte, name string) (SiteConfig, error) {
	doc, err := decodeDocument(data)
	if err != nil {
		return SiteConfig{}, fmt.Errorf("siteconf: parse %s: %w", name, err)
	}
	cfg := doc.SiteConfig
	if l.profile != "" {
		node, ok := doc.Profiles[l.profile]
		if !ok {
			return SiteConfig{}, fmt.Errorf("siteconf: profile %q in %s: %w", l.profile, name, ErrUnknownProfile)
		}
		if err := overlay(&cfg, &node); err != nil {
			return SiteConfig{}, fmt.Errorf("siteconf: parse profile %q in %s: %w", l.profile, name, err)
		}
	}
	return l.finish(cfg)
}

func (l *loader) finish(cfg SiteConfig) (SiteConfig, error) {
	if l.useEnv {
		if err := env.ParseWithOptions(&cfg, env.Options{Environment: l.environ}); err != nil {
			return SiteConfig{}, fmt.Errorf("siteconf: environment overrides: %w", err)
		}
	}
	if err := Validate(cfg); err != nil {
		return SiteConfig{}, err
	}
	if l.assets != nil {
		if err := CheckAssets(cfg, l.assets); err != nil {
			return SiteConfig{}, err
		}
	}
	return cfg, nil
}

func decodeDocument(data []byte) (document, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return document{}, err
	}
	return doc, nil
}

// overlay decodes a profile node on top of cfg. Keys absent from the node
// keep their base values.
func overlay(cfg *SiteConfig, node *yaml.Node) error {
	raw, err := yaml.Marshal(node)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Profiles lists the profile names defined in the file at path, sorted.
func Profiles(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("siteconf: read config: %w", err)
	}
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("siteconf: parse %s: %w", path, err)
	}
	names := make([]string, 0, len(doc.Profiles))
	for name := range doc.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Marshal encodes c in the file format read by Load.
func Marshal(c SiteConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
