// Package config loads sysfsctl settings from an INI file and the
// environment.
//
//	[global]
//	root = /host
//	node = worker-0
//	format = yaml
//	listen = :9102
//	concurrency = 8
//	classes = cpufreq, power_supply
//
//	[power_supply]
//	template = /sys/class/power_supply/{id}
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bigkevmcd/go-configparser"
	"github.com/golang/glog"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/k8snetworkplumbingwg/sysfs-attrs/pkg/catalog"
	"github.com/k8snetworkplumbingwg/sysfs-attrs/pkg/sysfs"
)

const (
	GlobalSection = "global"

	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"

	DefaultListen      = ":9102"
	DefaultConcurrency = 4
)

// Config is the resolved configuration. Precedence is defaults, then the
// file, then the environment. Command line flags are applied by the caller.
type Config struct {
	// Root is prepended to every kernel path.
	Root        string   `env:"SYSFS_ROOT"`
	Node        string   `env:"NODE_NAME"`
	Format      string   `env:"SYSFS_FORMAT"`
	Listen      string   `env:"SYSFS_LISTEN"`
	Concurrency int      `env:"SYSFS_CONCURRENCY"`
	Classes     []string `env:"SYSFS_CLASSES" env-separator:","`
	// Templates overrides the location of individual classes.
	Templates map[string]sysfs.Template
}

// Default returns the built-in configuration.
func Default() *Config {
	node, err := os.Hostname()
	if err != nil {
		glog.Warningf("cannot determine hostname: %v", err)
	}
	return &Config{
		Root:        "/",
		Node:        node,
		Format:      FormatText,
		Listen:      DefaultListen,
		Concurrency: DefaultConcurrency,
		Classes:     catalog.Names(),
		Templates:   map[string]sysfs.Template{},
	}
}

// Load reads path, when not empty, over the defaults and then applies the
// environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	cfg.Classes = cleanList(cfg.Classes)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	p, err := configparser.NewConfigParserFromFile(path)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	for _, section := range p.Sections() {
		items, err := p.Items(section)
		if err != nil {
			return fmt.Errorf("%s: section %s: %w", path, section, err)
		}
		if section == GlobalSection {
			if err = c.applyGlobal(items); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			continue
		}
		if err = c.applyClass(section, items); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func (c *Config) applyGlobal(items map[string]string) error {
	for key, value := range items {
		value = strings.TrimSpace(value)
		switch key {
		case "root":
			c.Root = value
		case "node":
			c.Node = value
		case "format":
			c.Format = value
		case "listen":
			c.Listen = value
		case "concurrency":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("concurrency %q: %w", value, err)
			}
			c.Concurrency = n
		case "classes":
			c.Classes = cleanList(strings.Split(value, ","))
		default:
			glog.Warningf("ignoring unknown option %s in [%s]", key, GlobalSection)
		}
	}
	return nil
}

func (c *Config) applyClass(class string, items map[string]string) error {
	if _, ok := catalog.Mapping[class]; !ok {
		glog.Warningf("ignoring section [%s], no such class", class)
		return nil
	}
	raw, ok := items["template"]
	if !ok {
		return nil
	}
	t, err := sysfs.NewTemplate(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("[%s]: %w", class, err)
	}
	c.Templates[class] = t
	return nil
}

// Validate checks values that cannot be checked while parsing.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatText, FormatYAML, FormatJSON:
	default:
		return fmt.Errorf("unsupported format %q, want one of %s, %s, %s", c.Format, FormatText, FormatYAML, FormatJSON)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if len(c.Classes) == 0 {
		return fmt.Errorf("no device classes selected")
	}
	return nil
}

// FileSystem returns the filesystem rooted at Root.
func (c *Config) FileSystem() sysfs.FileSystem {
	return sysfs.OSFileSystem{Root: c.Root}
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
