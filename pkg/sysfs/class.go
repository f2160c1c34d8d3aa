package sysfs

import (
	"fmt"
	"strconv"

	"github.com/Masterminds/semver/v3"
	"github.com/golang/glog"
)

// Class is the declarative description of one device class: where its
// instances live and which attributes each instance exposes.
type Class struct {
	Name       string
	Template   Template
	Numeric    bool
	Attributes []Descriptor
	// Requires maps attribute names to the kernel releases that provide them.
	Requires map[string]*semver.Constraints
}

// WithTemplate returns a copy of c rooted at t.
func (c *Class) WithTemplate(t Template) *Class {
	cp := *c
	cp.Template = t
	return &cp
}

// Enumerator returns the enumerator for the class's instances.
func (c *Class) Enumerator() Enumerator {
	return c.Template.Enumerator(c.Numeric)
}

// Devices discovers all instances of the class on fsys. When the template
// continues below the enumerated entry, entries without that directory are
// not instances of the class.
func (c *Class) Devices(fsys FileSystem) ([]Device, error) {
	locators, err := c.Enumerator().Enumerate(fsys)
	if err != nil {
		return nil, err
	}
	nested := c.Template.nested()
	devices := make([]Device, 0, len(locators))
	for _, loc := range locators {
		dev := Device{FS: fsys, Template: c.Template, Locator: loc}
		if nested {
			info, err := fsys.Stat(dev.Dir())
			if err != nil || !info.IsDir() {
				glog.V(4).Infof("skipping %s: no %s", dev.Dir(), c.Name)
				continue
			}
		}
		devices = append(devices, dev)
	}
	return devices, nil
}

// Device binds the instance identified by id without checking it exists.
// Numeric classes take the bare number ("0" for policy0).
func (c *Class) Device(fsys FileSystem, id string) (Device, error) {
	loc := Name(id)
	if c.Numeric {
		n, err := strconv.Atoi(id)
		if err != nil || n < 0 {
			return Device{}, fmt.Errorf("%s: device id %q is not a non-negative number", c.Name, id)
		}
		loc = Index(n)
	} else if id == "" {
		return Device{}, fmt.Errorf("%s: empty device name", c.Name)
	}
	return Device{FS: fsys, Template: c.Template, Locator: loc}, nil
}

// Lookup finds an attribute by file name.
func (c *Class) Lookup(name string) (Descriptor, bool) {
	for _, a := range c.Attributes {
		if a.Name() == name {
			return a, true
		}
	}
	return nil, false
}

// Setter finds a writable attribute by file name.
func (c *Class) Setter(name string) (Setter, bool) {
	a, ok := c.Lookup(name)
	if !ok || a.Access() != ReadWrite {
		return nil, false
	}
	s, ok := a.(Setter)
	return s, ok
}

// Available reports whether kernel provides attribute name according to
// Requires. Attributes without a requirement are always available.
func (c *Class) Available(name string, kernel *semver.Version) bool {
	constraint, ok := c.Requires[name]
	if !ok || kernel == nil {
		return true
	}
	return constraint.Check(kernel)
}
