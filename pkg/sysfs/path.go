package sysfs

import (
	"fmt"
	"path"
	"strconv"
	"strings"
)

// Placeholder marks where a Locator is substituted into a Template.
const Placeholder = "{id}"

// Locator identifies one device instance of a class: a policy or CPU number,
// or a named directory such as a power supply.
type Locator struct {
	index int
	name  string
	named bool
}

// Index returns the locator for numbered device classes.
func Index(i int) Locator { return Locator{index: i} }

// Name returns the locator for named device classes.
func Name(s string) Locator { return Locator{name: s, named: true} }

// Index returns the numeric index, if this locator has one.
func (l Locator) Index() (int, bool) { return l.index, !l.named }

// String is the text substituted for the placeholder.
func (l Locator) String() string {
	if l.named {
		return l.name
	}
	return strconv.Itoa(l.index)
}

// Template is a device class directory with exactly one Placeholder, e.g.
// "/sys/devices/system/cpu/cpufreq/policy{id}".
type Template string

// NewTemplate validates s.
func NewTemplate(s string) (Template, error) {
	if n := strings.Count(s, Placeholder); n != 1 {
		return "", fmt.Errorf("template %q must contain %s exactly once, found %d", s, Placeholder, n)
	}
	if !strings.HasPrefix(s, "/") {
		return "", fmt.Errorf("template %q must be an absolute path", s)
	}
	t := Template(s)
	if _, _, err := t.split(); err != nil {
		return "", err
	}
	return t, nil
}

// MustTemplate is NewTemplate for package level catalogs.
func MustTemplate(s string) Template {
	t, err := NewTemplate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Expand substitutes loc into the template. This is plain text
// interpolation, the result is not cleaned.
func (t Template) Expand(loc Locator) string {
	return strings.Replace(string(t), Placeholder, loc.String(), 1)
}

// split returns the directory that holds the instance entries and the
// literal prefix of the entry names.
func (t Template) split() (string, string, error) {
	s := string(t)
	i := strings.Index(s, Placeholder)
	if i < 0 {
		return "", "", fmt.Errorf("template %q has no %s", s, Placeholder)
	}
	rest := s[i+len(Placeholder):]
	if rest != "" && !strings.HasPrefix(rest, "/") {
		return "", "", fmt.Errorf("template %q: %s must end a path element", s, Placeholder)
	}
	dir, prefix := path.Split(s[:i])
	dir = strings.TrimSuffix(dir, "/")
	if dir == "" {
		dir = "/"
	}
	return dir, prefix, nil
}

// nested reports whether the device directory lies below the enumerated
// entry, as in ".../cpu{id}/acpi_cppc".
func (t Template) nested() bool {
	return !strings.HasSuffix(string(t), Placeholder)
}

// Enumerator returns the enumerator that discovers instances of this
// template's class.
func (t Template) Enumerator(numeric bool) Enumerator {
	root, prefix, _ := t.split()
	return Enumerator{Root: root, Prefix: prefix, Numeric: numeric}
}

// Resolve returns the path of attribute attr for the device at loc.
func Resolve(t Template, loc Locator, attr string) string {
	return t.Expand(loc) + "/" + attr
}
