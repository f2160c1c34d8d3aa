package sysfs

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/golang/glog"
)

// Enumerator discovers device instances: subdirectories of Root whose name
// is Prefix followed by digits without leading zeros (Numeric) or by any
// non-empty remainder. The locator holds the part after Prefix.
type Enumerator struct {
	Root    string
	Prefix  string
	Numeric bool
}

// Enumerate returns the locators of all instances, numeric ones in ascending
// order and named ones sorted by name.
//
// A Root that does not exist means the feature is absent on this machine
// and yields no instances and no error. Entries that are symlinks which
// cannot be resolved are skipped.
func (e Enumerator) Enumerate(fsys FileSystem) ([]Locator, error) {
	entries, err := fsys.ReadDir(e.Root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			glog.V(2).Infof("%s does not exist, no instances", e.Root)
			return []Locator{}, nil
		}
		return nil, &Error{Kind: KindIO, Op: "enumerate", Path: e.Root, Err: err}
	}

	locators := make([]Locator, 0, len(entries))
	for _, entry := range entries {
		loc, ok := e.match(entry.Name())
		if !ok {
			continue
		}
		if !e.isDir(fsys, entry) {
			continue
		}
		locators = append(locators, loc)
	}

	sort.Slice(locators, func(i, j int) bool {
		if e.Numeric {
			return locators[i].index < locators[j].index
		}
		return locators[i].name < locators[j].name
	})
	return locators, nil
}

// Count returns the number of instances, see Enumerate.
func (e Enumerator) Count(fsys FileSystem) (int, error) {
	locators, err := e.Enumerate(fsys)
	if err != nil {
		return 0, err
	}
	return len(locators), nil
}

func (e Enumerator) match(name string) (Locator, bool) {
	rest, ok := strings.CutPrefix(name, e.Prefix)
	if !ok || rest == "" {
		return Locator{}, false
	}
	if !e.Numeric {
		return Name(rest), true
	}
	// policy01 would expand back to policy1
	if len(rest) > 1 && rest[0] == '0' {
		return Locator{}, false
	}
	for i := 0; i < len(rest); i++ {
		if rest[i] < '0' || rest[i] > '9' {
			return Locator{}, false
		}
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		// more digits than an int holds
		glog.Warningf("skipping %s/%s: %v", e.Root, name, err)
		return Locator{}, false
	}
	return Index(n), true
}

func (e Enumerator) isDir(fsys FileSystem, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	// /sys/class/* entries are symlinks into /sys/devices
	info, err := fsys.Stat(path.Join(e.Root, entry.Name()))
	if err != nil {
		glog.V(2).Infof("skipping %s/%s: %v", e.Root, entry.Name(), err)
		return false
	}
	return info.IsDir()
}
