// Package catalog maps device class names to their declarations and builds
// the set of classes a run works with.
package catalog

import (
	"sort"

	"github.com/golang/glog"

	"github.com/k8snetworkplumbingwg/sysfs-attrs/pkg/amdpstate"
	"github.com/k8snetworkplumbingwg/sysfs-attrs/pkg/cppc"
	"github.com/k8snetworkplumbingwg/sysfs-attrs/pkg/cpufreq"
	"github.com/k8snetworkplumbingwg/sysfs-attrs/pkg/powersupply"
	"github.com/k8snetworkplumbingwg/sysfs-attrs/pkg/sysfs"
)

// New constructs a fresh class declaration
type New func() *sysfs.Class

// Mapping holds every known device class.
var Mapping = map[string]New{
	cpufreq.ClassName:     cpufreq.Class,
	amdpstate.ClassName:   amdpstate.Class,
	cppc.ClassName:        cppc.Class,
	powersupply.ClassName: powersupply.Class,
}

// Names returns the known class names in sorted order.
func Names() []string {
	names := make([]string, 0, len(Mapping))
	for name := range Mapping {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Manager holds the registered classes.
type Manager struct {
	Classes map[string]*sysfs.Class
	// Order is the registration order, used for stable output.
	Order []string
}

// Register builds a Manager for names. Templates in overrides replace the
// default location of the named class. Unknown names are returned instead
// of registered.
func Register(names []string, overrides map[string]sysfs.Template) (*Manager, []string) {
	glog.V(2).Infof("Begin class registration...")
	manager := &Manager{Classes: make(map[string]*sysfs.Class)}
	var unknown []string
	for _, name := range names {
		if _, dup := manager.Classes[name]; dup {
			continue
		}
		class := registerClass(name)
		if class == nil {
			unknown = append(unknown, name)
			continue
		}
		if t, ok := overrides[name]; ok {
			glog.Infof("class %s rooted at %s", name, t)
			class = class.WithTemplate(t)
		}
		manager.Classes[name] = class
		manager.Order = append(manager.Order, name)
	}
	return manager, unknown
}

func registerClass(name string) *sysfs.Class {
	glog.V(4).Infof("Trying to register class: %s", name)
	if constructor, ok := Mapping[name]; ok {
		return constructor()
	}
	glog.Errorf("Class not found: %s", name)
	return nil
}

// Get returns the registered class called name.
func (m *Manager) Get(name string) (*sysfs.Class, bool) {
	c, ok := m.Classes[name]
	return c, ok
}

// Each calls fn for every registered class in registration order.
func (m *Manager) Each(fn func(*sysfs.Class)) {
	for _, name := range m.Order {
		fn(m.Classes[name])
	}
}
