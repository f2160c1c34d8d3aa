package metrics

import (
	"errors"

	"github.com/golang/glog"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/k8snetworkplumbingwg/sysfs-attrs/pkg/sysfs"
)

const namespace = "sysfs"

var NodeName string // to be initialized on startup or via setter

var (
	// AttributeValue is the current value of a numeric attribute. Booleans
	// are 0 or 1, percentages are fractions.
	AttributeValue = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "attribute_value"),
		"Current value of a numeric sysfs attribute.",
		[]string{"class", "device", "attribute", "node"}, nil)

	// AttributeError is 1 for every attribute whose read failed during the
	// scrape. Attributes that do not exist are not reported.
	AttributeError = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "attribute_error"),
		"Set to 1 when reading a sysfs attribute failed, labelled with the failure kind.",
		[]string{"class", "device", "attribute", "kind", "node"}, nil)

	// ClassDevices is the number of discovered instances per class.
	ClassDevices = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "class_devices"),
		"Number of device instances discovered for a class.",
		[]string{"class", "node"}, nil)
)

// Collector reads attributes on every scrape. Nothing is cached between
// scrapes.
type Collector struct {
	FS      sysfs.FileSystem
	Classes []*sysfs.Class
}

// NewCollector returns a collector for classes on fsys.
func NewCollector(fsys sysfs.FileSystem, classes []*sysfs.Class) *Collector {
	return &Collector{FS: fsys, Classes: classes}
}

// Describe implements prometheus.Collector
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- AttributeValue
	ch <- AttributeError
	ch <- ClassDevices
}

// Collect implements prometheus.Collector
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, class := range c.Classes {
		devices, err := class.Devices(c.FS)
		if err != nil {
			glog.Errorf("failed to enumerate %s: %v", class.Name, err)
			continue
		}
		ch <- prometheus.MustNewConstMetric(ClassDevices, prometheus.GaugeValue,
			float64(len(devices)), class.Name, NodeName)
		for _, dev := range devices {
			c.collectDevice(ch, class, dev)
		}
	}
}

func (c *Collector) collectDevice(ch chan<- prometheus.Metric, class *sysfs.Class, dev sysfs.Device) {
	id := dev.Locator.String()
	for _, attr := range class.Attributes {
		if !attr.Kind().Numeric() {
			continue
		}
		v, err := attr.Value(dev)
		if err != nil {
			if errors.Is(err, sysfs.ErrNotFound) {
				glog.V(4).Infof("%s/%s: %v", class.Name, id, err)
				continue
			}
			ch <- prometheus.MustNewConstMetric(AttributeError, prometheus.GaugeValue, 1,
				class.Name, id, attr.Name(), sysfs.KindOf(err).String(), NodeName)
			continue
		}
		f, ok := sysfs.Float(v)
		if !ok {
			glog.Warningf("%s/%s/%s: %T is not numeric", class.Name, id, attr.Name(), v)
			continue
		}
		ch <- prometheus.MustNewConstMetric(AttributeValue, prometheus.GaugeValue, f,
			class.Name, id, attr.Name(), NodeName)
	}
}
