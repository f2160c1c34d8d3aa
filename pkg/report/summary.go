package report

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"k8s.io/utils/ptr"

	"github.com/k8snetworkplumbingwg/sysfs-attrs/pkg/sysfs"
)

// Summary aggregates one numeric attribute over the devices of a class.
// Statistics are nil when no device produced a value.
type Summary struct {
	Attribute string   `json:"attribute"`
	Count     int      `json:"count"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
	Mean      *float64 `json:"mean,omitempty"`
	StdDev    *float64 `json:"stddev,omitempty"`
}

// Summarize returns a summary for every unsigned, signed and percent
// attribute of class, in declaration order.
func Summarize(class *sysfs.Class, devices []Device) []Summary {
	var out []Summary
	for _, attr := range class.Attributes {
		switch attr.Kind() {
		case sysfs.ValueUnsigned, sysfs.ValueSigned, sysfs.ValuePercent:
		default:
			continue
		}
		out = append(out, summarize(attr.Name(), devices))
	}
	return out
}

func summarize(name string, devices []Device) Summary {
	s := Summary{Attribute: name}
	var values []float64
	for _, d := range devices {
		for _, a := range d.Attributes {
			if a.Name != name || a.Error != "" {
				continue
			}
			if f, ok := sysfs.Float(a.Value); ok {
				values = append(values, f)
			}
		}
	}
	s.Count = len(values)
	if s.Count == 0 {
		return s
	}
	s.Min = ptr.To(floats.Min(values))
	s.Max = ptr.To(floats.Max(values))
	s.Mean = ptr.To(stat.Mean(values, nil))
	if s.Count > 1 {
		s.StdDev = ptr.To(stat.StdDev(values, nil))
	}
	return s
}
