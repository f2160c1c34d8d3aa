// Package cppc declares the ACPI Collaborative Processor Performance Control
// attributes, /sys/devices/system/cpu/cpuN/acpi_cppc.
package cppc

import (
	"github.com/k8snetworkplumbingwg/sysfs-attrs/pkg/sysfs"
)

const ClassName = "acpi_cppc"

// Template locates the CPPC directory of a CPU by CPU number.
var Template = sysfs.MustTemplate("/sys/devices/system/cpu/cpu{id}/acpi_cppc")

var (
	HighestPerf         = sysfs.NewAttr("highest_perf", sysfs.Unsigned())
	NominalPerf         = sysfs.NewAttr("nominal_perf", sysfs.Unsigned())
	LowestNonlinearPerf = sysfs.NewAttr("lowest_nonlinear_perf", sysfs.Unsigned())
	LowestPerf          = sysfs.NewAttr("lowest_perf", sysfs.Unsigned())
	LowestFreq          = sysfs.NewAttr("lowest_freq", sysfs.Unsigned())
	NominalFreq         = sysfs.NewAttr("nominal_freq", sysfs.Unsigned())
	ReferencePerf       = sysfs.NewAttr("reference_perf", sysfs.Unsigned())
	WraparoundTime      = sysfs.NewAttr("wraparound_time", sysfs.Unsigned())
	// FeedbackCtrs is "ref:<n> del:<n>", kept as text.
	FeedbackCtrs = sysfs.NewAttr("feedback_ctrs", sysfs.Text())
)

func Class() *sysfs.Class {
	return &sysfs.Class{
		Name:     ClassName,
		Template: Template,
		Numeric:  true,
		Attributes: []sysfs.Descriptor{
			HighestPerf,
			NominalPerf,
			LowestNonlinearPerf,
			LowestPerf,
			LowestFreq,
			NominalFreq,
			FeedbackCtrs,
			WraparoundTime,
			ReferencePerf,
		},
	}
}

// CountCPUs returns the number of CPUs that expose CPPC. A cpuN directory
// without acpi_cppc is not counted.
func CountCPUs(fsys sysfs.FileSystem) (int, error) {
	devices, err := Class().Devices(fsys)
	if err != nil {
		return 0, err
	}
	return len(devices), nil
}
