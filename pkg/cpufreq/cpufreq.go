// Package cpufreq declares the attributes of CPUFreq policy objects,
// /sys/devices/system/cpu/cpufreq/policyN.
package cpufreq

import (
	"github.com/k8snetworkplumbingwg/sysfs-attrs/pkg/sysfs"
)

const (
	ClassName = "cpufreq"
	Dir       = "/sys/devices/system/cpu/cpufreq"
)

// Template locates policy objects by policy number.
var Template = sysfs.MustTemplate(Dir + "/policy{id}")

var (
	// AffectedCPUs lists the online CPUs sharing this policy.
	AffectedCPUs = sysfs.NewAttr("affected_cpus", sysfs.List(sysfs.Unsigned()))
	// BIOSLimit is the firmware imposed upper frequency limit in kHz. Absent
	// when the scaling driver does not support it.
	BIOSLimit = sysfs.NewAttr("bios_limit", sysfs.Unsigned())
	// CPUInfoCurFreq is the frequency the hardware actually runs at, in kHz.
	CPUInfoCurFreq = sysfs.NewAttr("cpuinfo_cur_freq", sysfs.Unsigned())
	CPUInfoMaxFreq = sysfs.NewAttr("cpuinfo_max_freq", sysfs.Unsigned())
	CPUInfoMinFreq = sysfs.NewAttr("cpuinfo_min_freq", sysfs.Unsigned())
	// CPUInfoTransitionLatency is in nanoseconds, -1 when unknown.
	CPUInfoTransitionLatency = sysfs.NewAttr("cpuinfo_transition_latency", sysfs.Signed())
	// RelatedCPUs lists online and offline CPUs of this policy.
	RelatedCPUs               = sysfs.NewAttr("related_cpus", sysfs.List(sysfs.Unsigned()))
	ScalingAvailableGovernors = sysfs.NewAttr("scaling_available_governors", sysfs.List(sysfs.Text()))
	ScalingCurFreq            = sysfs.NewAttr("scaling_cur_freq", sysfs.Unsigned())
	ScalingDriver             = sysfs.NewAttr("scaling_driver", sysfs.Text())
	// ScalingGovernor must be one of ScalingAvailableGovernors when written.
	ScalingGovernor = sysfs.NewRWAttr("scaling_governor", sysfs.Text())
	// ScalingMaxFreq must not be written below ScalingMinFreq.
	ScalingMaxFreq = sysfs.NewRWAttr("scaling_max_freq", sysfs.Unsigned())
	ScalingMinFreq = sysfs.NewRWAttr("scaling_min_freq", sysfs.Unsigned())
	// ScalingSetSpeed only works with the userspace governor.
	ScalingSetSpeed = sysfs.NewRWAttr("scaling_setspeed", sysfs.Unsigned())
)

// Class returns the policy class description.
func Class() *sysfs.Class {
	return &sysfs.Class{
		Name:     ClassName,
		Template: Template,
		Numeric:  true,
		Attributes: []sysfs.Descriptor{
			AffectedCPUs,
			BIOSLimit,
			CPUInfoCurFreq,
			CPUInfoMaxFreq,
			CPUInfoMinFreq,
			CPUInfoTransitionLatency,
			RelatedCPUs,
			ScalingAvailableGovernors,
			ScalingCurFreq,
			ScalingDriver,
			ScalingGovernor,
			ScalingMaxFreq,
			ScalingMinFreq,
			ScalingSetSpeed,
		},
	}
}

// Policy binds policy n on fsys.
func Policy(fsys sysfs.FileSystem, n int) sysfs.Device {
	return sysfs.Device{FS: fsys, Template: Template, Locator: sysfs.Index(n)}
}

// Count returns the number of policyN directories. Machines without
// CPUFreq have none.
func Count(fsys sysfs.FileSystem) (int, error) {
	return Template.Enumerator(true).Count(fsys)
}
