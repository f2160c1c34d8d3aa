// Package amdpstate declares the amd-pstate driver attributes found in
// CPUFreq policy objects.
package amdpstate

import (
	"github.com/Masterminds/semver/v3"

	"github.com/k8snetworkplumbingwg/sysfs-attrs/pkg/cpufreq"
	"github.com/k8snetworkplumbingwg/sysfs-attrs/pkg/sysfs"
)

const ClassName = "amd_pstate"

// EPP is an energy performance preference hint.
type EPP string

const (
	EPPDefault            EPP = "default"
	EPPPerformance        EPP = "performance"
	EPPBalancePerformance EPP = "balance_performance"
	EPPBalancePower       EPP = "balance_power"
	EPPPower              EPP = "power"
)

// EPPCodec accepts exactly the preferences the driver advertises.
var EPPCodec = sysfs.EnumOf(EPPDefault, EPPPerformance, EPPBalancePerformance, EPPBalancePower, EPPPower)

// EPPRequirement is the kernel release range that exposes the active mode
// EPP interface.
const EPPRequirement = ">= 6.3.0-0"

var (
	HighestPerf          = sysfs.NewAttr("amd_pstate_highest_perf", sysfs.Unsigned())
	MaxFreq              = sysfs.NewAttr("amd_pstate_max_freq", sysfs.Unsigned())
	LowestNonlinearFreq  = sysfs.NewAttr("amd_pstate_lowest_nonlinear_freq", sysfs.Unsigned())
	AvailablePreferences = sysfs.NewAttr("energy_performance_available_preferences", sysfs.List(EPPCodec))
	// Preference is the EPP hint currently applied to the policy.
	Preference = sysfs.NewRWAttr("energy_performance_preference", EPPCodec)
)

// Class returns the amd-pstate view of the policy objects.
func Class() *sysfs.Class {
	epp, err := semver.NewConstraint(EPPRequirement)
	if err != nil {
		panic(err)
	}
	return &sysfs.Class{
		Name:     ClassName,
		Template: cpufreq.Template,
		Numeric:  true,
		Attributes: []sysfs.Descriptor{
			HighestPerf,
			MaxFreq,
			LowestNonlinearFreq,
			AvailablePreferences,
			Preference,
		},
		Requires: map[string]*semver.Constraints{
			AvailablePreferences.Name(): epp,
			Preference.Name():           epp,
		},
	}
}
