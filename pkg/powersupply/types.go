package powersupply

import (
	"github.com/k8snetworkplumbingwg/sysfs-attrs/pkg/sysfs"
)

type SupplyType string

const (
	TypeBattery  SupplyType = "Battery"
	TypeUPS      SupplyType = "UPS"
	TypeMains    SupplyType = "Mains"
	TypeUSB      SupplyType = "USB"
	TypeWireless SupplyType = "Wireless"
)

type Status string

const (
	StatusUnknown     Status = "Unknown"
	StatusCharging    Status = "Charging"
	StatusDischarging Status = "Discharging"
	StatusNotCharging Status = "Not charging"
	StatusFull        Status = "Full"
)

type Health string

const (
	HealthUnknown             Health = "Unknown"
	HealthGood                Health = "Good"
	HealthOverheat            Health = "Overheat"
	HealthDead                Health = "Dead"
	HealthOverVoltage         Health = "Over voltage"
	HealthUnspecifiedFailure  Health = "Unspecified failure"
	HealthCold                Health = "Cold"
	HealthWatchdogTimerExpire Health = "Watchdog timer expire"
	HealthSafetyTimerExpire   Health = "Safety timer expire"
	HealthOverCurrent         Health = "Over current"
	HealthCalibrationRequired Health = "Calibration required"
	HealthWarm                Health = "Warm"
	HealthCool                Health = "Cool"
	HealthHot                 Health = "Hot"
	HealthNoBattery           Health = "No battery"
)

type CapacityLevel string

const (
	CapacityLevelUnknown  CapacityLevel = "Unknown"
	CapacityLevelCritical CapacityLevel = "Critical"
	CapacityLevelLow      CapacityLevel = "Low"
	CapacityLevelNormal   CapacityLevel = "Normal"
	CapacityLevelHigh     CapacityLevel = "High"
	CapacityLevelFull     CapacityLevel = "Full"
)

// ChargeType is the charging algorithm. Trickle, Fast and Standard are
// speeds, the others are charger managed strategies.
type ChargeType string

const (
	ChargeTypeUnknown  ChargeType = "Unknown"
	ChargeTypeNone     ChargeType = "N/A"
	ChargeTypeTrickle  ChargeType = "Trickle"
	ChargeTypeFast     ChargeType = "Fast"
	ChargeTypeStandard ChargeType = "Standard"
	ChargeTypeAdaptive ChargeType = "Adaptive"
	ChargeTypeCustom   ChargeType = "Custom"
	ChargeTypeLongLife ChargeType = "Long Life"
	ChargeTypeBypass   ChargeType = "Bypass"
)

type Technology string

const (
	TechnologyUnknown Technology = "Unknown"
	TechnologyNiMH    Technology = "NiMH"
	TechnologyLiIon   Technology = "Li-ion"
	TechnologyLiPoly  Technology = "Li-poly"
	TechnologyLiFe    Technology = "LiFe"
	TechnologyNiCd    Technology = "NiCd"
	TechnologyLiMn    Technology = "LiMn"
)

// ChargeBehaviour overrides charging while external power is attached.
type ChargeBehaviour string

const (
	// ChargeAuto charges normally and respects thresholds.
	ChargeAuto           ChargeBehaviour = "auto"
	ChargeInhibit        ChargeBehaviour = "inhibit-charge"
	ChargeForceDischarge ChargeBehaviour = "force-discharge"
)

// OnlineState is the numeric online attribute.
type OnlineState uint8

const (
	Offline OnlineState = iota
	OnlineFixed
	OnlineProgrammable
)

func (s OnlineState) String() string {
	switch s {
	case Offline:
		return "offline"
	case OnlineFixed:
		return "online (fixed)"
	case OnlineProgrammable:
		return "online (programmable)"
	}
	return "unknown"
}

var (
	typeCodec = sysfs.EnumOf(TypeBattery, TypeUPS, TypeMains, TypeUSB, TypeWireless)

	statusCodec = sysfs.EnumOf(StatusUnknown, StatusCharging, StatusDischarging, StatusNotCharging, StatusFull)

	healthCodec = sysfs.EnumOf(
		HealthUnknown, HealthGood, HealthOverheat, HealthDead, HealthOverVoltage,
		HealthUnspecifiedFailure, HealthCold, HealthWatchdogTimerExpire, HealthSafetyTimerExpire,
		HealthOverCurrent, HealthCalibrationRequired, HealthWarm, HealthCool, HealthHot, HealthNoBattery,
	)

	capacityLevelCodec = sysfs.EnumOf(
		CapacityLevelUnknown, CapacityLevelCritical, CapacityLevelLow,
		CapacityLevelNormal, CapacityLevelHigh, CapacityLevelFull,
	)

	chargeTypeCodec = sysfs.EnumOf(
		ChargeTypeUnknown, ChargeTypeNone, ChargeTypeTrickle, ChargeTypeFast, ChargeTypeStandard,
		ChargeTypeAdaptive, ChargeTypeCustom, ChargeTypeLongLife, ChargeTypeBypass,
	)

	technologyCodec = sysfs.EnumOf(
		TechnologyUnknown, TechnologyNiMH, TechnologyLiIon, TechnologyLiPoly,
		TechnologyLiFe, TechnologyNiCd, TechnologyLiMn,
	)

	// "[auto] inhibit-charge force-discharge" on read, a bare label on write
	chargeBehaviourCodec = sysfs.Selected(sysfs.EnumOf(ChargeAuto, ChargeInhibit, ChargeForceDischarge))

	// labels are the decimal digits, not the state names
	onlineCodec = sysfs.Enum(map[string]OnlineState{
		"0": Offline,
		"1": OnlineFixed,
		"2": OnlineProgrammable,
	})
)
