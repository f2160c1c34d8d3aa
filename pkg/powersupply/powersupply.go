// Package powersupply declares the attributes of the power supply class,
// /sys/class/power_supply/<name>. Instances are named (BAT0, AC, ucsi-source-psy-USBC000:001).
//
// Units follow the kernel ABI: micro amps, micro volts, micro watts and
// tenths of a degree Celsius. Percentages decode to fractions in [0, 1].
package powersupply

import (
	"errors"

	"github.com/k8snetworkplumbingwg/sysfs-attrs/pkg/sysfs"
)

const ClassName = "power_supply"

// Template locates a supply by name.
var Template = sysfs.MustTemplate("/sys/class/power_supply/{id}")

var (
	Manufacturer = sysfs.NewAttr("manufacturer", sysfs.Text())
	ModelName    = sysfs.NewAttr("model_name", sysfs.Text())
	SerialNumber = sysfs.NewAttr("serial_number", sysfs.Text())
	Type         = sysfs.NewAttr("type", typeCodec)

	// CurrentAvg is negative while a battery discharges.
	CurrentAvg = sysfs.NewAttr("current_avg", sysfs.Signed())
	CurrentMax = sysfs.NewAttr("current_max", sysfs.Unsigned())
	// CurrentNow is writable on USB supplies in the programmable online state.
	CurrentNow = sysfs.NewRWAttr("current_now", sysfs.Signed())

	Temp         = sysfs.NewAttr("temp", sysfs.Signed())
	TempAlertMax = sysfs.NewAttr("temp_alert_max", sysfs.Signed())
	TempAlertMin = sysfs.NewAttr("temp_alert_min", sysfs.Signed())
	TempMax      = sysfs.NewAttr("temp_max", sysfs.Signed())
	TempMin      = sysfs.NewAttr("temp_min", sysfs.Signed())

	VoltageMax = sysfs.NewAttr("voltage_max", sysfs.Unsigned())
	VoltageMin = sysfs.NewAttr("voltage_min", sysfs.Unsigned())
	VoltageNow = sysfs.NewRWAttr("voltage_now", sysfs.Unsigned())
	VoltageAvg = sysfs.NewAttr("voltage_avg", sysfs.Unsigned())

	Capacity            = sysfs.NewAttr("capacity", sysfs.Percent())
	CapacityAlertMax    = sysfs.NewRWAttr("capacity_alert_max", sysfs.Percent())
	CapacityAlertMin    = sysfs.NewRWAttr("capacity_alert_min", sysfs.Percent())
	CapacityErrorMargin = sysfs.NewAttr("capacity_error_margin", sysfs.Percent())
	CapacityLevelAttr   = sysfs.NewAttr("capacity_level", capacityLevelCodec)

	ChargeControlLimit          = sysfs.NewRWAttr("charge_control_limit", sysfs.Unsigned())
	ChargeControlLimitMax       = sysfs.NewAttr("charge_control_limit_max", sysfs.Unsigned())
	ChargeControlStartThreshold = sysfs.NewRWAttr("charge_control_start_threshold", sysfs.Percent())
	ChargeControlEndThreshold   = sysfs.NewRWAttr("charge_control_end_threshold", sysfs.Percent())
	ChargeTypeAttr              = sysfs.NewRWAttr("charge_type", chargeTypeCodec)
	ChargeTermCurrent           = sysfs.NewAttr("charge_term_current", sysfs.Unsigned())
	ChargeBehaviourAttr         = sysfs.NewRWAttr("charge_behaviour", chargeBehaviourCodec)
	PrechargeCurrent            = sysfs.NewAttr("precharge_current", sysfs.Unsigned())

	HealthAttr     = sysfs.NewAttr("health", healthCodec)
	Present        = sysfs.NewAttr("present", sysfs.Bool())
	StatusAttr     = sysfs.NewRWAttr("status", statusCodec)
	TechnologyAttr = sysfs.NewAttr("technology", technologyCodec)
	CycleCount     = sysfs.NewAttr("cycle_count", sysfs.Unsigned())

	InputCurrentLimit = sysfs.NewRWAttr("input_current_limit", sysfs.Unsigned())
	InputVoltageLimit = sysfs.NewRWAttr("input_voltage_limit", sysfs.Unsigned())
	InputPowerLimit   = sysfs.NewRWAttr("input_power_limit", sysfs.Unsigned())

	Online = sysfs.NewRWAttr("online", onlineCodec)
	// USBType lists every supported type with the active one in brackets.
	USBType = sysfs.NewAttr("usb_type", sysfs.Text())
)

func Class() *sysfs.Class {
	return &sysfs.Class{
		Name:     ClassName,
		Template: Template,
		Attributes: []sysfs.Descriptor{
			Manufacturer,
			ModelName,
			SerialNumber,
			Type,
			CurrentAvg,
			CurrentMax,
			CurrentNow,
			Temp,
			TempAlertMax,
			TempAlertMin,
			TempMax,
			TempMin,
			VoltageMax,
			VoltageMin,
			VoltageNow,
			Capacity,
			CapacityAlertMax,
			CapacityAlertMin,
			CapacityErrorMargin,
			CapacityLevelAttr,
			ChargeControlLimit,
			ChargeControlLimitMax,
			ChargeControlStartThreshold,
			ChargeControlEndThreshold,
			ChargeTypeAttr,
			ChargeTermCurrent,
			HealthAttr,
			PrechargeCurrent,
			Present,
			StatusAttr,
			ChargeBehaviourAttr,
			TechnologyAttr,
			VoltageAvg,
			CycleCount,
			InputCurrentLimit,
			InputVoltageLimit,
			InputPowerLimit,
			Online,
			USBType,
		},
	}
}

// Supply binds the supply called name on fsys.
func Supply(fsys sysfs.FileSystem, name string) sysfs.Device {
	return sysfs.Device{FS: fsys, Template: Template, Locator: sysfs.Name(name)}
}

// IsPresent reads present, treating a supply without the attribute as
// present.
func IsPresent(d sysfs.Device) (bool, error) {
	present, err := Present.Get(d)
	if errors.Is(err, sysfs.ErrNotFound) {
		return true, nil
	}
	return present, err
}
