// sysfsctl reads and writes typed kernel attributes under /sys.
//
// Usage:
//
//	# List the known device classes and their attributes
//	sysfsctl classes --attributes
//
//	# Show every attribute of cpufreq policy 0
//	sysfsctl get cpufreq 0
//
//	# Change the governor of policy 0
//	sysfsctl set cpufreq 0 scaling_governor powersave
//
//	# Report all classes of a host mounted at /host as YAML
//	sysfsctl report --root /host --output yaml
//
//	# Export numeric attributes to Prometheus
//	sysfsctl serve --listen :9102
package main

func main() {
	Execute()
}
