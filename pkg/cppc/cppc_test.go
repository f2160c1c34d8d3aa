package cppc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/k8snetworkplumbingwg/sysfs-attrs/pkg/sysfs"
)

func TestCountCPUs(t *testing.T) {
	root := t.TempDir()
	for _, d := range []string{
		"cpu0/acpi_cppc",
		"cpu1/acpi_cppc",
		"cpu2",
		"cpufreq/policy0",
		"cpuidle",
	} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, "/sys/devices/system/cpu", d), 0o755))
	}
	n, err := CountCPUs(sysfs.OSFileSystem{Root: root})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	devices, err := Class().Devices(sysfs.OSFileSystem{Root: root})
	require.NoError(t, err)
	require.Len(t, devices, n, "reports cover the CPUs that are counted")
	assert.Equal(t, "/sys/devices/system/cpu/cpu1/acpi_cppc", devices[1].Dir())
}

func TestReadPerf(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "/sys/devices/system/cpu/cpu3/acpi_cppc")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "highest_perf"), []byte("166\n"), 0o444))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "feedback_ctrs"), []byte("ref:342888381936 del:373508460504\n"), 0o444))

	dev, err := Class().Device(sysfs.OSFileSystem{Root: root}, "3")
	require.NoError(t, err)

	perf, err := HighestPerf.Get(dev)
	require.NoError(t, err)
	assert.Equal(t, uint64(166), perf)

	ctrs, err := FeedbackCtrs.Get(dev)
	require.NoError(t, err)
	assert.Equal(t, "ref:342888381936 del:373508460504", ctrs)
}
