package sysfs

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cpufreqRoot = "/sys/devices/system/cpu/cpufreq"

func TestEnumeratePrefixDiscovery(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root,
		cpufreqRoot+"/policy0",
		cpufreqRoot+"/policy1",
		cpufreqRoot+"/policy10",
		cpufreqRoot+"/policyX",
		cpufreqRoot+"/other",
		cpufreqRoot+"/policy",
		cpufreqRoot+"/policy01",
		cpufreqRoot+"/policy00",
	)
	// a regular file with a matching name is not an instance
	writeTree(t, root, map[string]string{cpufreqRoot + "/policy7": "x"})

	e := Enumerator{Root: cpufreqRoot, Prefix: "policy", Numeric: true}
	locators, err := e.Enumerate(OSFileSystem{Root: root})
	require.NoError(t, err)
	assert.Equal(t, []Locator{Index(0), Index(1), Index(10)}, locators)

	n, err := e.Count(OSFileSystem{Root: root})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestEnumerateMissingRootIsEmpty(t *testing.T) {
	e := Enumerator{Root: cpufreqRoot, Prefix: "policy", Numeric: true}
	locators, err := e.Enumerate(OSFileSystem{Root: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, locators)

	n, err := e.Count(OSFileSystem{Root: t.TempDir()})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestEnumerateRootIOError(t *testing.T) {
	mfs := &MockFileSystem{}
	mfs.ExpectReadDir(cpufreqRoot, nil, fs.ErrPermission)

	e := Enumerator{Root: cpufreqRoot, Prefix: "policy", Numeric: true}
	_, err := e.Enumerate(mfs)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, fs.ErrPermission)
	mfs.VerifyAllCalls(t)
}

func TestEnumerateNamedThroughSymlinks(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root,
		"/sys/devices/LNXSYSTM:00/PNP0C0A:00/power_supply/BAT0",
		"/sys/devices/platform/AC/power_supply/AC",
		"/sys/class/power_supply",
	)
	classDir := filepath.Join(root, "/sys/class/power_supply")
	require.NoError(t, os.Symlink("../../devices/LNXSYSTM:00/PNP0C0A:00/power_supply/BAT0", filepath.Join(classDir, "BAT0")))
	require.NoError(t, os.Symlink("../../devices/platform/AC/power_supply/AC", filepath.Join(classDir, "AC")))
	require.NoError(t, os.Symlink("../../devices/gone", filepath.Join(classDir, "dangling")))

	e := Enumerator{Root: "/sys/class/power_supply"}
	locators, err := e.Enumerate(OSFileSystem{Root: root})
	require.NoError(t, err)
	assert.Equal(t, []Locator{Name("AC"), Name("BAT0")}, locators)
}

func TestEnumerateWithMockedEntries(t *testing.T) {
	mfs := &MockFileSystem{}
	mfs.ExpectReadDir("/sys/devices/system/cpu", []os.DirEntry{
		MockDirEntry{name: "cpu3", isDir: true},
		MockDirEntry{name: "cpu0", isDir: true},
		MockDirEntry{name: "cpufreq", isDir: true},
		MockDirEntry{name: "cpuidle", isDir: true},
		MockDirEntry{name: "cpu1", mode: os.ModeSymlink}, // Stat fails in the mock
		MockDirEntry{name: "online"},
	}, nil)

	e := Enumerator{Root: "/sys/devices/system/cpu", Prefix: "cpu", Numeric: true}
	locators, err := e.Enumerate(mfs)
	require.NoError(t, err)
	assert.Equal(t, []Locator{Index(0), Index(3)}, locators)
	mfs.VerifyAllCalls(t)
}

func TestEndToEndPolicyRead(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		cpufreqRoot + "/policy0/affected_cpus": "0 4\n",
		cpufreqRoot + "/policy2/affected_cpus": "2 6\n",
	})
	fsys := OSFileSystem{Root: root}
	tmpl := MustTemplate(cpufreqRoot + "/policy{id}")

	locators, err := tmpl.Enumerator(true).Enumerate(fsys)
	require.NoError(t, err)
	require.Len(t, locators, 2)
	assert.Equal(t, []Locator{Index(0), Index(2)}, locators)

	cpus, err := Read(fsys, Resolve(tmpl, locators[0], "affected_cpus"), List(Unsigned()))
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 4}, cpus)
}

func TestEnumerateNamedWithPrefix(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root,
		"/sys/class/power_supply/BAT0",
		"/sys/class/power_supply/BAT1",
		"/sys/class/power_supply/AC",
	)
	class := &Class{Name: "battery", Template: MustTemplate("/sys/class/power_supply/BAT{id}")}

	devices, err := class.Devices(OSFileSystem{Root: root})
	require.NoError(t, err)
	require.Len(t, devices, 2)
	assert.Equal(t, Name("0"), devices[0].Locator)
	assert.Equal(t, "/sys/class/power_supply/BAT0", devices[0].Dir())
	assert.Equal(t, "/sys/class/power_supply/BAT1", devices[1].Dir())
}

func TestEnumerateLeadingZeros(t *testing.T) {
	tests := []struct {
		entry string
		want  []Locator
	}{
		{"policy0", []Locator{Index(0)}},
		{"policy10", []Locator{Index(10)}},
		{"policy01", []Locator{}},
		{"policy00", []Locator{}},
	}
	for _, tt := range tests {
		t.Run(tt.entry, func(t *testing.T) {
			root := t.TempDir()
			mkdirs(t, root, cpufreqRoot+"/"+tt.entry)
			locators, err := MustTemplate(cpufreqRoot + "/policy{id}").Enumerator(true).Enumerate(OSFileSystem{Root: root})
			require.NoError(t, err)
			assert.Equal(t, tt.want, locators)
			for _, loc := range locators {
				assert.Equal(t, cpufreqRoot+"/"+tt.entry, MustTemplate(cpufreqRoot+"/policy{id}").Expand(loc))
			}
		})
	}
}

func TestClassDevicesSkipsEntriesWithoutNestedDir(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root,
		"/sys/devices/system/cpu/cpu0/acpi_cppc",
		"/sys/devices/system/cpu/cpu1",
		"/sys/devices/system/cpu/cpu2/acpi_cppc",
	)
	class := &Class{Name: "cppc", Template: MustTemplate("/sys/devices/system/cpu/cpu{id}/acpi_cppc"), Numeric: true}

	devices, err := class.Devices(OSFileSystem{Root: root})
	require.NoError(t, err)
	require.Len(t, devices, 2)
	assert.Equal(t, Index(0), devices[0].Locator)
	assert.Equal(t, Index(2), devices[1].Locator)
}
