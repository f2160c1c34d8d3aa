// Package kernel reads the running kernel release so attribute availability
// can be checked against version constraints.
package kernel

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/k8snetworkplumbingwg/sysfs-attrs/pkg/sysfs"
)

// OSReleasePath holds the release string, e.g. "6.8.0-45-generic".
const OSReleasePath = "/proc/sys/kernel/osrelease"

type releaseCodec struct{}

// ReleaseCodec decodes a kernel release into a version made of its leading
// numeric components. Distribution suffixes are dropped.
func ReleaseCodec() sysfs.Codec[*semver.Version] { return releaseCodec{} }

func (releaseCodec) Decode(text string) (*semver.Version, error) {
	core := numericCore(text)
	if core == "" {
		return nil, &sysfs.DecodeError{Type: "kernel release", Text: text, Err: errors.New("no version number")}
	}
	v, err := semver.NewVersion(core)
	if err != nil {
		return nil, &sysfs.DecodeError{Type: "kernel release", Text: text, Err: err}
	}
	return v, nil
}

func (releaseCodec) Encode(v *semver.Version) (string, error) {
	if v == nil {
		return "", fmt.Errorf("%w: nil version", sysfs.ErrInvalidValue)
	}
	return v.String(), nil
}

func (releaseCodec) Kind() sysfs.ValueKind { return sysfs.ValueText }

// numericCore returns up to three dot separated runs of digits from the
// start of s: "6.8.0-45-generic" gives "6.8.0", "6.10-rc1" gives "6.10".
func numericCore(s string) string {
	end, parts := 0, 0
	for parts < 3 {
		i := end
		if parts > 0 {
			if i >= len(s) || s[i] != '.' {
				break
			}
			i++
		}
		j := i
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		if j == i {
			break
		}
		end, parts = j, parts+1
	}
	return s[:end]
}

// Release reads the running kernel's release from fsys.
func Release(fsys sysfs.FileSystem) (*semver.Version, error) {
	return sysfs.Read(fsys, OSReleasePath, ReleaseCodec())
}
