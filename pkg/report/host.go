package report

import (
	"fmt"

	"github.com/jaypipes/ghw"
)

// Host is the CPU inventory of the machine the attributes belong to.
type Host struct {
	Vendor  string `json:"vendor,omitempty"`
	Model   string `json:"model,omitempty"`
	Sockets int    `json:"sockets"`
	Cores   uint32 `json:"cores"`
	Threads uint32 `json:"threads"`
}

// HostInfo reads the CPU inventory below root, "/" for the running host.
func HostInfo(root string) (*Host, error) {
	cpu, err := ghw.CPU(ghw.WithChroot(root), ghw.WithDisableWarnings())
	if err != nil {
		return nil, fmt.Errorf("failed to get cpu info: %v", err)
	}
	h := &Host{
		Sockets: len(cpu.Processors),
		Cores:   cpu.TotalCores,
		Threads: cpu.TotalThreads,
	}
	if len(cpu.Processors) > 0 {
		h.Vendor = cpu.Processors[0].Vendor
		h.Model = cpu.Processors[0].Model
	}
	return h, nil
}
