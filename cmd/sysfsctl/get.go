package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/k8snetworkplumbingwg/sysfs-attrs/pkg/report"
	"github.com/k8snetworkplumbingwg/sysfs-attrs/pkg/sysfs"
)

func newGetCommand(o *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get CLASS DEVICE [ATTRIBUTE...]",
		Short: "Read attributes of one device",
		Long: `Read the named attributes of one device, or all of them when none are
named. Numeric classes take the bare instance number, e.g. "get cpufreq 0".
A named attribute that cannot be read makes the command fail.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			class, err := o.class(args[0])
			if err != nil {
				return err
			}
			dev, err := o.device(class, args[1])
			if err != nil {
				return err
			}
			named := args[2:]
			if len(named) > 0 {
				selected := *class
				selected.Attributes = make([]sysfs.Descriptor, 0, len(named))
				for _, name := range named {
					a, ok := class.Lookup(name)
					if !ok {
						return fmt.Errorf("%s has no attribute %q", class.Name, name)
					}
					selected.Attributes = append(selected.Attributes, a)
				}
				class = &selected
			}

			d := report.ReadDevice(class, dev, nil)
			width := 0
			for _, a := range d.Attributes {
				width = max(width, len(a.Name))
			}
			out := cmd.OutOrStdout()
			var failed []string
			for _, a := range d.Attributes {
				fmt.Fprintf(out, "%-*s = %s\n", width, a.Name, report.FormatValue(a))
				if a.Error != "" {
					failed = append(failed, a.Name)
				}
			}
			if len(named) > 0 && len(failed) > 0 {
				return fmt.Errorf("failed to read %s", strings.Join(failed, ", "))
			}
			return nil
		},
	}
}
