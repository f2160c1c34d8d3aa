package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/k8snetworkplumbingwg/sysfs-attrs/pkg/sysfs"
)

func newClassesCommand(o *globalOptions) *cobra.Command {
	var attributes bool
	cmd := &cobra.Command{
		Use:   "classes",
		Short: "List the device classes and their attributes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := o.manager()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			m.Each(func(c *sysfs.Class) {
				fmt.Fprintf(out, "%s\t%s\t%d attributes\n", c.Name, c.Template, len(c.Attributes))
				if !attributes {
					return
				}
				for _, a := range c.Attributes {
					line := fmt.Sprintf("    %-32s %s  %s", a.Name(), a.Access(), a.Kind())
					if l, ok := a.(interface{ Labels() []string }); ok && len(l.Labels()) > 0 {
						line += " {" + strings.Join(l.Labels(), ",") + "}"
					}
					if r, ok := c.Requires[a.Name()]; ok {
						line += "  kernel " + r.String()
					}
					fmt.Fprintln(out, line)
				}
			})
			return nil
		},
	}
	cmd.Flags().BoolVarP(&attributes, "attributes", "a", false, "also list each attribute with its access and kind")
	return cmd
}
