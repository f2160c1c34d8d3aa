package main

import (
	"errors"
	"fmt"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/k8snetworkplumbingwg/sysfs-attrs/pkg/sysfs"
)

func newListCommand(o *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list [CLASS...]",
		Short: "Enumerate the devices of the selected classes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				o.cfg.Classes = args
			}
			m, err := o.manager()
			if err != nil {
				return err
			}
			fsys := o.cfg.FileSystem()
			out := cmd.OutOrStdout()
			var errs []error
			m.Each(func(c *sysfs.Class) {
				devices, err := c.Devices(fsys)
				if err != nil {
					glog.Errorf("failed to enumerate %s: %v", c.Name, err)
					errs = append(errs, err)
					return
				}
				for _, d := range devices {
					fmt.Fprintf(out, "%s\t%s\t%s\n", c.Name, d.Locator, d.Dir())
				}
			})
			return errors.Join(errs...)
		},
	}
}
