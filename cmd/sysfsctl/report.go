package main

import (
	"errors"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/k8snetworkplumbingwg/sysfs-attrs/pkg/kernel"
	"github.com/k8snetworkplumbingwg/sysfs-attrs/pkg/report"
	"github.com/k8snetworkplumbingwg/sysfs-attrs/pkg/sysfs"
)

func newReportCommand(o *globalOptions) *cobra.Command {
	var noHost bool
	cmd := &cobra.Command{
		Use:   "report [CLASS...]",
		Short: "Read every attribute of every device of the selected classes",
		Long: `Enumerate the devices of the selected classes and read every attribute.
Attributes that cannot be read are shown with their error kind. A class
that cannot be enumerated is reported and makes the command fail after the
rest of the report is written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				o.cfg.Classes = args
			}
			m, err := o.manager()
			if err != nil {
				return err
			}
			var classes []*sysfs.Class
			m.Each(func(c *sysfs.Class) { classes = append(classes, c) })

			fsys := o.cfg.FileSystem()
			opts := report.Options{Node: o.cfg.Node, Concurrency: o.cfg.Concurrency}
			if !noHost {
				opts.HostRoot = o.cfg.Root
			}
			if opts.Kernel, err = kernel.Release(fsys); err != nil {
				glog.Warningf("kernel release unknown, requirements not checked: %v", err)
			}

			r, buildErr := report.Build(cmd.Context(), fsys, classes, opts)
			if r == nil {
				return buildErr
			}
			if err = report.Render(cmd.OutOrStdout(), r, o.cfg.Format); err != nil {
				return errors.Join(buildErr, err)
			}
			return buildErr
		},
	}
	cmd.Flags().BoolVar(&noHost, "no-host", false, "skip the CPU inventory")
	return cmd
}
