package main

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
)

func newSetCommand(o *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set CLASS DEVICE ATTRIBUTE VALUE",
		Short: "Write one attribute of one device",
		Long: `Write VALUE to a read-write attribute. VALUE is parsed with the
attribute's type before anything is written, so an invalid value never
reaches the kernel.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			class, err := o.class(args[0])
			if err != nil {
				return err
			}
			dev, err := o.device(class, args[1])
			if err != nil {
				return err
			}
			name, value := args[2], args[3]
			s, ok := class.Setter(name)
			if !ok {
				if _, exists := class.Lookup(name); exists {
					return fmt.Errorf("%s %s is read-only", class.Name, name)
				}
				return fmt.Errorf("%s has no attribute %q", class.Name, name)
			}
			if err = s.SetText(dev, value); err != nil {
				return err
			}
			glog.Infof("%s set to %s", dev.Path(name), value)
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", name, value)
			return nil
		},
	}
}
