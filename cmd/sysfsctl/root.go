package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/k8snetworkplumbingwg/sysfs-attrs/pkg/catalog"
	"github.com/k8snetworkplumbingwg/sysfs-attrs/pkg/config"
	"github.com/k8snetworkplumbingwg/sysfs-attrs/pkg/sysfs"
)

// globalOptions holds the persistent flags and the configuration resolved
// from them before any subcommand runs.
type globalOptions struct {
	configFile  string
	root        string
	node        string
	format      string
	concurrency int
	classes     []string

	cfg *config.Config
}

// Execute runs the root command.
func Execute() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:   "sysfsctl",
		Short: "Typed access to kernel sysfs attributes",
		Long: `sysfsctl reads and writes kernel attributes exposed under /sys with their
declared types, enumerates the devices of a class and reports or exports
every attribute at once.

Settings come from the built-in defaults, then the file given with --config,
then SYSFS_* environment variables and finally the command line.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "INI config file path")
	flags.StringVar(&opts.root, "root", "", "directory /sys and /proc are found under (default \"/\")")
	flags.StringVar(&opts.node, "node", "", "node name used in reports and metric labels (default hostname)")
	flags.StringVarP(&opts.format, "output", "o", "", "report format: text, yaml or json")
	flags.IntVar(&opts.concurrency, "concurrency", 0, "devices read in parallel")
	flags.StringSliceVar(&opts.classes, "class", nil, "device classes to use, repeatable (default all)")
	// glog registers -v, -logtostderr and friends on the standard flag set
	flags.AddGoFlagSet(flag.CommandLine)

	cmd.AddCommand(
		newClassesCommand(opts),
		newListCommand(opts),
		newGetCommand(opts),
		newSetCommand(opts),
		newReportCommand(opts),
		newServeCommand(opts),
		newVersionCommand(),
	)
	return cmd
}

func (o *globalOptions) load(cmd *cobra.Command) error {
	if !flag.Parsed() {
		// glog reads its settings from the already merged flag values
		_ = flag.CommandLine.Parse(nil)
	}
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.Root = o.root
	}
	if flags.Changed("node") {
		cfg.Node = o.node
	}
	if flags.Changed("output") {
		cfg.Format = o.format
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = o.concurrency
	}
	if flags.Changed("class") {
		cfg.Classes = o.classes
	}
	if err = cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}

// manager registers the configured classes.
func (o *globalOptions) manager() (*catalog.Manager, error) {
	m, unknown := catalog.Register(o.cfg.Classes, o.cfg.Templates)
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown device classes %v, known classes are %v", unknown, catalog.Names())
	}
	return m, nil
}

// class registers a single class by name, whether or not it is selected.
func (o *globalOptions) class(name string) (*sysfs.Class, error) {
	m, unknown := catalog.Register([]string{name}, o.cfg.Templates)
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown device class %q, known classes are %v", name, catalog.Names())
	}
	c, _ := m.Get(name)
	return c, nil
}

// device binds id of class and checks the instance exists.
func (o *globalOptions) device(class *sysfs.Class, id string) (sysfs.Device, error) {
	fsys := o.cfg.FileSystem()
	dev, err := class.Device(fsys, id)
	if err != nil {
		return sysfs.Device{}, err
	}
	if _, err = fsys.Stat(dev.Dir()); err != nil {
		return sysfs.Device{}, fmt.Errorf("%s: no device %q: %w", class.Name, id, err)
	}
	return dev, nil
}
