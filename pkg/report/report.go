// Package report reads every attribute of every discovered device and
// renders the result. A failing attribute is reported with its error kind
// and never stops the rest of the report.
package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"

	"github.com/k8snetworkplumbingwg/sysfs-attrs/pkg/sysfs"
)

// Report is the result of one pass over the selected classes.
type Report struct {
	Node    string  `json:"node,omitempty"`
	Kernel  string  `json:"kernel,omitempty"`
	Host    *Host   `json:"host,omitempty"`
	Classes []Class `json:"classes"`
}

type Class struct {
	Name      string    `json:"name"`
	Devices   []Device  `json:"devices"`
	Summaries []Summary `json:"summaries,omitempty"`
	Error     string    `json:"error,omitempty"`
}

type Device struct {
	ID         string      `json:"id"`
	Path       string      `json:"path"`
	Attributes []Attribute `json:"attributes"`
}

// Attribute holds either a decoded value or the kind of failure.
type Attribute struct {
	Name   string `json:"name"`
	Access string `json:"access"`
	Value  any    `json:"value,omitempty"`
	Error  string `json:"error,omitempty"`
	// Note explains a missing attribute, e.g. an unmet kernel requirement.
	Note string `json:"note,omitempty"`
}

// Options controls Build.
type Options struct {
	Node string
	// Concurrency bounds the number of devices read at once.
	Concurrency int
	// Kernel, when set, is used to annotate attributes the running kernel
	// does not provide.
	Kernel *semver.Version
	// HostRoot, when set, adds CPU inventory read below that root.
	HostRoot string
}

// Build reports classes on fsys. The returned error joins the enumeration
// failures of individual classes. The report is complete for every other
// class and is returned even when the error is not nil.
func Build(ctx context.Context, fsys sysfs.FileSystem, classes []*sysfs.Class, opts Options) (*Report, error) {
	r := &Report{Node: opts.Node, Classes: make([]Class, 0, len(classes))}
	if opts.Kernel != nil {
		r.Kernel = opts.Kernel.String()
	}
	if opts.HostRoot != "" {
		host, err := HostInfo(opts.HostRoot)
		if err != nil {
			glog.Warningf("host inventory unavailable: %v", err)
		} else {
			r.Host = host
		}
	}

	var errs []error
	for _, class := range classes {
		cr, err := buildClass(ctx, fsys, class, opts)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			glog.Errorf("failed to report %s: %v", class.Name, err)
			errs = append(errs, fmt.Errorf("%s: %w", class.Name, err))
		}
		r.Classes = append(r.Classes, cr)
	}
	return r, errors.Join(errs...)
}

func buildClass(ctx context.Context, fsys sysfs.FileSystem, class *sysfs.Class, opts Options) (Class, error) {
	cr := Class{Name: class.Name, Devices: []Device{}}
	devices, err := class.Devices(fsys)
	if err != nil {
		cr.Error = sysfs.KindOf(err).String()
		return cr, err
	}

	cr.Devices = make([]Device, len(devices))
	g, ctx := errgroup.WithContext(ctx)
	limit := opts.Concurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)
	for i, dev := range devices {
		i, dev := i, dev
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cr.Devices[i] = ReadDevice(class, dev, opts.Kernel)
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return cr, err
	}
	cr.Summaries = Summarize(class, cr.Devices)
	return cr, nil
}

// ReadDevice reads every attribute class declares on dev.
func ReadDevice(class *sysfs.Class, dev sysfs.Device, kernel *semver.Version) Device {
	d := Device{
		ID:         dev.Locator.String(),
		Path:       dev.Dir(),
		Attributes: make([]Attribute, 0, len(class.Attributes)),
	}
	for _, attr := range class.Attributes {
		a := Attribute{Name: attr.Name(), Access: attr.Access().String()}
		v, err := attr.Value(dev)
		if err != nil {
			a.Error = sysfs.KindOf(err).String()
			if errors.Is(err, sysfs.ErrNotFound) && !class.Available(attr.Name(), kernel) {
				a.Note = fmt.Sprintf("requires kernel %s", class.Requires[attr.Name()])
			}
			glog.V(4).Infof("%s: %v", dev.Path(attr.Name()), err)
		} else {
			a.Value = v
		}
		d.Attributes = append(d.Attributes, a)
	}
	return d
}
