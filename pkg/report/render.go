package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"sigs.k8s.io/yaml"
)

// Render writes r to w as "text", "yaml" or "json".
func Render(w io.Writer, r *Report, format string) error {
	switch format {
	case "text", "":
		return renderText(w, r)
	case "yaml":
		out, err := yaml.Marshal(r)
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		_, err = w.Write(out)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	return fmt.Errorf("unknown format %q", format)
}

func renderText(w io.Writer, r *Report) error {
	var b strings.Builder
	if r.Kernel != "" {
		fmt.Fprintf(&b, "kernel = %s\n", r.Kernel)
	}
	if r.Host != nil {
		fmt.Fprintf(&b, "cpu = %s %s (%d sockets, %d cores, %d threads)\n",
			r.Host.Vendor, r.Host.Model, r.Host.Sockets, r.Host.Cores, r.Host.Threads)
	}
	for _, c := range r.Classes {
		if c.Error != "" {
			fmt.Fprintf(&b, "\n%s: <%s>\n", c.Name, c.Error)
			continue
		}
		if len(c.Devices) == 0 {
			fmt.Fprintf(&b, "\n%s: no devices\n", c.Name)
			continue
		}
		for _, d := range c.Devices {
			fmt.Fprintf(&b, "\n%s %s (%s)\n", c.Name, d.ID, d.Path)
			width := 0
			for _, a := range d.Attributes {
				width = max(width, len(a.Name))
			}
			for _, a := range d.Attributes {
				fmt.Fprintf(&b, "    %-*s = %s\n", width, a.Name, FormatValue(a))
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// FormatValue renders a single attribute for humans. Failures show as
// <kind>, percentages with a percent sign.
func FormatValue(a Attribute) string {
	if a.Error != "" {
		if a.Note != "" {
			return fmt.Sprintf("<%s> (%s)", a.Error, a.Note)
		}
		return "<" + a.Error + ">"
	}
	switch v := a.Value.(type) {
	case string:
		return strconv.Quote(v)
	case float64:
		return strconv.FormatFloat(math.Round(v*1e4)/1e2, 'f', -1, 64) + "%"
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprintf("%v", a.Value)
}
