package ui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ja7ad/proctop/pkg/sampler"
)

// RenderTable writes one report as plain text: a summary header followed by
// the process table aligned with a tabwriter.
func RenderTable(w io.Writer, host HostInfo, rep sampler.SystemReport, opts Options) error {
	opts = opts.withDefaults()

	for _, line := range summaryLines(host, rep) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "cpu %s\nmem %s\n\n", Gauge(rep.CPUUtilization, 20), Gauge(rep.MemoryUtilization, 20)); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(columns, "\t"))
	for _, p := range limit(rep.Processes, opts.Top) {
		fmt.Fprintln(tw, strings.Join(processRow(p, opts.PerCore, opts.Cores), "\t"))
	}
	return tw.Flush()
}
