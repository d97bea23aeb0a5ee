package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

func newTable(w io.Writer, headers ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	return tw
}

func row(tw *tabwriter.Writer, cells ...interface{}) {
	s := make([]string, len(cells))
	for i := range cells {
		s[i] = fmt.Sprint(cells[i])
	}

	fmt.Fprintln(tw, strings.Join(s, "\t"))
}
