package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/m-mizutani/relmake/pkg/domain/model"
)

var (
	okLabel = color.New(color.FgGreen, color.Bold).SprintFunc()
	title   = color.New(color.Bold, color.Underline).SprintFunc()
)

// PrintSummary writes one line per result in the order given
func PrintSummary(w io.Writer, results []*model.Result) {
	fmt.Fprintf(w, "\n%s\n\n", title("Summary"))

	width := 0
	for _, r := range results {
		if len(r.Name) > width {
			width = len(r.Name)
		}
	}

	for _, r := range results {
		line := fmt.Sprintf("%s %-*s", okLabel("["+string(r.Status)+"]"), width, r.Name)
		if r.Value != "" {
			line += "  " + r.Value
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)
}
