package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/relmake/pkg/domain/model"
	"github.com/m-mizutani/relmake/pkg/infra/report"
)

func TestPrintSummary(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	report.PrintSummary(&buf, []*model.Result{
		model.NewResult("bump version").WithValue("1.2.0"),
		model.NewResult("build wheel"),
		model.NewResult("push wheel to pypi"),
	})

	out := buf.String()
	gt.S(t, out).Contains("Summary")

	var lines []string
	for _, l := range strings.Split(out, "\n") {
		if strings.HasPrefix(l, "[") {
			lines = append(lines, l)
		}
	}
	gt.A(t, lines).Length(3)
	gt.S(t, lines[0]).Contains("[ok] bump version")
	gt.S(t, lines[0]).Contains("1.2.0")
	gt.S(t, lines[1]).Contains("[ok] build wheel")
	gt.S(t, lines[2]).Contains("[ok] push wheel to pypi")
	gt.S(t, lines[2]).NotContains("  ")
}
