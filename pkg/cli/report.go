package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/m-mizutani/imgpress/pkg/domain/model"
)

var (
	headerColor    = color.New(color.Bold)
	reductionColor = color.New(color.FgGreen)
	growthColor    = color.New(color.FgYellow)
	failureColor   = color.New(color.FgRed, color.Bold)
)

// writeReport prints one row per result followed by the batch total
func writeReport(w io.Writer, state *model.WorkflowState) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, headerColor.Sprint("FILE\tORIGINAL (KB)\tCOMPRESSED (KB)\tREDUCTION\tSIZE\tOUTPUT"))
	names := model.UniqueDownloadNames(state.Results)
	for i, r := range state.Results {
		view := model.NewResultView(r)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%dx%d\t%s\n",
			view.Name,
			view.OriginalKB,
			view.CompressedKB,
			colorReduction(r.Reduction()),
			view.Width, view.Height,
			names[i],
		)
	}

	summary := state.Summary()
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\t\n",
		headerColor.Sprintf("TOTAL (%d)", summary.Files),
		model.FormatKB(summary.TotalOriginalSize),
		model.FormatKB(summary.TotalCompressedSize),
		colorReduction(summary.Reduction),
	)

	_ = tw.Flush()
}

func colorReduction(v float64) string {
	s := model.FormatPercent(v) + "%"
	if v < 0 {
		return growthColor.Sprint(s)
	}
	return reductionColor.Sprint(s)
}

func writeFailure(w io.Writer, msg string) {
	if msg == "" {
		return
	}
	failureColor.Fprintln(w, msg)
}
