package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dosanma1/vncard-cli/internal/source"
	"github.com/dosanma1/vncard-cli/internal/ui"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List name sources in precedence order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rows := [][]string{{"#", "SOURCE", "REQUEST", "DESCRIPTION"}}
		for i, e := range source.Precedence {
			rows = append(rows, []string{strconv.Itoa(i + 1), string(e.Kind), requestLabel(e), e.Description})
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.TitleStyle.Render("Name sources"))
		fmt.Fprintln(out, ui.Table(rows))
		ui.Hintf(out, "The first enabled source wins; offline is always available.")
		return nil
	},
}

func requestLabel(e source.Entry) string {
	switch {
	case e.Multiplier == 0:
		return "all"
	case e.Multiplier == 1:
		return "N"
	default:
		return strconv.Itoa(e.Multiplier) + "N"
	}
}
