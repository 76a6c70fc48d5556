package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/healthforge/gbdkit/internal/classify"
)

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify <cause name>",
	Short: "Show the high-level category a cause name maps to",
	Long: `Classify runs a single cause name through the exact-match tables and the
ordered substring heuristics, and prints the resulting category. Useful for
auditing how a specific label will be grouped before preparing the data.

Example:
  gbdkit classify "Cardiovascular diseases"
  gbdkit classify "Road traffic injury"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(classify.Classify(args[0]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
