package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/solatis/graphfilter/internal/expr"
	"github.com/solatis/graphfilter/internal/filter"
	"github.com/solatis/graphfilter/internal/graph"
)

var matchCmd = &cobra.Command{
	Use:   "match [expression]",
	Short: "Match graph nodes against a filter expression",
	Long: `Match evaluates a filter expression against the stored graph (or --graph)
and prints every matching node.

The expression is YAML or JSON, given inline or with --filter-file:

  graphfilter match --graph people.yaml '{linked: {target: {text: admin}}}'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.Flags().String("graph", "", "YAML graph document to match against instead of the database")
	matchCmd.Flags().StringP("filter-file", "f", "", "read the expression from a file (- for stdin)")
	matchCmd.Flags().Bool("explain", false, "print the optimized plan without matching")
	matchCmd.Flags().Int("limit", 0, "maximum number of matches (0 for all)")
	matchCmd.Flags().Bool("no-color", false, "disable colored output")
}

func runMatch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	flags := cmd.Flags()

	if noColor, _ := flags.GetBool("no-color"); noColor {
		color.NoColor = true
	}

	filterFile, _ := flags.GetString("filter-file")
	f, err := readFilter(cmd.InOrStdin(), args, filterFile)
	if err != nil {
		return err
	}

	input := f.String()
	f.Optimize()

	out := cmd.OutOrStdout()
	if explain, _ := flags.GetBool("explain"); explain {
		printExplain(out, input, f)
		return nil
	}

	g, err := loadGraph(ctx, cmd)
	if err != nil {
		return err
	}

	limit, _ := flags.GetInt("limit")
	printMatches(out, f, g.Select(f, limit))
	return nil
}

// readFilter parses the expression from filterFile or the single positional
// argument.
func readFilter(stdin io.Reader, args []string, filterFile string) (*filter.DataFilter, error) {
	var data []byte
	switch {
	case filterFile == "-":
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read expression: %w", err)
		}
		data = b
	case filterFile != "":
		b, err := os.ReadFile(filterFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read expression: %w", err)
		}
		data = b
	case len(args) == 1:
		data = []byte(args[0])
	default:
		return nil, fmt.Errorf("expression required: pass it as an argument or with --filter-file")
	}
	return expr.Parse(data)
}

func loadGraph(ctx context.Context, cmd *cobra.Command) (*graph.Graph, error) {
	if path, _ := cmd.Flags().GetString("graph"); path != "" {
		return graph.LoadFile(path)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	database, store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer database.Close()
	return store.Load(ctx)
}

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	refColor    = color.New(color.Bold)
	valueColor  = color.New(color.FgGreen)
	dimColor    = color.New(color.Faint)
)

func printExplain(w io.Writer, input string, f *filter.DataFilter) {
	constant := "no"
	if v, ok := f.AsBool(); ok {
		constant = fmt.Sprintf("always %t", v)
	}
	index := "full scan"
	if value, ok := f.Exact(); ok {
		index = fmt.Sprintf("value index %q", value)
	}

	headerColor.Fprintln(w, "plan")
	fmt.Fprintf(w, "  input:    %s\n", input)
	fmt.Fprintf(w, "  plan:     %s\n", f.String())
	fmt.Fprintf(w, "  constant: %s\n", constant)
	fmt.Fprintf(w, "  access:   %s\n", index)
	fmt.Fprintf(w, "  cost:     %d\n", expr.Cost(f))
}

func printMatches(w io.Writer, f *filter.DataFilter, nodes []*graph.Node) {
	noun := "matches"
	if len(nodes) == 1 {
		noun = "match"
	}
	headerColor.Fprintf(w, "%d %s", len(nodes), noun)
	dimColor.Fprintf(w, " for %s\n", f.String())

	for _, n := range nodes {
		refColor.Fprintf(w, "  %s", n.Ref())
		if id, ok := n.ID(); ok {
			dimColor.Fprintf(w, "  %s", id)
		}
		if value, ok := n.Value(); ok {
			valueColor.Fprintf(w, "  %q", value)
		}
		fmt.Fprintln(w)
	}
}
