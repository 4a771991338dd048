// million builds a scene with a million root objects and times the outliner
// operations an editor performs every frame: layout, first-visible lookup,
// hit testing, and walking one viewport of rows. A stress test for the
// hierarchy's virtualized layout.
package main

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/phanxgames/outliner"
)

var (
	roots      int
	children   int
	queries    int
	viewport   float64
	selectN    int
	collapsed  bool
	configPath string
	jsonOut    bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "million",
	Short: "Time outliner layout and lookups on a very large scene",
	Long: `million creates --roots root objects (each with --children children),
lays the hierarchy out, and reports how long recalculation, first-visible
lookup, row hit testing, viewport walks and a multi-selection move take.

Example:
  go run ./demos/million
  go run ./demos/million --roots 200000 --children 3 --collapsed
  go run ./demos/million --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.Flags().IntVar(&roots, "roots", 1_000_000, "Number of root objects")
	rootCmd.Flags().IntVar(&children, "children", 0, "Children per root object")
	rootCmd.Flags().IntVar(&queries, "queries", 100_000, "Random lookups per measurement")
	rootCmd.Flags().Float64Var(&viewport, "viewport", 720, "Viewport height in pixels")
	rootCmd.Flags().IntVar(&selectN, "select", 100, "Nodes selected for the move measurement")
	rootCmd.Flags().BoolVar(&collapsed, "collapsed", false, "Collapse every object before layout")
	rootCmd.Flags().StringVar(&configPath, "config", "", "YAML config file (defaults if empty)")
	rootCmd.Flags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log hierarchy debug output")
}

// report is the measurement summary.
type report struct {
	Nodes             int           `json:"nodes"`
	Rows              int           `json:"rows"`
	TotalHeight       float64       `json:"totalHeight"`
	Build             time.Duration `json:"build"`
	Recalculate       time.Duration `json:"recalculate"`
	FindFirstVisible  time.Duration `json:"findFirstVisible"`
	RowAt             time.Duration `json:"rowAt"`
	VisibleRows       time.Duration `json:"visibleRows"`
	VisibleRowsWalked int           `json:"visibleRowsWalked"`
	Move              time.Duration `json:"move"`
	MoveRecalculate   time.Duration `json:"moveRecalculate"`
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if roots <= 0 {
		return fmt.Errorf("--roots must be positive, got %d", roots)
	}
	if queries <= 0 {
		return fmt.Errorf("--queries must be positive, got %d", queries)
	}
	cfg := outliner.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = outliner.LoadConfig(configPath); err != nil {
			return err
		}
	}

	reg := outliner.NewRegistry()
	h := outliner.NewHierarchy(reg, cfg)
	if verbose {
		h.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var r report
	start := time.Now()
	all := make([]*outliner.Node, 0, roots)
	for i := range roots {
		root := reg.Create(fmt.Sprintf("GameObject %d", i))
		for j := range children {
			reg.CreateChild(fmt.Sprintf("Child %d", j), root)
		}
		all = append(all, root)
	}
	r.Build = time.Since(start)
	r.Nodes = roots * (children + 1)

	if collapsed {
		h.CollapseAll()
	}
	r.Recalculate = timed(h.Recalculate)
	r.Rows = h.RowCount()
	r.TotalHeight = h.TotalHeight()

	rng := rand.New(rand.NewPCG(1, 2))
	ys := make([]float64, queries)
	for i := range ys {
		ys[i] = rng.Float64() * r.TotalHeight
	}
	r.FindFirstVisible = perOp(queries, func() {
		for _, y := range ys {
			h.FindFirstVisible(y)
		}
	})
	r.RowAt = perOp(queries, func() {
		for _, y := range ys {
			h.RowAt(y)
		}
	})
	r.VisibleRows = timed(func() {
		h.VisibleRows(r.TotalHeight/2, viewport, func(*outliner.Node, *outliner.NodeState) bool {
			r.VisibleRowsWalked++
			return true
		})
	})

	n := min(selectN, len(all))
	for _, node := range all[:n] {
		h.ToggleSelection(node)
	}
	target := all[len(all)-1]
	r.Move = timed(func() { h.PlaceBelow(target) })
	r.MoveRecalculate = timed(h.Recalculate)
	if err := h.CheckInvariants(); err != nil {
		return fmt.Errorf("hierarchy invalid after move: %w", err)
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	printReport(r)
	return nil
}

func timed(fn func()) time.Duration {
	start := time.Now()
	fn()
	return time.Since(start)
}

// perOp runs fn, which performs n operations, and returns the mean cost.
func perOp(n int, fn func()) time.Duration {
	return timed(fn) / time.Duration(n)
}

func printReport(r report) {
	fmt.Printf("nodes              %d\n", r.Nodes)
	fmt.Printf("rows               %d (%.0f px)\n", r.Rows, r.TotalHeight)
	fmt.Printf("build              %v\n", r.Build)
	fmt.Printf("recalculate        %v\n", r.Recalculate)
	fmt.Printf("find first visible %v/op\n", r.FindFirstVisible)
	fmt.Printf("row at             %v/op\n", r.RowAt)
	fmt.Printf("visible rows       %v (%d rows)\n", r.VisibleRows, r.VisibleRowsWalked)
	fmt.Printf("move %-13d %v\n", min(selectN, roots), r.Move)
	fmt.Printf("recalculate (move) %v\n", r.MoveRecalculate)
}
