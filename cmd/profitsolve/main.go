// Command profitsolve reads one factory-placement task from standard
// input and writes the best solution it can find within the task's
// time budget to standard output, as JSON.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dshills/profitsolve/internal/board"
	"github.com/dshills/profitsolve/internal/debugsvg"
	"github.com/dshills/profitsolve/internal/solve"
	"github.com/dshills/profitsolve/internal/solveconfig"
	"github.com/dshills/profitsolve/internal/solvelog"
	"github.com/dshills/profitsolve/internal/task"
)

const version = "1.0.0"

// CLI flags
var (
	configPath  = flag.String("config", "", "Path to YAML solver config file (optional)")
	debugSVGOut = flag.String("debug-svg", "", "Path to write an SVG render of the winning scene (optional)")
	verbose     = flag.Bool("verbose", false, "Enable verbose diagnostics on stderr")
	versionF    = flag.Bool("version", false, "Print version and exit")
	help        = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *versionF {
		fmt.Printf("profitsolve version %s\n", version)
		os.Exit(0)
	}

	if *help {
		printHelp()
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run implements the CLI contract of §6: one task on stdin, one
// solution on stdout, diagnostics on stderr.
func run() error {
	logger := solvelog.Default()

	cfg := solveconfig.Default()
	if *configPath != "" {
		if *verbose {
			logger.Printf("profitsolve: loading solver config from %s", *configPath)
		}
		loaded, err := solveconfig.LoadConfig(*configPath)
		if err != nil {
			return fmt.Errorf("loading solver config: %w", err)
		}
		cfg = loaded
	}
	if *verbose {
		logger.Printf("profitsolve: solver config hash %x", cfg.Hash())
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("reading task from stdin: %w", err)
	}

	scene, err := task.ParseTask(data)
	if err != nil {
		return fmt.Errorf("parsing task: %w", err)
	}
	if *verbose {
		logger.Printf("profitsolve: parsed a %dx%d task, turns=%d time=%.1fs", scene.Grid.Width, scene.Grid.Height, scene.Turns, scene.Time)
	}

	start := time.Now()
	result, err := solve.Solve(scene, cfg, logger)
	if err != nil {
		if *verbose {
			logger.Printf("profitsolve: %v, emitting an empty solution", err)
		}
		return emitSolution(nil)
	}
	if *verbose {
		logger.Printf("profitsolve: solved in %v, rounds=%d points=%d at_turn=%d", time.Since(start), result.Run.Rounds, result.Run.Points, result.Run.AtTurn)
	}

	if svgPath := resolveDebugSVGPath(cfg); svgPath != "" {
		if err := writeDebugSVG(result, cfg, svgPath); err != nil {
			return err
		}
	}

	return emitSolution(result.Scene)
}

// defaultDebugSVGPath is where the debug SVG lands when the solver
// config's debugSvgExport toggle is set but -debug-svg gives no path.
const defaultDebugSVGPath = "profitsolve-debug.svg"

// resolveDebugSVGPath honors both debug-SVG knobs: an explicit -debug-svg
// path always wins; otherwise cfg.DebugSVGExport opts into the default
// path, and an empty string means no SVG is written.
func resolveDebugSVGPath(cfg solveconfig.Config) string {
	if *debugSVGOut != "" {
		return *debugSVGOut
	}
	if cfg.DebugSVGExport {
		return defaultDebugSVGPath
	}
	return ""
}

func emitSolution(scene *board.Scene) error {
	// scene may be nil (NoSolution): EncodeSolution handles a scene with
	// no buildings the same way, but an absent scene still needs a
	// well-formed empty solution document.
	if scene == nil {
		_, err := os.Stdout.Write([]byte("[]\n"))
		return err
	}
	data, err := task.EncodeSolution(scene)
	if err != nil {
		return fmt.Errorf("encoding solution: %w", err)
	}
	_, err = os.Stdout.Write(append(data, '\n'))
	return err
}

func writeDebugSVG(result solve.Result, cfg solveconfig.Config, path string) error {
	opts := debugsvg.DefaultOptions()
	opts.Title = fmt.Sprintf("profitsolve (points=%d, config=%x)", result.Run.Points, cfg.Hash()[:4])
	if err := debugsvg.SaveToFile(result.Scene, path, opts); err != nil {
		return fmt.Errorf("writing debug SVG: %w", err)
	}
	if *verbose {
		solvelog.Default().Printf("profitsolve: wrote debug SVG to %s", path)
	}
	return nil
}

func printHelp() {
	fmt.Printf("profitsolve version %s\n\n", version)
	fmt.Println("Reads one factory-placement task (JSON) from standard input and writes")
	fmt.Println("the best solution found within its time budget to standard output.")
	fmt.Println("\nUsage:")
	fmt.Println("  profitsolve [options] < task.json > solution.json")
	fmt.Println("\nOptional Flags:")
	fmt.Println("  -config string")
	fmt.Println("        Path to YAML solver config file (optional)")
	fmt.Println("  -debug-svg string")
	fmt.Println("        Path to write an SVG render of the winning scene (optional;")
	fmt.Println("        if unset, the config file's debugSvgExport toggle still")
	fmt.Println("        writes one to ./profitsolve-debug.svg)")
	fmt.Println("  -verbose")
	fmt.Println("        Enable verbose diagnostics on stderr")
	fmt.Println("  -version")
	fmt.Println("        Print version and exit")
	fmt.Println("  -help")
	fmt.Println("        Show this help message")
	fmt.Println("\nExamples:")
	fmt.Println("  profitsolve < task.json > solution.json")
	fmt.Println("  profitsolve -config tuning.yaml -verbose < task.json > solution.json")
	fmt.Println("  profitsolve -debug-svg out.svg < task.json > solution.json")
}
