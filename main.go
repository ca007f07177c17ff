package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/CyberHD1811/btree/btree"
	shell "github.com/CyberHD1811/btree/cli"
	"github.com/carlmjohnson/versioninfo"
	"github.com/fatih/color"
	"github.com/go-faker/faker/v4"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	return newApp().Run(args)
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "btree",
		Usage:   "interactive shell over an in-memory B-tree of string keys",
		Version: versioninfo.Short(),
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "degree",
				Aliases: []string{"d"},
				Usage:   "minimum degree of the tree (at least 2)",
				Value:   3,
				EnvVars: []string{"BTREE_DEGREE"},
			},
			&cli.BoolFlag{
				Name:    "seed",
				Usage:   "seed the tree with words created with go-faker",
				EnvVars: []string{"BTREE_SEED"},
			},
			&cli.IntFlag{
				Name:    "records",
				Usage:   "amount of words to seed the tree with upon startup",
				Value:   20,
				EnvVars: []string{"BTREE_RECORDS"},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "log every mutating command",
				EnvVars: []string{"BTREE_VERBOSE"},
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable colored output (fatih/color also honours NO_COLOR)",
			},
		},
		Action: runShell,
	}
}

func runShell(cctx *cli.Context) error {
	if cctx.Bool("no-color") {
		color.NoColor = true
	}
	logger := newLogger(cctx.App.ErrWriter, cctx.Bool("verbose"))

	tree, err := btree.New[string](cctx.Int("degree"))
	if err != nil {
		return err
	}

	if cctx.Bool("seed") {
		records := cctx.Int("records")
		if records < 0 {
			return fmt.Errorf("records must not be negative, got %d", records)
		}
		seedTree(tree, records)
	}
	logger.Info("starting shell", "degree", tree.Degree(), "keys", tree.Len(), "height", tree.Height())

	scanner := bufio.NewScanner(cctx.App.Reader)
	demo := shell.NewCli(scanner, cctx.App.Writer, tree, logger)
	demo.Start()
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// seedTree inserts n generated words; duplicates collapse, so the tree may end up with fewer keys.
func seedTree(t *btree.Tree[string], n int) {
	for i := 0; i < n; i++ {
		t.Insert(faker.Word())
	}
}
