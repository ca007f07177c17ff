package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/CyberHD1811/btree/btree"
	"github.com/fatih/color"
)

type Cli struct {
	scanner    *bufio.Scanner
	out        io.Writer
	tree       *btree.Tree[string]
	visualizer *btree.Visualizer[string]
	logger     *slog.Logger

	prompt, ok, fail *color.Color
}

func NewCli(s *bufio.Scanner, out io.Writer, t *btree.Tree[string], logger *slog.Logger) *Cli {
	v := &btree.Visualizer[string]{
		Tree: t,
	}
	return &Cli{
		scanner:    s,
		out:        out,
		tree:       t,
		visualizer: v,
		logger:     logger,
		prompt:     color.New(color.FgCyan, color.Bold),
		ok:         color.New(color.FgGreen),
		fail:       color.New(color.FgRed),
	}
}

// Start reads commands until EXIT or the end of input.
func (c *Cli) Start() {
	c.printHelp()
	c.printPrompt()
	for c.scanner.Scan() {
		if !c.processInput(c.scanner.Text()) {
			return
		}
		c.printPrompt()
	}
	if err := c.scanner.Err(); err != nil {
		c.logger.Error("reading input", "err", err)
	}
}

func (c *Cli) printHelp() {
	fmt.Fprint(c.out, `
B-Tree CLI

Available Commands:
  ADD <key>...    Insert one or more keys into the B-Tree
  DEL <key>...    Remove one or more keys from the B-Tree
  HAS <key>       Report whether key is in the B-Tree
  SHOW            Print the B-Tree
  STATS           Print degree, key count and height
  CHECK           Verify the B-Tree invariants
  HELP            Show this message
  EXIT            Terminate this session

`)
}

func (c *Cli) printPrompt() {
	c.prompt.Fprint(c.out, "> ")
}

// processInput runs a single command line and returns false when the session should end.
func (c *Cli) processInput(line string) bool {
	fields := strings.Fields(line)
	if len(fields) < 1 {
		return true
	}
	command := strings.ToLower(fields[0])
	switch command {
	default:
		c.fail.Fprintf(c.out, "Unknown command \"%s\"\n", command)
	case "add":
		c.processAddCommand(fields[1:])
	case "del":
		c.processDeleteCommand(fields[1:])
	case "has":
		c.processHasCommand(fields[1:])
	case "show":
		fmt.Fprintln(c.out, c.visualizer.Visualize())
	case "stats":
		c.processStatsCommand()
	case "check":
		c.processCheckCommand()
	case "help":
		c.printHelp()
	case "exit":
		return false
	}
	return true
}

func (c *Cli) processAddCommand(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.out, "Usage: ADD <key>...")
		return
	}
	before := c.tree.Len()
	for _, key := range args {
		c.tree.Insert(key)
	}
	added := c.tree.Len() - before
	c.logger.Debug("add", "keys", len(args), "added", added, "height", c.tree.Height())

	c.ok.Fprintf(c.out, "Added %d of %d keys.\n", added, len(args))
	fmt.Fprintln(c.out, c.visualizer.Visualize())
}

func (c *Cli) processDeleteCommand(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.out, "Usage: DEL <key>...")
		return
	}
	removed := 0
	for _, key := range args {
		if !c.tree.Remove(key) {
			c.fail.Fprintf(c.out, "Key %q not found.\n", key)
			continue
		}
		removed++
	}
	c.logger.Debug("del", "keys", len(args), "removed", removed, "height", c.tree.Height())

	if removed == 0 {
		return
	}
	c.ok.Fprintf(c.out, "Removed %d of %d keys.\n", removed, len(args))
	fmt.Fprintln(c.out, c.visualizer.Visualize())
}

func (c *Cli) processHasCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: HAS <key>")
		return
	}
	if c.tree.Search(args[0]) {
		c.ok.Fprintln(c.out, "true")
		return
	}
	c.fail.Fprintln(c.out, "false")
}

func (c *Cli) processStatsCommand() {
	fmt.Fprintf(c.out, "degree: %d\nkeys:   %d\nheight: %d\n", c.tree.Degree(), c.tree.Len(), c.tree.Height())
}

func (c *Cli) processCheckCommand() {
	if err := c.tree.Verify(); err != nil {
		c.logger.Error("invariant violated", "err", err)
		c.fail.Fprintln(c.out, err)
		return
	}
	c.ok.Fprintln(c.out, "OK")
}
