package commands

import (
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mattn/go-shellwords"
)

// Setup defines a command's flags on fs and returns the function to run once fs is parsed.
type Setup func(fs *flag.FlagSet) (run func() error)

// Command is a subcommand with its own flags. Setup is called with a fresh FlagSet on every
// execution, so flag state never leaks from one console line into the next.
type Command struct {
	Name  string
	Usage string
	Setup Setup
}

// Registry holds subcommands by name. Add commands with Register; run with Execute.
type Registry struct {
	cmds map[string]*Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command)}
}

// Register adds a subcommand with flags defined by setup.
func (r *Registry) Register(name, usage string, setup Setup) {
	r.cmds[name] = &Command{Name: name, Usage: usage, Setup: setup}
}

// RegisterFunc adds a subcommand that takes no flags.
func (r *Registry) RegisterFunc(name, usage string, run func() error) {
	r.Register(name, usage, func(*flag.FlagSet) func() error { return run })
}

// Parse splits a console line into arguments with shell quoting rules. A leading "/" is
// accepted and ignored. ok is false for blank lines and unbalanced quotes.
func Parse(line string) (args []string, ok bool) {
	line = strings.TrimPrefix(strings.TrimSpace(line), "/")
	args, err := shellwords.Parse(line)
	if err != nil {
		return nil, false
	}
	return args, len(args) > 0
}

// Execute runs the subcommand in args[0] with args[1:] as flag/positional arguments.
// Returns an error for unknown command, parse error, or from the command itself.
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand")
	}
	name := args[0]
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("unknown command: %s", name)
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	run := cmd.Setup(fs)
	if err := fs.Parse(args[1:]); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return run()
}

// Help returns one "name - usage" line per command, sorted by name.
func (r *Registry) Help() []string {
	names := make([]string, 0, len(r.cmds))
	for n := range r.cmds {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = n + " - " + r.cmds[n].Usage
	}
	return out
}
