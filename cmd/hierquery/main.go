package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/hierquery/config"
	"github.com/wippyai/hierquery/design"
	"github.com/wippyai/hierquery/errors"
	"github.com/wippyai/hierquery/model"
)

// cli holds state shared by all subcommands.
type cli struct {
	configPath string
	jsonOut    bool

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "hierquery",
		Short: "Query the hierarchy of hardware designs",
		Long: `hierquery loads serialized hardware designs (YAML or SQLite) and
reports their hierarchy: top modules, sub-scopes, variables and the
definitions instances are bound to.

Scopes are addressed by their dotted hierarchical name, for example
top.u_core.gen_lanes[0].`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.log != nil {
				_ = c.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Path to a YAML config file")
	root.PersistentFlags().BoolVar(&c.jsonOut, "json", false, "Print results as JSON")

	root.AddCommand(
		c.topsCmd(),
		c.treeCmd(),
		c.varsCmd(),
		c.defCmd(),
		c.defsCmd(),
		c.instancesCmd(),
		c.convertCmd(),
		c.browseCmd(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log, err := cfg.Log.NewLogger()
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.log = log
	model.SetLogger(log.Named("model"))
	design.SetLogger(log.Named("design"))
	return nil
}

// withDesign loads path into a fresh registry for the duration of fn.
func (c *cli) withDesign(ctx context.Context, path string, fn func(*design.Registry, design.SessionID) error) error {
	reg := design.NewRegistry(design.WithLogger(c.log.Named("design")))
	defer reg.Close()

	id, err := reg.Load(ctx, path)
	if err != nil {
		return err
	}
	return fn(reg, id)
}

// designPaths returns args, or the configured designs when args is empty.
func (c *cli) designPaths(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if len(c.cfg.Designs) == 0 {
		return nil, errors.InvalidInput(errors.PhaseConfig, "no design given and none configured")
	}
	return c.cfg.Designs, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
