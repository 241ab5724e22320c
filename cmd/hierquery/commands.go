package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/hierquery/design"
	"github.com/wippyai/hierquery/errors"
	"github.com/wippyai/hierquery/model"
)

func (c *cli) printer(cmd *cobra.Command) *printer {
	return newPrinter(cmd.OutOrStdout(), c.jsonOut)
}

func (c *cli) topsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tops [design...]",
		Short: "List the top-level modules of designs",
		Long: `Lists the top-level module instances of each design. Without
arguments the designs listed in the config file are used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := c.designPaths(args)
			if err != nil {
				return err
			}

			type result struct {
				Design string              `json:"design"`
				Tops   []design.ScopeEntry `json:"tops"`
			}
			var results []result
			for _, path := range paths {
				err := c.withDesign(cmd.Context(), path, func(reg *design.Registry, id design.SessionID) error {
					tops, err := reg.TopModules(id)
					if err != nil {
						return err
					}
					design.CloseAll(tops)
					results = append(results, result{Design: path, Tops: tops})
					return nil
				})
				if err != nil {
					return err
				}
			}

			p := c.printer(cmd)
			if p.json {
				return p.encode(results)
			}
			for i, r := range results {
				if len(results) > 1 {
					if i > 0 {
						fmt.Fprintln(p.w)
					}
					fmt.Fprintln(p.w, r.Design+":")
				}
				if err := p.scopes(r.Tops); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (c *cli) treeCmd() *cobra.Command {
	var (
		depth int
		vars  bool
	)
	cmd := &cobra.Command{
		Use:   "tree <design> [scope]",
		Short: "Print the scope hierarchy of a design",
		Long: `Prints the scope hierarchy below the top modules, or below the given
scope. Generate scope arrays are shown through their members.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			maxDepth := c.cfg.Browse.MaxDepth
			if cmd.Flags().Changed("depth") {
				maxDepth = depth
			}
			if maxDepth < 0 {
				return errors.InvalidInput(errors.PhaseConfig, "depth must not be negative")
			}
			withVars := c.cfg.Browse.ShowVariables
			if cmd.Flags().Changed("vars") {
				withVars = vars
			}

			return c.withDesign(cmd.Context(), args[0], func(reg *design.Registry, id design.SessionID) error {
				var roots []design.ScopeEntry
				if len(args) == 2 {
					e, err := reg.Lookup(id, args[1])
					if err != nil {
						return err
					}
					roots = []design.ScopeEntry{e}
				} else {
					tops, err := reg.TopModules(id)
					if err != nil {
						return err
					}
					roots = tops
				}

				b := treeBuilder{reg: reg, maxDepth: maxDepth, vars: withVars}
				nodes, err := b.build(roots, 1)
				if err != nil {
					return err
				}
				return c.printer(cmd).tree(nodes)
			})
		},
	}
	cmd.Flags().IntVarP(&depth, "depth", "d", 0, "Levels to print, 0 for all (default from config)")
	cmd.Flags().BoolVar(&vars, "vars", false, "Include variables (default from config)")
	return cmd
}

type treeBuilder struct {
	reg      *design.Registry
	maxDepth int
	vars     bool
}

// build expands entries into nodes and closes their handles.
func (b *treeBuilder) build(entries []design.ScopeEntry, depth int) ([]*treeNode, error) {
	defer design.CloseAll(entries)

	nodes := make([]*treeNode, 0, len(entries))
	for _, e := range entries {
		n := &treeNode{ScopeEntry: e}
		if b.vars {
			vars, err := b.reg.Variables(e.Handle)
			if err != nil {
				return nil, err
			}
			n.Variables = vars
		}
		if b.maxDepth == 0 || depth < b.maxDepth {
			kids, err := b.reg.SubScopes(e.Handle)
			if err != nil {
				return nil, err
			}
			if n.Children, err = b.build(kids, depth+1); err != nil {
				return nil, err
			}
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// scopeCmd builds a command taking a design and a scope name.
func (c *cli) scopeCmd(use, short string, fn func(*printer, *design.Registry, *design.Handle) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <design> <scope>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withDesign(cmd.Context(), args[0], func(reg *design.Registry, id design.SessionID) error {
				e, err := reg.Lookup(id, args[1])
				if err != nil {
					return err
				}
				defer e.Handle.Close()
				return fn(c.printer(cmd), reg, e.Handle)
			})
		},
	}
}

func (c *cli) varsCmd() *cobra.Command {
	return c.scopeCmd("vars", "List the variables declared in a scope",
		func(p *printer, reg *design.Registry, h *design.Handle) error {
			vars, err := reg.Variables(h)
			if err != nil {
				return err
			}
			return p.variables(vars)
		})
}

func (c *cli) defCmd() *cobra.Command {
	return c.scopeCmd("def", "Show the definition a scope instantiates",
		func(p *printer, reg *design.Registry, h *design.Handle) error {
			d, err := reg.Definition(h)
			if err != nil {
				return err
			}
			return p.definition(d)
		})
}

func (c *cli) defsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defs <design>",
		Short: "List module, interface and program definitions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withDesign(cmd.Context(), args[0], func(reg *design.Registry, id design.SessionID) error {
				defs, err := reg.ModuleDefs(id)
				if err != nil {
					return err
				}
				design.CloseAll(defs)
				return c.printer(cmd).scopes(defs)
			})
		},
	}
}

func (c *cli) instancesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "instances <design> <definition>",
		Short: "List every instance of a definition",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withDesign(cmd.Context(), args[0], func(reg *design.Registry, id design.SessionID) error {
				insts, err := reg.Instances(id, args[1])
				if err != nil {
					return err
				}
				design.CloseAll(insts)
				return c.printer(cmd).scopes(insts)
			})
		},
	}
}

func (c *cli) convertCmd() *cobra.Command {
	var elaborate bool
	cmd := &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert a design file between YAML and SQLite",
		Long: `Reads every design in <in> and writes them to <out>. The formats are
chosen by extension: .yaml/.yml or .db/.sqlite/.sqlite3.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]

			s := model.NewStore()
			defer s.Close()

			designs, err := s.Restore(in)
			if err != nil {
				return errors.Load(in, err)
			}
			if len(designs) == 0 {
				return errors.Load(in, nil)
			}
			if elaborate {
				if err := s.Elaborate(designs); err != nil {
					return err
				}
			}
			if err := s.Save(out, designs); err != nil {
				return err
			}

			c.log.Info("converted designs",
				zap.String("in", in),
				zap.String("out", out),
				zap.Int("count", len(designs)))
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d design(s) to %s\n", len(designs), out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&elaborate, "elaborate", false, "Elaborate designs before writing")
	return cmd
}
