package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lustrecore/internal/builtins"
	"lustrecore/internal/depgraph"
	"lustrecore/internal/nodegen"
	"lustrecore/internal/term"
)

var (
	GraphNode     string
	GraphProperty string
)

var graphCommand = &cobra.Command{
	Use:   "graph",
	Short: "compile a fixture and print the dependency graph's cone of influence for a property, as DOT",
	Long:  ``,
	Run: func(*cobra.Command, []string) {
		if err := graphExec(); err != nil {
			fmt.Printf("service err: %v", err)
		} else {
			fmt.Printf("service quit")
		}
	},
}

func init() {
	graphCommand.Flags().StringVar(&ProgramFile, "file", "", "node-graph fixture (JSON)")
	graphCommand.Flags().StringVar(&GraphNode, "node", "", "node name to graph")
	graphCommand.Flags().StringVar(&GraphProperty, "property", "", "named property to highlight the cone of influence for")
}

func graphExec() error {
	data, err := os.ReadFile(ProgramFile)
	if err != nil {
		return err
	}
	program, err := nodegen.LoadProgram(data)
	if err != nil {
		return err
	}

	store := term.NewStore()
	builtins.Init(store)

	gen := nodegen.NewGenerator(store)
	if err := gen.CompileProgram(program); err != nil {
		return err
	}

	rec, ok := gen.State.LookupNode(GraphNode)
	if !ok {
		return fmt.Errorf("no compiled node named %q", GraphNode)
	}

	g := depgraph.BuildGraph(rec.DefiningExpr, nil, nil)

	highlight := map[string]bool{}
	for _, p := range rec.Properties {
		if p.Name != GraphProperty {
			continue
		}
		for v := range depgraph.ForwardReachable(g, []string{p.StateVar.Identity()}, nil) {
			highlight[v] = true
		}
	}

	fmt.Println(depgraph.RenderDOT(g, highlight))
	return nil
}
