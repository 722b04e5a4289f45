package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lustrecore/internal/builtins"
	"lustrecore/internal/nodegen"
	"lustrecore/internal/printer"
	"lustrecore/internal/term"
)

var ProgramFile string

var compileCommand = &cobra.Command{
	Use:   "compile",
	Short: "compile a node-graph fixture and print its node records",
	Long:  ``,
	Run: func(*cobra.Command, []string) {
		if err := compileExec(); err != nil {
			fmt.Printf("service err: %v", err)
		} else {
			fmt.Printf("service quit")
		}
	},
}

func init() {
	compileCommand.Flags().StringVar(&ProgramFile, "file", "", "node-graph fixture (JSON)")
}

func compileExec() error {
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

	for _, rec := range gen.State.Nodes {
		fmt.Println(printer.NodeRecord(rec))
	}
	return nil
}
