package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zanesterling/mecha-dwarf/pkg/driver"
	"github.com/zanesterling/mecha-dwarf/pkg/dwarf"
	"github.com/zanesterling/mecha-dwarf/pkg/inspect"
	"github.com/zanesterling/mecha-dwarf/pkg/macho"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILENAME",
	Short: "Browse a Mach-O file's DWARF debug info interactively",
	Args:  cobra.ExactArgs(1),
	Run:   runInspect,
}

func init() {
	RootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) {
	path := args[0]

	mapped, err := driver.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer mapped.Close()

	machoFile, err := macho.ParseFile(mapped.Bytes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing Mach-O file: %v\n", err)
		os.Exit(1)
	}

	seg, err := machoFile.SegmentNamed(dwarfSegmentName)
	if err != nil {
		if errors.Is(err, macho.ErrSegmentNotFound) {
			fmt.Fprintln(os.Stderr, "Error: this file has no __DWARF segment to inspect")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	dwarfFile, err := dwarf.ParseDWARF(seg, mapped.Bytes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing DWARF data: %v\n", err)
		os.Exit(1)
	}

	if err := inspect.Run(dwarfFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
