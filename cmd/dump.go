package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zanesterling/mecha-dwarf/pkg/driver"
	"github.com/zanesterling/mecha-dwarf/pkg/dwarf"
	"github.com/zanesterling/mecha-dwarf/pkg/logging"
	"github.com/zanesterling/mecha-dwarf/pkg/macho"
	"github.com/zanesterling/mecha-dwarf/pkg/present"
)

const dwarfSegmentName = "__DWARF"

var (
	dumpVerbose bool
	dumpWatch   bool
	dumpColor   string
	dumpFormat  string
)

var dumpCmd = &cobra.Command{
	Use:   "dump FILENAME",
	Short: "Decode a Mach-O file and print its DWARF debug info",
	Args:  cobra.ExactArgs(1),
	Run:   runDump,
}

func init() {
	RootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().BoolVarP(&dumpVerbose, "verbose", "v", false, "show the Mach-O header diagram and unimplemented form tags")
	dumpCmd.Flags().BoolVar(&dumpWatch, "watch", false, "re-run the dump whenever FILENAME changes on disk")
	dumpCmd.Flags().StringVar(&dumpColor, "color", "auto", "colorize diagnostics: auto, always, never")
	dumpCmd.Flags().StringVar(&dumpFormat, "format", "text", "output format: text, yaml")
}

func runDump(cmd *cobra.Command, args []string) {
	path := args[0]
	applyColorMode(dumpColor)
	logger := logging.New(dumpVerbose)

	decodeAndPresent := func(data []byte) error {
		machoFile, err := macho.ParseFile(data)
		if err != nil {
			return fmt.Errorf("parsing Mach-O file: %w", err)
		}

		var dwarfFile *dwarf.File
		seg, err := machoFile.SegmentNamed(dwarfSegmentName)
		switch {
		case err == nil:
			dwarfFile, err = dwarf.ParseDWARF(seg, data)
			if err != nil {
				return fmt.Errorf("parsing DWARF data: %w", err)
			}
		case errors.Is(err, macho.ErrSegmentNotFound):
			logger.Warn("no __DWARF segment in this file")
		default:
			return err
		}

		if dumpFormat == "yaml" {
			return dumpYAML(os.Stdout, machoFile, dwarfFile)
		}
		return present.DumpFile(os.Stdout, machoFile, dwarfFile, dumpVerbose)
	}

	mapped, err := driver.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer mapped.Close()

	if err := decodeAndPresent(mapped.Bytes); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !dumpWatch {
		return
	}

	stop := make(chan struct{})
	err = driver.Watch(path, stop, decodeAndPresent, func(err error) {
		logger.Error("watch callback failed", "error", err)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting watch: %v\n", err)
		os.Exit(1)
	}

	logger.Info("watching for changes", "path", path)
	select {}
}

// dumpYAML is a machine-readable alternative to the text dump, for
// callers that want to parse the result rather than read it.
func dumpYAML(w *os.File, machoFile *macho.File, dwarfFile *dwarf.File) error {
	out := struct {
		Macho *macho.File `yaml:"macho"`
		Dwarf *dwarf.File `yaml:"dwarf,omitempty"`
	}{Macho: machoFile, Dwarf: dwarfFile}

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(out)
}
