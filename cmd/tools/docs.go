package tools

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zanesterling/mecha-dwarf/pkg/dwarf"
	"github.com/zanesterling/mecha-dwarf/pkg/utils"
)

var supportedModules = map[string]func() string{
	"dwarf.tags":  dumpKnownTags,
	"dwarf.forms": dumpKnownForms,
}

func moduleNames() []string {
	names := make([]string, 0, len(supportedModules))
	for name := range supportedModules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var docsCmd = &cobra.Command{
	Use:   "docs module",
	Short: "Show mecha-dwarf reference documentation",
	Long: `Dumps the reference documentation of the given module: the DIE tags or
attribute forms this decoder understands. By default the output goes to
stdout; pass --output to redirect it to a file.

Supported modules:
` + strings.Join(utils.Map(moduleNames(), func(m string) string { return "  " + m }), "\n"),
	Args:      cobra.MatchAll(cobra.OnlyValidArgs, cobra.ExactArgs(1)),
	ValidArgs: moduleNames(),
	Run: func(cmd *cobra.Command, args []string) {
		module := args[0]
		outputFile, _ := cmd.Flags().GetString("output")

		doc := supportedModules[module]()
		if outputFile != "" {
			file, err := os.Create(outputFile)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Error creating file:", err)
				os.Exit(1)
			}
			defer file.Close()
			fmt.Fprintln(file, doc)
		} else {
			fmt.Println(doc)
		}
	},
}

func init() {
	ToolsCmd.AddCommand(docsCmd)
	docsCmd.Flags().StringP("output", "o", "", "Output file. If not specified, the documentation is dumped to stdout.")
}

func dumpKnownTags() string {
	tags := dwarf.KnownTags()
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })

	lines := utils.Map(tags, func(t dwarf.Tag) string {
		return fmt.Sprintf("%s (%s)", t, utils.FormatUintHex(uint64(t), 4))
	})
	return strings.Join(lines, "\n")
}

func dumpKnownForms() string {
	forms := dwarf.KnownForms()
	sort.Slice(forms, func(i, j int) bool { return forms[i] < forms[j] })

	lines := utils.Map(forms, func(f dwarf.AttrForm) string {
		return fmt.Sprintf("%s (%s)", f, utils.FormatUintHex(uint64(f), 2))
	})
	return strings.Join(lines, "\n")
}
