package tools

import (
	"github.com/spf13/cobra"
)

// ToolsCmd groups miscellaneous reference commands that don't decode a
// file.
var ToolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "mecha-dwarf miscellaneous tools",
}
