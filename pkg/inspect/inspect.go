// Package inspect is an interactive terminal browser over a decoded DWARF
// file: the same object model pkg/present renders as text, navigable as a
// tree instead. It performs no decoding of its own.
package inspect

import (
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/zanesterling/mecha-dwarf/pkg/dwarf"
)

// Run opens a full-screen tree browser over file's compile units. It
// blocks until the user quits with 'q' or Ctrl-C.
func Run(file *dwarf.File) error {
	app := tview.NewApplication()

	root := tview.NewTreeNode("DWARF").SetColor(tcell.ColorWhite)
	tree := tview.NewTreeView().SetRoot(root).SetCurrentNode(root)

	detail := tview.NewTextView().SetDynamicColors(true).SetWrap(true)
	detail.SetBorder(true).SetTitle("Detail")

	for _, section := range file.Sections {
		root.AddChild(sectionNode(section, detail))
	}

	tree.SetSelectedFunc(func(node *tview.TreeNode) {
		node.SetExpanded(!node.IsExpanded())
	})

	flex := tview.NewFlex().
		AddItem(tree, 0, 1, true).
		AddItem(detail, 0, 1, false)

	flex.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Rune() == 'q' || event.Key() == tcell.KeyCtrlC {
			app.Stop()
			return nil
		}
		return event
	})

	return app.SetRoot(flex, true).SetFocus(tree).Run()
}

func sectionNode(section dwarf.Section, detail *tview.TextView) *tview.TreeNode {
	node := tview.NewTreeNode(section.Name).SetColor(tcell.ColorYellow)

	switch data := section.Data.(type) {
	case dwarf.InfoSectionData:
		for i, cu := range data.Units {
			label := fmt.Sprintf("compile unit %d", i)
			cuNode := tview.NewTreeNode(label).SetSelectable(true)
			if cu.Root != nil {
				cuNode.AddChild(dieNode(cu.Root, detail))
			}
			node.AddChild(cuNode)
		}
	case dwarf.AbbrevSectionData:
		offsets := make([]uint64, 0, len(data.Tables))
		for offset := range data.Tables {
			offsets = append(offsets, offset)
		}
		sort.Slice(offsets, func(i, j int) bool { return offsets[i] < offsets[j] })
		for _, offset := range offsets {
			label := fmt.Sprintf("abbrev set @%#x: %d declarations", offset, len(data.Tables[offset]))
			node.AddChild(tview.NewTreeNode(label))
		}
	case dwarf.LineSectionData:
		node.AddChild(tview.NewTreeNode("line program header"))
	case dwarf.UnrecognizedSectionData:
		node.AddChild(tview.NewTreeNode(fmt.Sprintf("%d bytes, not decoded", data.Length)))
	}

	return node
}

func dieNode(die *dwarf.DIE, detail *tview.TextView) *tview.TreeNode {
	node := tview.NewTreeNode(die.Tag.String()).SetSelectable(true)
	node.SetReference(die)
	node.SetSelectedFunc(func() {
		detail.Clear()
		fmt.Fprintf(detail, "[yellow]%s[white]\n", die.Tag)
		for _, attr := range die.Attributes {
			fmt.Fprintf(detail, "  %s %s\n", attr.Name, attr.Value)
		}
	})

	for _, attr := range die.Attributes {
		node.AddChild(tview.NewTreeNode(fmt.Sprintf("%s %s", attr.Name, attr.Value)))
	}
	for _, child := range die.Children {
		node.AddChild(dieNode(child, detail))
	}

	return node
}
