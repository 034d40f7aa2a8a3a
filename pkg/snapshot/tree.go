package snapshot

import (
	"fmt"
	"strings"
)

// DirectoryNode is the tree-shaped index of the snapshot, built alongside
// traversal and discarded after rendering. Children keep the walk order:
// directories first, then files, each sorted by name.
type DirectoryNode struct {
	Name  string
	Dirs  []*DirectoryNode
	Files []FileRecord
}

// Render returns the box-drawing representation of the tree, rooted at the
// node's name.
func (n *DirectoryNode) Render() string {
	var b strings.Builder
	b.WriteString(n.Name + "/\n")
	n.renderChildren(&b, "")
	return b.String()
}

func (n *DirectoryNode) renderChildren(b *strings.Builder, prefix string) {
	total := len(n.Dirs) + len(n.Files)
	idx := 0

	for _, dir := range n.Dirs {
		connector, extension := branchMarkers(idx == total-1)
		fmt.Fprintf(b, "%s%s%s/\n", prefix, connector, dir.Name)
		dir.renderChildren(b, prefix+extension)
		idx++
	}
	for _, file := range n.Files {
		connector, _ := branchMarkers(idx == total-1)
		fmt.Fprintf(b, "%s%s%s\n", prefix, connector, file.Name)
		idx++
	}
}

func branchMarkers(last bool) (connector, extension string) {
	if last {
		return "└── ", "    "
	}
	return "├── ", "│   "
}
