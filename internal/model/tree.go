package model

// Tree dump defaults. Deep windows (browsers, IDEs) can expose tens of
// thousands of nodes; the caps keep dumps bounded.
const (
	DefaultTreeDepth    = 3
	DefaultTreeMaxNodes = 5000
)

// TreeNode is the serializable dump form of an element subtree.
type TreeNode struct {
	Name        string     `yaml:"name,omitempty"         json:"name,omitempty"`
	ControlType string     `yaml:"control_type,omitempty" json:"control_type,omitempty"`
	AutoID      string     `yaml:"auto_id,omitempty"      json:"auto_id,omitempty"`
	ClassName   string     `yaml:"class_name,omitempty"   json:"class_name,omitempty"`
	Rect        Rect       `yaml:"rect"                   json:"rect"`
	Truncated   bool       `yaml:"truncated,omitempty"    json:"truncated,omitempty"` // children elided by depth/node caps
	Children    []TreeNode `yaml:"children,omitempty"     json:"children,omitempty"`
}

// BuildTree converts an element tree into its dump form, honoring a maximum
// depth and a total node budget. maxDepth 0 means DefaultTreeDepth;
// maxNodes 0 means DefaultTreeMaxNodes. Nodes cut off by either cap are
// marked Truncated on their parent.
func BuildTree(root Element, maxDepth, maxNodes int) TreeNode {
	if maxDepth <= 0 {
		maxDepth = DefaultTreeDepth
	}
	if maxNodes <= 0 {
		maxNodes = DefaultTreeMaxNodes
	}
	budget := maxNodes
	return buildTreeNode(root, 0, maxDepth, &budget)
}

func buildTreeNode(el Element, depth, maxDepth int, budget *int) TreeNode {
	*budget--
	node := TreeNode{
		Name:        el.Name,
		ControlType: el.ControlType,
		AutoID:      el.AutoID,
		ClassName:   el.ClassName,
		Rect:        el.Rect,
	}
	if len(el.Children) == 0 {
		return node
	}
	if depth >= maxDepth {
		node.Truncated = true
		return node
	}
	for _, child := range el.Children {
		if *budget <= 0 {
			node.Truncated = true
			break
		}
		node.Children = append(node.Children, buildTreeNode(child, depth+1, maxDepth, budget))
	}
	return node
}

// Count returns the number of nodes in the dump, including the root.
func (n TreeNode) Count() int {
	total := 1
	for _, child := range n.Children {
		total += child.Count()
	}
	return total
}
