package doctree

// Kind discriminates the node variants of a parsed statement tree.
type Kind int

const (
	// Text is a literal run of document text.
	Text Kind = iota
	// Group is a delimiting scope (a {...} group in LaTeX, a paragraph or
	// emphasis span in Markdown). Adjacent groups must not fuse their words.
	Group
	// MathEnv is a scope whose entire subtree is mathematical content.
	MathEnv
	// Generic is any other markup construct (a command, an environment, a
	// code block). Its name is not itself document text.
	Generic
)

// Node is one node of a parsed problem-statement tree. The tree is a finite,
// ordered forest rooted at a single document node; child order is document
// order.
type Node struct {
	Kind     Kind
	Literal  string  // Text payload (Text nodes only)
	Name     string  // Construct name (Generic nodes, e.g. "includegraphics")
	Children []*Node // Ordered child nodes
}

// NewText returns a leaf text node.
func NewText(s string) *Node {
	return &Node{Kind: Text, Literal: s}
}

// NewGroup returns a group node over the given children.
func NewGroup(children ...*Node) *Node {
	return &Node{Kind: Group, Children: children}
}

// NewMath returns a math-environment node over the given children.
func NewMath(children ...*Node) *Node {
	return &Node{Kind: MathEnv, Children: children}
}

// NewGeneric returns a named generic node over the given children.
func NewGeneric(name string, children ...*Node) *Node {
	return &Node{Kind: Generic, Name: name, Children: children}
}

// Append adds children to the node and returns it.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}
