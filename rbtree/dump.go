package rbtree

import "fmt"
import "io"

import "github.com/bnclabs/golog"

// Dotdump convert the whole tree into a dot script that can be
// visualized using graphviz. Acquires the tree lock.
func (t *Tree) Dotdump(buffer io.Writer) {
	fmt.Fprintf(buffer, "digraph rbtree {\n  node[shape=record];\n")

	whatcolour := func(nd *rbnode) string {
		if isred(nd) {
			return "red"
		}
		return "black"
	}

	t.mu.Lock()
	stack := make([]*rbnode, 0, 64)
	if root := t.getroot(); root != nil {
		stack = append(stack, root)
	}
	for len(stack) > 0 {
		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		id := fmt.Sprintf("nd%p", nd)
		fmt.Fprintf(buffer, "  %v [label=%q];\n", id, nd.repr(t.objsize))
		for _, child := range []*rbnode{nd.left, nd.right} {
			if child == nil {
				continue
			}
			fmt.Fprintf(
				buffer, "  %v -> nd%p [color=%v];\n", id, child, whatcolour(child))
			stack = append(stack, child)
		}
	}
	t.mu.Unlock()

	fmt.Fprintf(buffer, "}\n")
}

// LogInorder log every entry in ascending order, with its colour, via
// the logging collaborator. Same locking discipline as Enumerate.
func (t *Tree) LogInorder() {
	if t.getroot() == nil {
		log.Infof("%v in-order: empty tree\n", t.logprefix)
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	stack := make([]*rbnode, 0, 64)
	nd := t.getroot()
	for nd != nil || len(stack) > 0 {
		for nd != nil {
			stack = append(stack, nd)
			nd = nd.left
		}
		nd = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		log.Infof("%v node %v\n", t.logprefix, nd.repr(t.objsize))
		nd = nd.right
	}
}
