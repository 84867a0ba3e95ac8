package rbtree

// Structural half of the tree: rotations, the transplant primitive
// and the recolouring fix-ups that run after Insert and Delete.
// Everything here expects the tree lock to be held and a valid tree
// on entry.
//
// Labels used below: parent and grandparent are relative to the node
// being fixed, uncle is the parent's sibling with respect to the
// grandparent, sibling is relative to the node walked by the deletion
// fix-up.

// rotateleft move nd down-left and its right child up into its place,
// preserving the in-order sequence.
func (t *Tree) rotateleft(nd *rbnode) {
	right := nd.right
	nd.right = right.left
	if right.left != nil {
		right.left.parent = nd
	}
	right.parent = nd.parent
	if nd.parent == nil {
		t.setroot(right)
	} else if nd == nd.parent.left {
		nd.parent.left = right
	} else {
		nd.parent.right = right
	}
	right.left = nd
	nd.parent = right
}

// rotateright move nd down-right and its left child up into its
// place, preserving the in-order sequence.
func (t *Tree) rotateright(nd *rbnode) {
	left := nd.left
	nd.left = left.right
	if left.right != nil {
		left.right.parent = nd
	}
	left.parent = nd.parent
	if nd.parent == nil {
		t.setroot(left)
	} else if nd == nd.parent.right {
		nd.parent.right = left
	} else {
		nd.parent.left = left
	}
	left.right = nd
	nd.parent = left
}

// insertfixup restore colouring invariants after linking a fresh red
// node. While the parent is red: a red uncle recolours parent, uncle
// and grandparent and continues from the grandparent, a black uncle
// rotates the node out of the inner position if needed, then rotates
// the grandparent and terminates. O(log n) recolours, at most two
// rotations.
func (t *Tree) insertfixup(nd *rbnode) {
	for {
		parent := nd.parent
		if parent == nil || parent.isblack() {
			break
		}
		grandparent := parent.parent
		if parent == grandparent.left {
			uncle := grandparent.right
			if isred(uncle) {
				parent.setblack()
				uncle.setblack()
				grandparent.setred()
				nd = grandparent
				continue
			}
			if nd == parent.right { // zigzag child
				t.rotateleft(parent)
				nd = parent
				parent = nd.parent
			}
			parent.setblack()
			grandparent.setred()
			t.rotateright(grandparent)

		} else {
			uncle := grandparent.left
			if isred(uncle) {
				parent.setblack()
				uncle.setblack()
				grandparent.setred()
				nd = grandparent
				continue
			}
			if nd == parent.left { // zigzag child
				t.rotateright(parent)
				nd = parent
				parent = nd.parent
			}
			parent.setblack()
			grandparent.setred()
			t.rotateleft(grandparent)
		}
	}
	t.getroot().setblack()
}

// transplant replace the subtree rooted at target with the subtree
// rooted at replacement in target's parent slot. Replacement may be
// nil.
func (t *Tree) transplant(target, replacement *rbnode) {
	if target.parent == nil {
		t.setroot(replacement)
	} else if target == target.parent.left {
		target.parent.left = replacement
	} else {
		target.parent.right = replacement
	}
	if replacement != nil {
		replacement.parent = target.parent
	}
}

// minimum the left-most node of the subtree rooted at nd.
func minimum(nd *rbnode) *rbnode {
	for nd.left != nil {
		nd = nd.left
	}
	return nd
}

// deletenode physically excise target from the tree. A node with at
// most one child is transplanted away directly, a node with two
// children is replaced by its in-order successor. When the excised
// position was black the fix-up runs to settle the black-height,
// whether or not a replacement child survived.
func (t *Tree) deletenode(target *rbnode) {
	var child, childparent *rbnode

	excisedblack := target.isblack()
	switch {
	case target.left == nil:
		child, childparent = target.right, target.parent
		t.transplant(target, target.right)

	case target.right == nil:
		child, childparent = target.left, target.parent
		t.transplant(target, target.left)

	default:
		succ := minimum(target.right)
		excisedblack = succ.isblack()
		child = succ.right
		if succ.parent == target {
			childparent = succ
		} else {
			childparent = succ.parent
			t.transplant(succ, succ.right)
			succ.right = target.right
			succ.right.parent = succ
		}
		t.transplant(target, succ)
		succ.left = target.left
		succ.left.parent = succ
		succ.setcolour(target.isblack())
	}

	if excisedblack {
		t.deletefixup(child, childparent)
	}
}

// deletefixup walk upward absorbing the black deficiency left by an
// excised black node. nd may be nil, conceptually a black leaf, so
// its parent is tracked alongside. A red sibling converts to a black
// sibling case by rotation, a black sibling with two black children
// recolours and moves the deficiency up, a black sibling with a red
// child rotates it in and terminates.
func (t *Tree) deletefixup(nd, parent *rbnode) {
	for nd != t.getroot() && isblack(nd) && parent != nil {
		if nd == parent.left {
			sibling := parent.right
			if isred(sibling) {
				sibling.setblack()
				parent.setred()
				t.rotateleft(parent)
				sibling = parent.right
			}
			if sibling == nil {
				nd, parent = parent, parent.parent
			} else if isblack(sibling.left) && isblack(sibling.right) {
				sibling.setred()
				nd, parent = parent, parent.parent
			} else {
				if isblack(sibling.right) { // align red child far side
					if sibling.left != nil {
						sibling.left.setblack()
					}
					sibling.setred()
					t.rotateright(sibling)
					sibling = parent.right
				}
				sibling.setcolour(parent.isblack())
				parent.setblack()
				if sibling.right != nil {
					sibling.right.setblack()
				}
				t.rotateleft(parent)
				nd, parent = t.getroot(), nil
			}

		} else {
			sibling := parent.left
			if isred(sibling) {
				sibling.setblack()
				parent.setred()
				t.rotateright(parent)
				sibling = parent.left
			}
			if sibling == nil {
				nd, parent = parent, parent.parent
			} else if isblack(sibling.right) && isblack(sibling.left) {
				sibling.setred()
				nd, parent = parent, parent.parent
			} else {
				if isblack(sibling.left) { // align red child far side
					if sibling.right != nil {
						sibling.right.setblack()
					}
					sibling.setred()
					t.rotateleft(sibling)
					sibling = parent.left
				}
				sibling.setcolour(parent.isblack())
				parent.setblack()
				if sibling.left != nil {
					sibling.left.setblack()
				}
				t.rotateright(parent)
				nd, parent = t.getroot(), nil
			}
		}
	}
	if nd != nil {
		nd.setblack()
	}
}
