package model

// Walk visits n and all its descendants in pre-order, document order.
// Returning false from fn stops the walk.
func Walk(n *Node, fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !Walk(c, fn) {
			return false
		}
	}
	return true
}

// Descendants returns all descendants of n (excluding n itself) in
// pre-order, document order.
func Descendants(n *Node) []*Node {
	return DescendantsTo(n, 0)
}

// DescendantsTo is Descendants limited to maxDepth levels below n.
// A maxDepth of 0 means unlimited.
func DescendantsTo(n *Node, maxDepth int) []*Node {
	var result []*Node
	collectDescendants(n, 1, maxDepth, &result)
	return result
}

func collectDescendants(n *Node, depth, maxDepth int, result *[]*Node) {
	if maxDepth > 0 && depth > maxDepth {
		return
	}
	for _, c := range n.Children {
		*result = append(*result, c)
		collectDescendants(c, depth+1, maxDepth, result)
	}
}

// SelfAndDescendants returns n followed by all its descendants in
// pre-order, document order.
func SelfAndDescendants(n *Node) []*Node {
	result := []*Node{n}
	return append(result, Descendants(n)...)
}

// SelfAndDescendantsTo is SelfAndDescendants limited to maxDepth levels
// below n. A maxDepth of 0 means unlimited.
func SelfAndDescendantsTo(n *Node, maxDepth int) []*Node {
	result := []*Node{n}
	return append(result, DescendantsTo(n, maxDepth)...)
}

// FindByID searches the tree rooted at n for a node with the given ID.
// Returns nil if not found.
func FindByID(n *Node, id int) *Node {
	var found *Node
	Walk(n, func(c *Node) bool {
		if c.ID == id {
			found = c
			return false
		}
		return true
	})
	return found
}

// FindByUID searches the tree rooted at n for a node with the given
// library-assigned UID. Returns nil if not found.
func FindByUID(n *Node, uid string) *Node {
	if uid == "" {
		return nil
	}
	var found *Node
	Walk(n, func(c *Node) bool {
		if c.UID == uid {
			found = c
			return false
		}
		return true
	})
	return found
}

// Ancestors returns the ancestors of n from the nearest parent up to the
// root.
func Ancestors(n *Node) []*Node {
	var result []*Node
	for p := n.Parent; p != nil; p = p.Parent {
		result = append(result, p)
	}
	return result
}

// FollowingSiblings returns the siblings of n that come after it in
// document order.
func FollowingSiblings(n *Node) []*Node {
	if n.Parent == nil || n.Index+1 >= len(n.Parent.Children) {
		return nil
	}
	return n.Parent.Children[n.Index+1:]
}

// PrecedingSiblings returns the siblings of n that come before it, nearest
// first.
func PrecedingSiblings(n *Node) []*Node {
	if n.Parent == nil || n.Index == 0 {
		return nil
	}
	var result []*Node
	for i := n.Index - 1; i >= 0; i-- {
		result = append(result, n.Parent.Children[i])
	}
	return result
}
