package graph

// TopoSort returns every node reachable from roots, operands before the
// nodes that consume them. Each node appears once; ties are broken by the
// order in which roots and operands are listed, so the result is
// deterministic for a given graph.
func TopoSort(roots ...Node) []Node {
	var order []Node
	visited := make(map[int64]bool)

	type frame struct {
		n    Node
		next int // index of the next operand to visit
	}
	for _, root := range roots {
		if visited[root.ID()] {
			continue
		}
		visited[root.ID()] = true
		stack := []frame{{n: root}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			inputs := top.n.Inputs()
			if top.next < len(inputs) {
				in := inputs[top.next]
				top.next++
				if !visited[in.ID()] {
					visited[in.ID()] = true
					stack = append(stack, frame{n: in})
				}
				continue
			}
			order = append(order, top.n)
			stack = stack[:len(stack)-1]
		}
	}
	return order
}

// Variables returns the variables that the given expressions depend on,
// in post-order of first visit.
func Variables(exprs ...Node) []*Variable {
	var vars []*Variable
	for _, n := range TopoSort(exprs...) {
		if v, ok := n.(*Variable); ok {
			vars = append(vars, v)
		}
	}
	return vars
}

// Placeholders returns the placeholders that the given expressions depend
// on, in post-order of first visit.
func Placeholders(exprs ...Node) []*Placeholder {
	var phs []*Placeholder
	for _, n := range TopoSort(exprs...) {
		if p, ok := n.(*Placeholder); ok {
			phs = append(phs, p)
		}
	}
	return phs
}
