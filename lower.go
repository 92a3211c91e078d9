// lower.go — lowering of the concrete syntax tree to S-expressions.
//
// The two chaining forms splice into the lowered form of their opposite
// operand: '.' injects its left operand as the first argument of the call on
// its right (postfix-method chaining), and ':' injects its right operand as
// the last argument of the call on its left (low-precedence tail argument).
// Together with operator mixfix this rewrites surface forms such as
//
//	n *: n - 1 .factorial
//
// into a single nested application.
package kixpr

import "strings"

func lowerList(n *listNode) *Sexp {
	out := &Sexp{Kind: SexpList}
	for _, element := range n.elements {
		out.List = append(out.List, lowerRightChain(element))
	}
	return out
}

// lowerRightChain lowers `L : R`. When the lowered left side is a non-empty
// list (f a1 ... an) the result is (f a1 ... an R); an empty list absorbs
// the chain unchanged; any other left side pairs up as (L R).
func lowerRightChain(n *rightChainNode) *Sexp {
	left := lowerLeftChain(n.left)
	if n.right == nil {
		return left
	}
	right := lowerRightChain(n.right)

	if left.Kind == SexpList {
		if len(left.List) == 0 {
			return left
		}
		left.List = append(left.List, right)
		return left
	}
	return &Sexp{Kind: SexpList, List: []*Sexp{left, right}}
}

// lowerLeftChain lowers `L . R`. When the lowered right side is a non-empty
// list (f a1 ... an) the result is (f L a1 ... an); an empty right side
// yields L unchanged; any other right side applies as (R L).
func lowerLeftChain(n *leftChainNode) *Sexp {
	if n.term != nil {
		return lowerMixfix(n.term)
	}
	left := lowerLeftChain(n.left)
	right := lowerMixfix(n.right)

	if right.Kind == SexpList {
		if len(right.List) == 0 {
			return left
		}
		spliced := make([]*Sexp, 0, len(right.List)+1)
		spliced = append(spliced, right.List[0], left)
		spliced = append(spliced, right.List[1:]...)
		right.List = spliced
		return right
	}
	return &Sexp{Kind: SexpList, List: []*Sexp{right, left}}
}

// lowerMixfix synthesises the call name from the component run: operator
// text verbatim, one '_' placeholder per alphanumeric-call component that
// sits between two operators. Leading and trailing argument components get
// no placeholder, so `x <= y < z` becomes (<=_< x y z) and `n - 1` becomes
// (- n 1). A single operator lowers to a bare name leaf and a single call
// lowers directly.
func lowerMixfix(n *mixfixNode) *Sexp {
	if len(n.components) == 1 {
		c := n.components[0]
		if c.isOp {
			return &Sexp{Kind: SexpName, Text: c.op.Text, Span: c.op.Span}
		}
		return lowerAlphaCall(c.call)
	}

	firstOp, lastOp := -1, -1
	for i, c := range n.components {
		if c.isOp {
			if firstOp < 0 {
				firstOp = i
			}
			lastOp = i
		}
	}

	var name strings.Builder
	args := make([]*Sexp, 0, len(n.components))
	for i, c := range n.components {
		if c.isOp {
			name.WriteString(c.op.Text)
			continue
		}
		if firstOp < i && i < lastOp {
			name.WriteByte('_')
		}
		args = append(args, lowerAlphaCall(c.call))
	}
	head := &Sexp{Kind: SexpName, Text: name.String(), Span: n.span()}
	return &Sexp{Kind: SexpList, List: append([]*Sexp{head}, args...)}
}

// lowerAlphaCall names the call after its head when the head is a bare
// name; otherwise the name is the '_' placeholder and the head joins the
// argument list. Arguments never contribute to the name.
func lowerAlphaCall(n *alphaCallNode) *Sexp {
	if len(n.args) == 0 {
		return lowerAtomic(n.head)
	}

	name := "_"
	var args []*Sexp
	if nm, isName := n.head.(nameAtom); isName {
		name = nm.tok.Text
	} else {
		args = append(args, lowerAtomic(n.head))
	}
	for _, a := range n.args {
		args = append(args, lowerAtomic(a))
	}
	head := &Sexp{Kind: SexpName, Text: name, Span: n.span()}
	return &Sexp{Kind: SexpList, List: append([]*Sexp{head}, args...)}
}

func lowerAtomic(n atomicNode) *Sexp {
	switch a := n.(type) {
	case nameAtom:
		return &Sexp{Kind: SexpName, Text: a.tok.Text, Span: a.tok.Span}
	case stringAtom:
		return &Sexp{Kind: SexpString, Text: a.tok.Text, Span: a.tok.Span}
	case numberAtom:
		return &Sexp{Kind: SexpNumber, Number: a.tok.Num, Span: a.tok.Span}
	case groupAtom:
		return lowerList(a.inner)
	}
	panic("kixpr: unknown atomic node")
}
