package ast

// Visitor is implemented by analyses walking the syntax tree. Each node's
// Accept method calls the Visit method matching its concrete type.
type Visitor interface {
	VisitStyleSheet(n *StyleSheet, ctx any) any
	VisitComment(n *Comment, ctx any) any
	VisitInlineRule(n *InlineRule, ctx any) any
	VisitAtRulePredicate(n *AtRulePredicate, ctx any) any
	VisitKeyframesRule(n *KeyframesRule, ctx any) any
	VisitKeyframeDefinition(n *KeyframeDefinition, ctx any) any
	VisitMediaQueryRule(n *MediaQueryRule, ctx any) any
	VisitBlockRule(n *BlockRule, ctx any) any
	VisitSelectorRule(n *SelectorRule, ctx any) any
	VisitSelector(n *Selector, ctx any) any
	VisitSimpleSelector(n *SimpleSelector, ctx any) any
	VisitPseudoSelector(n *PseudoSelector, ctx any) any
	VisitDeclaration(n *Declaration, ctx any) any
	VisitStyleValue(n *StyleValue, ctx any) any
	VisitBlock(n *Block, ctx any) any
	VisitStylesBlock(n *StylesBlock, ctx any) any
	VisitUnknownRule(n *UnknownRule, ctx any) any
	VisitUnknownTokenListRule(n *UnknownTokenListRule, ctx any) any
}

func (n *StyleSheet) Accept(v Visitor, ctx any) any      { return v.VisitStyleSheet(n, ctx) }
func (n *Comment) Accept(v Visitor, ctx any) any         { return v.VisitComment(n, ctx) }
func (n *InlineRule) Accept(v Visitor, ctx any) any      { return v.VisitInlineRule(n, ctx) }
func (n *AtRulePredicate) Accept(v Visitor, ctx any) any { return v.VisitAtRulePredicate(n, ctx) }
func (n *KeyframesRule) Accept(v Visitor, ctx any) any   { return v.VisitKeyframesRule(n, ctx) }
func (n *KeyframeDefinition) Accept(v Visitor, ctx any) any {
	return v.VisitKeyframeDefinition(n, ctx)
}
func (n *MediaQueryRule) Accept(v Visitor, ctx any) any { return v.VisitMediaQueryRule(n, ctx) }
func (n *BlockRule) Accept(v Visitor, ctx any) any      { return v.VisitBlockRule(n, ctx) }
func (n *SelectorRule) Accept(v Visitor, ctx any) any   { return v.VisitSelectorRule(n, ctx) }
func (n *Selector) Accept(v Visitor, ctx any) any       { return v.VisitSelector(n, ctx) }
func (n *SimpleSelector) Accept(v Visitor, ctx any) any { return v.VisitSimpleSelector(n, ctx) }
func (n *PseudoSelector) Accept(v Visitor, ctx any) any { return v.VisitPseudoSelector(n, ctx) }
func (n *Declaration) Accept(v Visitor, ctx any) any    { return v.VisitDeclaration(n, ctx) }
func (n *StyleValue) Accept(v Visitor, ctx any) any     { return v.VisitStyleValue(n, ctx) }
func (n *Block) Accept(v Visitor, ctx any) any          { return v.VisitBlock(n, ctx) }
func (n *StylesBlock) Accept(v Visitor, ctx any) any    { return v.VisitStylesBlock(n, ctx) }
func (n *UnknownRule) Accept(v Visitor, ctx any) any    { return v.VisitUnknownRule(n, ctx) }
func (n *UnknownTokenListRule) Accept(v Visitor, ctx any) any {
	return v.VisitUnknownTokenListRule(n, ctx)
}

// BaseVisitor visits the children of every node in source order and returns nil.
//
// Concrete visitors embed BaseVisitor, override the methods they care about
// and set V to themselves so that traversal dispatches back to the overrides:
//
//	type selectors struct {
//		ast.BaseVisitor
//		list []string
//	}
//
//	func (s *selectors) VisitSelector(n *ast.Selector, ctx any) any {
//		s.list = append(s.list, n.Text)
//		return s.BaseVisitor.VisitSelector(n, ctx)
//	}
//
//	v := &selectors{}
//	v.V = v
//	sheet.Accept(v, nil)
type BaseVisitor struct {
	V Visitor
}

// self returns the visitor children are dispatched to.
func (b BaseVisitor) self() Visitor {
	if b.V != nil {
		return b.V
	}
	return b
}

// walk visits the children of n.
func (b BaseVisitor) walk(n Node, ctx any) any {
	v := b.self()
	for _, c := range Children(n) {
		c.Accept(v, ctx)
	}
	return nil
}

func (b BaseVisitor) VisitStyleSheet(n *StyleSheet, ctx any) any { return b.walk(n, ctx) }
func (b BaseVisitor) VisitComment(n *Comment, ctx any) any       { return nil }
func (b BaseVisitor) VisitInlineRule(n *InlineRule, ctx any) any { return b.walk(n, ctx) }
func (b BaseVisitor) VisitAtRulePredicate(n *AtRulePredicate, ctx any) any {
	return nil
}
func (b BaseVisitor) VisitKeyframesRule(n *KeyframesRule, ctx any) any { return b.walk(n, ctx) }
func (b BaseVisitor) VisitKeyframeDefinition(n *KeyframeDefinition, ctx any) any {
	return b.walk(n, ctx)
}
func (b BaseVisitor) VisitMediaQueryRule(n *MediaQueryRule, ctx any) any { return b.walk(n, ctx) }
func (b BaseVisitor) VisitBlockRule(n *BlockRule, ctx any) any           { return b.walk(n, ctx) }
func (b BaseVisitor) VisitSelectorRule(n *SelectorRule, ctx any) any     { return b.walk(n, ctx) }
func (b BaseVisitor) VisitSelector(n *Selector, ctx any) any             { return b.walk(n, ctx) }
func (b BaseVisitor) VisitSimpleSelector(n *SimpleSelector, ctx any) any { return b.walk(n, ctx) }
func (b BaseVisitor) VisitPseudoSelector(n *PseudoSelector, ctx any) any { return b.walk(n, ctx) }
func (b BaseVisitor) VisitDeclaration(n *Declaration, ctx any) any       { return b.walk(n, ctx) }
func (b BaseVisitor) VisitStyleValue(n *StyleValue, ctx any) any         { return nil }
func (b BaseVisitor) VisitBlock(n *Block, ctx any) any                   { return b.walk(n, ctx) }
func (b BaseVisitor) VisitStylesBlock(n *StylesBlock, ctx any) any       { return b.walk(n, ctx) }
func (b BaseVisitor) VisitUnknownRule(n *UnknownRule, ctx any) any       { return nil }
func (b BaseVisitor) VisitUnknownTokenListRule(n *UnknownTokenListRule, ctx any) any {
	return nil
}

// Children returns the direct children of n in source order.
func Children(n Node) []Node {
	var a []Node
	add := func(c Node) { a = append(a, c) }

	switch n := n.(type) {
	case *StyleSheet:
		for _, r := range n.Rules {
			add(r)
		}
	case *InlineRule:
		if n.Query != nil {
			add(n.Query)
		}
	case *KeyframesRule:
		if n.Block != nil {
			add(n.Block)
		}
	case *KeyframeDefinition:
		if n.Block != nil {
			add(n.Block)
		}
	case *MediaQueryRule:
		if n.Query != nil {
			add(n.Query)
		}
		if n.Block != nil {
			add(n.Block)
		}
	case *BlockRule:
		if n.Query != nil {
			add(n.Query)
		}
		if n.Block != nil {
			add(n.Block)
		}
	case *SelectorRule:
		for _, s := range n.Selectors {
			add(s)
		}
		if n.Block != nil {
			add(n.Block)
		}
	case *Selector:
		for _, p := range n.Parts {
			add(p)
		}
	case *SimpleSelector:
		for _, p := range n.PseudoSelectors {
			add(p)
		}
	case *PseudoSelector:
		for _, s := range n.Inner {
			add(s)
		}
	case *Declaration:
		if n.Value != nil {
			add(n.Value)
		}
	case *Block:
		a = append(a, n.Entries...)
	case *StylesBlock:
		a = append(a, n.Entries...)
	}
	return a
}

// Inspect traverses the tree rooted at n in depth-first source order. It calls
// f(n) for each node and descends into the children only if f returns true.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}
