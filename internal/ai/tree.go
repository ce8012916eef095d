// internal/ai/tree.go
package ai

// Status — результат тика узла дерева поведения.
type Status int

const (
	Failure Status = iota
	Success
)

// NodeKind — вид узла.
type NodeKind int

const (
	NodeSequence NodeKind = iota
	NodeSelector
	NodeCondition
	NodeAction
)

// Node — узел дерева поведения. Дерево — это данные: композитные узлы
// держат детей, листья держат функции над доской. Никакого состояния на
// узле между тиками нет, всё живёт на доске и на самом юните.
type Node struct {
	ID       string
	Kind     NodeKind
	Children []*Node
	Cond     func(bb *Blackboard) bool
	Act      func(bb *Blackboard) Status
}

// Sequence выполняет детей по порядку, пока все успешны.
func Sequence(id string, children ...*Node) *Node {
	return &Node{ID: id, Kind: NodeSequence, Children: children}
}

// Selector выполняет детей по порядку до первого успешного.
func Selector(id string, children ...*Node) *Node {
	return &Node{ID: id, Kind: NodeSelector, Children: children}
}

// Condition — лист-предикат.
func Condition(id string, fn func(bb *Blackboard) bool) *Node {
	return &Node{ID: id, Kind: NodeCondition, Cond: fn}
}

// Action — лист-действие.
func Action(id string, fn func(bb *Blackboard) Status) *Node {
	return &Node{ID: id, Kind: NodeAction, Act: fn}
}

// Tick обходит дерево и записывает путь посещённых узлов на доску —
// трасса решения доступна отладочному HUD после каждого тика.
func Tick(n *Node, bb *Blackboard) Status {
	bb.Path = append(bb.Path, n.ID)
	switch n.Kind {
	case NodeSequence:
		for _, c := range n.Children {
			if Tick(c, bb) == Failure {
				return Failure
			}
		}
		return Success
	case NodeSelector:
		for _, c := range n.Children {
			if Tick(c, bb) == Success {
				return Success
			}
		}
		return Failure
	case NodeCondition:
		if n.Cond(bb) {
			return Success
		}
		return Failure
	case NodeAction:
		return n.Act(bb)
	}
	return Failure
}
