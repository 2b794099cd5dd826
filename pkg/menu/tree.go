package menu

import (
	"errors"
	"slices"
	"strconv"

	"github.com/mchmarny/ngwp/pkg/validation"
)

// BuildTree nests the flat items into a tree and returns the roots.
//
// Siblings keep the order in which they arrive in items. An item becomes a
// root when its parent is 0, when it names itself as its parent, or when the
// parent is not part of items. Items caught in a longer parent cycle are
// attached by promoting the earliest cycle member to a root.
//
// An empty input yields an empty, non-nil slice.
func BuildTree(items []Item) ([]*Node, error) {
	if err := Validate(items); err != nil {
		return nil, err
	}

	nodes := make([]*Node, len(items))
	index := make(map[int64]int, len(items))
	for i, item := range items {
		nodes[i] = newNode(item, i)
		index[item.ID] = i
	}

	roots := make([]*Node, 0)
	for i, n := range nodes {
		p, ok := parentIndex(items[i], index)
		if !ok {
			roots = append(roots, n)
			continue
		}
		nodes[p].Children = append(nodes[p].Children, n)
	}

	visited := make([]bool, len(nodes))
	for _, r := range roots {
		mark(r, visited)
	}

	// anything not reached from a root hangs off a cycle
	broken := false
	for i := range nodes {
		if visited[i] {
			continue
		}
		c := cycleHead(i, items, index)
		head := nodes[c]
		parent := nodes[index[items[c].ParentID]]
		parent.Children = slices.DeleteFunc(parent.Children, func(n *Node) bool { return n == head })
		roots = append(roots, head)
		mark(head, visited)
		broken = true
	}

	if broken {
		slices.SortStableFunc(roots, func(a, b *Node) int { return a.pos - b.pos })
	}

	return roots, nil
}

// Validate checks that every item carries a usable id and that ids are unique.
func Validate(items []Item) error {
	seen := make(map[int64]int, len(items))
	for i := range items {
		if err := validation.ValidateStruct(&items[i]); err != nil {
			return invalidItem(i, items[i], err)
		}
		if first, dup := seen[items[i].ID]; dup {
			return &InvalidInputError{
				Index:   i,
				Field:   "id",
				Value:   items[i].ID,
				Message: "duplicate of item at index " + strconv.Itoa(first),
			}
		}
		seen[items[i].ID] = i
	}
	return nil
}

func invalidItem(i int, item Item, err error) error {
	out := &InvalidInputError{Index: i, Message: err.Error()}

	var ve *validation.RequestValidationError
	if errors.As(err, &ve) && len(ve.Errors()) > 0 {
		fe := ve.Errors()[0]
		out.Message = fe.Message
		switch fe.Tag {
		case "gt":
			out.Field, out.Value = "id", item.ID
		case "gte":
			out.Field, out.Value = "parent", item.ParentID
		}
	}

	return out
}

// parentIndex resolves the position of the item's parent. It reports false
// when the item is a root.
func parentIndex(item Item, index map[int64]int) (int, bool) {
	if item.ParentID == 0 || item.ParentID == item.ID {
		return 0, false
	}
	p, ok := index[item.ParentID]
	return p, ok
}

// mark flags n and all of its descendants as visited.
func mark(n *Node, visited []bool) {
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[cur.pos] {
			continue
		}
		visited[cur.pos] = true
		stack = append(stack, cur.Children...)
	}
}

// cycleHead follows parent links from item i until they loop and returns
// the position of the loop member that comes first in the input.
func cycleHead(i int, items []Item, index map[int64]int) int {
	step := make(map[int]int)
	cur := i
	for n := 0; ; n++ {
		if _, ok := step[cur]; ok {
			break
		}
		step[cur] = n
		cur = index[items[cur].ParentID]
	}

	head := cur
	for p := index[items[cur].ParentID]; p != cur; p = index[items[p].ParentID] {
		head = min(head, p)
	}
	return head
}
