package selector

import (
	"strconv"
	"strings"

	"github.com/widgetlab/widget-cli/internal/model"
)

// containerExpr is a compiled container segment: cell[...], row[...],
// column[...], node[...], tab[...], or menu[...], plus state pseudo-class
// filters. Container segments address the synthesized entities of the
// matched container widgets, not tree children.
type containerExpr struct {
	kind string

	hasRow, hasCol, hasIndex bool
	row, col, index          int
	colName                  string // cell column addressed by header name
	name, title, contains    string
	text                     string
	path                     []string
	pseudos                  []string
}

var containerPseudos = map[string]bool{
	"first": true, "last": true, "selected": true, "editable": true,
	"expanded": true, "collapsed": true, "root": true, "leaf": true,
}

func parseContainerExpr(body string, offset int) (*containerExpr, error) {
	kind := containerKeyword(body)
	expr := &containerExpr{kind: kind}

	open := len(kind)
	end := findCloseBracket(body, open)
	if end < 0 {
		return nil, parseErr(ErrUnterminatedLiteral, offset+open, body[open:], "bracket is never closed")
	}

	for _, arg := range splitContainerArgs(body[open+1 : end]) {
		if err := expr.applyArg(arg, offset+open+1); err != nil {
			return nil, err
		}
	}

	rest := body[end+1:]
	for len(rest) > 0 {
		if rest[0] != ':' {
			return nil, parseErr(ErrBadPattern, offset+end+1, rest, "unexpected text after container segment")
		}
		name, next := readIdent(rest, 1)
		if !containerPseudos[name] {
			return nil, parseErr(ErrBadPattern, offset+end+1, ":"+name, "unknown container pseudo-class")
		}
		expr.pseudos = append(expr.pseudos, name)
		rest = rest[next:]
	}
	return expr, nil
}

// splitContainerArgs cuts "key=value, key=value" on top-level commas.
func splitContainerArgs(inner string) []string {
	var args []string
	start := 0
	var quote byte
	for i := 0; i < len(inner); i++ {
		ch := inner[i]
		if quote != 0 {
			if ch == '\\' && i+1 < len(inner) {
				i++
				continue
			}
			if ch == quote {
				quote = 0
			}
			continue
		}
		switch ch {
		case '\'', '"':
			quote = ch
		case ',':
			args = append(args, inner[start:i])
			start = i + 1
		}
	}
	if s := strings.TrimSpace(inner[start:]); s != "" || len(args) > 0 {
		args = append(args, inner[start:])
	}
	var trimmed []string
	for _, a := range args {
		if a = strings.TrimSpace(a); a != "" {
			trimmed = append(trimmed, a)
		}
	}
	return trimmed
}

func (e *containerExpr) applyArg(arg string, offset int) error {
	eq := strings.IndexByte(arg, '=')
	if eq < 0 {
		return parseErr(ErrBadPattern, offset, arg, "container argument needs key=value")
	}
	key := strings.TrimSpace(arg[:eq])
	val := strings.TrimSpace(arg[eq+1:])
	quoted := len(val) >= 2 && (val[0] == '\'' || val[0] == '"')
	unq := unquote(val)

	intVal := func() (int, error) {
		n, err := strconv.Atoi(unq)
		if err != nil {
			return 0, parseErr(ErrBadPattern, offset, arg, key+" needs an integer")
		}
		return n, nil
	}

	switch e.kind + "." + key {
	case "cell.row":
		n, err := intVal()
		if err != nil {
			return err
		}
		e.hasRow, e.row = true, n
	case "cell.col":
		if quoted {
			e.hasCol, e.colName = true, unq
			return nil
		}
		n, err := intVal()
		if err != nil {
			return err
		}
		e.hasCol, e.col = true, n
	case "cell.index", "row.index", "column.index", "tab.index", "menu.index":
		n, err := intVal()
		if err != nil {
			return err
		}
		e.hasIndex, e.index = true, n
	case "row.contains":
		e.contains = unq
	case "column.name":
		e.name = unq
	case "node.path", "menu.path":
		e.path = splitPath(unq)
	case "tab.title":
		e.title = unq
	case "menu.text":
		e.text = unq
	default:
		return parseErr(ErrBadPattern, offset, arg, "unknown argument for "+e.kind+" segment")
	}
	return nil
}

// splitPath cuts a tree or menu path on "|", falling back to "/" when the
// path has no pipe.
func splitPath(p string) []string {
	sep := "|"
	if !strings.Contains(p, "|") {
		sep = "/"
	}
	parts := strings.Split(p, sep)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// resolveContainer evaluates a container segment against the previous
// segment's results. Contexts without the matching container payload
// contribute nothing; they never error.
func resolveContainer(expr *containerExpr, contexts []*model.Node) []*model.Node {
	var result []*model.Node
	for _, ctx := range contexts {
		found := expr.resolveIn(ctx)
		found = expr.applyPseudos(found)
		result = append(result, found...)
	}
	return dedupeNodes(result)
}

func (e *containerExpr) resolveIn(ctx *model.Node) []*model.Node {
	switch e.kind {
	case "cell":
		return e.resolveCells(ctx)
	case "row":
		return e.resolveRows(ctx)
	case "column":
		return e.resolveColumns(ctx)
	case "node":
		return e.resolveTreeItems(ctx)
	case "tab":
		return e.resolveTabs(ctx)
	case "menu":
		return e.resolveMenuItems(ctx)
	}
	return nil
}

func (e *containerExpr) resolveCells(ctx *model.Node) []*model.Node {
	// Within a row result, cells are addressed by column alone.
	if ctx.IsVirtual() && ctx.Virtual.Kind == "row" {
		table := ctx.Virtual.Owner.Table
		col, ok := e.columnFor(table)
		if !ok {
			return nil
		}
		if col < 0 {
			return ctx.Children
		}
		if col < len(ctx.Children) {
			return []*model.Node{ctx.Children[col]}
		}
		return nil
	}

	if ctx.Table == nil {
		return nil
	}
	col, ok := e.columnFor(ctx.Table)
	if !ok {
		return nil
	}

	if e.hasRow {
		if col < 0 {
			row, ok := ctx.Table.Row(e.row)
			if !ok {
				return nil
			}
			return row.Children
		}
		if cell, ok := ctx.Table.Cell(e.row, col); ok {
			return []*model.Node{cell}
		}
		return nil
	}

	var result []*model.Node
	for _, row := range ctx.Table.Rows() {
		if col < 0 {
			result = append(result, row.Children...)
		} else if col < len(row.Children) {
			result = append(result, row.Children[col])
		}
	}
	return result
}

// columnFor resolves the cell expression's column address against a table.
// Returns -1 when the expression has no column constraint, and ok=false
// when a named column does not exist.
func (e *containerExpr) columnFor(table *model.TableModel) (int, bool) {
	switch {
	case e.colName != "":
		return table.ColumnIndex(e.colName)
	case e.hasCol:
		return e.col, true
	case e.hasIndex:
		return e.index, true
	}
	return -1, true
}

func (e *containerExpr) resolveRows(ctx *model.Node) []*model.Node {
	if ctx.Table == nil {
		return nil
	}
	if e.hasIndex {
		if row, ok := ctx.Table.Row(e.index); ok {
			return []*model.Node{row}
		}
		return nil
	}
	rows := ctx.Table.Rows()
	if e.contains == "" {
		return rows
	}
	var result []*model.Node
	for _, row := range rows {
		for _, cell := range row.Children {
			if strings.Contains(cell.Text, e.contains) {
				result = append(result, row)
				break
			}
		}
	}
	return result
}

func (e *containerExpr) resolveColumns(ctx *model.Node) []*model.Node {
	if ctx.Table == nil {
		return nil
	}
	cols := ctx.Table.Columns()
	switch {
	case e.name != "":
		for _, col := range cols {
			if col.Name == e.name {
				return []*model.Node{col}
			}
		}
		return nil
	case e.hasIndex:
		if e.index >= 0 && e.index < len(cols) {
			return []*model.Node{cols[e.index]}
		}
		return nil
	}
	return cols
}

func (e *containerExpr) resolveTreeItems(ctx *model.Node) []*model.Node {
	// A tree item context resolves paths relative to itself.
	if ctx.IsVirtual() && ctx.Virtual.Kind == "treeitem" {
		tree := ctx.Virtual.Owner.Tree
		if len(e.path) == 0 {
			return virtualDescendants(ctx)
		}
		full := append(splitPath(ctx.Virtual.Path), e.path...)
		if n, ok := tree.ByPath(full); ok {
			return []*model.Node{n}
		}
		return nil
	}

	if ctx.Tree == nil {
		return nil
	}
	if len(e.path) == 0 {
		return ctx.Tree.Items()
	}
	if n, ok := ctx.Tree.ByPath(e.path); ok {
		return []*model.Node{n}
	}
	return nil
}

func (e *containerExpr) resolveTabs(ctx *model.Node) []*model.Node {
	if ctx.TabFolder == nil {
		return nil
	}
	switch {
	case e.title != "":
		if tab, ok := ctx.TabFolder.ByTitle(e.title); ok {
			return []*model.Node{tab}
		}
		return nil
	case e.hasIndex:
		if tab, ok := ctx.TabFolder.Tab(e.index); ok {
			return []*model.Node{tab}
		}
		return nil
	}
	return ctx.TabFolder.Tabs()
}

func (e *containerExpr) resolveMenuItems(ctx *model.Node) []*model.Node {
	// A menu item context addresses its own submenu.
	if ctx.IsVirtual() && ctx.Virtual.Kind == "menuitem" {
		menu := ctx.Virtual.Owner.Menu
		switch {
		case len(e.path) > 0:
			full := append(splitPath(ctx.Virtual.Path), e.path...)
			if n, ok := menu.ByPath(full); ok {
				return []*model.Node{n}
			}
			return nil
		case e.hasIndex:
			if e.index >= 0 && e.index < len(ctx.Children) {
				return []*model.Node{ctx.Children[e.index]}
			}
			return nil
		case e.text != "":
			var result []*model.Node
			for _, c := range ctx.Children {
				if c.Text == e.text {
					result = append(result, c)
				}
			}
			return result
		}
		return ctx.Children
	}

	if ctx.Menu == nil {
		return nil
	}
	switch {
	case len(e.path) > 0:
		if n, ok := ctx.Menu.ByPath(e.path); ok {
			return []*model.Node{n}
		}
		return nil
	case e.hasIndex:
		top := ctx.Menu.TopLevel()
		if e.index >= 0 && e.index < len(top) {
			return []*model.Node{top[e.index]}
		}
		return nil
	case e.text != "":
		var result []*model.Node
		for _, n := range ctx.Menu.Items() {
			if n.Text == e.text {
				result = append(result, n)
			}
		}
		return result
	}
	return ctx.Menu.TopLevel()
}

// applyPseudos filters one context's entities through the segment's state
// pseudo-classes, in the order written.
func (e *containerExpr) applyPseudos(found []*model.Node) []*model.Node {
	for _, p := range e.pseudos {
		switch p {
		case "first":
			if len(found) > 1 {
				found = found[:1]
			}
		case "last":
			if len(found) > 1 {
				found = found[len(found)-1:]
			}
		default:
			var kept []*model.Node
			for _, n := range found {
				if matchContainerState(p, n) {
					kept = append(kept, n)
				}
			}
			found = kept
		}
	}
	return found
}

func matchContainerState(pseudo string, n *model.Node) bool {
	switch pseudo {
	case "selected":
		return n.Selected
	case "editable":
		return n.Editable
	case "expanded":
		return n.Expanded
	case "collapsed":
		return !n.Expanded && len(n.Children) > 0
	case "root":
		return n.IsVirtual() && n.Parent == n.Virtual.Owner
	case "leaf":
		return len(n.Children) == 0
	}
	return false
}

// virtualDescendants collects all synthesized descendants of a virtual
// node in pre-order.
func virtualDescendants(n *model.Node) []*model.Node {
	var result []*model.Node
	for _, c := range n.Children {
		result = append(result, c)
		result = append(result, virtualDescendants(c)...)
	}
	return result
}
