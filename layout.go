package openrealm

// UiLayoutResult is a node's computed box in parent-relative
// coordinates after a layout pass.
type UiLayoutResult struct {
	X, Y, Width, Height float64
}

// ComputeLayout runs a single flexbox pass over root's subtree,
// producing each node's UiLayoutResult, and returns root's own result.
// It supports the subset of flexbox openrealm's content actually uses:
// row/column direction (and reverse), wrapping onto multiple lines,
// start/center/end/stretch/space-between alignment, basis/grow/shrink,
// min/max size clamps, margin/padding, absolute positioning, and the
// RightOf secondary ordering constraint.
func ComputeLayout(root *UiNode, availWidth, availHeight float64) UiLayoutResult {
	root.computed = UiLayoutResult{Width: availWidth, Height: availHeight}
	layoutChildren(root)
	return root.computed
}

func layoutChildren(n *UiNode) {
	if len(n.children) == 0 {
		return
	}

	innerX := n.computed.X + n.Transform.Padding[3]
	innerY := n.computed.Y + n.Transform.Padding[0]
	innerW := n.computed.Width - n.Transform.Padding[1] - n.Transform.Padding[3]
	innerH := n.computed.Height - n.Transform.Padding[0] - n.Transform.Padding[2]

	ordered := orderChildren(n.children)

	horizontal := n.Transform.Direction == FlexRow || n.Transform.Direction == FlexRowReverse
	reverse := n.Transform.Direction == FlexRowReverse || n.Transform.Direction == FlexColumnReverse
	if reverse {
		for i, j := 0, len(ordered)-1; i < j; i, j = i+1, j-1 {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		}
	}

	mainAxisAvail := innerW
	if !horizontal {
		mainAxisAvail = innerH
	}

	flowing := make([]*UiNode, 0, len(ordered))
	for _, c := range ordered {
		if c.Transform.PositionAbsolute {
			c.computed = UiLayoutResult{
				X:      n.computed.X + c.Transform.Left,
				Y:      n.computed.Y + c.Transform.Top,
				Width:  childWidthOr(c, innerW),
				Height: childHeightOr(c, innerH),
			}
			layoutChildren(c)
			continue
		}
		flowing = append(flowing, c)
	}

	lines := [][]*UiNode{flowing}
	if n.Transform.Wrap != WrapNone {
		lines = wrapLines(flowing, mainAxisAvail, horizontal, innerW, innerH)
	}
	if n.Transform.Wrap == WrapReverse {
		for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
			lines[i], lines[j] = lines[j], lines[i]
		}
	}

	crossCursor := 0.0
	for _, line := range lines {
		crossSize := layoutLine(n, line, innerX, innerY, innerW, innerH, mainAxisAvail, horizontal, crossCursor)
		crossCursor += crossSize
	}
}

// layoutLine positions one flex line's children along the main axis
// (applying basis/grow/shrink and JustifyContent) and offsets the whole
// line along the cross axis by crossCursor, returning the line's cross-
// axis extent so the caller can stack the next line after it.
func layoutLine(n *UiNode, line []*UiNode, innerX, innerY, innerW, innerH, mainAxisAvail float64, horizontal bool, crossCursor float64) float64 {
	if len(line) == 0 {
		return 0
	}

	basisSizes := make([]float64, len(line))
	var mainAxisTotal float64
	var totalGrow, totalShrink float64
	for i, c := range line {
		w, h := childSize(c, innerW, innerH)
		size := w
		if !horizontal {
			size = h
		}
		if c.Transform.Basis > 0 {
			size = c.Transform.Basis
		}
		basisSizes[i] = size
		mainAxisTotal += size
		totalGrow += c.Transform.Grow
		totalShrink += c.Transform.Shrink
	}

	remaining := mainAxisAvail - mainAxisTotal
	sizes := make([]float64, len(line))
	copy(sizes, basisSizes)
	switch {
	case remaining > 0 && totalGrow > 0:
		for i, c := range line {
			sizes[i] += remaining * (c.Transform.Grow / totalGrow)
		}
		remaining = 0
	case remaining < 0 && totalShrink > 0:
		for i, c := range line {
			sizes[i] += remaining * (c.Transform.Shrink / totalShrink)
			if sizes[i] < 0 {
				sizes[i] = 0
			}
		}
		remaining = 0
	}

	gap := 0.0
	start := 0.0
	switch n.Transform.JustifyContent {
	case AlignCenter:
		start = remaining / 2
	case AlignEnd:
		start = remaining
	case AlignSpaceBetween:
		if len(line) > 1 {
			gap = remaining / float64(len(line)-1)
		}
	}

	var crossSize float64
	cursor := start
	for i, c := range line {
		w, h := childSize(c, innerW, innerH)
		if horizontal {
			w = clampSize(sizes[i], c.Transform.MinWidth, c.Transform.MaxWidth)
		} else {
			h = clampSize(sizes[i], c.Transform.MinHeight, c.Transform.MaxHeight)
		}

		var x, y float64
		crossExtent := h
		if !horizontal {
			crossExtent = w
		}
		if horizontal {
			x = innerX + cursor
			y = innerY + crossAxisOffset(n.Transform.AlignItems, innerH, h)
			cursor += w + gap
		} else {
			x = innerX + crossAxisOffset(n.Transform.AlignItems, innerW, w)
			y = innerY + cursor
			cursor += h + gap
		}
		if n.Transform.AlignItems == AlignStretch {
			if horizontal {
				h = innerH
				crossExtent = h
			} else {
				w = innerW
				crossExtent = w
			}
		}
		if crossExtent > crossSize {
			crossSize = crossExtent
		}
		if horizontal {
			y += crossCursor
		} else {
			x += crossCursor
		}
		c.computed = UiLayoutResult{X: x, Y: y, Width: w, Height: h}
		layoutChildren(c)
	}
	return crossSize
}

// wrapLines greedily packs children into lines whose cumulative main-
// axis size doesn't exceed mainAxisAvail, starting a new line rather
// than overflowing one already started; a single child wider than
// mainAxisAvail gets its own line regardless.
func wrapLines(children []*UiNode, mainAxisAvail float64, horizontal bool, innerW, innerH float64) [][]*UiNode {
	var lines [][]*UiNode
	var current []*UiNode
	var currentTotal float64
	for _, c := range children {
		w, h := childSize(c, innerW, innerH)
		size := w
		if !horizontal {
			size = h
		}
		if c.Transform.Basis > 0 {
			size = c.Transform.Basis
		}
		if len(current) > 0 && currentTotal+size > mainAxisAvail {
			lines = append(lines, current)
			current = nil
			currentTotal = 0
		}
		current = append(current, c)
		currentTotal += size
	}
	if len(current) > 0 {
		lines = append(lines, current)
	}
	return lines
}

// clampSize constrains size to [min, max], treating a zero bound as
// "unset" on whichever side it appears, matching the CSS convention
// that min/max-size default to no constraint.
func clampSize(size, min, max float64) float64 {
	if min > 0 && size < min {
		size = min
	}
	if max > 0 && size > max {
		size = max
	}
	return size
}

// orderChildren returns n's children in layout order, moving any child
// with RightOf set to immediately follow its anchor, breaking normal
// declaration order for that one pair. Children with no RightOf
// constraint (or whose anchor isn't a sibling) keep their original
// relative order.
func orderChildren(children []*UiNode) []*UiNode {
	out := make([]*UiNode, 0, len(children))
	placed := make(map[*UiNode]bool)
	isSibling := func(n *UiNode) bool {
		for _, c := range children {
			if c == n {
				return true
			}
		}
		return false
	}
	for _, c := range children {
		if placed[c] {
			continue
		}
		if c.Transform.RightOf != nil && isSibling(c.Transform.RightOf) {
			continue // placed when we reach its anchor below
		}
		out = append(out, c)
		placed[c] = true
		for _, other := range children {
			if !placed[other] && other.Transform.RightOf == c {
				out = append(out, other)
				placed[other] = true
			}
		}
	}
	for _, c := range children {
		if !placed[c] {
			out = append(out, c)
		}
	}
	return out
}

func childSize(c *UiNode, availW, availH float64) (float64, float64) {
	return childWidthOr(c, availW), childHeightOr(c, availH)
}

func childWidthOr(c *UiNode, avail float64) float64 {
	if c.Transform.WidthAuto {
		return avail
	}
	return c.Transform.Width
}

func childHeightOr(c *UiNode, avail float64) float64 {
	if c.Transform.Height == 0 {
		return avail
	}
	return c.Transform.Height
}

func crossAxisOffset(align FlexAlign, avail, size float64) float64 {
	switch align {
	case AlignCenter:
		return (avail - size) / 2
	case AlignEnd:
		return avail - size
	default:
		return 0
	}
}
