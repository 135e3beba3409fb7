package openrealm

// FlexDirection matches the CSS flexbox property of the same name.
type FlexDirection int

const (
	FlexRow FlexDirection = iota
	FlexColumn
	FlexRowReverse
	FlexColumnReverse
)

// FlexAlign matches CSS align-items/justify-content values openrealm
// supports.
type FlexAlign int

const (
	AlignStart FlexAlign = iota
	AlignCenter
	AlignEnd
	AlignStretch
	AlignSpaceBetween
)

// FlexWrap matches the CSS flex-wrap property: whether children overrun
// the main axis onto additional lines instead of shrinking or
// overflowing in place.
type FlexWrap int

const (
	WrapNone FlexWrap = iota
	Wrap
	WrapReverse
)

// Overflow selects what happens to a node's content when it exceeds the
// node's box: rendered past the edge, clipped at the edge, or clipped
// with a [ScrollState] tracking an offset into the clipped content.
type Overflow int

const (
	OverflowVisible Overflow = iota
	OverflowHidden
	OverflowScroll
)

// UiTransform is the layout input for one UI node: flexbox properties
// plus an absolute-positioning escape hatch and a secondary ordering
// constraint ("RightOf") used by scene content that wants two elements
// side by side without computing pixel offsets itself.
type UiTransform struct {
	Width, Height    float64
	WidthAuto        bool
	MinWidth         float64
	MaxWidth         float64
	MinHeight        float64
	MaxHeight        float64
	Direction        FlexDirection
	Wrap             FlexWrap
	AlignItems       FlexAlign
	JustifyContent   FlexAlign
	Margin, Padding  [4]float64 // top, right, bottom, left
	PositionAbsolute bool
	Left, Top        float64

	// Basis, Grow, and Shrink mirror CSS flex-basis/flex-grow/
	// flex-shrink: Basis overrides the node's main-axis size as the
	// starting point before Grow/Shrink redistribute leftover or
	// overflowing main-axis space across siblings weighted by these
	// factors.
	Basis  float64
	Grow   float64
	Shrink float64

	// Overflow controls clipping of this node's own content against its
	// box; OverflowScroll additionally means the node expects a
	// [ScrollState] tracking how far its content has scrolled.
	Overflow Overflow

	// ZIndex breaks paint/hit-test order ties between sibling nodes that
	// would otherwise overlap at the same layout position; higher draws
	// on top.
	ZIndex int

	// Border is the border stroke width per edge (top, right, bottom,
	// left); BorderRadius rounds all four corners uniformly.
	Border       [4]float64
	BorderRadius float64
	BorderColor  Color

	// RightOf names another node in the same parent that this node's
	// layout position is pinned immediately to the right of, breaking
	// the normal flex order for that one pair without requiring a
	// separate row container.
	RightOf *UiNode
}

// UiBackgroundMode selects how a background image is stretched to fit
// its node's box.
type UiBackgroundMode int

const (
	BackgroundNineSlice UiBackgroundMode = iota
	BackgroundStretchUV
	BackgroundCentered
)

// UiBackground paints a node's box with a color and/or texture.
type UiBackground struct {
	Color   Color
	Texture TextureSource
	Mode    UiBackgroundMode
	// NineSliceInsets (top, right, bottom, left) in source-texture
	// pixels, used only when Mode is BackgroundNineSlice.
	NineSliceInsets [4]float64
	// UVs is the source rectangle (u0,v0,u1,v1) used when Mode is
	// BackgroundStretchUV; BackgroundCentered reuses UVs at native scale.
	UVs [4]float64
}

// UiText is a text-content node, measured by a [Font] but not rendered
// here (glyph rasterization is the renderer's job).
type UiText struct {
	Content string
	Font    Font
	Size    float64
	Color   Color
	Align   TextAlign
}

// TextAlign selects horizontal alignment within a UiText node's box.
type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

// UiInput is an editable single-line text field.
type UiInput struct {
	Value       string
	Placeholder string
	Focused     bool
}

// UiDropdown is a selectable list collapsed to one visible row.
type UiDropdown struct {
	Options  []string
	Selected int
	Open     bool
}

// UiCanvas marks a node as the root of one of the two UI output
// surfaces: either the screen-space overlay (anchored to the window,
// respecting safe-area insets) or an in-world render-to-texture canvas
// (a UI plane placed in the 3D scene, e.g. a scene-authored billboard
// menu).
type UiCanvas struct {
	InWorld    bool
	SafeInsets [4]float64 // only meaningful when !InWorld
}

// UiNode is one node of the UI tree: layout input, computed layout
// output, and whichever content component (background/text/input/
// dropdown/canvas) is attached.
type UiNode struct {
	Transform UiTransform
	parent    *UiNode
	children  []*UiNode

	Background *UiBackground
	Text       *UiText
	Input      *UiInput
	Dropdown   *UiDropdown
	Canvas     *UiCanvas

	// Scroll is non-nil only when Transform.Overflow is OverflowScroll;
	// it tracks this node's scroll offset independently of layout, since
	// scrolling doesn't change a node's own box, only where its children
	// are drawn within it.
	Scroll *ScrollState

	// Opacity is this node's own alpha multiplier; EffectiveOpacity
	// composes it with every ancestor's.
	Opacity float64

	computed UiLayoutResult
}

// NewUiNode returns a fully opaque node with a zero transform: width 0
// (WidthAuto unset) and height 0, which layout treats as filling the
// available height.
func NewUiNode() *UiNode {
	return &UiNode{Opacity: 1}
}

// EnableScroll attaches a [ScrollState] to n if Transform.Overflow is
// OverflowScroll and one isn't already attached; it's a no-op otherwise,
// so calling it speculatively on every node is safe.
func (n *UiNode) EnableScroll() *ScrollState {
	if n.Transform.Overflow != OverflowScroll {
		return nil
	}
	if n.Scroll == nil {
		n.Scroll = &ScrollState{}
	}
	return n.Scroll
}

// AddChild appends child to n.
func (n *UiNode) AddChild(child *UiNode) {
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child from n.
func (n *UiNode) RemoveChild(child *UiNode) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Children returns n's direct children.
func (n *UiNode) Children() []*UiNode { return n.children }

// EffectiveOpacity returns n's opacity composed (multiplied) with every
// ancestor's, the rule that lets a fading panel fade its entire subtree
// uniformly without each child tracking the ancestor chain itself.
func (n *UiNode) EffectiveOpacity() float64 {
	o := n.Opacity
	for p := n.parent; p != nil; p = p.parent {
		o *= p.Opacity
	}
	return o
}

// Font measures text for layout purposes; rasterization is left to the
// renderer.
type Font interface {
	Measure(text string, size float64) (width, height float64)
}
