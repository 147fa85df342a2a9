package cursor

// Kind names a known system cursor.
type Kind int

const (
	KindUnknown Kind = iota
	KindArrow
	KindPointingHand
	KindOpenHand
	KindClosedHand
	KindIBeam
	KindResizeLeftRight
	KindResizeUpDown
	KindDragLink
	KindDisappearingItem
	// KindTextBeamVariant is reported when a pointing hand sized cursor matches none of the
	// hand digests.
	KindTextBeamVariant
)

var kindNames = map[Kind]string{
	KindUnknown:          "unknown",
	KindArrow:            "arrow",
	KindPointingHand:     "pointing-hand",
	KindOpenHand:         "open-hand",
	KindClosedHand:       "closed-hand",
	KindIBeam:            "i-beam",
	KindResizeLeftRight:  "resize-left-right",
	KindResizeUpDown:     "resize-up-down",
	KindDragLink:         "drag-link",
	KindDisappearingItem: "disappearing-item",
	KindTextBeamVariant:  "text-beam-variant",
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s && k != KindUnknown {
			return k, true
		}
	}
	return KindUnknown, false
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

var (
	// DefaultOffset applies to any size missing from the table.
	DefaultOffset = Offset{DX: 23.5, DY: 25.5}
	// TextBeamFallback applies to a pointing hand sized cursor whose digest matches no known
	// hand. It is a guess: such cursors have so far been I-beam variants.
	TextBeamFallback = Offset{DX: 24.5, DY: 24.5}
)

// HandSize is shared by the pointing, open and closed hand cursors.
var HandSize = Size{Width: 32, Height: 32}

var (
	ArrowSize            = Size{Width: 17, Height: 23}
	IBeamSize            = Size{Width: 9, Height: 18}
	ResizeLeftRightSize  = Size{Width: 24, Height: 16}
	ResizeUpDownSize     = Size{Width: 16, Height: 24}
	DragLinkSize         = Size{Width: 19, Height: 21}
	DisappearingItemSize = Size{Width: 25, Height: 25}
)

type known struct {
	kind   Kind
	size   Size
	offset Offset
}

var knownCursors = []known{
	{KindArrow, ArrowSize, Offset{DX: 21, DY: 32}},
	{KindPointingHand, HandSize, Offset{DX: 21.5, DY: 32}},
	{KindOpenHand, HandSize, Offset{DX: 24, DY: 24}},
	{KindClosedHand, HandSize, Offset{DX: 24, DY: 22.5}},
	{KindIBeam, IBeamSize, Offset{DX: 24.5, DY: 24.5}},
	{KindResizeLeftRight, ResizeLeftRightSize, Offset{DX: 24.5, DY: 24.5}},
	{KindResizeUpDown, ResizeUpDownSize, Offset{DX: 24.5, DY: 24.5}},
	{KindDragLink, DragLinkSize, Offset{DX: 21.5, DY: 32}},
	{KindDisappearingItem, DisappearingItemSize, Offset{DX: 23.5, DY: 25.5}},
}

type candidate struct {
	kind   Kind
	digest Digest
	offset Offset
}

type entry struct {
	// kinds lists every cursor of this size in table order.
	kinds []known
	// candidates holds the kinds of this size with a known digest.
	candidates []candidate
}

func (e entry) configured(k Kind) bool {
	for _, c := range e.candidates {
		if c.kind == k {
			return true
		}
	}
	return false
}

// Resolver maps descriptors to offsets. It is immutable after construction and safe for
// concurrent use.
type Resolver struct {
	table map[Size]entry
}

// NewResolver compiles the size table. digests holds the known images of cursors that share
// a size with another cursor. Within a shared size, a cursor matching none of the digests
// resolves to the first kind listed for that size without a digest, and to TextBeamFallback
// once every kind of that size has one.
func NewResolver(digests map[Kind]Digest) *Resolver {
	table := make(map[Size]entry, len(knownCursors))
	for _, c := range knownCursors {
		e := table[c.size]
		e.kinds = append(e.kinds, c)
		if d, ok := digests[c.kind]; ok {
			e.candidates = append(e.candidates, candidate{kind: c.kind, digest: d, offset: c.offset})
		}
		table[c.size] = e
	}
	return &Resolver{table: table}
}

// NewResolverFromImages hashes the reference image of each kind once and builds a Resolver
// from those digests together with the already known ones. An image takes precedence over a
// digest of the same kind.
func NewResolverFromImages(images map[Kind][]byte, digests map[Kind]Digest) *Resolver {
	all := make(map[Kind]Digest, len(images)+len(digests))
	for k, d := range digests {
		all[k] = d
	}
	for k, pixels := range images {
		all[k] = DigestOf(pixels)
	}
	return NewResolver(all)
}

// Resolve returns the hot-spot offset for d. It never fails.
func (r *Resolver) Resolve(d Descriptor) Offset {
	_, off := r.Lookup(d)
	return off
}

// Classify returns the kind the heuristic picks for d.
func (r *Resolver) Classify(d Descriptor) Kind {
	k, _ := r.Lookup(d)
	return k
}

// Lookup returns both the kind and the offset, hashing pixels at most once.
func (r *Resolver) Lookup(d Descriptor) (Kind, Offset) {
	e, ok := r.table[d.Size]
	if !ok {
		return KindUnknown, DefaultOffset
	}
	if len(e.kinds) == 1 || len(e.candidates) == 0 {
		return e.kinds[0].kind, e.kinds[0].offset
	}

	sum := d.Digest()
	for _, c := range e.candidates {
		if c.digest == sum {
			return c.kind, c.offset
		}
	}
	for _, k := range e.kinds {
		if !e.configured(k.kind) {
			return k.kind, k.offset
		}
	}
	return KindTextBeamVariant, TextBeamFallback
}
