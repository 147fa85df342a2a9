package cursor

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(size Size, v byte) []byte {
	return bytes.Repeat([]byte{v}, size.Width*size.Height*4)
}

func offsetOf(k Kind) Offset {
	for _, c := range knownCursors {
		if c.kind == k {
			return c.offset
		}
	}
	return DefaultOffset
}

func handResolver() (*Resolver, map[Kind][]byte) {
	images := map[Kind][]byte{
		KindPointingHand: solid(HandSize, 1),
		KindOpenHand:     solid(HandSize, 2),
		KindClosedHand:   solid(HandSize, 3),
	}
	return NewResolverFromImages(images, nil), images
}

func TestResolveUnambiguousSizes(t *testing.T) {
	r, _ := handResolver()

	tests := []struct {
		size Size
		want Offset
		kind Kind
	}{
		{ArrowSize, Offset{DX: 21, DY: 32}, KindArrow},
		{IBeamSize, Offset{DX: 24.5, DY: 24.5}, KindIBeam},
		{ResizeLeftRightSize, Offset{DX: 24.5, DY: 24.5}, KindResizeLeftRight},
		{ResizeUpDownSize, Offset{DX: 24.5, DY: 24.5}, KindResizeUpDown},
		{DragLinkSize, Offset{DX: 21.5, DY: 32}, KindDragLink},
		{DisappearingItemSize, Offset{DX: 23.5, DY: 25.5}, KindDisappearingItem},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			// Pixel content must not matter for these sizes.
			for _, v := range []byte{0, 7, 255} {
				d := Descriptor{Size: tt.size, Pixels: solid(tt.size, v)}
				assert.Equal(t, tt.want, r.Resolve(d))
				assert.Equal(t, tt.kind, r.Classify(d))
			}
		})
	}
}

func TestResolveHandGroupByDigest(t *testing.T) {
	r, images := handResolver()

	pointing := r.Resolve(Descriptor{Size: HandSize, Pixels: images[KindPointingHand]})
	open := r.Resolve(Descriptor{Size: HandSize, Pixels: images[KindOpenHand]})
	closed := r.Resolve(Descriptor{Size: HandSize, Pixels: images[KindClosedHand]})

	assert.Equal(t, offsetOf(KindPointingHand), pointing)
	assert.Equal(t, offsetOf(KindOpenHand), open)
	assert.Equal(t, offsetOf(KindClosedHand), closed)
	assert.NotEqual(t, pointing, open)
	assert.NotEqual(t, pointing, closed)
	assert.NotEqual(t, open, closed)

	other := Descriptor{Size: HandSize, Pixels: solid(HandSize, 9)}
	assert.Equal(t, TextBeamFallback, r.Resolve(other))
	assert.Equal(t, KindTextBeamVariant, r.Classify(other))
}

func TestResolveHandGroupWithoutDigestsUsesPointingHand(t *testing.T) {
	r := NewResolver(nil)
	d := Descriptor{Size: HandSize, Pixels: solid(HandSize, 9)}

	assert.Equal(t, offsetOf(KindPointingHand), r.Resolve(d))
	assert.Equal(t, KindPointingHand, r.Classify(d))
}

func TestResolvePartialDigestsFallsBackToUnconfiguredKind(t *testing.T) {
	images := map[Kind][]byte{
		KindOpenHand:   solid(HandSize, 2),
		KindClosedHand: solid(HandSize, 3),
	}
	r := NewResolverFromImages(images, nil)

	pointing := Descriptor{Size: HandSize, Pixels: solid(HandSize, 1)}
	kind, off := r.Lookup(pointing)
	assert.Equal(t, KindPointingHand, kind)
	assert.Equal(t, Offset{DX: 21.5, DY: 32}, off)

	kind, off = r.Lookup(Descriptor{Size: HandSize, Pixels: images[KindClosedHand]})
	assert.Equal(t, KindClosedHand, kind)
	assert.Equal(t, Offset{DX: 24, DY: 22.5}, off)
}

func TestResolveSingleDigestStillMatches(t *testing.T) {
	closed := solid(HandSize, 3)
	r := NewResolver(map[Kind]Digest{KindClosedHand: DigestOf(closed)})

	assert.Equal(t, KindClosedHand, r.Classify(Descriptor{Size: HandSize, Pixels: closed}))
	assert.Equal(t, KindPointingHand, r.Classify(Descriptor{Size: HandSize, Pixels: solid(HandSize, 9)}))
}

func TestImagesOverrideDigests(t *testing.T) {
	open := solid(HandSize, 2)
	stale := map[Kind]Digest{KindOpenHand: DigestOf([]byte("old"))}
	r := NewResolverFromImages(map[Kind][]byte{KindOpenHand: open}, stale)

	assert.Equal(t, KindOpenHand, r.Classify(Descriptor{Size: HandSize, Pixels: open}))
}

func TestResolveUnknownSizeUsesDefault(t *testing.T) {
	r, _ := handResolver()
	d := Descriptor{Size: Size{Width: 48, Height: 48}}

	assert.Equal(t, DefaultOffset, r.Resolve(d))
	assert.Equal(t, KindUnknown, r.Classify(d))
}

func TestParseDigestRoundTrip(t *testing.T) {
	want := DigestOf([]byte("closed hand"))

	got, err := ParseDigest(want.String())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = ParseDigest("abcd")
	require.Error(t, err)
	_, err = ParseDigest("zz")
	require.Error(t, err)
}

func TestDescriptorSame(t *testing.T) {
	a := Descriptor{Serial: 3, Size: ArrowSize}
	b := Descriptor{Serial: 3, Size: HandSize}
	c := Descriptor{Serial: 4, Size: ArrowSize}

	assert.True(t, a.Same(b), "serial decides when present")
	assert.False(t, a.Same(c))
	assert.True(t, Descriptor{Size: ArrowSize}.Same(Descriptor{Size: ArrowSize}))
}

func TestArgbToRGBA(t *testing.T) {
	got := argbToRGBA([]uint32{0x80102030})
	assert.Equal(t, []byte{0x10, 0x20, 0x30, 0x80}, got)
}

func TestArrowDescriptor(t *testing.T) {
	d := ArrowDescriptor()
	require.Len(t, d.Pixels, ArrowSize.Width*ArrowSize.Height*4)
	assert.Equal(t, KindArrow, NewResolver(nil).Classify(d))
	// The tip is opaque.
	assert.Equal(t, byte(0xff), d.Pixels[3])
}
