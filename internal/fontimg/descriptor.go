package fontimg

// Descriptor locates the hash table, offset table, and glyph region within
// a font image byte buffer. It holds only integer offsets, never a
// reference to the buffer itself: callers recompute a Descriptor after any
// reallocation of the underlying image, which is the normal lifecycle of a
// growing cache image.
type Descriptor struct {
	Version          uint8
	HeaderSize       int
	HashTableSize    int
	CodepointBytes   int
	OffsetFieldBytes int
	OffsetEntrySize  int
	GlyphAmount      int

	HashEntryOff    int // absolute byte offset of the hash table
	OffsetEntryOff  int // absolute byte offset of the offset table
	GlyphRegion     int // absolute byte offset of the glyph region
}

// NewDescriptor parses the header of image and locates its sections.
// Descriptor construction never mutates image; it is a pure function over
// bytes, per the font image accessor's contract.
func NewDescriptor(image []byte) (Descriptor, error) {
	if len(image) < 1 {
		return Descriptor{}, Errorf("image too short to hold a version byte")
	}

	var d Descriptor
	d.Version = image[0]

	switch d.Version {
	case 1:
		if len(image) < V1Length {
			return Descriptor{}, Errorf("version 1 header truncated (len %d)", len(image))
		}
		d.HeaderSize = V1Length
		d.HashTableSize = HashTableSizeV1
		d.CodepointBytes = CodepointBytesV1
		d.OffsetFieldBytes = OffsetBytesDefault
	case 2:
		if len(image) < V2Length {
			return Descriptor{}, Errorf("version 2 header truncated (len %d)", len(image))
		}
		d.HeaderSize = V2Length
		d.HashTableSize = int(image[5])
		d.CodepointBytes = int(image[6])
		features := image[7]
		if features&Feature2ByteGlyphOffset != 0 {
			d.OffsetFieldBytes = OffsetBytes2Byte
		} else {
			d.OffsetFieldBytes = OffsetBytesDefault
		}
	default:
		// The data model only defines versions 1 and 2; anything else is
		// malformed input, not a forward-compatible format we understand.
		return Descriptor{}, Errorf("unsupported version %d", d.Version)
	}

	if len(image) < 5 {
		return Descriptor{}, Errorf("header truncated before glyphAmount (len %d)", len(image))
	}
	d.GlyphAmount = int(readWidth(image[3:5], 2))

	d.OffsetEntrySize = d.CodepointBytes + d.OffsetFieldBytes
	d.HashEntryOff = d.HeaderSize
	d.OffsetEntryOff = d.HashEntryOff + d.HashTableSize*HashEntrySize
	d.GlyphRegion = d.OffsetEntryOff + d.OffsetEntrySize*d.GlyphAmount

	if d.GlyphRegion < 0 || d.GlyphRegion > len(image) {
		return Descriptor{}, Errorf("descriptor overflows buffer: glyph region at %d, image length %d", d.GlyphRegion, len(image))
	}
	return d, nil
}

// EntryPos returns the absolute byte offset of the index'th offset table
// entry.
func (d Descriptor) EntryPos(index int) int {
	return d.OffsetEntryOff + index*d.OffsetEntrySize
}

// CodepointAt reads the codepoint field of the offset table entry at
// absolute byte offset entryPos.
func (d Descriptor) CodepointAt(image []byte, entryPos int) (uint32, error) {
	if entryPos < 0 || entryPos+d.CodepointBytes > len(image) {
		return 0, Errorf("codepoint field at %d out of bounds", entryPos)
	}
	return readWidth(image[entryPos:entryPos+d.CodepointBytes], d.CodepointBytes), nil
}

// OffsetAt reads the offset field of the offset table entry at absolute
// byte offset entryPos.
func (d Descriptor) OffsetAt(image []byte, entryPos int) (uint32, error) {
	start := entryPos + d.CodepointBytes
	if start < 0 || start+d.OffsetFieldBytes > len(image) {
		return 0, Errorf("offset field at %d out of bounds", start)
	}
	return readWidth(image[start:start+d.OffsetFieldBytes], d.OffsetFieldBytes), nil
}

// SetOffsetAt writes v into the offset field of the offset table entry at
// absolute byte offset entryPos.
func (d Descriptor) SetOffsetAt(image []byte, entryPos int, v uint32) error {
	start := entryPos + d.CodepointBytes
	if start < 0 || start+d.OffsetFieldBytes > len(image) {
		return Errorf("offset field at %d out of bounds", start)
	}
	writeWidth(image[start:start+d.OffsetFieldBytes], d.OffsetFieldBytes, v)
	return nil
}

// GlyphAbs returns the absolute byte offset of the glyph record referenced
// by an offset table offset value.
func (d Descriptor) GlyphAbs(offsetValue uint32) int {
	return d.GlyphRegion + int(offsetValue)
}
