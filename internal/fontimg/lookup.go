package fontimg

import "encoding/binary"

// HashBucket reads the {offsetTableOffset, offsetTableSize} pair for hash
// bucket index bucket.
func (d Descriptor) HashBucket(image []byte, bucket int) (tableOffset, tableSize uint16, err error) {
	pos := d.HashEntryOff + bucket*HashEntrySize
	if pos < 0 || pos+HashEntrySize > len(image) {
		return 0, 0, Errorf("hash bucket %d at %d out of bounds", bucket, pos)
	}
	tableOffset = binary.LittleEndian.Uint16(image[pos : pos+2])
	tableSize = binary.LittleEndian.Uint16(image[pos+2 : pos+4])
	return tableOffset, tableSize, nil
}

// Lookup finds the offset table entry for codepoint, partitioning
// codepoints into short contiguous runs via the font's hash table and
// scanning at most the bucket's recorded offsetTableSize entries, further
// bounded by scanBound (0 means unbounded beyond the bucket's own size) to
// guard against a malformed font turning a miss into an unbounded scan.
//
// It returns the absolute byte offset of the matching offset table entry
// and found=true, or found=false if no entry in the bucket's run matches.
func (d Descriptor) Lookup(image []byte, codepoint uint32, scanBound int) (entryPos int, found bool, err error) {
	if d.HashTableSize <= 0 {
		return 0, false, Errorf("hash table size is %d", d.HashTableSize)
	}
	bucket := int(codepoint) % d.HashTableSize

	tableOffset, tableSize, err := d.HashBucket(image, bucket)
	if err != nil {
		return 0, false, err
	}

	limit := int(tableSize)
	if scanBound > 0 && limit > scanBound {
		limit = scanBound
	}

	base := d.OffsetEntryOff + int(tableOffset)
	for i := 0; i < limit; i++ {
		pos := base + i*d.OffsetEntrySize
		cp, err := d.CodepointAt(image, pos)
		if err != nil {
			return 0, false, err
		}
		if cp == codepoint {
			return pos, true, nil
		}
	}
	return 0, false, nil
}
