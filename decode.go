package glyphcache

// decodeUTF8Legacy decodes s one codepoint at a time using the original
// firmware's non-standard rules rather than Go's unicode/utf8: a leading
// byte that does not start a recognized sequence decodes to codepoint 0
// and advances exactly one byte — not utf8.RuneError, and not the
// variable-length resynchronization utf8.DecodeRuneInString performs.
// Continuation bytes are combined unconditionally, without checking that
// they match the 10xxxxxx form, matching the original decode loop; only a
// sequence truncated by the end of s falls back to codepoint 0 / advance
// 1, since there is no byte left to combine. Downstream rendering (and,
// critically, this cache's existing test fixtures) depends on this exact
// malformed-input behavior, so the two decoders are not interchangeable.
func decodeUTF8Legacy(s string) []uint32 {
	var out []uint32
	b := []byte(s)
	i := 0
	for i < len(b) {
		c := b[i]
		switch {
		case c < 0x80:
			out = append(out, uint32(c))
			i++

		case c&0xE0 == 0xC0:
			if cp, ok := decodeContinuation(b, i, 2, uint32(c&0x1F)); ok {
				out = append(out, cp)
				i += 2
			} else {
				out = append(out, 0)
				i++
			}

		case c&0xF0 == 0xE0:
			if cp, ok := decodeContinuation(b, i, 3, uint32(c&0x0F)); ok {
				out = append(out, cp)
				i += 3
			} else {
				out = append(out, 0)
				i++
			}

		case c&0xF8 == 0xF0:
			if cp, ok := decodeContinuation(b, i, 4, uint32(c&0x07)); ok {
				out = append(out, cp)
				i += 4
			} else {
				out = append(out, 0)
				i++
			}

		default:
			out = append(out, 0)
			i++
		}
	}
	return out
}

// decodeContinuation reads length-1 bytes following b[start], folding
// their low 6 bits into the partial codepoint seeded from the leading
// byte's payload bits, regardless of whether they are well-formed
// continuation bytes (10xxxxxx) — the original decode loop never checks.
// It reports ok=false only when the buffer ends before the sequence does.
func decodeContinuation(b []byte, start, length int, seed uint32) (uint32, bool) {
	if start+length > len(b) {
		return 0, false
	}
	cp := seed
	for j := 1; j < length; j++ {
		cp = cp<<6 | uint32(b[start+j]&0x3F)
	}
	return cp, true
}
