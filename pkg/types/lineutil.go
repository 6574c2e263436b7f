package types

// PositionAt rebuilds the position of the character at index in text by
// replaying Advance from the priming state. Indexes count runes. An index
// past the end of text yields the position just after the last character.
func PositionAt(filename, text string, index int) Position {
	pos := NewPosition(filename, text)
	pos.Advance(EOF)

	i := 0
	for _, r := range text {
		if i >= index {
			break
		}
		pos.Advance(r)
		i++
	}
	for ; i < index; i++ {
		pos.Advance(EOF)
	}
	return pos
}
