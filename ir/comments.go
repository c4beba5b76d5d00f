package ir

// CommentMap is a flat side table mapping a key path, as it existed during
// the most recent parse, to a single line of comment text. It is carried
// alongside a tree, never inside it: structural edits to the tree do not
// migrate comment storage, so renaming or reordering keys silently orphans
// their comments. That loss is accepted; the entries are bounded by document
// size and discarded with the document.
type CommentMap map[string]string

// Clone returns a copy of the map.
func (c CommentMap) Clone() CommentMap {
	if c == nil {
		return nil
	}
	res := make(CommentMap, len(c))
	for k, v := range c {
		res[k] = v
	}
	return res
}
