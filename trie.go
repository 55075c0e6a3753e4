package finance

import (
	"maps"
	"slices"
)

// trie is a prefix index over descriptions.
//
// Keys are bytes so that any string, valid UTF-8 or not, comes back unchanged.
// For valid UTF-8 the byte order is the code point order. It only grows: there
// is no delete operation.
type trie struct {
	root *trieNode
}

type trieNode struct {
	children map[byte]*trieNode
	end      bool // end marks the node as the last byte of an inserted word.
}

func newTrie() *trie { return &trie{root: &trieNode{}} }

// insert adds word to the trie. Inserting twice the same word is a no-op.
func (t *trie) insert(word string) {
	n := t.root
	for i := range len(word) {
		c := word[i]
		if n.children == nil {
			n.children = make(map[byte]*trieNode)
		}
		child, ok := n.children[c]
		if !ok {
			child = &trieNode{}
			n.children[c] = child
		}
		n = child
	}
	n.end = true
}

// suggestions returns all inserted words starting with prefix, in lexicographic order.
// It returns nil if no word has that prefix.
func (t *trie) suggestions(prefix string) []string {
	n := t.root
	for i := range len(prefix) {
		child, ok := n.children[prefix[i]]
		if !ok {
			return nil
		}
		n = child
	}
	var result []string
	buf := []byte(prefix)
	n.collect(&buf, &result)
	return result
}

// collect appends to result every word below n, buf holding the bytes from the root to n.
func (n *trieNode) collect(buf *[]byte, result *[]string) {
	if n.end {
		*result = append(*result, string(*buf))
	}
	for _, c := range slices.Sorted(maps.Keys(n.children)) {
		*buf = append(*buf, c)
		n.children[c].collect(buf, result)
		*buf = (*buf)[:len(*buf)-1]
	}
}
