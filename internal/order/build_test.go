package order

import (
	"testing"

	"github.com/kantord/headson/internal/arena"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildObjectArena(t *testing.T, kv map[string]string) *arena.Arena {
	t.Helper()
	b := arena.NewBuilder()
	keys := make([]string, 0, len(kv))
	children := make([]int, 0, len(kv))
	for k, v := range kv {
		keys = append(keys, k)
		children = append(children, b.PushString(v))
	}
	root := b.PushObject(keys, children, len(kv))
	b.SetRoot(root)
	return b.Finish()
}

func TestKeysExpandInLexicographicOrder(t *testing.T) {
	a := buildObjectArena(t, map[string]string{"b": "1", "a": "2"})
	o := Build(a, Config{MaxStringGraphemes: 10, ArrayMaxItems: 10})

	require.Len(t, o.Children[Root], 2)
	first := o.Nodes[o.Children[Root][0]]
	second := o.Nodes[o.Children[Root][1]]
	assert.Equal(t, "a", first.Key)
	assert.Equal(t, "b", second.Key)
}

func TestGrepWeakPrefersValueMatchOverAlphaOrder(t *testing.T) {
	a := buildObjectArena(t, map[string]string{"aaa": "foo", "zzz": "llibre"})
	o := Build(a, Config{MaxStringGraphemes: 10, ArrayMaxItems: 10, GrepWeak: "llibre"})

	// by_priority[0] is always root; the next entries should surface
	// the zzz branch (its key and string value) ahead of aaa's.
	zzzPID := findChildByKey(o, Root, "zzz")
	aaaPID := findChildByKey(o, Root, "aaa")
	require.NotEqual(t, PID(-1), zzzPID)
	require.NotEqual(t, PID(-1), aaaPID)
	assert.Less(t, rankOf(o, zzzPID), rankOf(o, aaaPID), "zzz should outrank aaa once grep-weak matches its value")
}

func TestGrepWeakKeyMatchBiasesObjectKey(t *testing.T) {
	a := buildObjectArena(t, map[string]string{"libre_item": "1", "aaaa": "2"})
	o := Build(a, Config{MaxStringGraphemes: 10, ArrayMaxItems: 10, GrepWeak: "libre"})

	libre := findChildByKey(o, Root, "libre_item")
	aaaa := findChildByKey(o, Root, "aaaa")
	assert.Less(t, rankOf(o, libre), rankOf(o, aaaa))
}

func findChildByKey(o *Order, parent PID, key string) PID {
	for _, c := range o.Children[parent] {
		if o.Nodes[c].Key == key {
			return c
		}
	}
	return PID(-1)
}

func rankOf(o *Order, pid PID) int {
	for i, p := range o.ByPriority {
		if p == pid {
			return i
		}
	}
	return -1
}

func TestArrayHeadBiasFavorsEarlyIndices(t *testing.T) {
	b := arena.NewBuilder()
	children := make([]int, 20)
	for i := range children {
		children[i] = b.PushAtomic(arena.Number, "0")
	}
	root := b.PushArray(children, len(children), nil)
	b.SetRoot(root)
	a := b.Finish()

	o := Build(a, Config{MaxStringGraphemes: 10, ArrayMaxItems: 20, ArrayBias: HeadBias})
	kids := o.Children[Root]
	require.Len(t, kids, 20)
	for i := 1; i < len(kids); i++ {
		assert.LessOrEqual(t, rankOf(o, kids[i-1]), rankOf(o, kids[i]), "head bias should rank earlier indices no worse than later ones")
	}
}

func TestSafetyCapBoundsTotalNodes(t *testing.T) {
	b := arena.NewBuilder()
	children := make([]int, 5000)
	for i := range children {
		children[i] = b.PushAtomic(arena.Number, "0")
	}
	root := b.PushArray(children, len(children), nil)
	b.SetRoot(root)
	a := b.Finish()

	o := Build(a, Config{MaxStringGraphemes: 10, ArrayMaxItems: 5000})
	assert.LessOrEqual(t, o.TotalNodes(), SafetyCap)
}
