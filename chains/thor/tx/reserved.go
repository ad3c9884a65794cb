package tx

import (
	"encoding/binary"
	"fmt"
)

const (
	// DelegationFeature marks a fee delegated transaction.
	DelegationFeature uint32 = 1

	featuresLength = 4
)

// Reserved is the forward compatible extension area of a transaction body.
type Reserved struct {
	Features uint32
	Unused   [][]byte
}

// IsDelegated reports whether the delegation feature bit is set. A nil Reserved is not
// delegated.
func (r *Reserved) IsDelegated() bool {
	return r != nil && r.Features&DelegationFeature == DelegationFeature
}

func (r *Reserved) copy() *Reserved {
	if r == nil {
		return nil
	}

	cpy := &Reserved{Features: r.Features}
	if len(r.Unused) > 0 {
		cpy.Unused = make([][]byte, len(r.Unused))
		for i, u := range r.Unused {
			cpy.Unused[i] = copyBytes(u)
		}
	}

	return cpy
}

// slots returns the trimmed list of reserved slots. Slot 0 is the 4 bytes big-endian features
// and is always kept; trailing empty slots after it are dropped.
func (r *Reserved) slots() [][]byte {
	if r == nil {
		return nil
	}

	features := make([]byte, featuresLength)
	binary.BigEndian.PutUint32(features, r.Features)

	slots := make([][]byte, 0, 1+len(r.Unused))
	slots = append(slots, features)
	slots = append(slots, r.Unused...)

	for len(slots) > 1 && len(slots[len(slots)-1]) == 0 {
		slots = slots[:len(slots)-1]
	}

	return slots
}

// ReservedKind serializes the reserved field as a trimmed list of byte strings.
type ReservedKind struct{}

func (ReservedKind) Encode(v *Reserved, ctx string) (interface{}, error) {
	slots := v.slots()
	items := make([]interface{}, 0, len(slots))
	for _, s := range slots {
		items = append(items, copyOrEmpty(s))
	}

	return items, nil
}

func (ReservedKind) Decode(item interface{}, ctx string) (*Reserved, error) {
	items, err := itemList(item, ctx)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, nil
	}

	slots := make([][]byte, 0, len(items))
	for i, it := range items {
		b, err := itemBytes(it, fmt.Sprintf("%s.#%d", ctx, i))
		if err != nil {
			return nil, err
		}
		slots = append(slots, b)
	}

	if len(slots[len(slots)-1]) == 0 {
		return nil, fieldError(ctx, "not trimmed")
	}

	if len(slots[0]) != featuresLength {
		return nil, fieldError(joinCtx(ctx, "features"),
			fmt.Sprintf("expected %d bytes, got %d", featuresLength, len(slots[0])))
	}

	r := &Reserved{Features: binary.BigEndian.Uint32(slots[0])}
	if len(slots) > 1 {
		r.Unused = make([][]byte, 0, len(slots)-1)
		for _, s := range slots[1:] {
			r.Unused = append(r.Unused, copyBytes(s))
		}
	}

	return r, nil
}

func copyOrEmpty(b []byte) []byte {
	if len(b) == 0 {
		return []byte{}
	}

	return copyBytes(b)
}
