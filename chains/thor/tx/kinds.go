package tx

import (
	"encoding/hex"
	"fmt"
	"math/big"
)

// Kind converts a typed value into an RLP item and back. An item is either a []byte (RLP
// string) or a []interface{} (RLP list), which is the shape the rlp package produces when
// decoding into an interface{}.
//
// Encoding is canonical: every value has exactly one item form, and Decode rejects item forms
// that Encode would never produce.
type Kind[T any] interface {
	Encode(v T, ctx string) (interface{}, error)
	Decode(item interface{}, ctx string) (T, error)
}

func itemBytes(item interface{}, ctx string) ([]byte, error) {
	b, ok := item.([]byte)
	if !ok {
		return nil, fieldError(ctx, "expected string item")
	}

	return b, nil
}

func itemList(item interface{}, ctx string) ([]interface{}, error) {
	l, ok := item.([]interface{})
	if !ok {
		return nil, fieldError(ctx, "expected list item")
	}

	return l, nil
}

func joinCtx(ctx, name string) string {
	if ctx == "" {
		return name
	}

	return ctx + "." + name
}

// copyBytes returns nil for empty input so decoded and constructed values compare equal.
func copyBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}

	c := make([]byte, len(b))
	copy(c, b)
	return c
}

func checkCanonical(b []byte, maxBytes int, ctx string) error {
	if len(b) > maxBytes {
		return fieldError(ctx, fmt.Sprintf("expected at most %d bytes, got %d", maxBytes, len(b)))
	}

	if len(b) > 0 && b[0] == 0 {
		return fieldError(ctx, "non-canonical integer (leading zero bytes)")
	}

	return nil
}

// NumericKind is an unsigned big integer of at most MaxBytes bytes, serialized big-endian
// without leading zeros. Zero is the empty string.
type NumericKind struct {
	MaxBytes int
}

func (k NumericKind) Encode(v *big.Int, ctx string) (interface{}, error) {
	if v == nil {
		return nil, dataTypeError(ctx, "missing value")
	}

	if v.Sign() < 0 {
		return nil, &Error{Kind: InvalidDataType, Field: ctx, Msg: "negative value", Value: v.String()}
	}

	b := v.Bytes()
	if len(b) > k.MaxBytes {
		return nil, &Error{
			Kind:  InvalidDataType,
			Field: ctx,
			Msg:   fmt.Sprintf("value exceeds %d bytes", k.MaxBytes),
			Value: v.String(),
		}
	}

	return b, nil
}

func (k NumericKind) Decode(item interface{}, ctx string) (*big.Int, error) {
	b, err := itemBytes(item, ctx)
	if err != nil {
		return nil, err
	}

	if err := checkCanonical(b, k.MaxBytes, ctx); err != nil {
		return nil, err
	}

	return new(big.Int).SetBytes(b), nil
}

// UintKind is NumericKind for values that fit a uint64. MaxBytes must not exceed 8.
type UintKind struct {
	MaxBytes int
}

func (k UintKind) Encode(v uint64, ctx string) (interface{}, error) {
	if k.MaxBytes < 8 && v>>(8*uint(k.MaxBytes)) != 0 {
		return nil, &Error{
			Kind:  InvalidDataType,
			Field: ctx,
			Msg:   fmt.Sprintf("value exceeds %d bytes", k.MaxBytes),
			Value: fmt.Sprint(v),
		}
	}

	return new(big.Int).SetUint64(v).Bytes(), nil
}

func (k UintKind) Decode(item interface{}, ctx string) (uint64, error) {
	b, err := itemBytes(item, ctx)
	if err != nil {
		return 0, err
	}

	if err := checkCanonical(b, k.MaxBytes, ctx); err != nil {
		return 0, err
	}

	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	return v, nil
}

// BlobKind is a byte string of exactly Bytes bytes.
type BlobKind struct {
	Bytes int
}

func (k BlobKind) Encode(v []byte, ctx string) (interface{}, error) {
	if len(v) != k.Bytes {
		return nil, &Error{
			Kind:  InvalidDataType,
			Field: ctx,
			Msg:   fmt.Sprintf("expected %d bytes, got %d", k.Bytes, len(v)),
			Value: "0x" + hex.EncodeToString(v),
		}
	}

	return copyBytes(v), nil
}

func (k BlobKind) Decode(item interface{}, ctx string) ([]byte, error) {
	b, err := itemBytes(item, ctx)
	if err != nil {
		return nil, err
	}

	if len(b) != k.Bytes {
		return nil, fieldError(ctx, fmt.Sprintf("expected %d bytes, got %d", k.Bytes, len(b)))
	}

	return copyBytes(b), nil
}

// NullableBlobKind is a BlobKind where an absent value (nil) is the empty string.
type NullableBlobKind struct {
	Bytes int
}

func (k NullableBlobKind) Encode(v []byte, ctx string) (interface{}, error) {
	if len(v) == 0 {
		return []byte{}, nil
	}

	return BlobKind{Bytes: k.Bytes}.Encode(v, ctx)
}

func (k NullableBlobKind) Decode(item interface{}, ctx string) ([]byte, error) {
	b, err := itemBytes(item, ctx)
	if err != nil {
		return nil, err
	}

	if len(b) == 0 {
		return nil, nil
	}

	return BlobKind{Bytes: k.Bytes}.Decode(b, ctx)
}

// CompactBlobKind is a fixed length blob serialized with its leading zero bytes stripped.
type CompactBlobKind struct {
	Bytes int
}

func (k CompactBlobKind) Encode(v []byte, ctx string) (interface{}, error) {
	if _, err := (BlobKind{Bytes: k.Bytes}).Encode(v, ctx); err != nil {
		return nil, err
	}

	i := 0
	for i < len(v) && v[i] == 0 {
		i++
	}

	return copyBytes(v[i:]), nil
}

func (k CompactBlobKind) Decode(item interface{}, ctx string) ([]byte, error) {
	b, err := itemBytes(item, ctx)
	if err != nil {
		return nil, err
	}

	if err := checkCanonical(b, k.Bytes, ctx); err != nil {
		return nil, err
	}

	out := make([]byte, k.Bytes)
	copy(out[k.Bytes-len(b):], b)
	return out, nil
}

// BufferKind is a byte string of any length.
type BufferKind struct{}

func (BufferKind) Encode(v []byte, ctx string) (interface{}, error) {
	if v == nil {
		return []byte{}, nil
	}

	return copyBytes(v), nil
}

func (BufferKind) Decode(item interface{}, ctx string) ([]byte, error) {
	b, err := itemBytes(item, ctx)
	if err != nil {
		return nil, err
	}

	return copyBytes(b), nil
}

// ListKind is a homogeneous list of Item values.
type ListKind[T any] struct {
	Item Kind[T]
}

func (k ListKind[T]) Encode(v []T, ctx string) (interface{}, error) {
	items := make([]interface{}, 0, len(v))
	for i := range v {
		item, err := k.Item.Encode(v[i], fmt.Sprintf("%s.#%d", ctx, i))
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

func (k ListKind[T]) Decode(item interface{}, ctx string) ([]T, error) {
	items, err := itemList(item, ctx)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, nil
	}

	out := make([]T, 0, len(items))
	for i, it := range items {
		v, err := k.Item.Decode(it, fmt.Sprintf("%s.#%d", ctx, i))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, nil
}

// Field is one named member of a StructKind. Build it with Bind.
type Field[S any] struct {
	Name   string
	encode func(s *S, ctx string) (interface{}, error)
	decode func(s *S, item interface{}, ctx string) error
}

// Bind ties a named field of S to the kind used to serialize it.
func Bind[S, V any](name string, kind Kind[V], get func(*S) V, set func(*S, V)) Field[S] {
	return Field[S]{
		Name: name,
		encode: func(s *S, ctx string) (interface{}, error) {
			return kind.Encode(get(s), joinCtx(ctx, name))
		},
		decode: func(s *S, item interface{}, ctx string) error {
			v, err := kind.Decode(item, joinCtx(ctx, name))
			if err != nil {
				return err
			}
			set(s, v)
			return nil
		},
	}
}

// StructKind serializes S as a list of its Fields, in order.
type StructKind[S any] struct {
	Fields []Field[S]
}

func (k StructKind[S]) Encode(v S, ctx string) (interface{}, error) {
	items := make([]interface{}, 0, len(k.Fields))
	for _, f := range k.Fields {
		item, err := f.encode(&v, ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

func (k StructKind[S]) Decode(item interface{}, ctx string) (S, error) {
	var v S

	items, err := itemList(item, ctx)
	if err != nil {
		return v, err
	}

	if len(items) != len(k.Fields) {
		return v, fieldError(ctx, fmt.Sprintf("expected %d fields, got %d", len(k.Fields), len(items)))
	}

	for i, f := range k.Fields {
		if err := f.decode(&v, items[i], ctx); err != nil {
			return v, err
		}
	}

	return v, nil
}

// Extend returns a StructKind with extra fields appended.
func (k StructKind[S]) Extend(fields ...Field[S]) StructKind[S] {
	all := make([]Field[S], 0, len(k.Fields)+len(fields))
	all = append(all, k.Fields...)
	all = append(all, fields...)
	return StructKind[S]{Fields: all}
}
