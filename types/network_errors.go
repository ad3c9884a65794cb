package types

type DispatchError int

const (
	ErrNil DispatchError = iota // no error
	ErrGeneric
	ErrNotEnoughBalance
	ErrMarshal
	ErrSubmitTx
	ErrExpired
	ErrNotSigned
)

func (e DispatchError) String() string {
	switch e {
	case ErrNil:
		return "nil"
	case ErrGeneric:
		return "generic"
	case ErrNotEnoughBalance:
		return "not enough balance"
	case ErrMarshal:
		return "marshal"
	case ErrSubmitTx:
		return "submit tx"
	case ErrExpired:
		return "expired"
	case ErrNotSigned:
		return "not signed"
	}

	return "unknown"
}
