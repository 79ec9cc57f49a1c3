// Package udf adapts extfs operations to the calling convention of a
// database engine's external function runtime: every argument and result
// travels with a null indicator, and a null argument short-circuits the call.
package udf

import "math"

// NullInd is a host null indicator.
type NullInd int16

const (
	// NotNull marks a present value
	NotNull NullInd = 0
	// Null marks an absent value
	Null NullInd = -1
)

// IsNull reports whether the indicator marks an absent value.
func (n NullInd) IsNull() bool {
	return n < 0
}

// Varchar is a VARCHAR argument.
type Varchar struct {
	Value string
	Ind   NullInd
}

// Char is a CHAR argument, used for mode strings.
type Char struct {
	Value string
	Ind   NullInd
}

// Clob is a CLOB argument. Data carries its own length; it is not
// null-terminated.
type Clob struct {
	Data []byte
	Ind  NullInd
}

// V builds a present Varchar.
func V(s string) Varchar { return Varchar{Value: s} }

// C builds a present Char.
func C(s string) Char { return Char{Value: s} }

// B builds a present Clob.
func B(data []byte) Clob { return Clob{Data: data} }

// IntResult is an INTEGER result.
type IntResult struct {
	Value int32
	Ind   NullInd
}

// BigIntResult is a BIGINT result.
type BigIntResult struct {
	Value int64
	Ind   NullInd
}

func anyNull(inds ...NullInd) bool {
	for _, ind := range inds {
		if ind.IsNull() {
			return true
		}
	}
	return false
}

// intResult narrows a status to INTEGER, saturating so a negative status
// never wraps to a positive one.
func intResult(code int) IntResult {
	switch {
	case code < math.MinInt32:
		code = math.MinInt32
	case code > math.MaxInt32:
		code = math.MaxInt32
	}
	return IntResult{Value: int32(code), Ind: NotNull}
}
