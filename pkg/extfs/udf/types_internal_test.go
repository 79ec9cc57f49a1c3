package udf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var negatedCrash int64 = -0xC0000005

func TestIntResultSaturates(t *testing.T) {
	assert.Equal(t, IntResult{Value: -2, Ind: NotNull}, intResult(-2))
	assert.Equal(t, int32(0), intResult(0).Value)

	if math.MaxInt < math.MaxInt64 {
		t.Skip("64-bit int required")
	}
	res := intResult(int(negatedCrash))
	assert.Equal(t, int32(math.MinInt32), res.Value)
	assert.Equal(t, NotNull, res.Ind)
}
