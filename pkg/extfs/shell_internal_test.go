package extfs

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// accessViolation is the exit code Windows reports for a crashed process.
var accessViolation int64 = 0xC0000005

func TestExitStatus(t *testing.T) {
	tests := []struct {
		name   string
		code   int
		status int
		ok     bool
	}{
		{"plain exit", 2, -2, true},
		{"largest in range", math.MaxInt32, -math.MaxInt32, true},
		{"signal death", -1, 0, false},
		{"zero", 0, 0, false},
		{"access violation", int(accessViolation), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, ok := exitStatus(tt.code)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.status, status)
			if ok {
				assert.Less(t, int32(status), int32(0))
			}
		})
	}
}

func TestTailBuffer(t *testing.T) {
	b := &tailBuffer{max: 8}

	n, err := b.Write([]byte("abc"))
	assert.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "abc", b.String())

	_, _ = b.Write([]byte("defghij"))
	assert.Equal(t, "cdefghij", b.String())

	n, _ = b.Write([]byte(strings.Repeat("x", 20) + "tail"))
	assert.Equal(t, 24, n)
	assert.Equal(t, "xxxxtail", b.String())

	var unset *tailBuffer
	assert.Equal(t, "", unset.String())
}
