package buttons

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyPress(t *testing.T) {
	tests := []struct {
		name  string
		typ   uint16
		code  uint16
		value int32
		want  Event
		ok    bool
	}{
		{"enter press", evKey, keyEnter, 1, Select, true},
		{"arrow repeat", evKey, keyDown, 2, Down, true},
		{"release ignored", evKey, keyUp, 0, "", false},
		{"exit does not repeat", evKey, keyF4, 2, "", false},
		{"unknown key", evKey, 30, 1, "", false},
		{"not a key event", 0x02, keyUp, 1, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := keyPress(tt.typ, tt.code, tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEvent(t *testing.T) {
	e, ok := ParseEvent("select")
	assert.True(t, ok)
	assert.Equal(t, Select, e)

	_, ok = ParseEvent("jump")
	assert.False(t, ok)
}
