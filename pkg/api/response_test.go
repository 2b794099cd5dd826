package api

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedObjectMarshal(t *testing.T) {
	tests := []struct {
		name string
		set  [][2]string
		want string
	}{
		{name: "empty", want: `{}`},
		{name: "insertion order", set: [][2]string{{"z", "1"}, {"a", "2"}, {"m", "3"}}, want: `{"z":"1","a":"2","m":"3"}`},
		{name: "replace keeps position", set: [][2]string{{"b", "1"}, {"a", "2"}, {"b", "3"}}, want: `{"b":"3","a":"2"}`},
		{name: "escaped key", set: [][2]string{{`say "hi"`, "v"}}, want: `{"say \"hi\"":"v"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newOrderedObject[string](len(tt.set))
			for _, kv := range tt.set {
				o.set(kv[0], kv[1])
			}

			b, err := json.Marshal(o)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(b))
		})
	}
}
