package hrclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameDecoderChunking(t *testing.T) {
	tests := []struct {
		name   string
		chunks []string
		want   []string
	}{
		{
			name:   "single complete frame",
			chunks: []string{"data: {\"a\":1}\n\n"},
			want:   []string{`{"a":1}`},
		},
		{
			name:   "two frames in one chunk",
			chunks: []string{"data: one\n\ndata: two\n\n"},
			want:   []string{"one", "two"},
		},
		{
			name:   "frame split mid payload",
			chunks: []string{"data: {\"type\":", "\"token\"}\n\n"},
			want:   []string{`{"type":"token"}`},
		},
		{
			name:   "frame split inside the data prefix",
			chunks: []string{"da", "ta: x\n\n"},
			want:   []string{"x"},
		},
		{
			name:   "delimiter split across chunks",
			chunks: []string{"data: x\n", "\ndata: y\n\n"},
			want:   []string{"x", "y"},
		},
		{
			name:   "byte at a time",
			chunks: []string{"d", "a", "t", "a", ":", " ", "z", "\n", "\n"},
			want:   []string{"z"},
		},
		{
			name:   "incomplete tail not emitted",
			chunks: []string{"data: done\n\ndata: partial"},
			want:   []string{"done"},
		},
		{
			name:   "frames without data prefix ignored",
			chunks: []string{"event: ping\n\ndata: real\n\n: comment\n\n"},
			want:   []string{"real"},
		},
		{
			name:   "empty payload ignored",
			chunks: []string{"data: \n\ndata: kept\n\n"},
			want:   []string{"kept"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewFrameDecoder()
			var got []string
			for _, chunk := range tt.chunks {
				got = append(got, d.Push(chunk)...)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFrameDecoderDiscardsTailOnClose(t *testing.T) {
	d := NewFrameDecoder()
	require.Equal(t, []string{"one"}, d.Push("data: one\n\ndata: never-finished"))

	d.Close()

	// The buffered partial frame is gone; new input starts clean.
	assert.Equal(t, []string{"fresh"}, d.Push("data: fresh\n\n"))
}

func TestFrameDecoderManyFramesOrdered(t *testing.T) {
	d := NewFrameDecoder()
	var got []string
	for i := 0; i < 50; i++ {
		payload := string(rune('a' + i%26))
		got = append(got, d.Push("data: "+payload+"\n")...)
		got = append(got, d.Push("\n")...)
	}
	require.Len(t, got, 50)
	assert.Equal(t, "a", got[0])
	assert.Equal(t, "b", got[1])
	assert.Equal(t, string(rune('a'+49%26)), got[49])
}
