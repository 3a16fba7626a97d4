package hrclient

import "strings"

// dataPrefix marks the frames we care about; anything else (comments,
// event: lines the backend never sends) is skipped.
const dataPrefix = "data: "

// frameDelimiter separates SSE frames.
const frameDelimiter = "\n\n"

// FrameDecoder reassembles complete SSE frames from arbitrarily chunked
// stream input. Chunks go in via Push, complete `data: ` payloads come out.
// A partial frame left in the buffer when the stream ends never surfaces.
type FrameDecoder struct {
	buf strings.Builder
}

// NewFrameDecoder returns a decoder with an empty buffer.
func NewFrameDecoder() *FrameDecoder {
	return &FrameDecoder{}
}

// Push appends a chunk to the buffer and returns the payloads of every
// frame completed by it, in wire order. Returns nil when the chunk
// completes no frame.
func (d *FrameDecoder) Push(chunk string) []string {
	d.buf.WriteString(chunk)

	data := d.buf.String()
	idx := strings.LastIndex(data, frameDelimiter)
	if idx < 0 {
		return nil
	}

	frames := strings.Split(data[:idx], frameDelimiter)
	d.buf.Reset()
	d.buf.WriteString(data[idx+len(frameDelimiter):])

	var payloads []string
	for _, frame := range frames {
		if payload, ok := framePayload(frame); ok {
			payloads = append(payloads, payload)
		}
	}
	return payloads
}

// Close discards whatever partial frame is still buffered. The decoder is
// reusable afterwards, though in practice each stream gets its own.
func (d *FrameDecoder) Close() {
	d.buf.Reset()
}

// framePayload extracts the payload from one complete frame. Frames that
// do not carry a data prefix, or carry an empty payload, are dropped.
func framePayload(frame string) (string, bool) {
	frame = strings.TrimPrefix(frame, "\n")
	if !strings.HasPrefix(frame, dataPrefix) {
		return "", false
	}
	payload := frame[len(dataPrefix):]
	if payload == "" {
		return "", false
	}
	return payload, true
}
