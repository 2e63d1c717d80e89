package encoding

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
)

// EncoderPool manages a pool of JSON encoders so the results document can
// be produced without re-allocating encoder state per run.
type EncoderPool struct {
	pool chan *json.Encoder
	size int
}

// NewEncoderPool creates a new encoder pool with specified size
func NewEncoderPool(size int) *EncoderPool {
	if size <= 0 {
		size = 4
	}

	pool := make(chan *json.Encoder, size)
	for i := 0; i < size; i++ {
		pool <- json.NewEncoder(io.Discard)
	}

	return &EncoderPool{
		pool: pool,
		size: size,
	}
}

// GetEncoder retrieves an encoder from the pool
func (ep *EncoderPool) GetEncoder() *json.Encoder {
	select {
	case encoder := <-ep.pool:
		return encoder
	default:
		slog.Debug("Encoder pool exhausted, creating new encoder")
		return json.NewEncoder(io.Discard)
	}
}

// ReturnEncoder returns an encoder to the pool
func (ep *EncoderPool) ReturnEncoder(encoder *json.Encoder) {
	select {
	case ep.pool <- encoder:
	default:
		slog.Debug("Encoder pool full, discarding encoder")
	}
}

// Marshal marshals data using the encoder pool
func (ep *EncoderPool) Marshal(v interface{}) ([]byte, error) {
	encoder := ep.GetEncoder()
	defer ep.ReturnEncoder(encoder)

	var buf bytes.Buffer
	tempEncoder := json.NewEncoder(&buf)

	if err := tempEncoder.Encode(v); err != nil {
		return nil, err
	}

	// Remove the trailing newline that json.Encoder.Encode adds
	data := buf.Bytes()
	if len(data) > 0 && data[len(data)-1] == '\n' {
		data = data[:len(data)-1]
	}

	return data, nil
}

// MarshalIndent marshals data with indentation for the on-disk results
// document.
func (ep *EncoderPool) MarshalIndent(v interface{}) ([]byte, error) {
	encoder := ep.GetEncoder()
	defer ep.ReturnEncoder(encoder)

	var buf bytes.Buffer
	tempEncoder := json.NewEncoder(&buf)
	tempEncoder.SetIndent("", "  ")

	if err := tempEncoder.Encode(v); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
