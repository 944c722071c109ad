package util

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// ReadFile reads the whole file, decompressing it when it ends in .gz
func ReadFile(fn string) ([]byte, error) {
	in, err := os.Open(fn)
	if err != nil {
		return nil, fmt.Errorf("error opening: %s. %w", fn, err)
	}
	defer in.Close()
	var r io.Reader = in
	if filepath.Ext(fn) == ".gz" {
		gr, err := gzip.NewReader(in)
		if err != nil {
			return nil, fmt.Errorf("gzip: error opening: %s. %w", fn, err)
		}
		defer gr.Close()
		r = gr
	}
	return io.ReadAll(r)
}

type JSONEncoder interface {
	// Encode writes v as a single line
	Encode(v any) error
	// Count returns the number of records written
	Count() int
	// Close flushes and closes the stream
	Close() error
}

type ndjsonWriter struct {
	out   *os.File
	gw    *gzip.Writer
	enc   *json.Encoder
	count int
	mu    sync.Mutex
}

var _ JSONEncoder = (*ndjsonWriter)(nil)

func (n *ndjsonWriter) Encode(v any) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.enc.Encode(v); err != nil {
		return err
	}
	n.count++
	return nil
}

func (n *ndjsonWriter) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.count
}

func (n *ndjsonWriter) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.gw != nil {
		if err := n.gw.Close(); err != nil {
			return fmt.Errorf("gzip: error closing: %w", err)
		}
		n.gw = nil
	}
	if n.out != nil {
		if err := n.out.Close(); err != nil {
			return err
		}
		n.out = nil
	}
	return nil
}

// NewNDJSONEncoder returns an encoder which writes JSON new line delimited files. Files ending in .gz are compressed. It is safe for concurrent use.
func NewNDJSONEncoder(fn string) (JSONEncoder, error) {
	out, err := os.Create(fn)
	if err != nil {
		return nil, fmt.Errorf("error creating: %s. %w", fn, err)
	}
	var w io.Writer = out
	var gw *gzip.Writer
	if filepath.Ext(fn) == ".gz" {
		gw = gzip.NewWriter(out)
		w = gw
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &ndjsonWriter{
		out: out,
		gw:  gw,
		enc: enc,
	}, nil
}
