package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/collecty/richtext/pkg/codec"
	"github.com/collecty/richtext/pkg/ports"
)

// maxInput bounds documents read from files or stdin.
const maxInput = 16 << 20

// ReadDocument returns the JSON body of a document read from path.
// An empty path or "-" reads stdin. Files ending in .yaml or .yml are
// converted to JSON first.
func ReadDocument(path string, stdin io.Reader) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(io.LimitReader(stdin, maxInput))
	} else {
		data, err = readFile(path)
	}
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return codec.YAMLToJSON(data)
	}
	return data, nil
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxInput))
}

// LoadDocument returns the body of a stored content record.
func LoadDocument(ctx context.Context, store ports.ContentStore, id string) ([]byte, error) {
	content, err := store.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load content %q: %w", id, err)
	}
	return content.Body, nil
}
