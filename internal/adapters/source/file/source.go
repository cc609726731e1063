package file

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bnema/unich-miner/internal/ports"
)

// Lines reads a text file as an ordered list of lines. Blank-line handling
// is left to the consumer.
type Lines struct {
	path string
}

var (
	_ ports.CredentialSource = (*Lines)(nil)
	_ ports.ProxySource      = (*Lines)(nil)
)

func NewLines(path string) *Lines {
	return &Lines{path: filepath.Clean(path)}
}

func (l *Lines) Path() string {
	return l.path
}

func (l *Lines) CredentialLines(ctx context.Context) ([]string, error) {
	return l.read(ctx)
}

func (l *Lines) ProxyLines(ctx context.Context) ([]string, error) {
	return l.read(ctx)
}

func (l *Lines) read(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", l.path, err)
	}

	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", l.path, err)
	}

	return lines, nil
}
