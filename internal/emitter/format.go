package emitter

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/shopmonkeyus/go-common/logger"
)

// Formatter formats generated source. The filepath selects the formatting rules (parser, config file).
type Formatter interface {
	Format(ctx context.Context, filepath string, src string) (string, error)
}

type passthroughFormatter struct{}

var _ Formatter = (*passthroughFormatter)(nil)

func (passthroughFormatter) Format(_ context.Context, _ string, src string) (string, error) {
	return src, nil
}

// Passthrough returns a formatter which returns the source unchanged.
func Passthrough() Formatter {
	return passthroughFormatter{}
}

type prettierFormatter struct {
	logger logger.Logger
	path   string
}

var _ Formatter = (*prettierFormatter)(nil)

func (p *prettierFormatter) Format(ctx context.Context, filepath string, src string) (string, error) {
	p.logger.Trace("running %s --stdin-filepath %s", p.path, filepath)
	c := exec.CommandContext(ctx, p.path, "--stdin-filepath", filepath)
	c.Stdin = strings.NewReader(src)
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr
	if err := c.Run(); err != nil {
		return "", errors.Wrapf(err, "error formatting %s: %s", filepath, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// NewPrettierFormatter returns a formatter running prettier, which resolves the prettier config of the
// target path. When prettier is not installed the source is returned unchanged.
func NewPrettierFormatter(logger logger.Logger) Formatter {
	if path, err := exec.LookPath("prettier"); err == nil {
		return &prettierFormatter{logger: logger, path: path}
	}
	logger.Warn("prettier was not found, the schema module will not be formatted")
	return Passthrough()
}
