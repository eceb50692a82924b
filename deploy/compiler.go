package deploy

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"os/exec"
	"strings"

	"github.com/artfi/suiops"
	"github.com/artfi/suiops/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Compiled is the output of a Move package build.
type Compiled struct {
	// Modules are base64 encoded module bytecodes.
	Modules []string `json:"modules"`
	// Dependencies are ids of the packages the modules depend on.
	Dependencies []string `json:"dependencies"`
}

// Decode returns module bytecodes and dependency ids.
func (c *Compiled) Decode() ([][]byte, []suiops.ObjectID, error) {
	if len(c.Modules) == 0 {
		return nil, nil, errors.Wrap(errors.ErrBuild, "no modules compiled")
	}
	modules := make([][]byte, len(c.Modules))
	for i, m := range c.Modules {
		raw, err := base64.StdEncoding.DecodeString(m)
		if err != nil {
			return nil, nil, errors.Wrapf(errors.ErrBuild, "module %d: %s", i, err)
		}
		modules[i] = raw
	}
	deps := make([]suiops.ObjectID, len(c.Dependencies))
	for i, d := range c.Dependencies {
		id, err := suiops.ParseAddress(d)
		if err != nil {
			return nil, nil, errors.Wrapf(errors.ErrBuild, "dependency %q: %s", d, err)
		}
		deps[i] = id
	}
	return modules, deps, nil
}

// Compiler builds a Move package.
type Compiler interface {
	Build(ctx context.Context, path string) (*Compiled, error)
}

// MoveCompiler builds packages using the sui binary.
type MoveCompiler struct {
	// Binary is the sui executable, looked up in PATH when not absolute.
	Binary string
	logger log.Logger
}

var _ Compiler = (*MoveCompiler)(nil)

// NewMoveCompiler returns a compiler that runs given sui binary.
func NewMoveCompiler(binary string) *MoveCompiler {
	if binary == "" {
		binary = "sui"
	}
	return &MoveCompiler{Binary: binary, logger: log.NewNopLogger()}
}

// WithLogger sets the logger used to report the build.
func (c *MoveCompiler) WithLogger(l log.Logger) *MoveCompiler {
	c.logger = l.With("module", "deploy")
	return c
}

// Build runs "sui move build --dump-bytecode-as-base64 --path <path>". Any
// failure is an ErrBuild.
func (c *MoveCompiler) Build(ctx context.Context, path string) (*Compiled, error) {
	args := []string{"move", "build", "--dump-bytecode-as-base64", "--path", path}
	c.logger.Info("building move package", "path", path)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, errors.Wrapf(errors.ErrBuild, "%s %s: %s: %s",
			c.Binary, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return parseBuildOutput(stdout.Bytes())
}

// parseBuildOutput decodes the build result. The compiler may print
// progress lines before the JSON document.
func parseBuildOutput(out []byte) (*Compiled, error) {
	start := bytes.IndexByte(out, '{')
	if start < 0 {
		return nil, errors.Wrap(errors.ErrBuild, "no build result in compiler output")
	}
	var c Compiled
	if err := json.Unmarshal(out[start:], &c); err != nil {
		return nil, errors.Wrapf(errors.ErrBuild, "malformed build result: %s", err)
	}
	return &c, nil
}
