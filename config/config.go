package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/artfi/suiops/client"
	"github.com/artfi/suiops/errors"
	"github.com/artfi/suiops/x/multisig"
)

// PackagePlaceholder in an expected object type is replaced with the id of
// the published package.
const PackagePlaceholder = "{package}"

// Config is the configuration of a single network.
type Config struct {
	// RPC is the JSON-RPC endpoint of a fullnode.
	RPC      string               `json:"rpc,omitempty"`
	Multisig *multisig.Descriptor `json:"multisig,omitempty"`
	Deploy   *Deploy              `json:"deploy,omitempty"`
}

// Deploy configures the package deployment.
type Deploy struct {
	// Path is the directory of the Move package.
	Path string `json:"path"`
	// Output is where the deployment artifact is written.
	Output string `json:"output"`
	// Objects are types of objects that the package creates when
	// published. Each of them must be found in the publish result.
	Objects []string `json:"objects,omitempty"`
	// GasBudget is optional, it is estimated when not set.
	GasBudget uint64 `json:"gasBudget,omitempty"`
}

func (d *Deploy) Validate() error {
	var errs error
	if d.Path == "" {
		errs = errors.Append(errs, errors.Field("Path", errors.ErrConfiguration, "package path not set"))
	}
	if d.Output == "" {
		errs = errors.Append(errs, errors.Field("Output", errors.ErrConfiguration, "output file not set"))
	}
	for i, o := range d.Objects {
		if strings.Count(o, "::") < 2 {
			errs = errors.Append(errs, errors.Field(fmt.Sprintf("Objects.%d", i), errors.ErrConfiguration, "%q is not an object type", o))
		}
	}
	return errs
}

func (c *Config) Validate() error {
	var errs error
	if c.RPC != "" {
		if u, err := url.Parse(c.RPC); err != nil || u.Scheme == "" || u.Host == "" {
			errs = errors.Append(errs, errors.Field("RPC", errors.ErrConfiguration, "invalid url %q", c.RPC))
		}
	}
	if c.Multisig != nil {
		errs = errors.AppendField(errs, "Multisig", c.Multisig.Validate())
	}
	if c.Deploy != nil {
		errs = errors.AppendField(errs, "Deploy", c.Deploy.Validate())
	}
	return errs
}

// Endpoint returns the configured RPC address or the public fullnode of the
// network.
func (c *Config) Endpoint(network string) (string, error) {
	if c.RPC != "" {
		return c.RPC, nil
	}
	return client.FullnodeURL(network)
}

// MultisigKey resolves the configured multisig. A hex encoded serialized
// multisig public key, when not empty, takes precedence over the
// configuration.
func (c *Config) MultisigKey(serialized string) (*multisig.PublicKey, error) {
	if serialized == "" && c.Multisig == nil {
		return nil, errors.Wrap(errors.ErrConfiguration, "signers not provided in configuration")
	}
	var d multisig.Descriptor
	if c.Multisig != nil {
		d = *c.Multisig
	}
	return multisig.ResolveSerialized(serialized, d)
}

// Path returns the location of the configuration file of a network.
func Path(dir, network string) string {
	return filepath.Join(dir, network+".json")
}

// Load reads the configuration of a network from given directory. A missing
// file is allowed for a network with a public fullnode.
func Load(dir, network string) (*Config, error) {
	if network == "" || strings.ContainsAny(network, `/\`) {
		return nil, errors.Wrapf(errors.ErrConfiguration, "invalid network name %q", network)
	}
	path := Path(dir, network)
	c, err := Read(path)
	if errors.ErrNotFound.Is(err) {
		if _, ferr := client.FullnodeURL(network); ferr != nil {
			return nil, errors.Wrapf(errors.ErrConfiguration, "no configuration file %q for network %q", path, network)
		}
		return &Config{}, nil
	}
	return c, err
}

// Read loads and validates a configuration file.
func Read(path string) (*Config, error) {
	raw, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrapf(errors.ErrNotFound, "configuration %q", path)
	}
	if err != nil {
		return nil, errors.Wrapf(errors.ErrConfiguration, "read %q: %s", path, err)
	}
	var c Config
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, errors.Wrapf(errors.ErrConfiguration, "malformed %q: %s", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, errors.Wrapf(err, "configuration %q", path)
	}
	return &c, nil
}

// Save validates the configuration before writing it to given path.
func Save(path string, c *Config) error {
	if err := c.Validate(); err != nil {
		return errors.Wrapf(err, "validation: %q", path)
	}
	raw, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrapf(errors.ErrHuman, "marshal: %s", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(errors.ErrConfiguration, "create directory: %s", err)
	}
	if err := ioutil.WriteFile(path, append(raw, '\n'), 0644); err != nil {
		return errors.Wrapf(errors.ErrConfiguration, "write %q: %s", path, err)
	}
	return nil
}
