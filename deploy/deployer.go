package deploy

import (
	"context"

	"github.com/artfi/suiops"
	"github.com/artfi/suiops/client"
	"github.com/artfi/suiops/coin"
	"github.com/artfi/suiops/config"
	"github.com/artfi/suiops/crypto"
	"github.com/artfi/suiops/errors"
	"github.com/artfi/suiops/tx"
	"github.com/tendermint/tendermint/libs/log"
)

// Network builds and executes transactions.
type Network interface {
	tx.ChainReader
	Execute(ctx context.Context, txBytes []byte, signatures ...string) (*client.TransactionResponse, error)
}

var _ Network = (*client.Client)(nil)

// Result is the outcome of a successful deployment.
type Result struct {
	Digest   string
	Deployer suiops.Address
	Artifact *Artifact
	// Cost is set when the node reported the balance change of the
	// deployer.
	Cost *coin.Coin
}

// Deployer publishes Move packages.
type Deployer struct {
	compiler Compiler
	network  Network
	logger   log.Logger
}

// NewDeployer returns a deployer using given compiler and network.
func NewDeployer(compiler Compiler, network Network) *Deployer {
	return &Deployer{
		compiler: compiler,
		network:  network,
		logger:   log.NewNopLogger(),
	}
}

// WithLogger sets the logger used to report progress.
func (d *Deployer) WithLogger(l log.Logger) *Deployer {
	d.logger = l.With("module", "deploy")
	return d
}

// Deploy compiles and publishes the package, then writes the artifact to
// the configured output. If any expected object is not found in the
// publish result, nothing is written. Expected objects default to
// DefaultObjects.
func (d *Deployer) Deploy(ctx context.Context, cred *crypto.Credential, conf config.Deploy) (*Result, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	objects := conf.Objects
	if len(objects) == 0 {
		objects = DefaultObjects
	}

	compiled, err := d.compiler.Build(ctx, conf.Path)
	if err != nil {
		return nil, err
	}
	modules, deps, err := compiled.Decode()
	if err != nil {
		return nil, err
	}

	var (
		res    *client.TransactionResponse
		sender suiops.Address
	)
	err = crypto.WithSigner(cred, func(s crypto.Signer) error {
		sender = s.PublicKey().Address()
		d.logger.Info("deploying", "address", sender, "modules", len(modules))

		b := tx.NewBuilder(sender).WithLogger(d.logger)
		upgradeCap := b.Publish(modules, deps)
		b.TransferObjects([]tx.Argument{upgradeCap}, b.PureAddress(sender))
		if conf.GasBudget != 0 {
			b.SetGasBudget(conf.GasBudget)
		}
		data, err := b.Build(ctx, d.network)
		if err != nil {
			return errors.Wrap(err, "build publish transaction")
		}
		txBytes := data.Bytes()
		sig, err := crypto.SignTransaction(s, txBytes)
		if err != nil {
			return errors.Wrap(err, "sign publish transaction")
		}
		res, err = d.network.Execute(ctx, txBytes, sig.String())
		return err
	})
	if err != nil {
		return nil, err
	}

	result := &Result{Digest: res.Digest, Deployer: sender}
	if cost, err := res.Cost(sender); err == nil {
		result.Cost = &cost
		d.logger.Info("deployed", "digest", res.Digest, "cost", cost.SUI().String())
	}

	artifact, err := artifactOf(res, objects)
	if err != nil {
		return nil, errors.Wrapf(err, "transaction %s", res.Digest)
	}
	if err := WriteArtifact(conf.Output, artifact); err != nil {
		return nil, err
	}
	result.Artifact = artifact
	return result, nil
}

func artifactOf(res *client.TransactionResponse, objects []string) (*Artifact, error) {
	if len(res.ObjectChanges) == 0 {
		return nil, errors.Wrap(errors.ErrMissingData, "no object changes returned")
	}
	pkg, err := res.Published()
	if err != nil {
		return nil, err
	}

	a := &Artifact{PackageID: pkg}
	a.Types.PlaceType = ExpectedTypes(objects, pkg)
	for _, t := range a.Types.PlaceType {
		id, err := res.Created(t)
		if err != nil {
			return nil, err
		}
		a.TypesID = append(a.TypesID, id)
	}
	return a, nil
}
