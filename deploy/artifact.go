package deploy

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/artfi/suiops"
	"github.com/artfi/suiops/config"
	"github.com/artfi/suiops/errors"
)

// DefaultObjects are created when the NFT package is published.
var DefaultObjects = []string{
	"{package}::nft::RoyaltyInfo",
	"{package}::nft::AdminCap",
	"{package}::nft::MinterCap",
	"0x2::display::Display<{package}::nft::ArtFiNFT>",
	"0x2::package::Publisher",
	"0x2::package::UpgradeCap",
}

// ExpectedTypes returns object types with the package placeholder replaced
// by the package id.
func ExpectedTypes(objects []string, pkg suiops.ObjectID) []string {
	res := make([]string, len(objects))
	for i, o := range objects {
		res[i] = strings.Replace(o, config.PackagePlaceholder, pkg.String(), -1)
	}
	return res
}

// Artifact records a deployment. TypesID holds the id of the object of the
// same position in Types.
type Artifact struct {
	Types struct {
		PlaceType []string `json:"place_type"`
	} `json:"types"`
	PackageID suiops.ObjectID   `json:"PACKAGE_ID"`
	TypesID   []suiops.ObjectID `json:"types_id"`
}

// Object returns the id of the created object of given type.
func (a *Artifact) Object(objectType string) (suiops.ObjectID, bool) {
	for i, t := range a.Types.PlaceType {
		if t == objectType && i < len(a.TypesID) {
			return a.TypesID[i], true
		}
	}
	return suiops.ZeroAddress, false
}

// WriteArtifact writes the artifact to given path, replacing the previous
// one.
func WriteArtifact(path string, a *Artifact) error {
	raw, err := json.MarshalIndent(a, "", "    ")
	if err != nil {
		return errors.Wrapf(errors.ErrHuman, "cannot serialize artifact: %s", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(errors.ErrInput, "create artifact directory: %s", err)
	}
	if err := ioutil.WriteFile(path, raw, 0644); err != nil {
		return errors.Wrapf(errors.ErrInput, "write artifact %q: %s", path, err)
	}
	return nil
}

// ReadArtifact loads a previously written artifact.
func ReadArtifact(path string) (*Artifact, error) {
	raw, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrapf(errors.ErrNotFound, "artifact %q", path)
	}
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "read artifact %q: %s", path, err)
	}
	var a Artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "malformed artifact %q: %s", path, err)
	}
	return &a, nil
}
