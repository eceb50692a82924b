package bundle

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"

	"github.com/artfi/suiops"
	"github.com/artfi/suiops/crypto"
	"github.com/artfi/suiops/errors"
	"github.com/artfi/suiops/tx"
	"github.com/artfi/suiops/x/sigs"
)

// Entry holds the collected signatures of a single transaction.
type Entry struct {
	TxBytes string `json:"txBytes"`
	// Signatures maps the signer address to its base64 encoded signature.
	Signatures map[string]string `json:"signatures"`
}

// Bytes returns the decoded transaction bytes.
func (e *Entry) Bytes() ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(e.TxBytes)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "transaction bytes: %s", err)
	}
	return raw, nil
}

// Signers returns addresses of all signers, sorted.
func (e *Entry) Signers() []string {
	res := make([]string, 0, len(e.Signatures))
	for addr := range e.Signatures {
		res = append(res, addr)
	}
	sort.Strings(res)
	return res
}

// File is a signature bundle loaded from the file system. Changes are
// written only by Save.
type File struct {
	path    string
	entries map[string]*Entry
}

// Load reads the bundle stored under given path. A missing or empty file
// is an empty bundle. A file that is not a valid bundle fails with
// ErrMissingSignatures, since no signature can be read from it.
func Load(path string) (*File, error) {
	f := &File{path: path, entries: make(map[string]*Entry)}

	raw, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		return f, nil
	}
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "read bundle %q: %s", path, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return f, nil
	}
	if err := json.Unmarshal(raw, &f.entries); err != nil {
		return nil, errors.Wrapf(errors.ErrMissingSignatures, "malformed bundle %q: %s", path, err)
	}
	for digest, e := range f.entries {
		if e == nil {
			delete(f.entries, digest)
		}
	}
	return f, nil
}

// Path returns the location of the bundle file.
func (f *File) Path() string {
	return f.path
}

// Entry returns the entry of given transaction.
func (f *File) Entry(digest suiops.Digest) (*Entry, bool) {
	e, ok := f.entries[digest.String()]
	return e, ok
}

// Digests returns digests of all transactions in the bundle, sorted.
func (f *File) Digests() []string {
	res := make([]string, 0, len(f.entries))
	for d := range f.entries {
		res = append(res, d)
	}
	sort.Strings(res)
	return res
}

// Add stores a partial signature of the transaction. A previous signature
// of the same signer is replaced.
func (f *File) Add(txBytes []byte, part *sigs.PartialSignature) error {
	if err := part.Validate(); err != nil {
		return errors.Wrap(err, "partial signature")
	}
	digest := tx.DigestOf(txBytes).String()
	encoded := base64.StdEncoding.EncodeToString(txBytes)

	e, ok := f.entries[digest]
	if !ok {
		e = &Entry{TxBytes: encoded, Signatures: make(map[string]string)}
		f.entries[digest] = e
	}
	if e.TxBytes != encoded {
		return errors.Wrapf(errors.ErrState, "bundle entry %s holds different transaction bytes", digest)
	}
	if e.Signatures == nil {
		e.Signatures = make(map[string]string)
	}
	e.Signatures[part.Signer.String()] = part.Signature.String()
	return nil
}

// Signatures returns all partial signatures of the transaction. An absent
// or empty entry fails with ErrMissingSignatures. A signature that cannot
// be decoded, or that is stored under another signer, fails with
// ErrInvalidSignature.
func (f *File) Signatures(digest suiops.Digest) ([]*sigs.PartialSignature, error) {
	e, ok := f.Entry(digest)
	if !ok || len(e.Signatures) == 0 {
		return nil, errors.Wrapf(errors.ErrMissingSignatures, "no signatures of %s in %q", digest, f.path)
	}

	parts := make([]*sigs.PartialSignature, 0, len(e.Signatures))
	for _, signer := range e.Signers() {
		addr, err := suiops.ParseAddress(signer)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidSignature, "signer %q: %s", signer, err)
		}
		sig, err := crypto.DecodeSignature(e.Signatures[signer])
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidSignature, "signature of %s: %s", signer, err)
		}
		part := &sigs.PartialSignature{Signer: addr, Signature: sig}
		if err := part.Validate(); err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidSignature, "signature of %s: %s", signer, err)
		}
		parts = append(parts, part)
	}
	return parts, nil
}

// Clear removes the entry of given transaction.
func (f *File) Clear(digest suiops.Digest) {
	delete(f.entries, digest.String())
}

// Save writes the bundle to its file, creating missing directories. The
// file is replaced atomically.
func (f *File) Save() error {
	raw, err := json.MarshalIndent(f.entries, "", "  ")
	if err != nil {
		return errors.Wrapf(errors.ErrHuman, "cannot serialize bundle: %s", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(errors.ErrInput, "create bundle directory %q: %s", dir, err)
	}
	tmp, err := ioutil.TempFile(dir, filepath.Base(f.path)+".*")
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "create bundle file: %s", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(raw, '\n')); err != nil {
		tmp.Close()
		return errors.Wrapf(errors.ErrInput, "write bundle: %s", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(errors.ErrInput, "write bundle: %s", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return errors.Wrapf(errors.ErrInput, "replace bundle %q: %s", f.path, err)
	}
	return nil
}
