package changeset

import (
	"context"
	"crypto/sha1"
	"encoding/hex"

	"golang.org/x/sync/errgroup"

	"github.com/signadot/cjdiff/cityjson"
	"github.com/signadot/cjdiff/encode"
	"github.com/signadot/cjdiff/ir"
)

// Fingerprint is the SHA-1 digest of the canonical encoding of a
// normalized city object.
type Fingerprint [sha1.Size]byte

func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// Of returns the fingerprint of node. Key order in node does not matter.
func Of(node *ir.Node) (Fingerprint, error) {
	d, err := encode.CanonicalBytes(node)
	if err != nil {
		return Fingerprint{}, err
	}
	return sha1.Sum(d), nil
}

// Fingerprints maps city object ids to fingerprints.
type Fingerprints map[string]Fingerprint

// Compute normalizes and fingerprints every city object of doc. With
// workers > 1 objects are processed concurrently, at most workers at a
// time; the result does not depend on workers.
func Compute(ctx context.Context, doc *cityjson.Document, workers int) (Fingerprints, error) {
	n := cityjson.NewNormalizer(doc)
	ids := doc.IDs()
	fps := make([]Fingerprint, len(ids))
	one := func(i int) error {
		norm, err := n.Object(ids[i])
		if err != nil {
			return err
		}
		fps[i], err = Of(norm)
		return err
	}
	if workers <= 1 {
		for i := range ids {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := one(i); err != nil {
				return nil, err
			}
		}
	} else {
		group, groupCtx := errgroup.WithContext(ctx)
		group.SetLimit(workers)
		for i := range ids {
			group.Go(func() error {
				if err := groupCtx.Err(); err != nil {
					return err
				}
				return one(i)
			})
		}
		if err := group.Wait(); err != nil {
			return nil, err
		}
	}
	res := make(Fingerprints, len(ids))
	for i, id := range ids {
		res[id] = fps[i]
	}
	return res, nil
}
