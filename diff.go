package cjdiff

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/signadot/cjdiff/changeset"
	"github.com/signadot/cjdiff/cityjson"
	"github.com/signadot/cjdiff/debug"
	"github.com/signadot/cjdiff/ir"
	"github.com/signadot/cjdiff/ir/kpath"
	"github.com/signadot/cjdiff/libdiff"
)

const (
	cityObjectsField = "CityObjects"
	verticesField    = "vertices"
)

// Diff compares the raw CityJSON documents src and dst. A nil opts is the
// zero Options.
func Diff(ctx context.Context, src, dst *ir.Node, opts *Options) (*Result, error) {
	srcDoc, err := cityjson.Load(src)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	dstDoc, err := cityjson.Load(dst)
	if err != nil {
		return nil, fmt.Errorf("destination: %w", err)
	}
	return DiffDocuments(ctx, srcDoc, dstDoc, opts)
}

// DiffDocuments is like Diff for loaded documents.
func DiffDocuments(ctx context.Context, src, dst *cityjson.Document, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Slow {
		return diffSlow(src, dst, opts)
	}
	return diffFast(ctx, src, dst, opts)
}

// DiffEntity diffs two versions of a city object. Either side may be nil,
// standing for the empty object. Paths are relative to the object; use
// Remaster with ObjectPath(id) to address them against the document.
func DiffEntity(id string, src, dst *ir.Node, opts ...libdiff.DiffOption) libdiff.Delta {
	if src == nil {
		src = ir.FromKeyVals(nil)
	}
	if dst == nil {
		dst = ir.FromKeyVals(nil)
	}
	d := libdiff.Diff(src, dst, opts...)
	if debug.Pipeline() {
		debug.Logf("entity %s: %d operations\n", id, d.Len())
	}
	return d
}

// ObjectPath returns the path of city object id within a document.
func ObjectPath(id string) string {
	return cityjson.ObjectPath(id)
}

func diffFast(ctx context.Context, src, dst *cityjson.Document, opts *Options) (*Result, error) {
	srcFPs, err := changeset.Compute(ctx, src, opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	dstFPs, err := changeset.Compute(ctx, dst, opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("destination: %w", err)
	}
	if opts.Filter != nil {
		if err := filter(opts.Filter, src, dst, srcFPs, dstFPs); err != nil {
			return nil, err
		}
	}
	cs := changeset.Locate(srcFPs, dstFPs)
	if opts.IncludeVertices {
		reindexed(cs, src, dst)
	}
	if debug.Pipeline() {
		debug.Logf("changeset: %d added %d removed %d changed %d unchanged\n",
			len(cs.Added), len(cs.Removed), len(cs.Changed), len(cs.Unchanged))
	}
	res := &Result{
		ChangeSet: cs,
		Entities:  map[string]libdiff.Delta{},
		Added:     map[string]*ir.Node{},
		Removed:   map[string]*ir.Node{},
	}

	changed := cs.Changed
	if n := opts.MaxEntityDiffs; n > 0 && len(changed) > n {
		changed, res.Truncated = changed[:n], changed[n:]
	}
	deltas := make([]libdiff.Delta, len(changed))
	err = fanOut(ctx, len(changed), opts.Workers, func(i int) error {
		id := changed[i]
		deltas[i] = DiffEntity(id, src.Object(id), dst.Object(id), opts.diffOpts()...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	agg := libdiff.Delta{}
	for i, id := range changed {
		res.Entities[id] = deltas[i]
		agg = libdiff.Merge(deltas[i].Remaster(ObjectPath(id)), agg)
	}
	for _, id := range cs.Removed {
		obj := src.Object(id)
		res.Removed[id] = obj
		agg.Add(libdiff.DictionaryItemRemoved, ObjectPath(id), &libdiff.Op{Old: obj.Clone()})
	}
	for _, id := range cs.Added {
		obj := dst.Object(id)
		res.Added[id] = obj
		agg.Add(libdiff.DictionaryItemAdded, ObjectPath(id), &libdiff.Op{New: obj.Clone()})
	}

	res.Envelope = libdiff.Diff(
		src.Raw.Without(cityObjectsField, verticesField),
		dst.Raw.Without(cityObjectsField, verticesField),
		opts.diffOpts()...)
	agg = libdiff.Merge(res.Envelope, agg)
	if opts.IncludeVertices {
		vd := libdiff.Diff(ir.Get(src.Raw, verticesField), ir.Get(dst.Raw, verticesField),
			libdiff.DiffTimeout(opts.DiffTimeout))
		agg = libdiff.Merge(vd.Remaster(verticesField), agg)
	}
	res.Delta = agg
	return res, nil
}

// reindexed moves to Changed the unchanged objects whose raw trees differ.
// They have the same geometry reached through other vertex indices, and
// must follow the vertex table when it is patched.
func reindexed(cs *changeset.ChangeSet, src, dst *cityjson.Document) {
	var same []string
	for _, id := range cs.Unchanged {
		if ir.Equal(src.Object(id), dst.Object(id)) {
			same = append(same, id)
			continue
		}
		cs.Changed = append(cs.Changed, id)
	}
	if len(same) == len(cs.Unchanged) {
		return
	}
	cs.Unchanged = same
	slices.Sort(cs.Changed)
}

// filter drops from both fingerprint sets the ids whose objects the filter
// matches on neither side.
func filter(f *cityjson.Filter, src, dst *cityjson.Document, srcFPs, dstFPs changeset.Fingerprints) error {
	ids := map[string]bool{}
	for id := range srcFPs {
		ids[id] = true
	}
	for id := range dstFPs {
		ids[id] = true
	}
	for id := range ids {
		keep, err := matchEither(f, id, src, dst)
		if err != nil {
			return err
		}
		if !keep {
			delete(srcFPs, id)
			delete(dstFPs, id)
		}
	}
	return nil
}

func matchEither(f *cityjson.Filter, id string, src, dst *cityjson.Document) (bool, error) {
	for _, doc := range []*cityjson.Document{src, dst} {
		obj := doc.Object(id)
		if obj == nil {
			continue
		}
		ok, err := f.Match(id, obj)
		if err != nil || ok {
			return ok, err
		}
	}
	return false, nil
}

func diffSlow(src, dst *cityjson.Document, opts *Options) (*Result, error) {
	dopts := opts.diffOpts()
	if !opts.IncludeVertices {
		dopts = append(dopts, libdiff.Exclude(verticesField))
	}
	if opts.Filter != nil {
		var excluded []string
		for _, id := range unionIDs(src, dst) {
			keep, err := matchEither(opts.Filter, id, src, dst)
			if err != nil {
				return nil, err
			}
			if !keep {
				excluded = append(excluded, ObjectPath(id))
			}
		}
		dopts = append(dopts, libdiff.Exclude(excluded...))
	}
	d := libdiff.Diff(src.Raw, dst.Raw, dopts...)
	res := &Result{
		Delta:    d,
		Entities: map[string]libdiff.Delta{},
		Envelope: libdiff.Delta{},
		Added:    map[string]*ir.Node{},
		Removed:  map[string]*ir.Node{},
	}
	objects := kpath.Field(cityObjectsField)
	for k, b := range d {
		for path, op := range b {
			kp, err := kpath.Parse(path)
			if err != nil {
				return nil, err
			}
			if !kp.HasPrefix(objects) || kp.Len() < 2 {
				res.Envelope.Add(k, path, op)
			}
		}
	}
	for _, root := range d.Roots(2) {
		kp := kpath.MustParse(root)
		if kp.Len() != 2 || !kp.HasPrefix(objects) {
			continue
		}
		id := *kp.Next.Field
		if op := d.Get(libdiff.DictionaryItemAdded, root); op != nil {
			res.Added[id] = op.New
			continue
		}
		if op := d.Get(libdiff.DictionaryItemRemoved, root); op != nil {
			res.Removed[id] = op.Old
			continue
		}
		res.Entities[id] = d.Extract(root)
	}
	return res, nil
}

func unionIDs(src, dst *cityjson.Document) []string {
	srcIDs := src.IDs()
	ids := slices.Clone(srcIDs)
	for _, id := range dst.IDs() {
		if _, ok := slices.BinarySearch(srcIDs, id); !ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// fanOut calls f for 0 <= i < n, concurrently with at most workers calls
// in flight when workers > 1.
func fanOut(ctx context.Context, n, workers int, f func(i int) error) error {
	if workers <= 1 {
		for i := range n {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := f(i); err != nil {
				return err
			}
		}
		return nil
	}
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i := range n {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			return f(i)
		})
	}
	return group.Wait()
}
