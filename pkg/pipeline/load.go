package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/sunburst/pkg/cache"
	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
	"github.com/matzehuels/sunburst/pkg/io"
	"github.com/matzehuels/sunburst/pkg/observability"
)

// Load decodes opts.Input (or validates opts.Root) into a hierarchy. The
// returned tree is a private copy the caller may mutate.
func Load(ctx context.Context, opts Options) (*hierarchy.Node, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.InputFormat)

	var (
		root *hierarchy.Node
		err  error
	)
	start := time.Now()
	if opts.Root != nil {
		if err = opts.Root.Validate(); err == nil {
			root = opts.Root.Clone()
		}
	} else {
		root, err = io.ReadBytes(opts.Input, io.Format(opts.InputFormat))
	}

	count := 0
	if root != nil {
		count = root.Count()
	}
	hooks.OnLoadComplete(ctx, opts.InputFormat, count, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return root, nil
}

// InputHash returns the content hash of a tree. Names, leaf values and child
// order contribute; the input encoding does not.
func InputHash(root *hierarchy.Node) (string, error) {
	data, err := json.Marshal(root)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash input")
	}
	return cache.Hash(data), nil
}
