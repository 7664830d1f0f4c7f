package merge

import (
	"fmt"

	"dario.cat/mergo"

	errUtils "github.com/terraforge/terraforge/errors"
	"github.com/terraforge/terraforge/pkg/schema"
	u "github.com/terraforge/terraforge/pkg/utils"
)

const (
	ListMergeStrategyReplace = "replace"
	ListMergeStrategyAppend  = "append"
	ListMergeStrategyMerge   = "merge"
)

// MergeWithOptions takes a list of maps as input, deep-merges the items in the order
// they are defined in the list, and returns a single map with the merged contents.
// Later maps take precedence over earlier ones; an explicitly set empty value
// (null, false, empty string, empty list) in a later map overrides a non-empty value
// in an earlier one.
func MergeWithOptions(
	inputs []map[string]any,
	appendSlice bool,
	sliceDeepCopy bool,
) (map[string]any, error) {
	merged := map[string]any{}

	for index := range inputs {
		current := inputs[index]

		if len(current) == 0 {
			continue
		}

		// Due to a bug in `mergo.Merge`
		// (in the `for` loop, it DOES modify the source of the previous loop iteration
		// if it's a complex map and `mergo` gets a pointer to it,
		// not only the destination of the current loop iteration),
		// we don't give it our maps directly; we convert them to YAML strings and then back to Go maps,
		// so `mergo` does not have access to the original pointers.
		yamlCurrent, err := u.ConvertToYAML(current)
		if err != nil {
			return nil, errUtils.Build(errUtils.ErrMerge).WithCause(err).Err()
		}

		dataCurrent, err := u.UnmarshalYAML[any](yamlCurrent)
		if err != nil {
			return nil, errUtils.Build(errUtils.ErrMerge).WithCause(err).Err()
		}

		// `mergo` keeps the existing value when a later map collides with an earlier
		// non-map value under the same key (and vice versa). The merge semantics require
		// the later value to win regardless of type, so drop the conflicting keys first.
		if currentMap, ok := dataCurrent.(map[string]any); ok {
			dropMismatchedKeys(merged, currentMap)
		}

		var opts []func(*mergo.Config)
		opts = append(opts, mergo.WithOverride, mergo.WithOverwriteWithEmptyValue)

		// This was fixed/broken several times in the `mergo` library.
		// Check the `mergo` release notes before upgrading the library and run all the tests.
		if sliceDeepCopy {
			opts = append(opts, mergo.WithSliceDeepCopy)
		} else if appendSlice {
			opts = append(opts, mergo.WithAppendSlice)
		}

		if err = mergo.Merge(&merged, dataCurrent, opts...); err != nil {
			return nil, errUtils.Build(errUtils.ErrMerge).WithCause(err).Err()
		}
	}

	return merged, nil
}

// dropMismatchedKeys removes from `dst` the keys where one side holds a map and the
// other side holds anything else. When both sides hold maps, it recurses so the
// deeper levels get the same treatment.
func dropMismatchedKeys(dst, src map[string]any) {
	for k, srcValue := range src {
		dstValue, ok := dst[k]
		if !ok {
			continue
		}

		srcMap, srcIsMap := srcValue.(map[string]any)
		dstMap, dstIsMap := dstValue.(map[string]any)

		if srcIsMap && dstIsMap {
			dropMismatchedKeys(dstMap, srcMap)
			continue
		}

		if srcIsMap != dstIsMap {
			delete(dst, k)
		}
	}
}

// Merge takes a list of maps as input, deep-merges the items in the order they are
// defined in the list, and returns a single map with the merged contents.
// The list merge strategy is taken from the configuration (`settings.list_merge_strategy`):
//
//   - replace: most specific wins, a list in a later map replaces the whole list (default)
//   - append: lists are concatenated in merge order
//   - merge: lists are merged element-wise by index
func Merge(
	config *schema.TerraforgeConfiguration,
	inputs []map[string]any,
) (map[string]any, error) {
	if config == nil {
		return nil, errUtils.Build(errUtils.ErrMerge).WithCause(errUtils.ErrNilConfiguration).Err()
	}

	sliceDeepCopy := false
	appendSlice := false

	listMergeStrategy := config.Settings.ListMergeStrategy
	if listMergeStrategy == "" {
		listMergeStrategy = ListMergeStrategyReplace
	}

	switch listMergeStrategy {
	case ListMergeStrategyReplace:
	case ListMergeStrategyAppend:
		appendSlice = true
	case ListMergeStrategyMerge:
		sliceDeepCopy = true
	default:
		return nil, errUtils.Build(errUtils.ErrMerge).
			WithCause(fmt.Errorf("%w '%s'. Supported list merge strategies are: %s, %s, %s",
				errUtils.ErrInvalidListMergeStrategy,
				listMergeStrategy,
				ListMergeStrategyReplace,
				ListMergeStrategyAppend,
				ListMergeStrategyMerge)).
			Err()
	}

	return MergeWithOptions(inputs, appendSlice, sliceDeepCopy)
}
