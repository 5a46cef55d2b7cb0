// Package params merges story parameter bags.
//
// Bags are merged left to right, later bags taking precedence:
//
//   - sequences (slices and arrays) replace the accumulated value
//   - a mapping is merged one level deep into an accumulated mapping
//   - anything else, including a mapping with nothing to merge into,
//     replaces the accumulated value as is
//
// Only the first level of nested mappings is merged. A mapping nested
// inside a mapping is replaced like any other value.
package params

import (
	"reflect"

	"github.com/arthur-debert/storyreg/pkg/types"
)

// Merge folds bags into a fresh bag. Nil bags are skipped and inputs are
// never mutated.
func Merge(bags ...types.Parameters) types.Parameters {
	merged := make(types.Parameters)
	for _, bag := range bags {
		mergeInto(merged, bag)
	}
	return merged
}

// Assign returns a copy of base with every key of overrides replacing the
// base value, without merging nested mappings.
func Assign(base, overrides types.Parameters) types.Parameters {
	out := base.Clone()
	for key, value := range overrides {
		out[key] = value
	}
	return out
}

func mergeInto(dest, src types.Parameters) {
	for key, srcVal := range src {
		if isSequence(srcVal) {
			dest[key] = srcVal
			continue
		}

		srcMap, srcIsMap := asMapping(srcVal)
		destMap, destIsMap := asMapping(dest[key])
		if srcIsMap && destIsMap {
			combined := make(map[string]any, len(destMap)+len(srcMap))
			for k, v := range destMap {
				combined[k] = v
			}
			for k, v := range srcMap {
				combined[k] = v
			}
			if _, ok := srcVal.(types.Parameters); ok {
				dest[key] = types.Parameters(combined)
			} else {
				dest[key] = combined
			}
			continue
		}

		dest[key] = srcVal
	}
}

func isSequence(v any) bool {
	if v == nil {
		return false
	}
	kind := reflect.TypeOf(v).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}

// asMapping reports whether v is a string-keyed map and returns its entries.
func asMapping(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case nil:
		return nil, false
	case map[string]any:
		return m, true
	case types.Parameters:
		return m, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}
