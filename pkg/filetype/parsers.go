package filetype

import (
	"bytes"
	"math/big"

	"github.com/hashicorp/hcl/v2/hclparse"
	jsoniter "github.com/json-iterator/go"
	"github.com/zclconf/go-cty/cty"

	errUtils "github.com/terraforge/terraforge/errors"
	"github.com/terraforge/terraforge/pkg/utils"
)

// parseJSON decodes JSON data into generic Go values.
func parseJSON(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var json = jsoniter.ConfigDefault
	var result any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// parseYAML decodes a YAML document into generic Go values.
// An empty document decodes to nil.
func parseYAML(data []byte) (any, error) {
	return utils.UnmarshalYAML[any](string(data))
}

func isValidJSON(data []byte) bool {
	return jsoniter.ConfigDefault.Valid(data)
}

// parseHCL decodes an attributes-only HCL body (the tfvars shape) into a
// map of Go values. Blocks and expressions referencing variables are not
// supported; attribute values must be constants.
func parseHCL(data []byte, filename string) (any, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags != nil && diags.HasErrors() {
		return nil, errUtils.Build(errUtils.ErrParse).
			WithCause(diags).
			WithContext("file", filename).
			Err()
	}

	attributes, diags := file.Body.JustAttributes()
	if diags != nil && diags.HasErrors() {
		return nil, errUtils.Build(errUtils.ErrParse).
			WithCause(diags).
			WithContext("file", filename).
			Err()
	}

	result := make(map[string]any)
	for name, attr := range attributes {
		ctyValue, diags := attr.Expr.Value(nil)
		if diags != nil && diags.HasErrors() {
			return nil, errUtils.Build(errUtils.ErrParse).
				WithCause(diags).
				WithContext("file", filename).
				WithContext("attribute", name).
				Err()
		}

		goValue, err := ctyToGo(ctyValue)
		if err != nil {
			return nil, err
		}
		result[name] = goValue
	}

	return result, nil
}

// ctyToGo converts a cty.Value to plain Go types.
func ctyToGo(value cty.Value) (any, error) {
	if value.IsNull() {
		return nil, nil
	}

	if result, handled := ctyPrimitiveToGo(value); handled {
		return result, nil
	}

	return ctyCollectionToGo(value)
}

// ctyPrimitiveToGo converts primitive cty types to Go types.
// Returns the converted value and whether the type was handled.
func ctyPrimitiveToGo(value cty.Value) (any, bool) {
	switch {
	case value.Type() == cty.String:
		return value.AsString(), true
	case value.Type() == cty.Number:
		return ctyNumberToGo(value), true
	case value.Type() == cty.Bool:
		return value.True(), true
	default:
		return nil, false
	}
}

// ctyCollectionToGo converts collection cty types (maps, lists) to Go types.
func ctyCollectionToGo(value cty.Value) (any, error) {
	switch {
	case value.Type().IsObjectType() || value.Type().IsMapType():
		return ctyMapToGo(value)
	case value.Type().IsListType() || value.Type().IsTupleType() || value.Type().IsSetType():
		return ctyListToGo(value)
	default:
		return value.GoString(), nil
	}
}

// ctyNumberToGo converts a cty.Number to Go int64 or float64.
func ctyNumberToGo(value cty.Value) any {
	bf := value.AsBigFloat()
	if bf.IsInt() {
		i, acc := bf.Int64()
		if acc == big.Exact {
			return i
		}
	}
	f, _ := bf.Float64()
	return f
}

// ctyMapToGo converts a cty object/map to Go map[string]any.
func ctyMapToGo(value cty.Value) (map[string]any, error) {
	m := make(map[string]any)
	for k, v := range value.AsValueMap() {
		goVal, err := ctyToGo(v)
		if err != nil {
			return nil, err
		}
		m[k] = goVal
	}
	return m, nil
}

// ctyListToGo converts a cty list/tuple/set to Go []any.
func ctyListToGo(value cty.Value) ([]any, error) {
	var list []any
	for _, v := range value.AsValueSlice() {
		goVal, err := ctyToGo(v)
		if err != nil {
			return nil, err
		}
		list = append(list, goVal)
	}
	return list, nil
}
