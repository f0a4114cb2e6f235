package recipe

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"

	"github.com/forkful-labs/recipedex/internal/domain"
)

// Hash field names for a stored recipe.
const (
	fieldContent = "content"
	fieldVector  = "vector"
	fieldAttrs   = "attrs"
)

// buildFields encodes a recipe into hash fields: plain content, binary
// little-endian float32 vector, attributes as a JSON object.
func buildFields(r domain.Recipe) (map[string]string, error) {
	attrsJSON, err := encodeAttrs(r.Attributes())
	if err != nil {
		return nil, fmt.Errorf("encode attributes: %w", err)
	}
	return map[string]string{
		fieldContent: r.Content(),
		fieldVector:  string(vectorToBytes(r.Vector())),
		fieldAttrs:   attrsJSON,
	}, nil
}

// parseFields decodes hash fields back into a recipe.
func parseFields(id string, fields map[string]string) (domain.Recipe, error) {
	vec, err := bytesToVector([]byte(fields[fieldVector]))
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("recipe %s: %w", id, err)
	}
	attrs, err := decodeAttrs(fields[fieldAttrs])
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("recipe %s: %w", id, err)
	}
	return domain.ReconstructRecipe(id, fields[fieldContent], vec, attrs), nil
}

func encodeAttrs(attrs domain.Attributes) (string, error) {
	if len(attrs) == 0 {
		return "{}", nil
	}
	m := make(map[string]any, len(attrs))
	for name, v := range attrs {
		switch v.Kind() {
		case domain.AttrString:
			m[name] = v.String()
		case domain.AttrNumber:
			num, _ := v.Number()
			m[name] = num
		case domain.AttrList:
			m[name] = v.List()
		}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("marshal attrs: %w", err)
	}
	return string(data), nil
}

func decodeAttrs(raw string) (domain.Attributes, error) {
	if raw == "" || raw == "{}" {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("unmarshal attrs: %w", err)
	}
	attrs := make(domain.Attributes, len(m))
	for name, v := range m {
		switch t := v.(type) {
		case string:
			attrs[name] = domain.StringValue(t)
		case float64:
			attrs[name] = domain.NumberValue(t)
		case []any:
			items := make([]string, 0, len(t))
			for _, it := range t {
				s, ok := it.(string)
				if !ok {
					return nil, fmt.Errorf("attribute %q: list items must be strings", name)
				}
				items = append(items, s)
			}
			attrs[name] = domain.ListValue(items...)
		default:
			return nil, fmt.Errorf("attribute %q: unsupported value type %T", name, v)
		}
	}
	return attrs, nil
}

func vectorToBytes(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func bytesToVector(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("invalid vector data: len=%d (not multiple of 4)", len(data))
	}
	if len(data) == 0 {
		return nil, nil
	}
	vec := make([]float32, len(data)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return vec, nil
}
