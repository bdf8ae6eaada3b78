package tag

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// jsonNode is the self-describing JSON form of a tag. Compound entries
// use parallel fields/values arrays so key order survives the round
// trip; a JSON object would not preserve it.
type jsonNode struct {
	Type Type `json:"type"`

	Byte   *byte    `json:"byte,omitempty"`
	Short  *int16   `json:"short,omitempty"`
	Int    *int32   `json:"int,omitempty"`
	Long   *int64   `json:"long,omitempty"`
	Float  *float32 `json:"float,omitempty"`
	Double *float64 `json:"double,omitempty"`
	String *string  `json:"string,omitempty"`
	Bytes  *string  `json:"bytes,omitempty"` // base64

	ListType *Type       `json:"listType,omitempty"`
	Fields   []string    `json:"fields,omitempty"`
	Values   []*jsonNode `json:"values,omitempty"`
}

// ToJSON renders the tag tree as self-describing JSON. The rendering is
// lossless: tag types, the locked list type, and compound key order are
// all preserved.
func ToJSON(t Tag) ([]byte, error) {
	n, err := toJSONNode(t)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(n, "", "  ")
}

// FromJSON reconstructs a tag tree from its ToJSON rendering.
func FromJSON(d []byte) (Tag, error) {
	n := &jsonNode{}
	if err := json.Unmarshal(d, n); err != nil {
		return nil, err
	}
	return fromJSONNode(n)
}

func toJSONNode(t Tag) (*jsonNode, error) {
	if t == nil {
		return &jsonNode{Type: NullType}, nil
	}
	n := &jsonNode{Type: t.TagType()}
	switch x := t.(type) {
	case *Null:
	case *Byte:
		n.Byte = &x.Value
	case *Short:
		n.Short = &x.Value
	case *Int:
		n.Int = &x.Value
	case *Long:
		n.Long = &x.Value
	case *Float:
		n.Float = &x.Value
	case *Double:
		n.Double = &x.Value
	case *String:
		n.String = &x.Value
	case *ByteArray:
		enc := base64.StdEncoding.EncodeToString(x.Value)
		n.Bytes = &enc
	case *List:
		lt := x.listType
		n.ListType = &lt
		n.Values = make([]*jsonNode, len(x.elems))
		for i, e := range x.elems {
			en, err := toJSONNode(e)
			if err != nil {
				return nil, err
			}
			n.Values[i] = en
		}
	case *Compound:
		n.Fields = make([]string, len(x.keys))
		n.Values = make([]*jsonNode, len(x.keys))
		copy(n.Fields, x.keys)
		for i, v := range x.vals {
			vn, err := toJSONNode(v)
			if err != nil {
				return nil, err
			}
			n.Values[i] = vn
		}
	default:
		return nil, fmt.Errorf("unsupported tag %T", t)
	}
	return n, nil
}

func fromJSONNode(n *jsonNode) (Tag, error) {
	switch n.Type {
	case NullType:
		return &Null{}, nil
	case ByteType:
		t := &Byte{}
		if n.Byte != nil {
			t.Value = *n.Byte
		}
		return t, nil
	case ShortType:
		t := &Short{}
		if n.Short != nil {
			t.Value = *n.Short
		}
		return t, nil
	case IntType:
		t := &Int{}
		if n.Int != nil {
			t.Value = *n.Int
		}
		return t, nil
	case LongType:
		t := &Long{}
		if n.Long != nil {
			t.Value = *n.Long
		}
		return t, nil
	case FloatType:
		t := &Float{}
		if n.Float != nil {
			t.Value = *n.Float
		}
		return t, nil
	case DoubleType:
		t := &Double{}
		if n.Double != nil {
			t.Value = *n.Double
		}
		return t, nil
	case StringType:
		t := &String{}
		if n.String != nil {
			t.Value = *n.String
		}
		return t, nil
	case ByteArrayType:
		t := &ByteArray{}
		if n.Bytes != nil {
			d, err := base64.StdEncoding.DecodeString(*n.Bytes)
			if err != nil {
				return nil, fmt.Errorf("bad byte array payload: %w", err)
			}
			t.Value = d
		}
		return t, nil
	case ListType:
		lt := NullType
		if n.ListType != nil {
			lt = *n.ListType
		}
		l := NewList(lt)
		for i, vn := range n.Values {
			e, err := fromJSONNode(vn)
			if err != nil {
				return nil, err
			}
			if err := l.Add(e); err != nil {
				return nil, fmt.Errorf("list element %d: %w", i, err)
			}
		}
		return l, nil
	case CompoundType:
		if len(n.Fields) != len(n.Values) {
			return nil, fmt.Errorf("compound fields/values length mismatch: %d vs %d", len(n.Fields), len(n.Values))
		}
		c := NewCompound()
		for i, key := range n.Fields {
			v, err := fromJSONNode(n.Values[i])
			if err != nil {
				return nil, err
			}
			c.Set(key, v)
		}
		return c, nil
	}
	return nil, fmt.Errorf("unrecognized tag type %d", n.Type)
}
