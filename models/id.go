package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// ID is an opaque entity identifier. Seeded records carry decimal ids,
// records created at runtime carry generated ones; both compare by exact
// equality of their canonical form.
type ID string

// ParseID canonicalises an identifier argument. Integers are rewritten to
// their decimal form so "007" and "7" name the same record.
func ParseID(raw string) ID {
	s := strings.TrimSpace(raw)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ID(strconv.FormatInt(n, 10))
	}
	return ID(s)
}

func (id ID) String() string { return string(id) }

// numberID renders a numeric id. Integral values print without a fraction
// so 1, 1.0 and "1" all name the same record.
func numberID(f float64) ID {
	if f == math.Trunc(f) && math.Abs(f) < 1<<63 {
		return ID(strconv.FormatInt(int64(f), 10))
	}
	return ID(strconv.FormatFloat(f, 'f', -1, 64))
}

// UnmarshalJSON accepts both JSON numbers and strings.
func (id *ID) UnmarshalJSON(b []byte) error {
	var raw interface{}
	d := json.NewDecoder(bytes.NewReader(b))
	d.UseNumber()
	if err := d.Decode(&raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case json.Number:
		if _, err := v.Int64(); err == nil {
			*id = ParseID(v.String())
			return nil
		}
		f, err := v.Float64()
		if err != nil {
			return fmt.Errorf("id: bad number %s", v.String())
		}
		*id = numberID(f)
	case string:
		*id = ParseID(v)
	case nil:
		*id = ""
	default:
		return fmt.Errorf("id: unsupported JSON value %s", string(b))
	}
	return nil
}

// UnmarshalBSONValue accepts string and numeric BSON values.
func (id *ID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	if s, ok := rv.StringValueOK(); ok {
		*id = ParseID(s)
		return nil
	}
	if n, ok := rv.Int32OK(); ok {
		*id = ID(strconv.FormatInt(int64(n), 10))
		return nil
	}
	if n, ok := rv.Int64OK(); ok {
		*id = ID(strconv.FormatInt(n, 10))
		return nil
	}
	if f, ok := rv.DoubleOK(); ok {
		*id = numberID(f)
		return nil
	}
	if t == bson.TypeNull {
		*id = ""
		return nil
	}
	return fmt.Errorf("id: unsupported BSON type %s", t)
}
