// Copyright 2026 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"
	"strconv"

	"gopkg.in/src-d/go-errors.v1"
	"gopkg.in/yaml.v2"

	"github.com/zhxjdwh/revenj/libraries/pgcore/converters"
	"github.com/zhxjdwh/revenj/libraries/pgcore/tuple"
)

var ErrBadDocument = errors.NewKind("%s: %s")

const (
	keyText   = "text"
	keyRecord = "record"
	keyArray  = "array"
)

// readDocument parses a YAML document describing a single value.
//
//	null                            NULL
//	"text", 5, true                 a scalar, quoted where PostgreSQL would quote it
//	{text: "x", record: true}       a scalar with explicit quoting flags
//	{record: [...]}                 a record, {record: null} is a NULL record
//	{array: [...]}                  an array, {array: null} is a NULL array
func readDocument(rd io.Reader) (tuple.Value, error) {
	var doc interface{}
	if err := yaml.NewDecoder(rd).Decode(&doc); err != nil && err != io.EOF {
		return nil, err
	}

	return decodeValue("$", doc)
}

// readRows parses a YAML list of rows. Each row is a list of field values or a {record: [...]} document.
func readRows(rd io.Reader) ([]*tuple.Record, error) {
	var doc []interface{}
	if err := yaml.NewDecoder(rd).Decode(&doc); err != nil && err != io.EOF {
		return nil, err
	}

	rows := make([]*tuple.Record, len(doc))
	for i, node := range doc {
		path := fmt.Sprintf("$[%d]", i)

		if fields, ok := node.([]interface{}); ok {
			rec, err := decodeRecord(path, fields)
			if err != nil {
				return nil, err
			}

			rows[i] = rec
			continue
		}

		v, err := decodeValue(path, node)
		if err != nil {
			return nil, err
		}

		rec, ok := v.(*tuple.Record)
		if !ok || tuple.IsNull(rec) {
			return nil, ErrBadDocument.New(path, "a row must be a list of fields or a non-null record")
		}

		rows[i] = rec
	}

	return rows, nil
}

func decodeValue(path string, node interface{}) (tuple.Value, error) {
	switch n := node.(type) {
	case nil:
		return tuple.Null, nil
	case string:
		return converters.StringTuple(n), nil
	case bool:
		return converters.BoolTuple(n), nil
	case int:
		return converters.StringTuple(strconv.Itoa(n)), nil
	case int64:
		return converters.StringTuple(strconv.FormatInt(n, 10)), nil
	case uint64:
		return converters.StringTuple(strconv.FormatUint(n, 10)), nil
	case float64:
		return converters.StringTuple(strconv.FormatFloat(n, 'g', -1, 64)), nil
	case map[interface{}]interface{}:
		return decodeMap(path, n)
	case []interface{}:
		return nil, ErrBadDocument.New(path, "lists must be introduced with record: or array:")
	default:
		return nil, ErrBadDocument.New(path, fmt.Sprintf("unsupported value of type %T", node))
	}
}

func decodeMap(path string, m map[interface{}]interface{}) (tuple.Value, error) {
	keys := make(map[string]interface{}, len(m))
	for k, v := range m {
		ks, ok := k.(string)
		if !ok || (ks != keyText && ks != keyRecord && ks != keyArray) {
			return nil, ErrBadDocument.New(path, fmt.Sprintf("unexpected key %v", k))
		}

		keys[ks] = v
	}

	if text, ok := keys[keyText]; ok {
		return decodeScalar(path, text, keys)
	}

	if len(keys) != 1 {
		return nil, ErrBadDocument.New(path, "expected exactly one of text, record or array")
	}

	if node, ok := keys[keyRecord]; ok {
		if node == nil {
			return tuple.NewRecord(nil), nil
		}

		fields, ok := node.([]interface{})
		if !ok {
			return nil, ErrBadDocument.New(path+"."+keyRecord, "expected a list of fields")
		}

		return decodeRecord(path+"."+keyRecord, fields)
	}

	node := keys[keyArray]
	if node == nil {
		return tuple.NewArray(nil), nil
	}

	elemNodes, ok := node.([]interface{})
	if !ok {
		return nil, ErrBadDocument.New(path+"."+keyArray, "expected a list of elements")
	}

	elems, err := decodeList(path+"."+keyArray, elemNodes)
	if err != nil {
		return nil, err
	}

	return tuple.NewArray(elems), nil
}

func decodeScalar(path string, textNode interface{}, keys map[string]interface{}) (tuple.Value, error) {
	text, ok := textNode.(string)
	if !ok {
		return nil, ErrBadDocument.New(path+"."+keyText, "expected a string")
	}

	defaults := converters.StringTuple(text)
	flag := func(key string, def bool) (bool, error) {
		node, ok := keys[key]
		if !ok {
			return def, nil
		}

		b, ok := node.(bool)
		if !ok {
			return false, ErrBadDocument.New(path+"."+key, "expected a boolean")
		}

		return b, nil
	}

	escapeRecord, err := flag(keyRecord, defaults.MustEscapeRecord())
	if err != nil {
		return nil, err
	}

	escapeArray, err := flag(keyArray, defaults.MustEscapeArray())
	if err != nil {
		return nil, err
	}

	return tuple.NewScalar(text, escapeRecord, escapeArray), nil
}

func decodeRecord(path string, fields []interface{}) (*tuple.Record, error) {
	props, err := decodeList(path, fields)
	if err != nil {
		return nil, err
	}

	return tuple.NewRecord(props), nil
}

func decodeList(path string, nodes []interface{}) ([]tuple.Value, error) {
	values := make([]tuple.Value, len(nodes))
	for i, node := range nodes {
		v, err := decodeValue(fmt.Sprintf("%s[%d]", path, i), node)
		if err != nil {
			return nil, err
		}

		values[i] = v
	}

	return values, nil
}
