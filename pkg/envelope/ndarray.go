/*
Copyright 2025 The KServe Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package envelope

import (
	stdjson "encoding/json"
	"reflect"
	"strconv"
)

// Array coercion helpers for pipeline result values. Results arrive as
// arbitrary nested Go slices or JSON-decoded values; shape, element kind
// and flat data are derived by traversal, assuming the regular layout a
// nested-sequence coercion assumes. A []byte is treated as a scalar
// BYTES payload, not as a dimension.

// InferShape derives the array dimensions of a value. Scalars yield an
// empty shape.
func InferShape(v interface{}) []int64 {
	shape := []int64{}
	for {
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice || isBytePayload(rv) {
			return shape
		}
		shape = append(shape, int64(rv.Len()))
		if rv.Len() == 0 {
			return shape
		}
		v = rv.Index(0).Interface()
	}
}

// Flatten collapses a nested value into a flat scalar sequence. Scalars
// yield a one-element sequence so the data field is always a list.
func Flatten(v interface{}) []interface{} {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice || isBytePayload(rv) {
		return []interface{}{v}
	}
	flat := make([]interface{}, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		flat = append(flat, Flatten(rv.Index(i).Interface())...)
	}
	return flat
}

// ElementKindOf classifies a value's element kind from its first leaf
// element. Integral JSON numbers classify as int64, preserving the
// integer/float split of the wire representation.
func ElementKindOf(v interface{}) ElementType {
	switch leaf := firstLeaf(v).(type) {
	case bool:
		return ElementBool
	case int8:
		return ElementInt8
	case int16:
		return ElementInt16
	case int32:
		return ElementInt32
	case int, int64:
		return ElementInt64
	case uint8:
		return ElementUint8
	case uint16:
		return ElementUint16
	case uint32:
		return ElementUint32
	case uint, uint64:
		return ElementUint64
	case float32:
		return ElementFloat32
	case float64:
		return ElementFloat64
	case stdjson.Number:
		if _, err := strconv.ParseInt(leaf.String(), 10, 64); err == nil {
			return ElementInt64
		}
		return ElementFloat64
	case string:
		return ElementUnicode
	case []byte:
		return ElementByte
	default:
		return ElementObject
	}
}

func firstLeaf(v interface{}) interface{} {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && rv.Kind() == reflect.Slice && !isBytePayload(rv) {
		if rv.Len() == 0 {
			// element kind of an empty array comes from its static
			// element type; untyped empties default to float64
			if rv.Type().Elem().Kind() == reflect.Interface {
				return float64(0)
			}
			return reflect.Zero(rv.Type().Elem()).Interface()
		}
		rv = reflect.ValueOf(rv.Index(0).Interface())
	}
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}

func isBytePayload(rv reflect.Value) bool {
	return rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8
}
