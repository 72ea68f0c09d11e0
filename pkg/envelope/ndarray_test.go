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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferShape(t *testing.T) {
	assert.Equal(t, []int64{}, InferShape(2))
	assert.Equal(t, []int64{3}, InferShape([]interface{}{1, 2, 3}))
	assert.Equal(t, []int64{2, 2}, InferShape([]interface{}{
		[]interface{}{1, 2},
		[]interface{}{3, 4},
	}))
	assert.Equal(t, []int64{2}, InferShape([]float32{0.1, 0.9}))
	assert.Equal(t, []int64{0}, InferShape([]interface{}{}))
	// byte payloads are scalar, not a dimension
	assert.Equal(t, []int64{}, InferShape([]byte("bloom")))
}

func TestFlatten(t *testing.T) {
	assert.Equal(t, []interface{}{2}, Flatten(2))
	assert.Equal(t, []interface{}{1, 2, 3, 4}, Flatten([]interface{}{
		[]interface{}{1, 2},
		[]interface{}{3, 4},
	}))
	assert.Equal(t, []interface{}{[]byte("bloom")}, Flatten([]byte("bloom")))
}

func TestElementKindOf(t *testing.T) {
	assert.Equal(t, ElementBool, ElementKindOf(true))
	assert.Equal(t, ElementInt64, ElementKindOf(2))
	assert.Equal(t, ElementInt32, ElementKindOf(int32(2)))
	assert.Equal(t, ElementFloat32, ElementKindOf([]float32{0.5}))
	assert.Equal(t, ElementFloat64, ElementKindOf(0.5))
	assert.Equal(t, ElementInt64, ElementKindOf(stdjson.Number("2")))
	assert.Equal(t, ElementFloat64, ElementKindOf(stdjson.Number("2.5")))
	assert.Equal(t, ElementUnicode, ElementKindOf("bloom"))
	assert.Equal(t, ElementByte, ElementKindOf([]byte("bloom")))
	assert.Equal(t, ElementObject, ElementKindOf(map[string]interface{}{}))
	assert.Equal(t, ElementObject, ElementKindOf(nil))
	// an empty untyped array has no element evidence
	assert.Equal(t, ElementFloat64, ElementKindOf([]interface{}{}))
	assert.Equal(t, ElementInt64, ElementKindOf([]interface{}{
		[]interface{}{stdjson.Number("1")},
	}))
}
