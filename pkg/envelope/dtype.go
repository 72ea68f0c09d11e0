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
	"strings"

	"github.com/pkg/errors"
)

// DatatypeTag is a tensor datatype as named on the wire by the v2 protocol.
type DatatypeTag string

const (
	DatatypeBool   DatatypeTag = "BOOL"
	DatatypeUint8  DatatypeTag = "UINT8"
	DatatypeUint16 DatatypeTag = "UINT16"
	DatatypeUint32 DatatypeTag = "UINT32"
	DatatypeUint64 DatatypeTag = "UINT64"
	DatatypeInt8   DatatypeTag = "INT8"
	DatatypeInt16  DatatypeTag = "INT16"
	DatatypeInt32  DatatypeTag = "INT32"
	DatatypeInt64  DatatypeTag = "INT64"
	DatatypeFP16   DatatypeTag = "FP16"
	DatatypeFP32   DatatypeTag = "FP32"
	DatatypeFP64   DatatypeTag = "FP64"
	DatatypeBytes  DatatypeTag = "BYTES"
)

// ElementType names the in-memory element kind of a materialized array.
// The v2 datatype set is a strict subset of these: ElementObject and
// ElementUnicode exist only on the encode side and classify into BYTES.
type ElementType string

const (
	ElementBool    ElementType = "bool"
	ElementUint8   ElementType = "uint8"
	ElementUint16  ElementType = "uint16"
	ElementUint32  ElementType = "uint32"
	ElementUint64  ElementType = "uint64"
	ElementInt8    ElementType = "int8"
	ElementInt16   ElementType = "int16"
	ElementInt32   ElementType = "int32"
	ElementInt64   ElementType = "int64"
	ElementFloat16 ElementType = "float16"
	ElementFloat32 ElementType = "float32"
	ElementFloat64 ElementType = "float64"
	ElementByte    ElementType = "byte"
	ElementObject  ElementType = "object"
	ElementUnicode ElementType = "U"
)

// Mapping failure sentinels, matched with errors.Is by callers.
var (
	ErrUnknownDatatype    = errors.New("unknown v2 datatype")
	ErrUnknownElementType = errors.New("unknown element type")
)

var datatypeToElement = map[DatatypeTag]ElementType{
	DatatypeBool:   ElementBool,
	DatatypeUint8:  ElementUint8,
	DatatypeUint16: ElementUint16,
	DatatypeUint32: ElementUint32,
	DatatypeUint64: ElementUint64,
	DatatypeInt8:   ElementInt8,
	DatatypeInt16:  ElementInt16,
	DatatypeInt32:  ElementInt32,
	DatatypeInt64:  ElementInt64,
	DatatypeFP16:   ElementFloat16,
	DatatypeFP32:   ElementFloat32,
	DatatypeFP64:   ElementFloat64,
	DatatypeBytes:  ElementByte,
}

var elementToDatatype = func() map[ElementType]DatatypeTag {
	inverse := make(map[ElementType]DatatypeTag, len(datatypeToElement)+2)
	for tag, kind := range datatypeToElement {
		inverse[kind] = tag
	}
	// arrays can hold more kinds than the protocol names; generic
	// objects and unicode strings go over the wire as BYTES
	inverse[ElementObject] = DatatypeBytes
	inverse[ElementUnicode] = DatatypeBytes
	return inverse
}()

// WireToElementType maps a v2 wire datatype to its element kind. The tag
// is required to be one of the thirteen protocol datatypes.
func WireToElementType(tag DatatypeTag) (ElementType, error) {
	kind, ok := datatypeToElement[tag]
	if !ok {
		return "", errors.Wrapf(ErrUnknownDatatype, "datatype %q", tag)
	}
	return kind, nil
}

// ElementTypeToWire maps an element kind back to its wire datatype.
// Kinds absent from the inverse table are retried under their kind
// class before failing, so sized unicode kinds still encode as BYTES.
func ElementTypeToWire(kind ElementType) (DatatypeTag, error) {
	if tag, ok := elementToDatatype[kind]; ok {
		return tag, nil
	}
	if tag, ok := elementToDatatype[kind.class()]; ok {
		return tag, nil
	}
	return "", errors.Wrapf(ErrUnknownElementType, "element type %q", kind)
}

// class reduces a sized element kind to its generic kind character,
// e.g. "U32" to "U". Kinds with no generic class return unchanged.
func (e ElementType) class() ElementType {
	if strings.HasPrefix(string(e), string(ElementUnicode)) {
		return ElementUnicode
	}
	return e
}
