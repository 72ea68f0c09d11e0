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
	"testing"

	"github.com/onsi/gomega"
	"github.com/pkg/errors"
)

var allDatatypes = []DatatypeTag{
	DatatypeBool,
	DatatypeUint8,
	DatatypeUint16,
	DatatypeUint32,
	DatatypeUint64,
	DatatypeInt8,
	DatatypeInt16,
	DatatypeInt32,
	DatatypeInt64,
	DatatypeFP16,
	DatatypeFP32,
	DatatypeFP64,
	DatatypeBytes,
}

func TestDatatypeRoundTrip(t *testing.T) {
	g := gomega.NewGomegaWithT(t)
	for _, tag := range allDatatypes {
		kind, err := WireToElementType(tag)
		g.Expect(err).Should(gomega.BeNil())
		back, err := ElementTypeToWire(kind)
		g.Expect(err).Should(gomega.BeNil())
		g.Expect(back).Should(gomega.Equal(tag))
	}
}

func TestWireToElementTypeUnknown(t *testing.T) {
	g := gomega.NewGomegaWithT(t)
	_, err := WireToElementType("FP999")
	g.Expect(errors.Is(err, ErrUnknownDatatype)).Should(gomega.BeTrue())
	g.Expect(err.Error()).Should(gomega.ContainSubstring("FP999"))
}

func TestElementTypeToWireFallback(t *testing.T) {
	g := gomega.NewGomegaWithT(t)
	for _, kind := range []ElementType{ElementObject, ElementUnicode, "U32"} {
		tag, err := ElementTypeToWire(kind)
		g.Expect(err).Should(gomega.BeNil())
		g.Expect(tag).Should(gomega.Equal(DatatypeBytes))
	}
}

func TestElementTypeToWireUnknown(t *testing.T) {
	g := gomega.NewGomegaWithT(t)
	_, err := ElementTypeToWire("complex64")
	g.Expect(errors.Is(err, ErrUnknownElementType)).Should(gomega.BeTrue())
}
