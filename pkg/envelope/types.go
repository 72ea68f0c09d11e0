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

// Tensor is one named tensor as carried on the wire: flat data with the
// shape kept authoritative for reconstruction. For BYTES tensors Data
// may hold a flat byte or string payload instead of len(Data) matching
// the shape product.
type Tensor struct {
	Name     string        `json:"name"`
	Shape    []int64       `json:"shape"`
	Datatype DatatypeTag   `json:"datatype"`
	Data     []interface{} `json:"data"`
}

// RequestEnvelope is one request unit of a v2 inference request batch.
// Workflow intermediate requests carry Outputs in place of Inputs.
type RequestEnvelope struct {
	ID      string   `json:"id,omitempty"`
	Inputs  []Tensor `json:"inputs,omitempty"`
	Outputs []Tensor `json:"outputs,omitempty"`
}

// ResponseEnvelope is the v2 inference response document.
type ResponseEnvelope struct {
	ID           string   `json:"id"`
	ModelName    string   `json:"model_name"`
	ModelVersion string   `json:"model_version,omitempty"`
	Outputs      []Tensor `json:"outputs"`
}

// InputKind discriminates the two structural shapes a decoded batch
// position can take.
type InputKind int

const (
	// FlatInput carries a descriptor list, the shape of standalone
	// requests and single-parent workflow requests.
	FlatInput InputKind = iota
	// NestedInput carries per-parent-node raw data, the shape of
	// multi-parent workflow requests.
	NestedInput
)

func (k InputKind) String() string {
	if k == NestedInput {
		return "nested"
	}
	return "flat"
}

func (k InputKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParsedInput is the decoded form of one batch position. Exactly one of
// Descriptors and Nested is populated, per Kind. The structural
// asymmetry is part of the protocol: a nested workflow position decodes
// to node-name keyed raw data, not to a descriptor list.
type ParsedInput struct {
	Kind        InputKind                `json:"kind"`
	Descriptors []Tensor                 `json:"descriptors,omitempty"`
	Nested      map[string][]interface{} `json:"nested,omitempty"`
}
