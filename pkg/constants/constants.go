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

package constants

// V2 protocol field names
const (
	InputsField  = "inputs"
	OutputsField = "outputs"
	DataField    = "data"
	BodyField    = "body"
	IDField      = "id"
)

// Workflow request headers
const (
	WorkflowRequestTypeHeader = "Workflow-Request-Type"
	WorkflowRequestTypeNested = "nested"
	ExplainHeader             = "explain"
)

// Output tensor names
const (
	PredictTensorName = "predict"
	ExplainTensorName = "explain"
)

// Model manifest keys
const (
	ManifestModelKey        = "model"
	ManifestModelNameKey    = "modelName"
	ManifestModelVersionKey = "modelVersion"
)
