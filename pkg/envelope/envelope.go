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

// Package envelope translates between the KServe v2 JSON wire protocol
// and the per-sample tensor batches consumed by a serving pipeline.
// Transport, model execution and batching lifecycle belong to the
// callers; the codec only performs the translation.
package envelope

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/kserve/inference-envelope/pkg/constants"
)

var json = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// ErrMalformedPayload reports an undecodable request body. Terminal for
// the offending batch position, never retried.
var ErrMalformedPayload = errors.New("malformed payload")

// Codec decodes v2 request batches and encodes v2 responses against one
// batch's RequestContext. It holds no state of its own; the pending
// request id handshake lives on the context.
type Codec struct {
	ctx RequestContext
	log *zap.SugaredLogger
}

func New(ctx RequestContext, log *zap.SugaredLogger) *Codec {
	return &Codec{
		ctx: ctx,
		log: log,
	}
}

// ParseInput translates a v2 request batch into one ParsedInput per
// batch position, order preserved: position i of the result corresponds
// to position i of the batch, the same index the context keys its
// header and id lookups by.
func (c *Codec) ParseInput(rows []map[string]interface{}) ([]ParsedInput, error) {
	c.log.Debugf("parsing input batch of %d in v2 format", len(rows))
	parsed := make([]ParsedInput, 0, len(rows))
	for i, row := range rows {
		key := constants.InputsField
		workflowType := c.ctx.GetRequestHeader(i, constants.WorkflowRequestTypeHeader)
		if workflowType != "" {
			// intermediate workflow requests carry the upstream
			// node's outputs in place of inputs
			c.log.Debugf("workflow request type: %s", workflowType)
			key = constants.OutputsField
			if strings.EqualFold(workflowType, constants.WorkflowRequestTypeNested) {
				nested, err := c.parseNested(row)
				if err != nil {
					return nil, errors.Wrapf(err, "batch position %d", i)
				}
				parsed = append(parsed, ParsedInput{Kind: NestedInput, Nested: nested})
				continue
			}
		}
		descriptors, err := c.fromBody(bodyOf(row), key)
		if err != nil {
			return nil, errors.Wrapf(err, "batch position %d", i)
		}
		parsed = append(parsed, ParsedInput{Kind: FlatInput, Descriptors: descriptors})
	}
	return parsed, nil
}

// parseNested handles a multi-parent workflow position: the row maps
// parent node names to that node's own wire body, and only the data of
// each node's first output descriptor is kept.
func (c *Codec) parseNested(row map[string]interface{}) (map[string][]interface{}, error) {
	nested := make(map[string][]interface{}, len(row))
	for nodeName, body := range row {
		descriptors, err := c.fromBody(body, constants.OutputsField)
		if err != nil {
			return nil, errors.Wrapf(err, "node %s", nodeName)
		}
		if len(descriptors) == 0 {
			nested[nodeName] = nil
			continue
		}
		nested[nodeName] = descriptors[0].Data
	}
	return nested, nil
}

// bodyOf picks the wire body out of a pipeline row, data first with
// body as the fallback for absent or empty data.
func bodyOf(row map[string]interface{}) interface{} {
	if v, ok := row[constants.DataField]; ok && !isEmptyValue(v) {
		return v
	}
	return row[constants.BodyField]
}

func isEmptyValue(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []byte:
		return len(t) == 0
	case []interface{}:
		return len(t) == 0
	case map[string]interface{}:
		return len(t) == 0
	}
	return false
}

// fromBody extracts the descriptor list at the given field from one
// wire body. Raw byte and string bodies are JSON-parsed first; an id
// field, when present, is persisted on the context for the response. A
// missing field is absence, not an error.
func (c *Codec) fromBody(body interface{}, key string) ([]Tensor, error) {
	var decoded map[string]interface{}
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		if !gjson.ValidBytes(b) {
			return nil, errors.Wrap(ErrMalformedPayload, "invalid JSON body")
		}
		if err := json.Unmarshal(b, &decoded); err != nil {
			return nil, errors.Wrap(ErrMalformedPayload, err.Error())
		}
	case string:
		if !gjson.Valid(b) {
			return nil, errors.Wrap(ErrMalformedPayload, "invalid JSON body")
		}
		if err := json.Unmarshal([]byte(b), &decoded); err != nil {
			return nil, errors.Wrap(ErrMalformedPayload, err.Error())
		}
	case map[string]interface{}:
		decoded = b
	default:
		return nil, errors.Wrapf(ErrMalformedPayload, "unexpected body type %T", body)
	}
	if id, ok := decoded[constants.IDField].(string); ok {
		c.ctx.SetPendingRequestID(id)
	}
	raw, ok := decoded[key]
	if !ok {
		return nil, nil
	}
	return decodeTensors(raw)
}

func decodeTensors(raw interface{}) ([]Tensor, error) {
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, errors.Wrap(ErrMalformedPayload, err.Error())
	}
	var tensors []Tensor
	if err := json.Unmarshal(b, &tensors); err != nil {
		return nil, errors.Wrap(ErrMalformedPayload, err.Error())
	}
	return tensors, nil
}

// FormatOutput translates the pipeline's per-position results into a v2
// response. The whole batch folds into a single aggregate envelope with
// one output tensor per position; the top-level wire shape is an array
// of that one envelope. A per-request multi-envelope response would
// need a protocol revision upstream first.
func (c *Codec) FormatOutput(results []interface{}) ([]ResponseEnvelope, error) {
	c.log.Debugf("formatting v2 response for %d outputs", len(results))
	response := ResponseEnvelope{}
	if id, ok := c.ctx.TakePendingRequestID(); ok {
		response.ID = id
	} else {
		response.ID = c.ctx.GetRequestID(0)
	}
	if manifest := c.ctx.Manifest(); manifest != nil {
		if model, ok := manifest[constants.ManifestModelKey].(map[string]interface{}); ok {
			response.ModelName, _ = model[constants.ManifestModelNameKey].(string)
			response.ModelVersion, _ = model[constants.ManifestModelVersionKey].(string)
		}
	} else {
		// workflow function nodes carry no manifest
		response.ModelName = c.ctx.ModelName()
	}
	outputs, err := c.toTensors(results)
	if err != nil {
		return nil, err
	}
	response.Outputs = outputs
	return []ResponseEnvelope{response}, nil
}

func (c *Codec) toTensors(results []interface{}) ([]Tensor, error) {
	// the explain header is only consulted at batch position 0, even
	// for batches mixing explain and predict requests
	name := constants.PredictTensorName
	if c.ctx.GetRequestHeader(0, constants.ExplainHeader) == "True" {
		name = constants.ExplainTensorName
	}
	tensors := make([]Tensor, 0, len(results))
	for _, result := range results {
		tensor, err := toTensor(name, result)
		if err != nil {
			return nil, err
		}
		tensors = append(tensors, tensor)
	}
	return tensors, nil
}

func toTensor(name string, value interface{}) (Tensor, error) {
	datatype, err := ElementTypeToWire(ElementKindOf(value))
	if err != nil {
		return Tensor{}, err
	}
	return Tensor{
		Name:     name,
		Shape:    InferShape(value),
		Datatype: datatype,
		Data:     Flatten(value),
	}, nil
}
