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
	"github.com/gofrs/uuid/v5"
)

// RequestContext is the per-batch side channel shared between the
// serving pipeline and the codec. Header and id lookups are keyed by
// batch position. The pending request id slot is a write-once/read-once
// handshake: decode stores the id found in a request body, encode takes
// it exactly once and the slot clears.
//
// A context instance is scoped to one in-flight batch and is not safe
// for sharing across concurrently processed batches.
type RequestContext interface {
	GetRequestHeader(pos int, name string) string
	GetRequestID(pos int) string
	Manifest() map[string]interface{}
	ModelName() string
	SetPendingRequestID(id string)
	TakePendingRequestID() (string, bool)
}

// BatchContext is the default RequestContext backing one batch. Request
// ids are generated per position at construction; the pipeline fills in
// per-position headers before decoding.
type BatchContext struct {
	headers    []map[string]string
	requestIDs []string
	manifest   map[string]interface{}
	modelName  string
	pendingID  string
	hasPending bool
}

func NewBatchContext(modelName string, manifest map[string]interface{}, batchSize int) *BatchContext {
	headers := make([]map[string]string, batchSize)
	requestIDs := make([]string, batchSize)
	for i := range requestIDs {
		headers[i] = map[string]string{}
		requestIDs[i] = uuid.Must(uuid.NewV4()).String()
	}
	return &BatchContext{
		headers:    headers,
		requestIDs: requestIDs,
		manifest:   manifest,
		modelName:  modelName,
	}
}

// SetRequestHeader records a header for the request at the given batch
// position. Out-of-range positions are ignored.
func (c *BatchContext) SetRequestHeader(pos int, name, value string) {
	if pos < 0 || pos >= len(c.headers) {
		return
	}
	c.headers[pos][name] = value
}

func (c *BatchContext) GetRequestHeader(pos int, name string) string {
	if pos < 0 || pos >= len(c.headers) {
		return ""
	}
	return c.headers[pos][name]
}

func (c *BatchContext) GetRequestID(pos int) string {
	if pos < 0 || pos >= len(c.requestIDs) {
		return ""
	}
	return c.requestIDs[pos]
}

func (c *BatchContext) Manifest() map[string]interface{} {
	return c.manifest
}

func (c *BatchContext) ModelName() string {
	return c.modelName
}

func (c *BatchContext) SetPendingRequestID(id string) {
	c.pendingID = id
	c.hasPending = true
}

// TakePendingRequestID returns the id stored during decode and clears
// the slot, guarding against stale reuse across requests sharing a
// context.
func (c *BatchContext) TakePendingRequestID() (string, bool) {
	if !c.hasPending {
		return "", false
	}
	id := c.pendingID
	c.pendingID = ""
	c.hasPending = false
	return id, true
}
