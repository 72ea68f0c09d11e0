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

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kserve/inference-envelope/pkg/constants"
	"github.com/kserve/inference-envelope/pkg/envelope"
)

var (
	modelName string
	roundtrip bool
	explain   bool
)

func main() {
	cmd := &cobra.Command{
		Use:   "envelope [request.json]",
		Short: "Decode a KServe v2 inference request payload",
		Long: "Decode a KServe v2 inference request payload into the per-sample " +
			"tensor form the serving pipeline consumes, optionally re-encoding " +
			"the decoded tensors as a v2 response for round-trip inspection.",
		Args: cobra.ExactArgs(1),
		RunE: run,
	}
	cmd.Flags().StringVar(&modelName, "model-name", "model", "model name stamped on re-encoded responses")
	cmd.Flags().BoolVar(&roundtrip, "roundtrip", false, "re-encode the decoded tensors as a v2 response")
	cmd.Flags().BoolVar(&explain, "explain", false, "mark the request as an explain request")
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	zapLog, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer zapLog.Sync() //nolint:errcheck

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	ctx := envelope.NewBatchContext(modelName, nil, 1)
	if explain {
		ctx.SetRequestHeader(0, constants.ExplainHeader, "True")
	}
	codec := envelope.New(ctx, zapLog.Sugar())

	parsed, err := codec.ParseInput([]map[string]interface{}{
		{constants.BodyField: raw},
	})
	if err != nil {
		return err
	}
	if err := print(cmd, parsed); err != nil {
		return err
	}

	if !roundtrip {
		return nil
	}
	results := make([]interface{}, 0)
	for _, input := range parsed {
		for _, descriptor := range input.Descriptors {
			results = append(results, descriptor.Data)
		}
	}
	response, err := codec.FormatOutput(results)
	if err != nil {
		return err
	}
	return print(cmd, response)
}

func print(cmd *cobra.Command, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
