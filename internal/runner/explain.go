// Copyright 2021 FerretDB Inc.
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

package runner

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/FerretDB/bookstore/internal/util/lazyerrors"
)

// ExplainStats contains the parts of explain reply with "executionStats" verbosity
// that show whether an index was used.
type ExplainStats struct {
	NReturned           int64
	TotalKeysExamined   int64
	TotalDocsExamined   int64
	ExecutionTimeMillis int64

	// Stages of the winning plan, from the root to the leaf (for example, FETCH, IXSCAN).
	Stages []string

	// IndexName is the name of the index scanned by the winning plan, if any.
	IndexName string

	// Raw is the complete reply.
	Raw bson.Raw
}

// IndexUsed returns true if the winning plan scans an index.
func (s *ExplainStats) IndexUsed() bool {
	for _, stage := range s.Stages {
		if stage == "IXSCAN" {
			return true
		}
	}

	return false
}

// parseExplain extracts statistics from explain reply.
func parseExplain(raw bson.Raw) (*ExplainStats, error) {
	var reply struct {
		QueryPlanner struct {
			WinningPlan bson.Raw `bson:"winningPlan"`
		} `bson:"queryPlanner"`
		ExecutionStats struct {
			NReturned           int64 `bson:"nReturned"`
			ExecutionTimeMillis int64 `bson:"executionTimeMillis"`
			TotalKeysExamined   int64 `bson:"totalKeysExamined"`
			TotalDocsExamined   int64 `bson:"totalDocsExamined"`
		} `bson:"executionStats"`
	}

	if err := bson.Unmarshal(raw, &reply); err != nil {
		return nil, lazyerrors.Error(err)
	}

	res := &ExplainStats{
		NReturned:           reply.ExecutionStats.NReturned,
		TotalKeysExamined:   reply.ExecutionStats.TotalKeysExamined,
		TotalDocsExamined:   reply.ExecutionStats.TotalDocsExamined,
		ExecutionTimeMillis: reply.ExecutionStats.ExecutionTimeMillis,
		Raw:                 raw,
	}

	plan := reply.QueryPlanner.WinningPlan

	// newer servers put the classic plan under queryPlan
	if qp, ok := plan.Lookup("queryPlan").DocumentOK(); ok {
		plan = qp
	}

	for len(plan) > 0 {
		stage, ok := plan.Lookup("stage").StringValueOK()
		if !ok {
			break
		}

		res.Stages = append(res.Stages, stage)

		if name, ok := plan.Lookup("indexName").StringValueOK(); ok && res.IndexName == "" {
			res.IndexName = name
		}

		plan, _ = plan.Lookup("inputStage").DocumentOK()
	}

	return res, nil
}
