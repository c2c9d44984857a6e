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

package catalogue

import "fmt"

// Kind represents the shape of a catalogue request.
type Kind int

// Kinds of requests.
const (
	kindUnknown Kind = iota

	// KindFilter selects documents by a predicate.
	KindFilter

	// KindProjection selects documents and a subset of their fields.
	KindProjection

	// KindSort selects documents in the given order.
	KindSort

	// KindPagination selects a window of sorted documents.
	KindPagination

	// KindUpdate replaces some fields of the matched document.
	KindUpdate

	// KindDelete removes the matched document.
	KindDelete

	// KindAggregation runs an aggregation pipeline.
	KindAggregation

	// KindIndex declares an index.
	KindIndex

	// KindExplain requests execution statistics instead of documents.
	KindExplain
)

// String implements [fmt.Stringer].
func (k Kind) String() string {
	switch k {
	case kindUnknown:
		return "unknown"
	case KindFilter:
		return "filter"
	case KindProjection:
		return "projection"
	case KindSort:
		return "sort"
	case KindPagination:
		return "pagination"
	case KindUpdate:
		return "update"
	case KindDelete:
		return "delete"
	case KindAggregation:
		return "aggregation"
	case KindIndex:
		return "index"
	case KindExplain:
		return "explain"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsFind returns true for kinds that are issued as find commands.
func (k Kind) IsFind() bool {
	switch k {
	case KindFilter, KindProjection, KindSort, KindPagination:
		return true
	default:
		return false
	}
}

// Task groups catalogue entries the same way the exercises are grouped.
type Task int

// Tasks, numbered as in the exercise.
const (
	TaskCRUD        Task = 2
	TaskAdvanced    Task = 3
	TaskAggregation Task = 4
	TaskIndexing    Task = 5
)

// Tasks lists all tasks in order.
var Tasks = []Task{TaskCRUD, TaskAdvanced, TaskAggregation, TaskIndexing}

// String implements [fmt.Stringer].
func (t Task) String() string {
	switch t {
	case TaskCRUD:
		return "Basic CRUD Operations"
	case TaskAdvanced:
		return "Advanced Queries"
	case TaskAggregation:
		return "Aggregation Pipeline"
	case TaskIndexing:
		return "Indexing"
	default:
		return fmt.Sprintf("Task(%d)", int(t))
	}
}
