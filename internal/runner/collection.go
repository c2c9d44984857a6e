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
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is a subset of collection operations used by the catalogue.
//
// [*mongo.Collection] provides most methods;
// [WrapCollection] adds the rest.
type Collection interface {
	Name() string
	Find(ctx context.Context, filter any, opts ...*options.FindOptions) (*mongo.Cursor, error)
	UpdateOne(ctx context.Context, filter, update any, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter any, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
	Aggregate(ctx context.Context, pipeline any, opts ...*options.AggregateOptions) (*mongo.Cursor, error)

	// CreateIndex creates a single index and returns its name.
	CreateIndex(ctx context.Context, model mongo.IndexModel) (string, error)

	// RunCommand runs a database command (such as explain) and returns the raw reply.
	RunCommand(ctx context.Context, cmd bson.D) (bson.Raw, error)
}

// mongoCollection implements Collection on top of the driver.
type mongoCollection struct {
	*mongo.Collection
}

// WrapCollection returns Collection for the given driver collection.
func WrapCollection(c *mongo.Collection) Collection {
	return mongoCollection{Collection: c}
}

// CreateIndex implements Collection.
func (c mongoCollection) CreateIndex(ctx context.Context, model mongo.IndexModel) (string, error) {
	return c.Indexes().CreateOne(ctx, model)
}

// RunCommand implements Collection.
func (c mongoCollection) RunCommand(ctx context.Context, cmd bson.D) (bson.Raw, error) {
	return c.Database().RunCommand(ctx, cmd).Raw()
}

// check interfaces
var (
	_ Collection = mongoCollection{}
)
