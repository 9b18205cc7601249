// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package graph

import "context"

// DataSource is the query contract shared by every graph backend and by the
// federation that combines them. Implementations must be safe for concurrent
// use; results are owned by the caller.
type DataSource interface {
	ClassTree(ctx context.Context) ([]ClassModel, error)
	PropertyInfo(ctx context.Context, params PropertyInfoParams) (map[string]PropertyModel, error)
	ClassInfo(ctx context.Context, params ClassInfoParams) ([]ClassModel, error)
	LinkTypesInfo(ctx context.Context, params LinkTypesInfoParams) ([]LinkType, error)
	LinkTypes(ctx context.Context) ([]LinkType, error)
	ElementInfo(ctx context.Context, params ElementInfoParams) (map[string]ElementModel, error)
	LinksInfo(ctx context.Context, params LinksInfoParams) ([]LinkModel, error)
	LinkTypesOf(ctx context.Context, params LinkTypesOfParams) ([]LinkCount, error)
	LinkElements(ctx context.Context, params LinkElementsParams) (map[string]ElementModel, error)
	Filter(ctx context.Context, params FilterParams) (map[string]ElementModel, error)
}
