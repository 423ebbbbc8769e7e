// Copyright (c) 2026 Gazeta. All rights reserved.
// Author: desk@gazeta.news

package settings

import "context"

// # Store Interface

// Store defines persistence for site settings.
type Store interface {

	/*
		Get fetches one setting by key.

		Parameters:
		  - context: context.Context
		  - key: string

		Returns:
		  - *Setting: The stored row.
		  - error: apperr.NotFound when the key has never been written.
	*/
	Get(context context.Context, key string) (*Setting, error)

	/*
		All fetches every stored setting.

		Returns:
		  - map[string]string: Key to value; empty map when none exist.
		  - error: Database errors only.
	*/
	All(context context.Context) (map[string]string, error)

	/*
		Upsert writes a setting, inserting or overwriting by key.

		Returns:
		  - error: Database errors only.
	*/
	Upsert(context context.Context, key, value string) error
}
