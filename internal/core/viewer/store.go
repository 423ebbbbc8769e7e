// Copyright (c) 2026 Gazeta. All rights reserved.
// Author: desk@gazeta.news

package viewer

import "context"

// # Session Persistence

// Store defines the persistence contract for viewer sessions.
//
// Sessions are ephemeral: implementations attach a TTL and are free to
// drop idle sessions, which the reader page treats as an expired tab.
type Store interface {

	/*
		Save upserts a session, refreshing its TTL.

		Parameters:
		  - context: context.Context
		  - session: *Session

		Returns:
		  - error: Serialization or storage failures
	*/
	Save(context context.Context, session *Session) error

	/*
		Find returns the session with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Session: Hydrated session state
		  - error: apperr.NotFound when absent or expired
	*/
	Find(context context.Context, id string) (*Session, error)

	/*
		Delete removes a session.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - error: Storage failures
	*/
	Delete(context context.Context, id string) error
}
