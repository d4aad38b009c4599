package domain

import "errors"

// User directory errors
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("a user with this username already exists")
	ErrMissingFields = errors.New("username or password not provided")
)

// Session lifecycle errors
var (
	ErrSessionActive   = errors.New("user already in an active session")
	ErrNoActiveSession = errors.New("no active sessions for this user")
)

// Friendship errors
var (
	ErrAlreadyFriends    = errors.New("users are already friends")
	ErrRequestNotFound   = errors.New("friend request not found")
	ErrRequestPending    = errors.New("friend request already pending")
	ErrSelfFriendRequest = errors.New("cannot send a friend request to yourself")
)
