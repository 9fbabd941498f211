package model

import "time"

// User represents an application user record as stored in the `users`
// table. PasswordHash is the bcrypt encoding of the password; handlers
// define separate response types with json tags so the hash cannot leak
// into a response body by accident.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name, also used as the token subject.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  IsActive     – whether the account may authenticate.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
}
