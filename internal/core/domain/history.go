package domain

import "time"

// ChatRecord is a persisted question/answer pair.
type ChatRecord struct {
	// ID is the unique identifier for the record.
	ID string

	// Identity is the username the record is attributed to.
	// Empty for anonymous questions.
	Identity string

	// Question is the question as asked.
	Question string

	// Answer is the answer that was returned.
	Answer string

	// CreatedAt is when the exchange happened.
	CreatedAt time.Time
}

// User is a local account. Accounts exist only to attribute chat history and
// to gate ingestion behind the admin flag; they carry no credentials.
type User struct {
	// ID is the unique identifier for the user.
	ID string

	// Username is the unique display name.
	Username string

	// IsAdmin marks users allowed to ingest documents.
	IsAdmin bool

	// CreatedAt is when the account was created.
	CreatedAt time.Time
}
