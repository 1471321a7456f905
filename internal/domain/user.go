package domain

import (
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// MaxUserID is the upper bound of the random display id.
const MaxUserID = 1000

// User is a person with a generated display id and a contact email.
// ID is drawn at random and may collide; Key is the unique identity used
// for storage and lookups.
type User struct {
	Key       uuid.UUID
	ID        int
	Name      string
	Email     string
	CreatedAt time.Time
}

// NewUser creates a user with a random display id in [1, MaxUserID].
// No validation is performed.
func NewUser(name, email string) User {
	return User{
		Key:       uuid.New(),
		ID:        rand.IntN(MaxUserID) + 1,
		Name:      name,
		Email:     email,
		CreatedAt: time.Now(),
	}
}

// DisplayName returns "#<id> - <name>".
func (u User) DisplayName() string {
	return fmt.Sprintf("#%d - %s", u.ID, u.Name)
}

// SendEmail simulates delivery by writing the recipient and subject to w.
// Nothing is sent and the result is always true.
func (u User) SendEmail(w io.Writer, subject, message string) bool {
	fmt.Fprintf(w, "Sending email to: %s\n", u.Email)
	fmt.Fprintf(w, "Subject: %s\n", subject)
	return true
}

// IsValid checks that both name and email are present.
func (u User) IsValid() bool {
	return u.Name != "" && u.Email != ""
}

func (u User) String() string {
	return fmt.Sprintf("User %d: %s <%s>", u.ID, u.Name, u.Email)
}
