package pubsub

import "time"

// AccountRegistered is published once an account has been stored.
type AccountRegistered struct {
	AccountID    string    `json:"accountId"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// AccountRegisteredEvent is the typed topic for AccountRegistered.
var AccountRegisteredEvent = NewEvent[AccountRegistered]("account.registered")
