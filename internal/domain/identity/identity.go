// Package identity describes the session issued by the hosted auth provider.
package identity

type Identity struct {
	ExternalID string
	Email      string
	Role       string
}
