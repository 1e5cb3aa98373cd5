package entity

// Identity is an authenticated end user as resolved by the auth verifier.
type Identity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Player is an identity seated through a concrete connection.
type Player struct {
	ConnID   string   `json:"-"`
	Identity Identity `json:"identity"`
}
