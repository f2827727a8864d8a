package domain

// Credential is an explicit access credential threaded as a value into every
// external call. It is never held in ambient or global state.
type Credential struct {
	AccessToken  string
	RefreshToken string
}
