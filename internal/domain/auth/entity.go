package auth

// Data is what a successful login hands back to the client: the signed
// token plus the identity it asserts.
type Data struct {
	Login   string
	IsAdmin bool
	Token   string
}
