package entity

// TokenKind distinguishes the two bearer credentials minted by the session
// layer. It is a closed set so that kind selection can never degrade into a
// string comparison typo.
type TokenKind int

const (
	// TokenKindAccess is the short-lived credential proving recent authentication.
	TokenKindAccess TokenKind = iota
	// TokenKindRefresh is the longer-lived credential used solely to mint new
	// access tokens; at most one instance is valid per account.
	TokenKindRefresh
)

// String returns the claim value encoded into tokens of this kind.
func (k TokenKind) String() string {
	switch k {
	case TokenKindAccess:
		return "access"
	case TokenKindRefresh:
		return "refresh"
	default:
		return "unknown"
	}
}

// TokenPair bundles the two tokens issued at login.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
