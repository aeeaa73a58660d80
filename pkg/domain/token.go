package domain

import "time"

// Token is the server-side record of an issued API token.
//
// The token itself is a signed JWS held by the client;
// it is honored only while the record with its id exists.
type Token struct {
	// Id is the jti claim of the issued JWS.
	Id string

	UserId    int
	IssuedAt  time.Time
	ExpiresAt time.Time
}

func (tk *Token) Equal(o *Token) bool {
	if (tk == nil) || (o == nil) {
		return (tk == nil) && (o == nil)
	}

	return tk.Id == o.Id &&
		tk.UserId == o.UserId &&
		tk.IssuedAt.Equal(o.IssuedAt) &&
		tk.ExpiresAt.Equal(o.ExpiresAt)
}
