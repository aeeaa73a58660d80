package users

// Profile is the JSON representation of a user.
type Profile struct {
	Email     string `json:"email"`
	Id        int    `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// IsSubscribed tells whether the requesting user follows this one.
	// Anonymous requesters follow nobody.
	IsSubscribed bool `json:"is_subscribed"`

	// Avatar is an absolute URL, or "" when no avatar is set.
	Avatar string `json:"avatar"`
}

func (p *Profile) Equal(o *Profile) bool {
	return p.Email == o.Email &&
		p.Id == o.Id &&
		p.Username == o.Username &&
		p.FirstName == o.FirstName &&
		p.LastName == o.LastName &&
		p.IsSubscribed == o.IsSubscribed &&
		p.Avatar == o.Avatar
}

// Register is the registration request.
type Register struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

// Registered is the registration response.
type Registered struct {
	Id        int    `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// SetPassword is the request of POST /api/users/set_password/.
type SetPassword struct {
	NewPassword     string `json:"new_password"`
	CurrentPassword string `json:"current_password"`
}

// SetAvatar is the request of PUT /api/users/me/avatar/.
type SetAvatar struct {
	// Avatar is a base64 data URI.
	Avatar string `json:"avatar"`
}

// AvatarResponse echoes where the avatar is stored.
type AvatarResponse struct {
	Avatar string `json:"avatar"`
}

// Login is the request of POST /api/auth/token/login/.
type Login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries a freshly issued API token.
type TokenResponse struct {
	AuthToken string `json:"auth_token"`
}
