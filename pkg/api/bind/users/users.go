package users

import (
	apiuser "github.com/foodgram-dev/foodgram/pkg/api/types/users"
	"github.com/foodgram-dev/foodgram/pkg/domain"
)

// Href builds the absolute URL of a stored media path.
type Href func(relpath string) string

func ComposeProfile(href Href, u domain.User, subscribed bool) apiuser.Profile {
	avatar := ""
	if u.Avatar != "" {
		avatar = href(u.Avatar)
	}
	return apiuser.Profile{
		Email:        u.Email,
		Id:           u.Id,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: subscribed,
		Avatar:       avatar,
	}
}

func ComposeRegistered(u domain.User) apiuser.Registered {
	return apiuser.Registered{
		Id:        u.Id,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
