package response

import (
	"accountd/internal/core/domain/user"
)

// User is the public profile. Password hashes and reset tokens never
// appear here.
type User struct {
	UID          int64  `json:"uid"`
	UIDFormatted string `json:"uid_formatted"`
	Name         string `json:"name"`
	Email        string `json:"email"`
}

func (u *User) FromDomainUser(du user.User) {
	u.UID = int64(du.ID)
	u.UIDFormatted = user.FormatDisplayID(du.ID)
	u.Name = du.Name
	u.Email = string(du.Email)
}
