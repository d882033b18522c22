package seed

import (
	appauth "github.com/yigit/admissions/internal/app/auth"
	"github.com/yigit/admissions/internal/app/models/dto"
)

func identityOf(u *dto.UserResponse) appauth.Identity {
	return appauth.Identity{ID: u.ID, Role: u.Role}
}
