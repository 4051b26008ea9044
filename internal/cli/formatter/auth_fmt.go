package formatter

import (
	"github.com/alexanderramin/haven/internal/domain"
)

// FormatUser renders the signed-in profile.
func FormatUser(u *domain.User) string {
	pairs := [][2]string{
		{"Name", Bold(u.DisplayName())},
		{"Email", u.Email},
	}
	if u.UserType != "" {
		pairs = append(pairs, [2]string{"Account", string(u.UserType)})
	}
	if u.ChildEmail != "" {
		pairs = append(pairs, [2]string{"Child", u.ChildEmail})
	}
	pairs = append(pairs, [2]string{"User ID", Dim(u.ID.String())})
	return RenderBox("Account", RenderKeyValues(pairs))
}
