package cli

import (
	"strings"

	"github.com/alexanderramin/haven/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// categoryFlag parses a practice category, accepting short aliases such as
// "sleep" or "anxiety".
type categoryFlag struct {
	value domain.Category
}

var _ pflag.Value = (*categoryFlag)(nil)

func (f *categoryFlag) String() string { return string(f.value) }

func (f *categoryFlag) Set(s string) error {
	c, err := domain.ParseCategory(s)
	if err != nil {
		return err
	}
	f.value = c
	return nil
}

func (f *categoryFlag) Type() string { return "category" }

// userTypeFlag parses the account type for login and signup.
type userTypeFlag struct {
	value domain.UserType
}

var _ pflag.Value = (*userTypeFlag)(nil)

func (f *userTypeFlag) String() string { return string(f.value) }

func (f *userTypeFlag) Set(s string) error {
	t, err := domain.ParseUserType(s)
	if err != nil {
		return err
	}
	f.value = t
	return nil
}

func (f *userTypeFlag) Type() string { return "type" }

func completeCategories(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, c := range domain.Categories {
		if strings.HasPrefix(string(c), toComplete) {
			out = append(out, string(c))
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func completeUserTypes(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{string(domain.UserTeen), string(domain.UserParent)}, cobra.ShellCompDirectiveNoFileComp
}
