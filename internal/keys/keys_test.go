package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/require"
)

func TestForm_TogglePasswordKey(t *testing.T) {
	require.Equal(t, []string{"ctrl+o"}, Form.TogglePassword.Keys())
	require.Equal(t, "show password", Form.TogglePassword.Help().Desc)
}

func TestForm_NoConflicts(t *testing.T) {
	bindings := []key.Binding{
		Form.Next, Form.Prev, Form.Submit, Form.Confirm,
		Form.TogglePassword, Form.ToggleConfirm, Form.Login,
		App.Quit, App.Language, App.Logs,
	}
	requireUniqueKeys(t, bindings)
}

func TestLanding_NoConflicts(t *testing.T) {
	requireUniqueKeys(t, []key.Binding{Landing.Logout, Landing.Back, App.Quit, App.Language, App.Logs})
}

func TestBindings_HaveHelp(t *testing.T) {
	for _, b := range []key.Binding{
		Form.Next, Form.Prev, Form.Submit, Form.Confirm, Form.TogglePassword,
		Form.ToggleConfirm, Form.Login, Landing.Logout, Landing.Back, App.Quit, App.Language, App.Logs,
	} {
		require.NotEmpty(t, b.Help().Key)
		require.NotEmpty(t, b.Help().Desc)
	}
}

func requireUniqueKeys(t *testing.T, bindings []key.Binding) {
	t.Helper()
	seen := map[string]string{}
	for _, b := range bindings {
		for _, k := range b.Keys() {
			prev, dup := seen[k]
			require.False(t, dup, "key %q bound to both %q and %q", k, prev, b.Help().Desc)
			seen[k] = b.Help().Desc
		}
	}
}
