package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestDefault_HasBothLocales(t *testing.T) {
	b := Default()
	require.Equal(t, []string{"en-US", "id-ID"}, b.Locales())
}

func TestLocalizer_RegistrationErrorsInBaseLocale(t *testing.T) {
	l := NewLocalizer("id-ID")

	tests := []struct {
		key  string
		want string
	}{
		{"register.error.required", "Semua kolom harus diisi"},
		{"register.error.mismatch", "Password tidak cocok"},
		{"register.error.too_short", "Password minimal 6 karakter"},
		{"register.error.failed", "Registrasi gagal. Silakan coba lagi."},
		{"register.error.unexpected", "Terjadi kesalahan saat registrasi"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			require.Equal(t, tt.want, l.T(tt.key))
		})
	}
}

func TestLocalizer_FormatsArguments(t *testing.T) {
	require.Equal(t, "Selamat datang, Budi!", NewLocalizer("id-ID").T("pages.contributor.welcome", "Budi"))
	require.Equal(t, "Welcome, Budi!", NewLocalizer("en-US").T("pages.contributor.welcome", "Budi"))
}

func TestLocalizer_UnknownLocaleFallsBack(t *testing.T) {
	l := NewLocalizer("fr-FR")
	require.Equal(t, BaseLocale, l.Locale())
	require.Equal(t, "Password tidak cocok", l.T("register.error.mismatch"))
}

func TestLocalizer_UnknownKeyReturnsKey(t *testing.T) {
	require.Equal(t, "register.nope", NewLocalizer("id-ID").T("register.nope"))
}

func TestLoadFromFS_Validation(t *testing.T) {
	tests := []struct {
		name    string
		files   fstest.MapFS
		wantErr string
	}{
		{
			name:    "empty",
			files:   fstest.MapFS{},
			wantErr: "no catalog files found",
		},
		{
			name: "missing base locale",
			files: fstest.MapFS{
				"locales/en-US/register.yaml": {Data: []byte("locale: en-US\nnamespace: register\nmessages:\n  register.title: x\n")},
			},
			wantErr: "base locale id-ID",
		},
		{
			name: "locale mismatch",
			files: fstest.MapFS{
				"locales/id-ID/register.yaml": {Data: []byte("locale: en-US\nnamespace: register\nmessages: {}\n")},
			},
			wantErr: "must match its directory",
		},
		{
			name: "key outside namespace",
			files: fstest.MapFS{
				"locales/id-ID/register.yaml": {Data: []byte("locale: id-ID\nnamespace: register\nmessages:\n  pages.title: x\n")},
			},
			wantErr: "must start with",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFS(tt.files)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBundle_MessagesMergeOverBase(t *testing.T) {
	files := fstest.MapFS{
		"locales/id-ID/register.yaml": {Data: []byte("locale: id-ID\nnamespace: register\nmessages:\n  register.a: satu\n  register.b: dua\n")},
		"locales/en-US/register.yaml": {Data: []byte("locale: en-US\nnamespace: register\nmessages:\n  register.a: one\n")},
	}
	b, err := LoadFromFS(files)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"register.a": "one", "register.b": "dua"}, b.Messages("en-US"))

	text, ok := b.Message("en-US", "register.b")
	require.True(t, ok)
	require.Equal(t, "dua", text)
}
