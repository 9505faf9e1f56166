package tmpl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shareData struct {
	Title string
	Text  string
	URL   string
}

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		tmpl    string
		data    any
		want    string
		wantErr bool
	}{
		{
			name: "struct fields",
			tmpl: "{{ .Title }}: {{ .Text }}",
			data: shareData{Title: "t", Text: "body"},
			want: "t: body",
		},
		{
			name: "no variables",
			tmpl: "static string",
			data: nil,
			want: "static string",
		},
		{
			name:    "missing map key errors",
			tmpl:    "{{ .Missing }}",
			data:    map[string]string{"Text": "x"},
			wantErr: true,
		},
		{
			name:    "unknown struct field errors",
			tmpl:    "{{ .Missing }}",
			data:    shareData{},
			wantErr: true,
		},
		{
			name:    "invalid template syntax",
			tmpl:    "{{ .Text }",
			data:    shareData{},
			wantErr: true,
		},
		{
			name: "shq with spaces",
			tmpl: "notify-send {{ .Text | shq }}",
			data: shareData{Text: "«цитата» — автор"},
			want: "notify-send '«цитата» — автор'",
		},
		{
			name: "shq with single quotes",
			tmpl: "echo {{ .Text | shq }}",
			data: shareData{Text: "it's a test"},
			want: `echo 'it'\''s a test'`,
		},
		{
			name: "shq empty string",
			tmpl: "echo {{ .Text | shq }}",
			data: shareData{},
			want: "echo ''",
		},
		{
			name: "urlq escapes query values",
			tmpl: "https://t.me/share/url?url={{ .URL | urlq }}&text={{ .Text | urlq }}",
			data: shareData{URL: "https://example.com/?a=1", Text: "a b&c"},
			want: "https://t.me/share/url?url=https%3A%2F%2Fexample.com%2F%3Fa%3D1&text=a+b%26c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.tmpl, tt.data)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
