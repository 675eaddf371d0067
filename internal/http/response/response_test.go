package response

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseJSON(t *testing.T) {
	tests := []struct {
		name string
		resp Response
		want string
	}{
		{name: "ok", resp: OK(), want: `{"status":"OK"}`},
		{name: "data", resp: OKWithData([]int{1}), want: `{"status":"OK","data":[1]}`},
		{name: "redirect", resp: Redirect("/"), want: `{"status":"OK","redirect":"/"}`},
		{name: "error", resp: Error("boom"), want: `{"status":"Error","error":"boom"}`},
		{
			name: "fields",
			resp: ValidationError(map[string]string{"phone": "Phone number must be 10 digits"}),
			want: `{"status":"Error","error":"validation failed","fields":{"phone":"Phone number must be 10 digits"}}`,
		},
		{
			name: "retry",
			resp: Unavailable(),
			want: `{"status":"Error","error":"backend unavailable, try again","retry":true}`,
		},
		{
			name: "auth required",
			resp: AuthRequired(),
			want: `{"status":"Error","error":"authentication required","redirect":"/auth"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.resp)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}
