package bigip

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		partition string
		want      string
	}{
		{name: "bare name default partition", input: "foo", want: "~Common~foo"},
		{name: "bare name explicit partition", input: "foo", partition: "Tenant", want: "~Tenant~foo"},
		{name: "full path", input: "/Common/bar", want: "~Common~bar"},
		{name: "full path ignores partition", input: "/Common/bar", partition: "Other", want: "~Common~bar"},
		{name: "tilde form passes through", input: "~Tenant~Folder~obj", want: "~Tenant~Folder~obj"},
		{name: "nested full path", input: "/Tenant/Folder/obj", want: "~Tenant~Folder~obj"},
		{name: "bare name with folder", input: "Folder/obj", partition: "Tenant", want: "~Tenant~Folder~obj"},
		{name: "surrounding whitespace trimmed", input: " foo ", want: "~Common~foo"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeName(tc.input, tc.partition)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestFullPath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "bare name", input: "foo", want: "/Common/foo"},
		{name: "tilde form", input: "~Tenant~Bar", want: "/Tenant/Bar"},
		{name: "full path passes through", input: "/Tenant/Folder/Obj", want: "/Tenant/Folder/Obj"},
		{name: "pool member style name", input: "10.0.0.1:80", want: "/Common/10.0.0.1:80"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FullPath(tc.input, "")
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestNameRoundTrip(t *testing.T) {
	inputs := []string{
		"foo",
		"my_pool-1",
		"Folder/obj",
		"/Common/foo",
		"/Tenant/App/vs_https",
		"~Common~foo",
		"~Tenant~App~rule",
		"//Common//double",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			tilde, err := NormalizeName(in, "Common")
			require.NoError(t, err)

			viaTilde, err := FullPath(tilde, "Common")
			require.NoError(t, err)
			direct, err := FullPath(in, "Common")
			require.NoError(t, err)
			require.Equal(t, direct, viaTilde)

			again, err := NormalizeName(tilde, "Common")
			require.NoError(t, err)
			require.Equal(t, tilde, again, "normalization must be idempotent")
		})
	}
}

func TestParseNameErrors(t *testing.T) {
	for _, in := range []string{"", "   ", "/", "~", "/Common", "~Common", "~Common~", "a~b"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseName(in, "Common")
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrValidation))

			_, err = NormalizeName(in, "Common")
			require.True(t, errors.Is(err, ErrValidation))
			_, err = FullPath(in, "Common")
			require.True(t, errors.Is(err, ErrValidation))
		})
	}
}

func TestResourcePath(t *testing.T) {
	require.Equal(t, "/tm/ltm/pool", resourcePath("pool", ""))
	require.Equal(t, "/tm/ltm/rule/~Common~my_rule", resourcePath("rule", "~Common~my_rule"))
	require.Equal(t, "/tm/ltm/data-group/internal/~Common~dg", resourcePath("data-group/internal", "~Common~dg"))
	require.Equal(t, "/tm/ltm/virtual/~Common~my%20vs", resourcePath("virtual", "~Common~my vs"))
	require.Equal(t, "/tm/ltm/pool/~Common~a%3Fb", resourcePath("pool", "~Common~a?b"))
}

func TestSelectFields(t *testing.T) {
	require.Equal(t, []string{"name", "Name", "rules"}, SelectFields([]string{"name", "", "Name", "  ", "name", "rules"}))
	require.Empty(t, SelectFields(nil))
}

func TestMetricResource(t *testing.T) {
	require.Equal(t, "/tm/ltm/pool", metricResource("/tm/ltm/pool/~Common~web"))
	require.Equal(t, "/tm/ltm/pool", metricResource("/tm/ltm/pool"))
	require.Equal(t, "/tm/util/bash", metricResource("/tm/util/bash"))
}
